package repository

import (
	"context"
	"time"

	"inventara/models"
	"inventara/services"

	"go.mongodb.org/mongo-driver/bson"
)

// GetLaporanPeminjaman mengambil pengajuan non-draft yang dibuat di rentang
// [from, to) lengkap dengan user dan item.
func GetLaporanPeminjaman(ctx context.Context, from, to *time.Time) ([]models.LaporanPeminjaman, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*queryTimeout)
	defer cancel()

	match := DetailQuery(services.DetailFilter{
		Statuses:    models.SubmittedStatuses,
		CreatedFrom: from,
		CreatedTo:   to,
	})
	pipeline := bson.A{
		bson.M{"$match": match},
		bson.M{"$sort": bson.M{"created_at": -1}},
		bson.M{"$lookup": bson.M{
			"from":         "users",
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "user",
		}},
		bson.M{"$unwind": bson.M{"path": "$user", "preserveNullAndEmptyArrays": true}},
		bson.M{"$lookup": bson.M{
			"from":         "peminjamans",
			"localField":   "_id",
			"foreignField": "detail_peminjaman_id",
			"as":           "items",
		}},
	}

	cursor, err := detailCol().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := make([]models.LaporanPeminjaman, 0)
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
