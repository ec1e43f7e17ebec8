package repository

import (
	"context"
	"fmt"

	"inventara/config"
	"inventara/logging"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes membuat index yang dibutuhkan query dan natural key. Dipanggil
// saat startup; index yang sudah ada tidak diubah.
func EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	oneDraftPerUser := options.Index().
		SetUnique(true).
		SetPartialFilterExpression(bson.M{"status": "draft"})

	specs := []struct {
		col    *mongo.Collection
		models []mongo.IndexModel
	}{
		{config.UserCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "role", Value: 1}}},
		}},
		{config.TempatCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		}},
		{config.RuanganCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "tempat_id", Value: 1}}},
		}},
		{config.BarangCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "ruangan_id", Value: 1}}},
		}},
		{config.KendaraanCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "plat", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "tempat_id", Value: 1}}},
		}},
		{config.DetailPeminjamanCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: oneDraftPerUser},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "borrowed_date", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		}},
		{config.PeminjamanCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "detail_peminjaman_id", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
			{Keys: bson.D{{Key: "barang_id", Value: 1}}},
			{Keys: bson.D{{Key: "kendaraan_id", Value: 1}}},
			{Keys: bson.D{{Key: "ruangan_id", Value: 1}}},
		}},
		{config.NotifikasiCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		}},
		{config.PerangkatCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "device_token", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		}},
		{config.LogCollection, []mongo.IndexModel{
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		}},
	}

	ctx, cancel := context.WithTimeout(ctx, 3*queryTimeout)
	defer cancel()

	for _, s := range specs {
		if _, err := s.col.Indexes().CreateMany(ctx, s.models); err != nil {
			return fmt.Errorf("index %s: %w", s.col.Name(), err)
		}
	}
	logging.Debug().Int("collections", len(specs)).Msg("index MongoDB siap")
	return nil
}
