package repository

import (
	"context"
	"fmt"

	"inventara/config"
	"inventara/models"
	"inventara/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func tempatCol() *mongo.Collection {
	return config.TempatCollection
}

func GetAllTempat(ctx context.Context) ([]models.Tempat, error) {
	return findMany[models.Tempat](ctx, tempatCol(), bson.M{}, newestFirst)
}

func GetTempatByID(ctx context.Context, id string) (*models.Tempat, error) {
	return findOne[models.Tempat](ctx, tempatCol(), bson.M{"_id": id})
}

func GetTempatByName(ctx context.Context, name string) (*models.Tempat, error) {
	return findOne[models.Tempat](ctx, tempatCol(), bson.M{"name": name})
}

func CreateTempat(ctx context.Context, t *models.Tempat) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := tempatCol().InsertOne(ctx, t)
	return translateErr(err)
}

// UpdateTempat menimpa field yang bisa diubah; photo hanya bila diisi.
func UpdateTempat(ctx context.Context, id string, t models.Tempat) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	set := bson.M{
		"name":     t.Name,
		"category": t.Category,
	}
	if t.Photo != "" {
		set["photo"] = t.Photo
	}
	res, err := tempatCol().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return translateErr(err)
	}
	if res.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

// DeleteTempatByName menolak tempat yang masih punya ruangan atau kendaraan.
func DeleteTempatByName(ctx context.Context, name string) (*models.Tempat, error) {
	t, err := GetTempatByName(ctx, name)
	if err != nil {
		return nil, err
	}
	for _, child := range []struct {
		col  *mongo.Collection
		kind string
	}{
		{config.RuanganCollection, "ruangan"},
		{config.KendaraanCollection, "kendaraan"},
	} {
		has, err := exists(ctx, child.col, bson.M{"tempat_id": t.ID})
		if err != nil {
			return nil, err
		}
		if has {
			return nil, fmt.Errorf("%w: tempat %s masih memiliki %s", services.ErrConflict, name, child.kind)
		}
	}
	return t, deleteByID(ctx, tempatCol(), t.ID)
}

func deleteByID(ctx context.Context, col *mongo.Collection, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}
