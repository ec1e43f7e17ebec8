package repository

import (
	"context"

	"inventara/config"
	"inventara/models"
	"inventara/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func kendaraanCol() *mongo.Collection {
	return config.KendaraanCollection
}

func GetAllKendaraan(ctx context.Context) ([]models.Kendaraan, error) {
	return findMany[models.Kendaraan](ctx, kendaraanCol(), bson.M{}, newestFirst)
}

func GetKendaraanByID(ctx context.Context, id string) (*models.Kendaraan, error) {
	return findOne[models.Kendaraan](ctx, kendaraanCol(), bson.M{"_id": id})
}

func GetKendaraanByPlat(ctx context.Context, plat string) (*models.Kendaraan, error) {
	return findOne[models.Kendaraan](ctx, kendaraanCol(), bson.M{"plat": plat})
}

func GetKendaraanByTempat(ctx context.Context, tempatID string) ([]models.Kendaraan, error) {
	return findMany[models.Kendaraan](ctx, kendaraanCol(), bson.M{"tempat_id": tempatID}, newestFirst)
}

func CreateKendaraan(ctx context.Context, k *models.Kendaraan) error {
	if err := mustExist(ctx, tempatCol(), k.TempatID, "tempat"); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := kendaraanCol().InsertOne(ctx, k)
	return translateErr(err)
}

func UpdateKendaraan(ctx context.Context, id string, k models.Kendaraan) error {
	if err := mustExist(ctx, tempatCol(), k.TempatID, "tempat"); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	set := bson.M{
		"name":      k.Name,
		"plat":      k.Plat,
		"status":    k.Status,
		"condition": k.Condition,
		"warranty":  k.Warranty,
		"tax":       k.Tax,
		"capacity":  k.Capacity,
		"category":  k.Category,
		"color":     k.Color,
		"tempat_id": k.TempatID,
	}
	if k.Photo != "" {
		set["photo"] = k.Photo
	}
	res, err := kendaraanCol().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return translateErr(err)
	}
	if res.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func DeleteKendaraanByPlat(ctx context.Context, plat string) (*models.Kendaraan, error) {
	k, err := GetKendaraanByPlat(ctx, plat)
	if err != nil {
		return nil, err
	}
	if err := refuseOpenLoans(ctx, models.ResourceRef{Category: models.CategoryKendaraan, ID: k.ID}); err != nil {
		return nil, err
	}
	return k, deleteByID(ctx, kendaraanCol(), k.ID)
}
