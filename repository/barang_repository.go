package repository

import (
	"context"

	"inventara/config"
	"inventara/models"
	"inventara/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func barangCol() *mongo.Collection {
	return config.BarangCollection
}

func GetAllBarang(ctx context.Context) ([]models.Barang, error) {
	return findMany[models.Barang](ctx, barangCol(), bson.M{}, newestFirst)
}

func GetBarangByID(ctx context.Context, id string) (*models.Barang, error) {
	return findOne[models.Barang](ctx, barangCol(), bson.M{"_id": id})
}

func GetBarangByRuangan(ctx context.Context, ruanganID string) ([]models.Barang, error) {
	return findMany[models.Barang](ctx, barangCol(), bson.M{"ruangan_id": ruanganID}, newestFirst)
}

func CreateBarang(ctx context.Context, b *models.Barang) error {
	if err := mustExist(ctx, ruanganCol(), b.RuanganID, "ruangan"); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := barangCol().InsertOne(ctx, b)
	return translateErr(err)
}

func UpdateBarang(ctx context.Context, id string, b models.Barang) error {
	if err := mustExist(ctx, ruanganCol(), b.RuanganID, "ruangan"); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	set := bson.M{
		"name":       b.Name,
		"code":       b.Code,
		"status":     b.Status,
		"condition":  b.Condition,
		"warranty":   b.Warranty,
		"ruangan_id": b.RuanganID,
	}
	if b.Photo != "" {
		set["photo"] = b.Photo
	}
	res, err := barangCol().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return translateErr(err)
	}
	if res.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func DeleteBarangByID(ctx context.Context, id string) (*models.Barang, error) {
	b, err := GetBarangByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := refuseOpenLoans(ctx, models.ResourceRef{Category: models.CategoryBarang, ID: b.ID}); err != nil {
		return nil, err
	}
	return b, deleteByID(ctx, barangCol(), b.ID)
}
