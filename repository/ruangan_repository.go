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

func ruanganCol() *mongo.Collection {
	return config.RuanganCollection
}

func GetAllRuangan(ctx context.Context) ([]models.Ruangan, error) {
	return findMany[models.Ruangan](ctx, ruanganCol(), bson.M{}, newestFirst)
}

func GetRuanganByID(ctx context.Context, id string) (*models.Ruangan, error) {
	return findOne[models.Ruangan](ctx, ruanganCol(), bson.M{"_id": id})
}

func GetRuanganByCode(ctx context.Context, code string) (*models.Ruangan, error) {
	return findOne[models.Ruangan](ctx, ruanganCol(), bson.M{"code": code})
}

func GetRuanganByTempat(ctx context.Context, tempatID string) ([]models.Ruangan, error) {
	return findMany[models.Ruangan](ctx, ruanganCol(), bson.M{"tempat_id": tempatID}, newestFirst)
}

func CreateRuangan(ctx context.Context, r *models.Ruangan) error {
	if err := mustExist(ctx, tempatCol(), r.TempatID, "tempat"); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := ruanganCol().InsertOne(ctx, r)
	return translateErr(err)
}

func UpdateRuangan(ctx context.Context, id string, r models.Ruangan) error {
	if err := mustExist(ctx, tempatCol(), r.TempatID, "tempat"); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	set := bson.M{
		"code":      r.Code,
		"status":    r.Status,
		"capacity":  r.Capacity,
		"category":  r.Category,
		"tempat_id": r.TempatID,
	}
	if r.Photo != "" {
		set["photo"] = r.Photo
	}
	res, err := ruanganCol().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return translateErr(err)
	}
	if res.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

// DeleteRuanganByCode menolak ruangan yang masih berisi barang atau masih
// dipinjam.
func DeleteRuanganByCode(ctx context.Context, code string) (*models.Ruangan, error) {
	r, err := GetRuanganByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	has, err := exists(ctx, config.BarangCollection, bson.M{"ruangan_id": r.ID})
	if err != nil {
		return nil, err
	}
	if has {
		return nil, fmt.Errorf("%w: ruangan %s masih memiliki barang", services.ErrConflict, code)
	}
	if err := refuseOpenLoans(ctx, models.ResourceRef{Category: models.CategoryRuangan, ID: r.ID}); err != nil {
		return nil, err
	}
	return r, deleteByID(ctx, ruanganCol(), r.ID)
}

// mustExist memastikan referensi (tempat_id, ruangan_id) valid.
func mustExist(ctx context.Context, col *mongo.Collection, id, kind string) error {
	ok, err := exists(ctx, col, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s %s", services.ErrNotFound, kind, id)
	}
	return nil
}
