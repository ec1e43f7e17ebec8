package repository

import (
	"context"
	"time"

	"inventara/config"
	"inventara/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func logCol() *mongo.Collection {
	return config.LogCollection
}

// CreateLog mencatat aksi user ke koleksi logs.
func CreateLog(ctx context.Context, userID, action string) error {
	id, err := GenerateID(ctx, "log")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err = logCol().InsertOne(ctx, models.Log{
		ID:        id,
		UserID:    userID,
		Action:    action,
		CreatedAt: time.Now(),
	})
	return err
}

func GetLogs(ctx context.Context, limit int64) ([]models.Log, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return findMany[models.Log](ctx, logCol(), bson.M{}, opts)
}
