package repository

import (
	"context"

	"inventara/config"
	"inventara/models"
	"inventara/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func notifikasiCol() *mongo.Collection {
	return config.NotifikasiCollection
}

func perangkatCol() *mongo.Collection {
	return config.PerangkatCollection
}

// NotificationStore adalah implementasi MongoDB untuk services.NotificationStore.
type NotificationStore struct{}

var _ services.NotificationStore = NotificationStore{}

func (NotificationStore) NextID(ctx context.Context, name string) (string, error) {
	return GenerateID(ctx, name)
}

func (NotificationStore) InsertNotifikasi(ctx context.Context, n *models.Notifikasi) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := notifikasiCol().InsertOne(ctx, n)
	return translateErr(err)
}

func (NotificationStore) ListNotifikasi(ctx context.Context, userID string) ([]models.Notifikasi, error) {
	return findMany[models.Notifikasi](ctx, notifikasiCol(), bson.M{"user_id": userID}, newestFirst)
}

func (NotificationStore) MarkRead(ctx context.Context, userID, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := notifikasiCol().UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (NotificationStore) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := notifikasiCol().UpdateMany(ctx,
		bson.M{"user_id": userID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (NotificationStore) UserIDsByRole(ctx context.Context, role string) ([]string, error) {
	return UserIDsByRole(ctx, role)
}

func (NotificationStore) DevicesOfUser(ctx context.Context, userID string) ([]models.Perangkat, error) {
	return findMany[models.Perangkat](ctx, perangkatCol(), bson.M{"user_id": userID})
}

// UpsertDevice mendaftarkan token; token yang sudah ada dipindah ke user baru
// dan p diisi dokumen yang tersimpan.
func (NotificationStore) UpsertDevice(ctx context.Context, p *models.Perangkat) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := perangkatCol().FindOneAndUpdate(ctx,
		bson.M{"device_token": p.DeviceToken},
		bson.M{
			"$set":         bson.M{"user_id": p.UserID},
			"$setOnInsert": bson.M{"_id": p.ID},
		},
		opts,
	).Decode(p)
	return translateErr(err)
}

func (NotificationStore) DeleteDevice(ctx context.Context, userID, token string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := perangkatCol().DeleteOne(ctx, bson.M{"device_token": token, "user_id": userID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
