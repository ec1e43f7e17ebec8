package repository

import (
	"context"
	"strings"

	"inventara/config"
	"inventara/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func userCol() *mongo.Collection {
	return config.UserCollection
}

func GetAllUsers(ctx context.Context) ([]models.User, error) {
	return findMany[models.User](ctx, userCol(), bson.M{}, newestFirst)
}

func GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return findOne[models.User](ctx, userCol(), bson.M{"_id": id})
}

func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, userCol(), bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func CreateUser(ctx context.Context, u *models.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := userCol().InsertOne(ctx, u)
	return translateErr(err)
}

func CountUsers(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return userCol().CountDocuments(ctx, bson.M{})
}

func UserIDsByRole(ctx context.Context, role string) ([]string, error) {
	users, err := findMany[models.User](ctx, userCol(), bson.M{"role": role},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}
