package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/DharunKumar-K/eventpulse/model"
)

func (db *DB) CreateUser(ctx context.Context, user model.User) error {
	_, err := db.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return storeErr("create user", err)
	}
	return nil
}

func (db *DB) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	err := db.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrUserNotFound
	}
	if err != nil {
		return model.User{}, storeErr("get user", err)
	}
	return user, nil
}

func (db *DB) GetUserById(ctx context.Context, userId primitive.ObjectID) (model.User, error) {
	var user model.User
	err := db.users.FindOne(ctx, bson.M{"_id": userId}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrUserNotFound
	}
	if err != nil {
		return model.User{}, storeErr("get user", err)
	}
	return user, nil
}

// ListUsers returns all users newest first, with password hashes stripped.
func (db *DB) ListUsers(ctx context.Context) ([]model.User, error) {
	opts := options.Find().
		SetProjection(bson.M{"password": 0}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cur, err := db.users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeErr("list users", err)
	}

	users := []model.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, storeErr("list users", err)
	}
	return users, nil
}

func (db *DB) FirstUserByRole(ctx context.Context, role string) (model.User, error) {
	var user model.User
	err := db.users.FindOne(ctx, bson.M{"role": role}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrUserNotFound
	}
	if err != nil {
		return model.User{}, storeErr("get user", err)
	}
	return user, nil
}
