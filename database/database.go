package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/DharunKumar-K/eventpulse/booking"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// DB wraps the three collections of the ticketing platform. It implements
// booking.Store plus the event/user/stats queries the handlers consume.
type DB struct {
	client   *mongo.Client
	users    *mongo.Collection
	events   *mongo.Collection
	bookings *mongo.Collection
}

func Connect(ctx context.Context, connString string) (*DB, error) {
	clientOptions := options.Client().ApplyURI(connString)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to the db: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("db is not available: %w", err)
	}

	database := client.Database("eventpulse")
	db := &DB{
		client:   client,
		users:    database.Collection("users"),
		events:   database.Collection("events"),
		bookings: database.Collection("bookings"),
	}

	if err := db.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("cannot create indexes: %w", err)
	}

	return db, nil
}

func (db *DB) Disconnect(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

func (db *DB) ensureIndexes(ctx context.Context) error {
	_, err := db.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.bookings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}, {Key: "event", Value: 1}},
	})
	return err
}

// storeErr wraps driver failures, tagging timeouts and connection problems as
// transient so the booking engine knows they are safe to retry.
func storeErr(op string, err error) error {
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%v: %w: %v", op, booking.ErrTransient, err)
	}
	return fmt.Errorf("%v: %w", op, err)
}
