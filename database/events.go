package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/DharunKumar-K/eventpulse/booking"
	"github.com/DharunKumar-K/eventpulse/model"
)

func (db *DB) CreateEvent(ctx context.Context, event model.Event) error {
	if _, err := db.events.InsertOne(ctx, event); err != nil {
		return storeErr("create event", err)
	}
	return nil
}

// ListEvents returns events sorted by date. Cancelled events are hidden
// unless includeCancelled is set (admin views).
func (db *DB) ListEvents(ctx context.Context, includeCancelled bool) ([]model.Event, error) {
	filter := bson.M{}
	if !includeCancelled {
		filter["status"] = bson.M{"$ne": model.EventStatusCancelled}
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cur, err := db.events.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr("list events", err)
	}

	events := []model.Event{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, storeErr("list events", err)
	}
	return events, nil
}

func (db *DB) UpdateEvent(ctx context.Context, event model.Event) error {
	res, err := db.events.ReplaceOne(ctx, bson.M{"_id": event.Id}, event)
	if err != nil {
		return storeErr("update event", err)
	}
	if res.MatchedCount == 0 {
		return booking.ErrEventNotFound
	}
	return nil
}

func (db *DB) DeleteEvent(ctx context.Context, eventId primitive.ObjectID) error {
	res, err := db.events.DeleteOne(ctx, bson.M{"_id": eventId})
	if err != nil {
		return storeErr("delete event", err)
	}
	if res.DeletedCount == 0 {
		return booking.ErrEventNotFound
	}
	return nil
}

// SeedEvents replaces the whole events collection with the given sample set.
func (db *DB) SeedEvents(ctx context.Context, events []model.Event) error {
	if _, err := db.events.DeleteMany(ctx, bson.M{}); err != nil {
		return storeErr("seed events", err)
	}

	docs := make([]interface{}, 0, len(events))
	for _, event := range events {
		docs = append(docs, event)
	}
	if _, err := db.events.InsertMany(ctx, docs); err != nil {
		return storeErr("seed events", err)
	}
	return nil
}
