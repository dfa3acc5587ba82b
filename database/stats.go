package database

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/DharunKumar-K/eventpulse/model"
)

// Read-only aggregation layer for the admin views. No write path; results
// reflect whatever the collections hold at query time.

func (db *DB) PlatformStats(ctx context.Context) (model.PlatformStats, error) {
	var stats model.PlatformStats
	var err error

	if stats.TotalUsers, err = db.users.CountDocuments(ctx, bson.M{}); err != nil {
		return model.PlatformStats{}, storeErr("count users", err)
	}
	if stats.TotalEvents, err = db.events.CountDocuments(ctx, bson.M{}); err != nil {
		return model.PlatformStats{}, storeErr("count events", err)
	}

	confirmed := bson.M{"status": model.BookingStatusConfirmed}
	if stats.TotalBookings, err = db.bookings.CountDocuments(ctx, confirmed); err != nil {
		return model.PlatformStats{}, storeErr("count bookings", err)
	}

	if stats.TotalRevenue, err = db.totalRevenue(ctx); err != nil {
		return model.PlatformStats{}, err
	}

	stats.UsersByRole = []model.RoleCount{}
	if err = groupCount(ctx, db.users, "$role", &stats.UsersByRole); err != nil {
		return model.PlatformStats{}, storeErr("users by role", err)
	}
	stats.EventsByCategory = []model.CategoryCount{}
	if err = groupCount(ctx, db.events, "$category", &stats.EventsByCategory); err != nil {
		return model.PlatformStats{}, storeErr("events by category", err)
	}

	return stats, nil
}

func (db *DB) totalRevenue(ctx context.Context) (float64, error) {
	pipeline := bson.A{
		bson.M{"$match": bson.M{"status": model.BookingStatusConfirmed}},
		bson.M{"$group": bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$totalPrice"},
		}},
	}

	cur, err := db.bookings.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, storeErr("total revenue", err)
	}

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, storeErr("total revenue", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func groupCount(ctx context.Context, coll *mongo.Collection, field string, out interface{}) error {
	pipeline := bson.A{
		bson.M{"$group": bson.M{
			"_id":   field,
			"count": bson.M{"$sum": 1},
		}},
	}

	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}

// EventRollups joins every event with its confirmed-booking totals: booking
// count, seats sold and revenue.
func (db *DB) EventRollups(ctx context.Context) ([]model.EventRollup, error) {
	pipeline := bson.A{
		bson.M{"$match": bson.M{"status": model.BookingStatusConfirmed}},
		bson.M{"$group": bson.M{
			"_id":              "$event",
			"totalBookings":    bson.M{"$sum": 1},
			"totalSeatsBooked": bson.M{"$sum": "$seats"},
			"revenue":          bson.M{"$sum": "$totalPrice"},
		}},
	}

	cur, err := db.bookings.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storeErr("event rollups", err)
	}

	var totals []struct {
		Event            primitive.ObjectID `bson:"_id"`
		TotalBookings    int64              `bson:"totalBookings"`
		TotalSeatsBooked int64              `bson:"totalSeatsBooked"`
		Revenue          float64            `bson:"revenue"`
	}
	if err := cur.All(ctx, &totals); err != nil {
		return nil, storeErr("event rollups", err)
	}

	byEvent := make(map[primitive.ObjectID]int, len(totals))
	for i, t := range totals {
		byEvent[t.Event] = i
	}

	events, err := db.ListEvents(ctx, true)
	if err != nil {
		return nil, err
	}

	rollups := make([]model.EventRollup, 0, len(events))
	for _, event := range events {
		rollup := model.EventRollup{Event: event}
		if i, ok := byEvent[event.Id]; ok {
			rollup.TotalBookings = totals[i].TotalBookings
			rollup.TotalSeatsBooked = totals[i].TotalSeatsBooked
			rollup.Revenue = totals[i].Revenue
		}
		rollups = append(rollups, rollup)
	}
	return rollups, nil
}

// ListAllBookings returns every booking regardless of owner or status,
// newest first.
func (db *DB) ListAllBookings(ctx context.Context) ([]model.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "bookingDate", Value: -1}})

	cur, err := db.bookings.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeErr("list all bookings", err)
	}

	bookings := []model.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, storeErr("list all bookings", err)
	}
	return bookings, nil
}
