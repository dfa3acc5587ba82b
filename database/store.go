package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/DharunKumar-K/eventpulse/booking"
	"github.com/DharunKumar-K/eventpulse/model"
)

// booking.Store implementation. Seat accounting never does read-then-write:
// both the reservation and the release are single conditional updates applied
// by the server, so concurrent requests against the same event cannot
// oversell the counter.

func (db *DB) GetEvent(ctx context.Context, eventId primitive.ObjectID) (model.Event, error) {
	var event model.Event
	err := db.events.FindOne(ctx, bson.M{"_id": eventId}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Event{}, booking.ErrEventNotFound
	}
	if err != nil {
		return model.Event{}, storeErr("get event", err)
	}
	return event, nil
}

// ReserveSeats decrements availableSeats by seats only if the event is not
// cancelled and still has at least that many seats left.
func (db *DB) ReserveSeats(ctx context.Context, eventId primitive.ObjectID, seats int64) error {
	filter := bson.M{
		"_id":            eventId,
		"status":         bson.M{"$ne": model.EventStatusCancelled},
		"availableSeats": bson.M{"$gte": seats},
	}
	update := bson.M{
		"$inc": bson.M{"availableSeats": -seats},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}

	res, err := db.events.UpdateOne(ctx, filter, update)
	if err != nil {
		return storeErr("reserve seats", err)
	}
	if res.ModifiedCount == 0 {
		return booking.ErrSeatsUnavailable
	}
	return nil
}

// ReleaseSeats adds seats back, clamped to totalSeats in the same update so a
// capacity reduction after the booking cannot push the counter past the cap.
func (db *DB) ReleaseSeats(ctx context.Context, eventId primitive.ObjectID, seats int64) error {
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"availableSeats": bson.M{"$min": bson.A{
				"$totalSeats",
				bson.M{"$add": bson.A{"$availableSeats", seats}},
			}},
			"updatedAt": time.Now().UTC(),
		}}},
	}

	res, err := db.events.UpdateOne(ctx, bson.M{"_id": eventId}, update)
	if err != nil {
		return storeErr("release seats", err)
	}
	if res.MatchedCount == 0 {
		return booking.ErrEventNotFound
	}
	return nil
}

func (db *DB) InsertBooking(ctx context.Context, b model.Booking) error {
	if _, err := db.bookings.InsertOne(ctx, b); err != nil {
		return storeErr("insert booking", err)
	}
	return nil
}

func (db *DB) GetBooking(ctx context.Context, bookingId primitive.ObjectID) (model.Booking, error) {
	var b model.Booking
	err := db.bookings.FindOne(ctx, bson.M{"_id": bookingId}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Booking{}, booking.ErrBookingNotFound
	}
	if err != nil {
		return model.Booking{}, storeErr("get booking", err)
	}
	return b, nil
}

// MarkCancelled flips confirmed -> cancelled and reports whether this call
// performed the flip. A false result with no error means the booking was
// already cancelled.
func (db *DB) MarkCancelled(ctx context.Context, bookingId primitive.ObjectID) (bool, error) {
	filter := bson.M{"_id": bookingId, "status": model.BookingStatusConfirmed}
	update := bson.M{"$set": bson.M{"status": model.BookingStatusCancelled}}

	res, err := db.bookings.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, storeErr("mark cancelled", err)
	}
	return res.ModifiedCount == 1, nil
}

func (db *DB) ListUserBookings(ctx context.Context, userId primitive.ObjectID) ([]model.Booking, error) {
	filter := bson.M{"user": userId, "status": model.BookingStatusConfirmed}
	opts := options.Find().SetSort(bson.D{{Key: "bookingDate", Value: -1}})

	cur, err := db.bookings.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr("list bookings", err)
	}

	bookings := []model.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, storeErr("list bookings", err)
	}
	return bookings, nil
}
