package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking references exactly one user and one event. Both references and the
// price are frozen at creation time; the only mutable field is Status, with a
// one-way confirmed -> cancelled transition.
type Booking struct {
	Id          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	User        primitive.ObjectID `json:"user" bson:"user"`
	Event       primitive.ObjectID `json:"event" bson:"event"`
	Seats       int64              `json:"seats" bson:"seats"`
	TotalPrice  float64            `json:"totalPrice" bson:"totalPrice"`
	Status      string             `json:"status" bson:"status"`
	BookingDate time.Time          `json:"bookingDate" bson:"bookingDate"`
}
