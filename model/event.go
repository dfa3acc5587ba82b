package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CategoryConference = "conference"
	CategoryWorkshop   = "workshop"
	CategoryConcert    = "concert"
	CategorySports     = "sports"
	CategoryFestival   = "festival"
	CategoryOther      = "other"
)

const (
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

type Event struct {
	Id             primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title          string             `json:"title" bson:"title"`
	Date           time.Time          `json:"date" bson:"date"`
	Price          float64            `json:"price" bson:"price"`
	TotalSeats     int64              `json:"totalSeats" bson:"totalSeats"`
	AvailableSeats int64              `json:"availableSeats" bson:"availableSeats"`
	Organizer      primitive.ObjectID `json:"organizer" bson:"organizer"`
	Description    string             `json:"description" bson:"description"`
	Location       string             `json:"location" bson:"location"`
	Category       string             `json:"category" bson:"category"`
	Status         string             `json:"status" bson:"status"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

func IsValidCategory(category string) bool {
	switch category {
	case CategoryConference, CategoryWorkshop, CategoryConcert,
		CategorySports, CategoryFestival, CategoryOther:
		return true
	}
	return false
}

func IsValidEventStatus(status string) bool {
	switch status {
	case EventStatusUpcoming, EventStatusOngoing, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}
