package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/DharunKumar-K/eventpulse/booking"
	"github.com/DharunKumar-K/eventpulse/model"
)

type EventStore interface {
	CreateEvent(ctx context.Context, event model.Event) error
	GetEvent(ctx context.Context, eventId primitive.ObjectID) (model.Event, error)
	ListEvents(ctx context.Context, includeCancelled bool) ([]model.Event, error)
	UpdateEvent(ctx context.Context, event model.Event) error
	DeleteEvent(ctx context.Context, eventId primitive.ObjectID) error
	SeedEvents(ctx context.Context, events []model.Event) error
}

type UserStore interface {
	CreateUser(ctx context.Context, user model.User) error
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserById(ctx context.Context, userId primitive.ObjectID) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	FirstUserByRole(ctx context.Context, role string) (model.User, error)
}

type StatsStore interface {
	PlatformStats(ctx context.Context) (model.PlatformStats, error)
	EventRollups(ctx context.Context) ([]model.EventRollup, error)
	ListAllBookings(ctx context.Context) ([]model.Booking, error)
}

type Handler struct {
	engine *booking.Engine
	events EventStore
	users  UserStore
	stats  StatsStore
}

func New(engine *booking.Engine, events EventStore, users UserStore, stats StatsStore) *Handler {
	return &Handler{
		engine: engine,
		events: events,
		users:  users,
		stats:  stats,
	}
}

func (h *Handler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"status":  "ok",
		"message": "EventPulse API is running"})
}

var errMalformedIdentity = errors.New("malformed token identity")

// identity extracts the authenticated caller from the verified JWT put in the
// request context by middleware.Authorize.
func identity(c *fiber.Ctx) (primitive.ObjectID, string, error) {
	token, ok := c.Locals("identity").(*jwt.Token)
	if !ok {
		return primitive.NilObjectID, "", errMalformedIdentity
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return primitive.NilObjectID, "", errMalformedIdentity
	}

	idHex, _ := claims["id"].(string)
	userId, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return primitive.NilObjectID, "", errMalformedIdentity
	}

	role, _ := claims["role"].(string)
	return userId, role, nil
}
