package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/DharunKumar-K/eventpulse/model"
)

func TestCreateBookingRequiresAuth(t *testing.T) {
	env := newTestApp(t)

	res, payload := doRequest(t, env.app, http.MethodPost, "/api/bookings", "",
		map[string]interface{}{"eventId": primitive.NewObjectID().Hex(), "seats": 1})

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "Missing or malformed JWT", payload["message"])
}

func TestCreateBookingSuccess(t *testing.T) {
	env := newTestApp(t)
	event := env.seedEvent(10, 10, 500, model.EventStatusUpcoming, primitive.NewObjectID())
	userId := primitive.NewObjectID()
	token := signToken(t, userId, model.RoleUser)

	res, payload := doRequest(t, env.app, http.MethodPost, "/api/bookings", token,
		map[string]interface{}{"eventId": event.Id.Hex(), "seats": 3})

	require.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, true, payload["success"])

	booked := payload["booking"].(map[string]interface{})
	assert.Equal(t, float64(3), booked["seats"])
	assert.Equal(t, float64(1500), booked["totalPrice"])
	assert.Equal(t, model.BookingStatusConfirmed, booked["status"])
	assert.Equal(t, userId.Hex(), booked["user"])

	updated, _ := env.store.Event(event.Id)
	assert.Equal(t, int64(7), updated.AvailableSeats)
}

func TestCreateBookingInsufficientCapacity(t *testing.T) {
	env := newTestApp(t)
	event := env.seedEvent(10, 2, 100, model.EventStatusUpcoming, primitive.NewObjectID())
	token := signToken(t, primitive.NewObjectID(), model.RoleUser)

	res, payload := doRequest(t, env.app, http.MethodPost, "/api/bookings", token,
		map[string]interface{}{"eventId": event.Id.Hex(), "seats": 3})

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "Only 2 seats available", payload["message"])

	updated, _ := env.store.Event(event.Id)
	assert.Equal(t, int64(2), updated.AvailableSeats)
}

func TestCreateBookingCancelledEvent(t *testing.T) {
	env := newTestApp(t)
	event := env.seedEvent(10, 10, 100, model.EventStatusCancelled, primitive.NewObjectID())
	token := signToken(t, primitive.NewObjectID(), model.RoleUser)

	res, payload := doRequest(t, env.app, http.MethodPost, "/api/bookings", token,
		map[string]interface{}{"eventId": event.Id.Hex(), "seats": 1})

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Cannot book cancelled event", payload["message"])
}

func TestCreateBookingEventNotFound(t *testing.T) {
	env := newTestApp(t)
	token := signToken(t, primitive.NewObjectID(), model.RoleUser)

	res, payload := doRequest(t, env.app, http.MethodPost, "/api/bookings", token,
		map[string]interface{}{"eventId": primitive.NewObjectID().Hex(), "seats": 1})

	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Event not found", payload["message"])
}

func TestCreateBookingMissingParameters(t *testing.T) {
	env := newTestApp(t)
	token := signToken(t, primitive.NewObjectID(), model.RoleUser)

	res, payload := doRequest(t, env.app, http.MethodPost, "/api/bookings", token,
		map[string]interface{}{"seats": 2})

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Please provide event ID and number of seats", payload["message"])
}

func TestCancelBookingFlow(t *testing.T) {
	env := newTestApp(t)
	event := env.seedEvent(10, 10, 500, model.EventStatusUpcoming, primitive.NewObjectID())
	userId := primitive.NewObjectID()
	token := signToken(t, userId, model.RoleUser)

	_, payload := doRequest(t, env.app, http.MethodPost, "/api/bookings", token,
		map[string]interface{}{"eventId": event.Id.Hex(), "seats": 3})
	bookingId := payload["booking"].(map[string]interface{})["_id"].(string)

	res, payload := doRequest(t, env.app, http.MethodDelete, "/api/bookings/"+bookingId, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "Booking cancelled successfully", payload["message"])

	updated, _ := env.store.Event(event.Id)
	assert.Equal(t, int64(10), updated.AvailableSeats)

	// cancelling again is an idempotent failure, and the counter stays put
	res, payload = doRequest(t, env.app, http.MethodDelete, "/api/bookings/"+bookingId, token, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Booking already cancelled", payload["message"])

	updated, _ = env.store.Event(event.Id)
	assert.Equal(t, int64(10), updated.AvailableSeats)
}

func TestCancelBookingNotOwner(t *testing.T) {
	env := newTestApp(t)
	event := env.seedEvent(10, 10, 500, model.EventStatusUpcoming, primitive.NewObjectID())
	owner := primitive.NewObjectID()
	ownerToken := signToken(t, owner, model.RoleUser)
	strangerToken := signToken(t, primitive.NewObjectID(), model.RoleUser)

	_, payload := doRequest(t, env.app, http.MethodPost, "/api/bookings", ownerToken,
		map[string]interface{}{"eventId": event.Id.Hex(), "seats": 2})
	bookingId := payload["booking"].(map[string]interface{})["_id"].(string)

	res, payload := doRequest(t, env.app, http.MethodDelete, "/api/bookings/"+bookingId, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, "Not authorized to cancel this booking", payload["message"])

	updated, _ := env.store.Event(event.Id)
	assert.Equal(t, int64(8), updated.AvailableSeats)
}

func TestCancelBookingNotFound(t *testing.T) {
	env := newTestApp(t)
	token := signToken(t, primitive.NewObjectID(), model.RoleUser)

	res, payload := doRequest(t, env.app, http.MethodDelete,
		"/api/bookings/"+primitive.NewObjectID().Hex(), token, nil)

	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Booking not found", payload["message"])
}

func TestGetBookingsScopedToRequester(t *testing.T) {
	env := newTestApp(t)
	event := env.seedEvent(20, 20, 100, model.EventStatusUpcoming, primitive.NewObjectID())
	alice := primitive.NewObjectID()
	aliceToken := signToken(t, alice, model.RoleUser)
	bobToken := signToken(t, primitive.NewObjectID(), model.RoleUser)

	doRequest(t, env.app, http.MethodPost, "/api/bookings", aliceToken,
		map[string]interface{}{"eventId": event.Id.Hex(), "seats": 2})
	doRequest(t, env.app, http.MethodPost, "/api/bookings", bobToken,
		map[string]interface{}{"eventId": event.Id.Hex(), "seats": 4})

	res, payload := doRequest(t, env.app, http.MethodGet, "/api/bookings", aliceToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, float64(1), payload["count"])

	bookings := payload["bookings"].([]interface{})
	require.Len(t, bookings, 1)
	assert.Equal(t, alice.Hex(), bookings[0].(map[string]interface{})["user"])
}
