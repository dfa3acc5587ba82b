package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/DharunKumar-K/eventpulse/booking"
	httperrors "github.com/DharunKumar-K/eventpulse/errors"
)

type createBookingRequest struct {
	EventId string `json:"eventId"`
	Seats   int64  `json:"seats"`
}

func (h *Handler) CreateBooking(c *fiber.Ctx) error {
	userId, _, err := identity(c)
	if err != nil {
		return httperrors.RaiseUnauthenticatedError(c, "Invalid or expired JWT")
	}

	req := new(createBookingRequest)
	if err := c.BodyParser(req); err != nil || req.EventId == "" || req.Seats == 0 {
		return httperrors.RaiseBadRequestError(c, "Please provide event ID and number of seats")
	}

	eventId, err := primitive.ObjectIDFromHex(req.EventId)
	if err != nil {
		return httperrors.RaiseNotFoundError(c, "Event not found")
	}

	newBooking, err := h.engine.CreateBooking(c.UserContext(), userId, eventId, req.Seats)
	if err != nil {
		return raiseEngineError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Booking confirmed",
		"booking": newBooking})
}

func (h *Handler) CancelBooking(c *fiber.Ctx) error {
	userId, _, err := identity(c)
	if err != nil {
		return httperrors.RaiseUnauthenticatedError(c, "Invalid or expired JWT")
	}

	bookingId, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return httperrors.RaiseNotFoundError(c, "Booking not found")
	}

	if err := h.engine.CancelBooking(c.UserContext(), userId, bookingId); err != nil {
		return raiseEngineError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Booking cancelled successfully"})
}

func (h *Handler) GetBookings(c *fiber.Ctx) error {
	userId, _, err := identity(c)
	if err != nil {
		return httperrors.RaiseUnauthenticatedError(c, "Invalid or expired JWT")
	}

	bookings, err := h.engine.ListForUser(c.UserContext(), userId)
	if err != nil {
		return raiseEngineError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"count":    len(bookings),
		"bookings": bookings})
}

// raiseEngineError maps the engine's error taxonomy onto the HTTP surface.
func raiseEngineError(c *fiber.Ctx, err error) error {
	var capacityErr *booking.CapacityError

	switch {
	case errors.Is(err, booking.ErrEventNotFound):
		return httperrors.RaiseNotFoundError(c, "Event not found")
	case errors.Is(err, booking.ErrBookingNotFound):
		return httperrors.RaiseNotFoundError(c, "Booking not found")
	case errors.Is(err, booking.ErrEventCancelled):
		return httperrors.RaiseBadRequestError(c, "Cannot book cancelled event")
	case errors.Is(err, booking.ErrAlreadyCancelled):
		return httperrors.RaiseBadRequestError(c, "Booking already cancelled")
	case errors.Is(err, booking.ErrNotOwner):
		return httperrors.RaisePermissionsError(c, "Not authorized to cancel this booking")
	case errors.Is(err, booking.ErrInvalidSeats):
		return httperrors.RaiseBadRequestError(c, "Must book at least 1 seat")
	case errors.As(err, &capacityErr):
		return httperrors.RaiseBadRequestError(c, capacityErr.Error())
	case errors.Is(err, booking.ErrTransient):
		return httperrors.RaiseTransientError(c, "Temporarily unable to process the booking, please retry")
	default:
		return httperrors.RaiseInternalServerError(c, "Error processing booking")
	}
}
