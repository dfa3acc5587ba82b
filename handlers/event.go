package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/DharunKumar-K/eventpulse/booking"
	httperrors "github.com/DharunKumar-K/eventpulse/errors"
	"github.com/DharunKumar-K/eventpulse/model"
)

type createEventRequest struct {
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Price       *float64  `json:"price"`
	TotalSeats  int64     `json:"totalSeats"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
}

type updateEventRequest struct {
	Title       *string    `json:"title"`
	Date        *time.Time `json:"date"`
	Price       *float64   `json:"price"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	Category    *string    `json:"category"`
	Status      *string    `json:"status"`
}

func (h *Handler) GetEvents(c *fiber.Ctx) error {
	events, err := h.events.ListEvents(c.UserContext(), false)
	if err != nil {
		return httperrors.RaiseInternalServerError(c, "Error fetching events")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(events),
		"events":  events})
}

func (h *Handler) GetEvent(c *fiber.Ctx) error {
	eventId, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return httperrors.RaiseNotFoundError(c, "Event not found")
	}

	event, err := h.events.GetEvent(c.UserContext(), eventId)
	if err != nil {
		if errors.Is(err, booking.ErrEventNotFound) {
			return httperrors.RaiseNotFoundError(c, "Event not found")
		}
		return httperrors.RaiseInternalServerError(c, "Error fetching event")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"event":   event})
}

func (h *Handler) CreateEvent(c *fiber.Ctx) error {
	userId, _, err := identity(c)
	if err != nil {
		return httperrors.RaiseUnauthenticatedError(c, "Invalid or expired JWT")
	}

	req := new(createEventRequest)
	if err := c.BodyParser(req); err != nil {
		return httperrors.RaiseBadRequestError(c, "Please provide title, date, price, and total seats")
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.Date.IsZero() || req.Price == nil || req.TotalSeats == 0 {
		return httperrors.RaiseBadRequestError(c, "Please provide title, date, price, and total seats")
	}
	if *req.Price < 0 {
		return httperrors.RaiseBadRequestError(c, "Price cannot be negative")
	}
	if req.TotalSeats < 1 {
		return httperrors.RaiseBadRequestError(c, "Must have at least 1 seat")
	}
	if req.Category == "" {
		req.Category = model.CategoryOther
	}
	if !model.IsValidCategory(req.Category) {
		return httperrors.RaiseBadRequestError(c, "Invalid event category")
	}

	now := time.Now().UTC()
	event := model.Event{
		Id:             primitive.NewObjectID(),
		Title:          req.Title,
		Date:           req.Date,
		Price:          *req.Price,
		TotalSeats:     req.TotalSeats,
		AvailableSeats: req.TotalSeats,
		Organizer:      userId,
		Description:    req.Description,
		Location:       req.Location,
		Category:       req.Category,
		Status:         model.EventStatusUpcoming,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := h.events.CreateEvent(c.UserContext(), event); err != nil {
		return httperrors.RaiseInternalServerError(c, "Error creating event")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Event created successfully",
		"event":   event})
}

// UpdateEvent applies partial metadata edits. Seat capacity is immutable
// after creation; availableSeats is owned by the booking engine and never
// touched here.
func (h *Handler) UpdateEvent(c *fiber.Ctx) error {
	userId, role, err := identity(c)
	if err != nil {
		return httperrors.RaiseUnauthenticatedError(c, "Invalid or expired JWT")
	}

	eventId, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return httperrors.RaiseNotFoundError(c, "Event not found")
	}

	event, err := h.events.GetEvent(c.UserContext(), eventId)
	if err != nil {
		if errors.Is(err, booking.ErrEventNotFound) {
			return httperrors.RaiseNotFoundError(c, "Event not found")
		}
		return httperrors.RaiseInternalServerError(c, "Error updating event")
	}

	if event.Organizer != userId && role != model.RoleAdmin {
		return httperrors.RaisePermissionsError(c, "Not authorized to update this event")
	}

	req := new(updateEventRequest)
	if err := c.BodyParser(req); err != nil {
		return httperrors.RaiseBadRequestError(c, "Unacceptable event parameters")
	}

	if req.Title != nil {
		event.Title = strings.TrimSpace(*req.Title)
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return httperrors.RaiseBadRequestError(c, "Price cannot be negative")
		}
		event.Price = *req.Price
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Category != nil {
		if !model.IsValidCategory(*req.Category) {
			return httperrors.RaiseBadRequestError(c, "Invalid event category")
		}
		event.Category = *req.Category
	}
	if req.Status != nil {
		if !model.IsValidEventStatus(*req.Status) {
			return httperrors.RaiseBadRequestError(c, "Invalid event status")
		}
		event.Status = *req.Status
	}
	event.UpdatedAt = time.Now().UTC()

	if err := h.events.UpdateEvent(c.UserContext(), event); err != nil {
		return httperrors.RaiseInternalServerError(c, "Error updating event")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Event updated successfully",
		"event":   event})
}

func (h *Handler) DeleteEvent(c *fiber.Ctx) error {
	userId, role, err := identity(c)
	if err != nil {
		return httperrors.RaiseUnauthenticatedError(c, "Invalid or expired JWT")
	}

	eventId, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return httperrors.RaiseNotFoundError(c, "Event not found")
	}

	event, err := h.events.GetEvent(c.UserContext(), eventId)
	if err != nil {
		if errors.Is(err, booking.ErrEventNotFound) {
			return httperrors.RaiseNotFoundError(c, "Event not found")
		}
		return httperrors.RaiseInternalServerError(c, "Error deleting event")
	}

	if event.Organizer != userId && role != model.RoleAdmin {
		return httperrors.RaisePermissionsError(c, "Not authorized to delete this event")
	}

	if err := h.events.DeleteEvent(c.UserContext(), eventId); err != nil {
		return httperrors.RaiseInternalServerError(c, "Error deleting event")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Event deleted successfully"})
}
