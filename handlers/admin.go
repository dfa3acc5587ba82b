package handlers

import (
	"github.com/gofiber/fiber/v2"

	httperrors "github.com/DharunKumar-K/eventpulse/errors"
)

// Admin views. Role enforcement happens in the router via
// middleware.RequireRoles("admin"); everything here is read-only.

func (h *Handler) GetStats(c *fiber.Ctx) error {
	stats, err := h.stats.PlatformStats(c.UserContext())
	if err != nil {
		return httperrors.RaiseInternalServerError(c, "Error fetching statistics")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats":   stats})
}

func (h *Handler) GetUsers(c *fiber.Ctx) error {
	users, err := h.users.ListUsers(c.UserContext())
	if err != nil {
		return httperrors.RaiseInternalServerError(c, "Error fetching users")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(users),
		"users":   users})
}

func (h *Handler) GetEventRollups(c *fiber.Ctx) error {
	events, err := h.stats.EventRollups(c.UserContext())
	if err != nil {
		return httperrors.RaiseInternalServerError(c, "Error fetching events")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(events),
		"events":  events})
}

func (h *Handler) GetAllBookings(c *fiber.Ctx) error {
	bookings, err := h.stats.ListAllBookings(c.UserContext())
	if err != nil {
		return httperrors.RaiseInternalServerError(c, "Error fetching bookings")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"count":    len(bookings),
		"bookings": bookings})
}
