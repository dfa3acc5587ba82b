package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/DharunKumar-K/eventpulse/errors"
	"github.com/DharunKumar-K/eventpulse/handlers"
	"github.com/DharunKumar-K/eventpulse/middleware"
)

func SetupRoutes(app *fiber.App, h *handlers.Handler) {
	api := app.Group("/api",
		logger.New(),
		requestid.New(requestid.Config{
			Generator: func() string { return uuid.NewString() },
		}),
		cors.New())

	api.Get("/health", h.GetHealth)

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Get("/me", middleware.Authorize(), h.Me)

	// Events
	events := api.Group("/events")
	events.Get("/seed", h.SeedEvents)
	events.Get("/", h.GetEvents)
	events.Get("/:id", h.GetEvent)
	events.Post("/", middleware.Authorize(), middleware.RequireRoles("organizer", "admin"), h.CreateEvent)
	events.Put("/:id", middleware.Authorize(), middleware.RequireRoles("organizer", "admin"), h.UpdateEvent)
	events.Delete("/:id", middleware.Authorize(), middleware.RequireRoles("organizer", "admin"), h.DeleteEvent)

	// Bookings
	bookings := api.Group("/bookings", middleware.Authorize())
	bookings.Get("/", h.GetBookings)
	bookings.Post("/", h.CreateBooking)
	bookings.Delete("/:id", h.CancelBooking)

	// Admin
	admin := api.Group("/admin", middleware.Authorize(), middleware.RequireRoles("admin"))
	admin.Get("/stats", h.GetStats)
	admin.Get("/users", h.GetUsers)
	admin.Get("/events", h.GetEventRollups)
	admin.Get("/bookings", h.GetAllBookings)

	app.Use(func(c *fiber.Ctx) error {
		return errors.RaiseNotFoundError(c, "Route not found")
	})
}
