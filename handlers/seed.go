package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/DharunKumar-K/eventpulse/database"
	httperrors "github.com/DharunKumar-K/eventpulse/errors"
	"github.com/DharunKumar-K/eventpulse/model"
)

// SeedEvents replaces the events collection with a demo catalogue, creating
// a default organizer account if none exists yet.
func (h *Handler) SeedEvents(c *fiber.Ctx) error {
	organizer, err := h.seedOrganizer(c.UserContext())
	if err != nil {
		return httperrors.RaiseInternalServerError(c, "Error seeding database")
	}

	events := sampleEvents(organizer.Id)
	if err := h.events.SeedEvents(c.UserContext(), events); err != nil {
		return httperrors.RaiseInternalServerError(c, "Error seeding database")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Database seeded successfully",
		"count":   len(events)})
}

func (h *Handler) seedOrganizer(ctx context.Context) (model.User, error) {
	organizer, err := h.users.FirstUserByRole(ctx, model.RoleOrganizer)
	if err == nil {
		return organizer, nil
	}
	if !errors.Is(err, database.ErrUserNotFound) {
		return model.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("organizer123"), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, err
	}

	organizer = model.User{
		Id:             primitive.NewObjectID(),
		Name:           "Event Organizer",
		Email:          "organizer@eventpulse.com",
		HashedPassword: string(hash),
		Role:           model.RoleOrganizer,
		CreatedAt:      time.Now().UTC(),
	}
	if err := h.users.CreateUser(ctx, organizer); err != nil {
		return model.User{}, err
	}
	return organizer, nil
}

func sampleEvents(organizerId primitive.ObjectID) []model.Event {
	now := time.Now().UTC()
	newEvent := func(title string, date time.Time, price float64, seats int64, description, location, category string) model.Event {
		return model.Event{
			Id:             primitive.NewObjectID(),
			Title:          title,
			Date:           date,
			Price:          price,
			TotalSeats:     seats,
			AvailableSeats: seats,
			Organizer:      organizerId,
			Description:    description,
			Location:       location,
			Category:       category,
			Status:         model.EventStatusUpcoming,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
	}

	return []model.Event{
		newEvent("Sunburn Goa 2025 - The Afterparty",
			time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), 4500, 5000,
			"The ultimate post-new year electronic dance music festival on the beaches of Vagator.",
			"Vagator, Goa", model.CategoryConcert),
		newEvent("Kala Ghoda Arts Festival 2026",
			time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), 0, 10000,
			"Mumbai's favorite multicultural festival of arts, crafts, cinema, theatre, dance, and music. Entry is free for all!",
			"Kala Ghoda, Fort, Mumbai", model.CategoryFestival),
		newEvent("TechSparks 2026",
			time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC), 2500, 800,
			"India's most influential startup tech conference. Connect with investors, founders, and innovators.",
			"Taj Yeshwantpur, Bangalore", model.CategoryConference),
		newEvent("IND vs ENG - 1st T20 International",
			time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), 1500, 35000,
			"Watch the Men in Blue take on England in this high-octane T20 match under the lights.",
			"Wankhede Stadium, Mumbai", model.CategorySports),
		newEvent("International Yoga Festival",
			time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), 15000, 500,
			"A week of wellness, meditation, and spirituality in the yoga capital of the world.",
			"Parmarth Niketan, Rishikesh", model.CategoryWorkshop),
	}
}
