package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/DharunKumar-K/eventpulse/booking"
	"github.com/DharunKumar-K/eventpulse/config"
	"github.com/DharunKumar-K/eventpulse/database"
	"github.com/DharunKumar-K/eventpulse/handlers"
	"github.com/DharunKumar-K/eventpulse/router"
)

func main() {
	connString, err := config.GetSecret("MONGODB_URI")
	if err != nil {
		log.Fatal("cannot find connection string for DB in the environment")
	}

	db, err := database.Connect(context.Background(), connString)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	defer db.Disconnect(context.Background())

	engine := booking.NewEngine(db)
	h := handlers.New(engine, db, db, db)

	app := fiber.New()
	router.SetupRoutes(app, h)

	port := config.GetSecretOrDefault("PORT", config.DEFAULT_PORT)
	log.Fatal(app.Listen(":" + port))
}
