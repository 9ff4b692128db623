package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries the environment-driven settings, including the two policy
// knobs the order services take as parameters: RetryOnConflict (whether a
// store-level write conflict triggers one re-read-and-retry inside the
// transition engine) and AllowReassignInTransit (whether an order already
// PickedUp or OnTheWay may be handed to a different partner).
type Config struct {
	Port                   string
	RetryOnConflict        bool
	AllowReassignInTransit bool
}

func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	return Config{
		Port:                   port,
		RetryOnConflict:        os.Getenv("RETRY_ON_CONFLICT") == "true",
		AllowReassignInTransit: os.Getenv("ALLOW_REASSIGN_IN_TRANSIT") == "true",
	}
}
