package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/jobboard-api/internal/config"
	"github.com/jobboard-api/internal/infrastructure/postgres"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}
	if direction != "up" && direction != "down" {
		log.Fatalf("usage: migrate [up|down]")
	}

	cfg := config.Load()
	if err := postgres.Migrate(cfg.DatabaseURL, direction); err != nil {
		log.Fatalf("migrate %s: %v", direction, err)
	}
	log.Printf("migrations %s applied", direction)
}
