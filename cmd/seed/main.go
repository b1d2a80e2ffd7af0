package main

import (
	"log"

	"github.com/oggyb/sparkswipe/internal/config"
	"github.com/oggyb/sparkswipe/internal/db"
)

func main() {
	cfg := config.New()

	database, err := db.NewDB(cfg)
	if err != nil {
		log.Fatalf("failed to init db: %v", err)
	}

	if err := db.ResetAll(database); err != nil {
		log.Fatalf("failed to reset: %v", err)
	}
	if err := db.SeedDemoData(database); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	log.Println("Seeding completed.")
}
