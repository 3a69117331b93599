// Command migrate applies the database schema explicitly. The server only
// automigrates outside production, so production deploys run this first.
package main

import (
	"log"

	"foms/internal/config"
	"foms/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("schema applied")
}
