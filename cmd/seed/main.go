// Command main runs the database seeder for FOMS.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"foms/internal/config"
	"foms/internal/database"
	"foms/internal/models"
	"foms/internal/repository"
	"foms/internal/seed"
)

func main() {
	// Parse command line flags
	perStatus := flag.Int("per-status", seed.MockCountPerStatus, "Number of requests to create per status")
	shouldClean := flag.Bool("clean", false, "Delete existing requests before seeding")
	randomize := flag.Bool("randomize", false, "Randomize request fields instead of using the deterministic tables")
	presetPath := flag.String("preset", "", "Path to a YAML seeding preset (overrides other flags)")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")

	var preset *seed.Preset
	if *presetPath != "" {
		var err error
		if preset, err = seed.LoadPreset(*presetPath); err != nil {
			log.Fatalf("Preset load failed: %v", err)
		}
		log.Printf("Applying preset: %s (ignoring other flags)\n", *presetPath)
		*shouldClean = preset.Clean
		*randomize = preset.Randomize
	} else {
		log.Printf("Target: %d requests per status, clean=%v, randomize=%v\n",
			*perStatus, *shouldClean, *randomize)
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	requests := repository.NewRequestRepository(db)
	statuses := repository.NewStatusRepository(db)

	if *shouldClean {
		if err := db.WithContext(ctx).Where("1 = 1").Delete(&models.Request{}).Error; err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		log.Println("Cleared existing requests")
	}

	if err := statuses.Seed(ctx); err != nil {
		log.Fatalf("Status catalog seeding failed: %v", err)
	}

	catalog, err := statuses.List(ctx)
	if err != nil {
		log.Fatalf("Status catalog load failed: %v", err)
	}

	factory := seed.NewFactory(seed.Options{Deterministic: !*randomize})
	now := time.Now().UnixMilli()
	inserted := 0

	for _, st := range catalog {
		count := *perStatus
		if preset != nil {
			count = preset.Count(st.StatusID)
		}
		for i := 0; i < count; i++ {
			req := factory.BuildMockRequest(st.StatusID, inserted, now)
			if err := requests.Create(ctx, req); err != nil {
				log.Fatalf("Request seeding failed: %v", err)
			}
			inserted++
		}
	}

	log.Printf("All done! Inserted %d requests across %d statuses.\n", inserted, len(catalog))
}
