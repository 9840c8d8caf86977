// Command main runs the database seeder for Doodleboard.
package main

import (
	"flag"
	"log"

	"doodleboard/internal/config"
	"doodleboard/internal/database"
	"doodleboard/internal/prompts"
	"doodleboard/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	numDoodles := flag.Int("doodles", 40, "Number of doodles to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d doodles, clean=%v\n", *numUsers, *numDoodles, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	rotator, err := prompts.Load(cfg.PromptsFile)
	if err != nil {
		log.Fatalf("Failed to load prompts: %v", err)
	}

	s := seed.NewSeeder(db, rotator, seed.Options{UploadDir: cfg.UploadDir})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := s.SeedUsers(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	if _, err := s.SeedGallery(users, *numDoodles); err != nil {
		log.Fatalf("Gallery seeding failed: %v", err)
	}

	log.Println("All done! The gallery is populated with demo doodles.")
	log.Printf("All demo users have the password: %s", seed.DemoPassword)
}
