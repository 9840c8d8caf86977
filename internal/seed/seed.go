package seed

import (
	"fmt"
	"log"
	"time"

	"doodleboard/internal/models"
	"doodleboard/internal/prompts"

	"gorm.io/gorm"
)

// Seeder populates the database with demo users and a filled gallery.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	rotator *prompts.Rotator
}

// NewSeeder creates a Seeder.
func NewSeeder(db *gorm.DB, rotator *prompts.Rotator, opts Options) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db, opts),
		rotator: rotator,
	}
}

// ClearAll removes all seeded rows. Likes and comments go first so foreign
// keys stay satisfied on databases that enforce them.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"likes", "comments", "doodles", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	log.Println("Cleared existing data")
	return nil
}

// SeedUsers creates n demo users.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))
	return users, nil
}

// SeedGallery creates doodles spread across the given users, with recent
// prompts from the rotation, then sprinkles likes and comments over them.
func (s *Seeder) SeedGallery(users []*models.User, numDoodles int) ([]*models.Doodle, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to attribute doodles to")
	}

	doodles := make([]*models.Doodle, 0, numDoodles)
	for i := 0; i < numDoodles; i++ {
		author := users[s.factory.rng.Intn(len(users))]
		// Prompts from the last week of the rotation look like real history.
		day := time.Now().AddDate(0, 0, -s.factory.rng.Intn(7))
		doodle, err := s.factory.CreateDoodle(author, s.rotator.ForDate(day))
		if err != nil {
			return nil, err
		}
		doodles = append(doodles, doodle)
	}
	log.Printf("Created %d doodles", len(doodles))

	var likes, comments int
	for _, doodle := range doodles {
		for _, user := range users {
			if s.factory.rng.Intn(100) < 30 {
				if err := s.factory.CreateLike(user, doodle); err != nil {
					return nil, err
				}
				likes++
			}
			if s.factory.rng.Intn(100) < 10 {
				if _, err := s.factory.CreateComment(user, doodle); err != nil {
					return nil, err
				}
				comments++
			}
		}
	}
	log.Printf("Created %d likes and %d comments", likes, comments)

	return doodles, nil
}
