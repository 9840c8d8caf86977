// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path"
	"path/filepath"
	"time"

	"doodleboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the password every seeded user gets.
const DemoPassword = "Doodle123"

// Options tunes the seeder.
type Options struct {
	// UploadDir is where generated doodle PNGs are written. Empty disables
	// file generation; records then point at files that do not exist.
	UploadDir string
	// SkipBcrypt stores the demo password in plain text for fast dev seeding.
	SkipBcrypt bool
	// MaxDays spreads created_at timestamps over this many days back.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	if opts.MaxDays <= 0 {
		opts.MaxDays = 30
	}
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(10, 99)),
	}

	if f.opts.SkipBcrypt {
		user.Password = DemoPassword
	} else {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

// CreateDoodle generates a small scribble PNG, writes it under the upload
// dir and persists the doodle record pointing at it.
func (f *Factory) CreateDoodle(user *models.User, prompt string) (*models.Doodle, error) {
	fileName := fmt.Sprintf("doodle-%d%03d.png", time.Now().UnixMilli(), f.rng.Intn(1000))

	if f.opts.UploadDir != "" {
		if err := os.MkdirAll(f.opts.UploadDir, 0o755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(filepath.Join(f.opts.UploadDir, fileName), f.scribblePNG(), 0o644); err != nil {
			return nil, err
		}
	}

	createdAt := time.Now().
		Add(-time.Duration(f.rng.Intn(f.opts.MaxDays*24)) * time.Hour).
		Add(-time.Duration(f.rng.Intn(60)) * time.Minute)

	doodle := &models.Doodle{
		UserID:    user.ID,
		Prompt:    prompt,
		DoodleURL: path.Join("uploads", fileName),
		CreatedAt: createdAt,
	}
	if err := f.db.Create(doodle).Error; err != nil {
		return nil, fmt.Errorf("creating doodle: %w", err)
	}
	return doodle, nil
}

// CreateComment persists a short generated comment on the doodle.
func (f *Factory) CreateComment(user *models.User, doodle *models.Doodle) (*models.Comment, error) {
	comment := &models.Comment{
		UserID:   user.ID,
		DoodleID: doodle.ID,
		Content:  gofakeit.Sentence(f.rng.Intn(8) + 2),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	return comment, nil
}

// CreateLike records a like, ignoring duplicates.
func (f *Factory) CreateLike(user *models.User, doodle *models.Doodle) error {
	like := &models.Like{
		UserID:   user.ID,
		DoodleID: doodle.ID,
	}
	err := f.db.Where("user_id = ? AND doodle_id = ?", user.ID, doodle.ID).
		FirstOrCreate(like).Error
	if err != nil {
		return fmt.Errorf("creating like: %w", err)
	}
	return nil
}

// scribblePNG draws a few random colored strokes on a white canvas.
func (f *Factory) scribblePNG() []byte {
	const size = 64
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			img.Set(x, y, color.White)
		}
	}

	for stroke := 0; stroke < 4; stroke++ {
		c := color.RGBA{
			R: uint8(f.rng.Intn(200)),
			G: uint8(f.rng.Intn(200)),
			B: uint8(f.rng.Intn(200)),
			A: 255,
		}
		x, y := f.rng.Intn(size), f.rng.Intn(size)
		for step := 0; step < 80; step++ {
			img.Set(x, y, c)
			x = clamp(x+f.rng.Intn(3)-1, 0, size-1)
			y = clamp(y+f.rng.Intn(3)-1, 0, size-1)
		}
	}

	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
