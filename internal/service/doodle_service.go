// Package service contains the application's business logic layer.
package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"doodleboard/internal/config"
	"doodleboard/internal/middleware"
	"doodleboard/internal/models"
	"doodleboard/internal/observability"
	"doodleboard/internal/repository"
)

const dataURIPrefix = "data:image/png;base64,"

// DefaultUploadDir is used when no upload directory is configured.
const DefaultUploadDir = "public/uploads"

// maxDoodleBytes bounds the decoded image size; the canvas client produces
// images far below this.
const maxDoodleBytes = 8 * 1024 * 1024

// Store stages for StoreError.
const (
	StageStoreImage   = "store_image"
	StageCreateRecord = "create_record"
)

// StoreError reports a failed doodle submission and how far it got. When
// Stage is StageCreateRecord the image was already written and ImagePath
// points at the orphaned file; no cleanup is attempted.
type StoreError struct {
	Stage     string
	ImagePath string
	Err       error
}

func (e *StoreError) Error() string {
	if e.Stage == StageCreateRecord {
		return fmt.Sprintf("doodle record creation failed after image write (orphaned file %s): %v", e.ImagePath, e.Err)
	}
	return fmt.Sprintf("doodle image write failed: %v", e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// SubmitDoodleInput carries a doodle submission.
type SubmitDoodleInput struct {
	UserID    uint
	ImageData string // data:image/png;base64,... URI from the canvas
	Prompt    string
}

// DoodleService persists submitted doodles: it decodes the data URI, writes
// the PNG into the uploads area and then creates the database record.
type DoodleService struct {
	repo      repository.DoodleRepository
	uploadDir string
	now       func() time.Time
}

// NewDoodleService creates a DoodleService using the configured upload directory.
func NewDoodleService(repo repository.DoodleRepository, cfg *config.Config) *DoodleService {
	uploadDir := DefaultUploadDir
	if cfg != nil && cfg.UploadDir != "" {
		uploadDir = cfg.UploadDir
	}
	return &DoodleService{
		repo:      repo,
		uploadDir: uploadDir,
		now:       time.Now,
	}
}

// Submit stores the image and creates the doodle record. The two steps are
// sequential; if the record write fails after the image write the error
// surfaces the orphaned file path instead of being swallowed.
func (s *DoodleService) Submit(ctx context.Context, in SubmitDoodleInput) (*models.Doodle, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("Invalid user")
	}
	if !strings.HasPrefix(in.ImageData, dataURIPrefix) {
		return nil, models.NewValidationError("Doodle must be a base64 PNG data URI")
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(in.ImageData, dataURIPrefix))
	if err != nil {
		return nil, models.NewValidationError("Doodle image data is not valid base64")
	}
	if len(raw) == 0 {
		return nil, models.NewValidationError("Doodle image is empty")
	}
	if len(raw) > maxDoodleBytes {
		return nil, models.NewValidationError("Doodle image is too large")
	}
	if _, err := png.DecodeConfig(bytes.NewReader(raw)); err != nil {
		return nil, models.NewValidationError("Doodle image is not a valid PNG")
	}

	fileName := fmt.Sprintf("doodle-%d.png", s.now().UnixMilli())
	relPath := path.Join("uploads", fileName)

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, models.NewInternalError(&StoreError{Stage: StageStoreImage, Err: err})
	}
	if err := os.WriteFile(filepath.Join(s.uploadDir, fileName), raw, 0o644); err != nil {
		return nil, models.NewInternalError(&StoreError{Stage: StageStoreImage, Err: err})
	}

	doodle := &models.Doodle{
		UserID:    in.UserID,
		Prompt:    in.Prompt,
		DoodleURL: relPath,
	}
	if err := s.repo.Create(ctx, doodle); err != nil {
		observability.OrphanedUploads.Inc()
		storeErr := &StoreError{Stage: StageCreateRecord, ImagePath: relPath, Err: err}
		middleware.Logger.WarnContext(ctx, "doodle record creation failed, image file orphaned",
			slog.String("image_path", relPath),
			slog.String("error", err.Error()),
		)
		return nil, models.NewInternalError(storeErr)
	}

	observability.DoodlesSubmitted.Inc()

	// Reload with owner attached for the response.
	return s.repo.GetByID(ctx, doodle.ID, in.UserID)
}

// List returns the global gallery, newest first, with each owner attached.
func (s *DoodleService) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Doodle, error) {
	return s.repo.List(ctx, limit, offset, currentUserID)
}

// Get returns a single doodle with engagement details for the current user.
func (s *DoodleService) Get(ctx context.Context, id, currentUserID uint) (*models.Doodle, error) {
	return s.repo.GetByID(ctx, id, currentUserID)
}
