// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"doodleboard/internal/cache"
	"doodleboard/internal/models"

	"gorm.io/gorm"
)

// DoodleRepository defines the interface for doodle data operations
type DoodleRepository interface {
	Create(ctx context.Context, doodle *models.Doodle) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Doodle, error)
	List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Doodle, error)
	IsLiked(ctx context.Context, userID, doodleID uint) (bool, error)
	Like(ctx context.Context, userID, doodleID uint) (bool, error)
	LikeCount(ctx context.Context, doodleID uint) (int64, error)
}

// doodleRepository implements DoodleRepository
type doodleRepository struct {
	db *gorm.DB
}

// NewDoodleRepository creates a new doodle repository
func NewDoodleRepository(db *gorm.DB) DoodleRepository {
	return &doodleRepository{db: db}
}

func (r *doodleRepository) Create(ctx context.Context, doodle *models.Doodle) error {
	if err := r.db.WithContext(ctx).Create(doodle).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *doodleRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Doodle, error) {
	var doodle models.Doodle

	fetch := func() error {
		if err := r.applyEngagementDetails(r.db.WithContext(ctx), currentUserID).
			Preload("User").
			First(&doodle, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Doodle", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	var err error
	if currentUserID == 0 {
		// The user-agnostic view has no per-user liked flag, so it is safe to share.
		err = cache.Aside(ctx, cache.DoodleKey(id), &doodle, cache.DoodleTTL, fetch)
	} else {
		err = fetch()
	}

	if err != nil {
		return nil, err
	}
	return &doodle, nil
}

func (r *doodleRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Doodle, error) {
	var doodles []*models.Doodle
	err := r.applyEngagementDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&doodles).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return doodles, nil
}

// applyEngagementDetails adds subqueries to fetch counts and liked status in a single query.
func (r *doodleRepository) applyEngagementDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "doodles.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.doodle_id = doodles.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.doodle_id = doodles.id) as likes_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.doodle_id = doodles.id AND likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

func (r *doodleRepository) IsLiked(ctx context.Context, userID, doodleID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND doodle_id = ?", userID, doodleID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Like inserts the (user, doodle) like row if absent. The conditional insert
// is a single statement, so two concurrent likes cannot both succeed and the
// count can never drift from the row set. Returns whether a row was inserted.
func (r *doodleRepository) Like(ctx context.Context, userID, doodleID uint) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (user_id, doodle_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, doodle_id) DO NOTHING`,
		userID, doodleID,
	)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		cache.InvalidateDoodle(ctx, doodleID)
		return true, nil
	}
	return false, nil
}

func (r *doodleRepository) LikeCount(ctx context.Context, doodleID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("doodle_id = ?", doodleID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
