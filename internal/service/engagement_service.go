package service

import (
	"context"
	"strings"

	"doodleboard/internal/cache"
	"doodleboard/internal/models"
	"doodleboard/internal/observability"
	"doodleboard/internal/repository"
)

const maxCommentLength = 2000

// CommentInput carries a new comment on a doodle.
type CommentInput struct {
	UserID   uint
	DoodleID uint
	Content  string
}

// EngagementService handles likes and comments on doodles.
type EngagementService struct {
	doodleRepo  repository.DoodleRepository
	commentRepo repository.CommentRepository
}

// NewEngagementService creates an EngagementService.
func NewEngagementService(doodleRepo repository.DoodleRepository, commentRepo repository.CommentRepository) *EngagementService {
	return &EngagementService{
		doodleRepo:  doodleRepo,
		commentRepo: commentRepo,
	}
}

// Like records that the user liked the doodle and returns the updated like
// count. Liking twice is rejected with a conflict; the insert itself is
// conflict-free so concurrent likes from distinct users all land.
func (s *EngagementService) Like(ctx context.Context, doodleID, userID uint) (int64, error) {
	if _, err := s.doodleRepo.GetByID(ctx, doodleID, 0); err != nil {
		return 0, err
	}

	inserted, err := s.doodleRepo.Like(ctx, userID, doodleID)
	if err != nil {
		return 0, err
	}
	if !inserted {
		return 0, models.NewConflictError("You have already liked this doodle")
	}

	observability.EngagementEvents.WithLabelValues("like").Inc()
	return s.doodleRepo.LikeCount(ctx, doodleID)
}

// Comment appends a comment to the doodle. Repeat comments with identical
// text are allowed; only empty text is rejected.
func (s *EngagementService) Comment(ctx context.Context, in CommentInput) (*models.Comment, error) {
	if _, err := s.doodleRepo.GetByID(ctx, in.DoodleID, 0); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Comment text is required")
	}
	if len(content) > maxCommentLength {
		return nil, models.NewValidationError("Comment is too long")
	}

	comment := &models.Comment{
		UserID:   in.UserID,
		DoodleID: in.DoodleID,
		Content:  content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// The cached doodle view carries comments_count, so it must go.
	cache.InvalidateDoodle(ctx, in.DoodleID)
	observability.EngagementEvents.WithLabelValues("comment").Inc()

	// Reload with the author attached for the response.
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns the doodle's comments in submission order.
func (s *EngagementService) ListComments(ctx context.Context, doodleID uint, limit, offset int) ([]*models.Comment, error) {
	if _, err := s.doodleRepo.GetByID(ctx, doodleID, 0); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByDoodle(ctx, doodleID, limit, offset)
}
