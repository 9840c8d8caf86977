package service

import (
	"context"
	"errors"
	"testing"

	"doodleboard/internal/models"

	"github.com/stretchr/testify/require"
)

// doodleRepoStub is a stub for repository.DoodleRepository.
type doodleRepoStub struct {
	createFn    func(context.Context, *models.Doodle) error
	getByIDFn   func(context.Context, uint, uint) (*models.Doodle, error)
	listFn      func(context.Context, int, int, uint) ([]*models.Doodle, error)
	isLikedFn   func(context.Context, uint, uint) (bool, error)
	likeFn      func(context.Context, uint, uint) (bool, error)
	likeCountFn func(context.Context, uint) (int64, error)
}

func (s *doodleRepoStub) Create(ctx context.Context, doodle *models.Doodle) error {
	return s.createFn(ctx, doodle)
}
func (s *doodleRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Doodle, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *doodleRepoStub) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Doodle, error) {
	return s.listFn(ctx, limit, offset, currentUserID)
}
func (s *doodleRepoStub) IsLiked(ctx context.Context, userID, doodleID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, doodleID)
}
func (s *doodleRepoStub) Like(ctx context.Context, userID, doodleID uint) (bool, error) {
	return s.likeFn(ctx, userID, doodleID)
}
func (s *doodleRepoStub) LikeCount(ctx context.Context, doodleID uint) (int64, error) {
	return s.likeCountFn(ctx, doodleID)
}

func noopDoodleRepo() *doodleRepoStub {
	return &doodleRepoStub{
		createFn: func(_ context.Context, _ *models.Doodle) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Doodle, error) {
			return &models.Doodle{ID: id}, nil
		},
		listFn:      func(_ context.Context, _, _ int, _ uint) ([]*models.Doodle, error) { return nil, nil },
		isLikedFn:   func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:      func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		likeCountFn: func(_ context.Context, _ uint) (int64, error) { return 1, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn       func(context.Context, *models.Comment) error
	getByIDFn      func(context.Context, uint) (*models.Comment, error)
	listByDoodleFn func(context.Context, uint, int, int) ([]*models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByDoodle(ctx context.Context, doodleID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listByDoodleFn(ctx, doodleID, limit, offset)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:       func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:      func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByDoodleFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, error) { return nil, nil },
	}
}

func assertAppCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppCode(t, err, "VALIDATION_ERROR")
}
