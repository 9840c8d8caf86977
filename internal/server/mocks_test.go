package server

import (
	"context"

	"doodleboard/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// MockDoodleRepository is a mock of the DoodleRepository interface
type MockDoodleRepository struct {
	mock.Mock
}

func (m *MockDoodleRepository) Create(ctx context.Context, doodle *models.Doodle) error {
	args := m.Called(ctx, doodle)
	return args.Error(0)
}

func (m *MockDoodleRepository) GetByID(ctx context.Context, id, currentUserID uint) (*models.Doodle, error) {
	args := m.Called(ctx, id, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Doodle), args.Error(1)
}

func (m *MockDoodleRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Doodle, error) {
	args := m.Called(ctx, limit, offset, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Doodle), args.Error(1)
}

func (m *MockDoodleRepository) IsLiked(ctx context.Context, userID, doodleID uint) (bool, error) {
	args := m.Called(ctx, userID, doodleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDoodleRepository) Like(ctx context.Context, userID, doodleID uint) (bool, error) {
	args := m.Called(ctx, userID, doodleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDoodleRepository) LikeCount(ctx context.Context, doodleID uint) (int64, error) {
	args := m.Called(ctx, doodleID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByDoodle(ctx context.Context, doodleID uint, limit, offset int) ([]*models.Comment, error) {
	args := m.Called(ctx, doodleID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}
