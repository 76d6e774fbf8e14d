package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/learnloop/internal/models"
)

// MockGamificationRepository is a mock implementation of repository.GamificationRepository
type MockGamificationRepository struct {
	mock.Mock
}

func (m *MockGamificationRepository) Get(ctx context.Context, userID int64) (*models.GamificationState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GamificationState), args.Error(1)
}

func (m *MockGamificationRepository) Save(ctx context.Context, state models.GamificationState) (models.GamificationState, error) {
	args := m.Called(ctx, state)
	return args.Get(0).(models.GamificationState), args.Error(1)
}

func (m *MockGamificationRepository) AddAchievements(ctx context.Context, userID int64, slugs []string, at time.Time) error {
	args := m.Called(ctx, userID, slugs, at)
	return args.Error(0)
}

func (m *MockGamificationRepository) ActiveStreaks(ctx context.Context) ([]models.GamificationState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GamificationState), args.Error(1)
}

func (m *MockGamificationRepository) ResetStreak(ctx context.Context, userID int64, version int64) error {
	args := m.Called(ctx, userID, version)
	return args.Error(0)
}
