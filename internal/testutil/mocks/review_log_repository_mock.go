package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/learnloop/internal/models"
)

// MockReviewLogRepository is a mock implementation of repository.ReviewLogRepository
type MockReviewLogRepository struct {
	mock.Mock
}

func (m *MockReviewLogRepository) Insert(ctx context.Context, entry models.ReviewLogEntry) (int64, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewLogRepository) Recent(ctx context.Context, userID int64, limit int) ([]models.ReviewLogEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewLogEntry), args.Error(1)
}

func (m *MockReviewLogRepository) TopicStats(ctx context.Context, userID int64, window int) ([]models.TopicStats, error) {
	args := m.Called(ctx, userID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TopicStats), args.Error(1)
}
