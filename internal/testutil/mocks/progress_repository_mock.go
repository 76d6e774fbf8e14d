package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/learnloop/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Get(ctx context.Context, userID, itemID int64) (*models.ProgressRecord, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) Save(ctx context.Context, rec models.ProgressRecord) (models.ProgressRecord, error) {
	args := m.Called(ctx, rec)
	return args.Get(0).(models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) DueBefore(ctx context.Context, userID int64, before time.Time, filter models.ContentFilter) ([]models.Candidate, error) {
	args := m.Called(ctx, userID, before, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Candidate), args.Error(1)
}

func (m *MockProgressRepository) InTopics(ctx context.Context, userID int64, filter models.ContentFilter) ([]models.Candidate, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Candidate), args.Error(1)
}

func (m *MockProgressRepository) MasteredSince(ctx context.Context, userID int64, since time.Time, filter models.ContentFilter) ([]models.Candidate, error) {
	args := m.Called(ctx, userID, since, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Candidate), args.Error(1)
}
