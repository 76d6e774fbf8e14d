package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/learnloop/internal/models"
)

// MockContentRepository is a mock implementation of repository.ContentRepository
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) SyncCatalog(ctx context.Context, topics []models.Topic, items []models.ContentItem) error {
	args := m.Called(ctx, topics, items)
	return args.Error(0)
}

func (m *MockContentRepository) ListTopics(ctx context.Context) ([]models.Topic, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Topic), args.Error(1)
}

func (m *MockContentRepository) List(ctx context.Context, filter models.ContentFilter) ([]models.ContentItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ContentItem), args.Error(1)
}

func (m *MockContentRepository) Get(ctx context.Context, id int64) (*models.ContentItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContentItem), args.Error(1)
}

func (m *MockContentRepository) Unattempted(ctx context.Context, userID int64, filter models.ContentFilter) ([]models.ContentItem, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ContentItem), args.Error(1)
}
