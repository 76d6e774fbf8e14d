package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/learnloop/internal/catalog"
	"github.com/vytor/learnloop/internal/models"
)

// MockContentService is a mock implementation of services.ContentService
type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) Sync(ctx context.Context, cat *catalog.Catalog) error {
	args := m.Called(ctx, cat)
	return args.Error(0)
}

func (m *MockContentService) Topics(ctx context.Context) ([]models.Topic, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Topic), args.Error(1)
}

func (m *MockContentService) Items(ctx context.Context, filter models.ContentFilter) ([]models.ContentItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ContentItem), args.Error(1)
}

// MockProficiencyService is a mock implementation of services.ProficiencyService
type MockProficiencyService struct {
	mock.Mock
}

func (m *MockProficiencyService) TopicProficiencies(ctx context.Context, userID int64) ([]models.TopicProficiency, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TopicProficiency), args.Error(1)
}

func (m *MockProficiencyService) WeaknessProfile(ctx context.Context, userID int64) (*models.WeaknessProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeaknessProfile), args.Error(1)
}

func (m *MockProficiencyService) Readiness(ctx context.Context, userID int64) (*models.ReadinessScore, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReadinessScore), args.Error(1)
}

func (m *MockProficiencyService) TimeToMastery(ctx context.Context, userID, itemID int64, sessionsPerDay int) (*models.MasteryEstimate, error) {
	args := m.Called(ctx, userID, itemID, sessionsPerDay)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MasteryEstimate), args.Error(1)
}

// MockSessionService is a mock implementation of services.SessionService
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Compose(ctx context.Context, userID int64, cfg models.SessionConfig) (*models.SessionComposition, error) {
	args := m.Called(ctx, userID, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionComposition), args.Error(1)
}

// MockReviewService is a mock implementation of services.ReviewService
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) SubmitResults(ctx context.Context, userID int64, sessionID string, outcomes []models.ItemOutcome) (*models.SessionSummary, error) {
	args := m.Called(ctx, userID, sessionID, outcomes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionSummary), args.Error(1)
}

// MockGamificationService is a mock implementation of services.GamificationService
type MockGamificationService struct {
	mock.Mock
}

func (m *MockGamificationService) State(ctx context.Context, userID int64) (*models.GamificationProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GamificationProfile), args.Error(1)
}

func (m *MockGamificationService) RecordDailyActivity(ctx context.Context, userID int64) (*models.ActivityReward, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ActivityReward), args.Error(1)
}
