package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/learnloop/internal/clock"
	"github.com/vytor/learnloop/internal/errors"
	"github.com/vytor/learnloop/internal/models"
	"github.com/vytor/learnloop/internal/repository"
	"github.com/vytor/learnloop/internal/scheduler"
	"github.com/vytor/learnloop/internal/services"
	"github.com/vytor/learnloop/internal/testutil/mocks"
	"github.com/vytor/learnloop/internal/weakness"
)

type proficiencyFixture struct {
	content      *mocks.MockContentRepository
	progress     *mocks.MockProgressRepository
	reviews      *mocks.MockReviewLogRepository
	gamification *mocks.MockGamificationRepository
	service      services.ProficiencyService
	now          time.Time
}

func newProficiencyFixture(t *testing.T) *proficiencyFixture {
	f := &proficiencyFixture{
		content:      new(mocks.MockContentRepository),
		progress:     new(mocks.MockProgressRepository),
		reviews:      new(mocks.MockReviewLogRepository),
		gamification: new(mocks.MockGamificationRepository),
		now:          time.Date(2024, 11, 20, 8, 30, 0, 0, time.UTC),
	}
	stores := repository.Stores{
		Content:      f.content,
		Progress:     f.progress,
		Reviews:      f.reviews,
		Gamification: f.gamification,
	}
	f.service = services.NewProficiencyService(stores, defaultCatalog(t).Rewards, clock.Fixed(f.now), 20)
	return f
}

func (f *proficiencyFixture) expectTopics(ctx context.Context, state *models.GamificationState) {
	lastPracticed := f.now.AddDate(0, 0, -10)
	f.content.On("ListTopics", ctx).Return([]models.Topic{
		{Slug: "sql-basics", Pillar: "querying", UnlockLevel: 1},
		{Slug: "sql-joins", Pillar: "querying", UnlockLevel: 2},
	}, nil)
	f.reviews.On("TopicStats", ctx, int64(7), 20).Return([]models.TopicStats{
		{TopicSlug: "sql-basics", ItemsTotal: 5, ItemsMastered: 2, RecentAttempts: 10, RecentCorrect: 8, QualitySum: 40, LastPracticed: &lastPracticed},
		{TopicSlug: "sql-joins", ItemsTotal: 4},
	}, nil)
	if state == nil {
		f.gamification.On("Get", ctx, int64(7)).Return(nil, nil)
	} else {
		f.gamification.On("Get", ctx, int64(7)).Return(state, nil)
	}
}

func TestProficiencyService_TopicProficiencies(t *testing.T) {
	f := newProficiencyFixture(t)
	ctx := context.Background()
	f.expectTopics(ctx, nil)

	profs, err := f.service.TopicProficiencies(ctx, 7)
	require.NoError(t, err)
	require.Len(t, profs, 2)

	// 0.4*0.35 + 0.8*0.30 + (4/5)*0.20 + 0.5^(10/7)*0.15
	assert.Equal(t, models.TopicProficiency{
		TopicSlug:             "sql-basics",
		Pillar:                "querying",
		ProficiencyScore:      59.6,
		ItemsMastered:         2,
		ItemsTotal:            5,
		DaysSinceLastPractice: 10,
		IsUnlocked:            true,
	}, profs[0])

	assert.Equal(t, models.TopicProficiency{
		TopicSlug:  "sql-joins",
		Pillar:     "querying",
		ItemsTotal: 4,
	}, profs[1])

	f.content.AssertExpectations(t)
	f.reviews.AssertExpectations(t)
	f.gamification.AssertExpectations(t)
}

func TestProficiencyService_UnlocksByLevel(t *testing.T) {
	f := newProficiencyFixture(t)
	ctx := context.Background()
	f.expectTopics(ctx, &models.GamificationState{UserID: 7, TotalXP: 150, Level: 2})

	profs, err := f.service.TopicProficiencies(ctx, 7)
	require.NoError(t, err)
	require.Len(t, profs, 2)
	assert.True(t, profs[1].IsUnlocked)
}

func TestProficiencyService_WeaknessProfileAndReadiness(t *testing.T) {
	f := newProficiencyFixture(t)
	ctx := context.Background()
	f.expectTopics(ctx, nil)

	profile, err := f.service.WeaknessProfile(ctx, 7)
	require.NoError(t, err)
	require.Len(t, profile.ModerateWeaknesses, 1)
	assert.Equal(t, "sql-basics", profile.ModerateWeaknesses[0].TopicSlug)
	assert.Empty(t, profile.CriticalWeaknesses)
	assert.Empty(t, profile.StrengthAreas)

	profs, err := f.service.TopicProficiencies(ctx, 7)
	require.NoError(t, err)

	readiness, err := f.service.Readiness(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, weakness.CalculateReadinessScore(profs), *readiness)
}

func TestProficiencyService_TimeToMastery(t *testing.T) {
	ctx := context.Background()

	t.Run("fresh item", func(t *testing.T) {
		f := newProficiencyFixture(t)
		f.content.On("Get", ctx, int64(3)).Return(&models.ContentItem{ID: 3}, nil)
		f.progress.On("Get", ctx, int64(7), int64(3)).Return(nil, nil)

		est, err := f.service.TimeToMastery(ctx, 7, 3, 2)
		require.NoError(t, err)
		assert.Equal(t, 0, est.Repetitions)
		assert.Equal(t, scheduler.DefaultEaseFactor, est.EaseFactor)
		assert.Equal(t, models.StatusLearning, est.Status)
		assert.Equal(t, scheduler.EstimateTimeToMastery(0, scheduler.DefaultEaseFactor, 2), est.DaysToMastery)
	})

	t.Run("stored progress", func(t *testing.T) {
		f := newProficiencyFixture(t)
		f.content.On("Get", ctx, int64(3)).Return(&models.ContentItem{ID: 3}, nil)
		f.progress.On("Get", ctx, int64(7), int64(3)).Return(&models.ProgressRecord{
			UserID: 7, ContentItemID: 3, Repetitions: 3, EaseFactor: 2.2, IntervalDays: 13, Status: models.StatusReview,
		}, nil)

		est, err := f.service.TimeToMastery(ctx, 7, 3, 1)
		require.NoError(t, err)
		assert.Equal(t, 3, est.Repetitions)
		assert.Equal(t, models.StatusReview, est.Status)
		assert.Equal(t, scheduler.EstimateTimeToMastery(3, 2.2, 1), est.DaysToMastery)
	})

	t.Run("unknown item", func(t *testing.T) {
		f := newProficiencyFixture(t)
		f.content.On("Get", ctx, int64(99)).Return(nil, nil)

		_, err := f.service.TimeToMastery(ctx, 7, 99, 1)
		appErr, ok := errors.As(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("invalid sessions per day", func(t *testing.T) {
		f := newProficiencyFixture(t)

		_, err := f.service.TimeToMastery(ctx, 7, 3, 0)
		appErr, ok := errors.As(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
		f.content.AssertNotCalled(t, "Get", ctx, int64(3))
	})
}
