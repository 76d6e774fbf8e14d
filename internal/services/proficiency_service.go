package services

import (
	"context"
	"time"

	"github.com/vytor/learnloop/internal/clock"
	"github.com/vytor/learnloop/internal/errors"
	"github.com/vytor/learnloop/internal/gamification"
	"github.com/vytor/learnloop/internal/logger"
	"github.com/vytor/learnloop/internal/models"
	"github.com/vytor/learnloop/internal/repository"
	"github.com/vytor/learnloop/internal/scheduler"
	"github.com/vytor/learnloop/internal/weakness"
)

// ProficiencyService derives topic-level proficiency from progress and the review log
type ProficiencyService interface {
	TopicProficiencies(ctx context.Context, userID int64) ([]models.TopicProficiency, error)
	WeaknessProfile(ctx context.Context, userID int64) (*models.WeaknessProfile, error)
	Readiness(ctx context.Context, userID int64) (*models.ReadinessScore, error)
	TimeToMastery(ctx context.Context, userID, itemID int64, sessionsPerDay int) (*models.MasteryEstimate, error)
}

type proficiencyService struct {
	stores       repository.Stores
	rewards      *gamification.Catalog
	clock        clock.Clock
	reviewWindow int
}

// NewProficiencyService creates a new ProficiencyService. reviewWindow is the
// number of most recent reviews per topic that count as recent.
func NewProficiencyService(stores repository.Stores, rewards *gamification.Catalog, clk clock.Clock, reviewWindow int) ProficiencyService {
	if reviewWindow <= 0 {
		reviewWindow = 20
	}
	return &proficiencyService{stores: stores, rewards: rewards, clock: clk, reviewWindow: reviewWindow}
}

func (s *proficiencyService) TopicProficiencies(ctx context.Context, userID int64) ([]models.TopicProficiency, error) {
	log := logger.FromContext(ctx).WithPrefix("proficiency_service").WithField("user_id", userID)
	log.Debug("computing topic proficiencies")

	topics, err := s.stores.Content.ListTopics(ctx)
	if err != nil {
		log.Error("failed to list topics: %v", err)
		return nil, errors.NewInternalError(err)
	}
	stats, err := s.stores.Reviews.TopicStats(ctx, userID, s.reviewWindow)
	if err != nil {
		log.Error("failed to aggregate topic stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	state, err := s.stores.Gamification.Get(ctx, userID)
	if err != nil {
		log.Error("failed to load gamification state: %v", err)
		return nil, errors.NewInternalError(err)
	}
	level := s.rewards.LevelForXP(0).Level
	if state != nil {
		level = state.Level
	}

	byTopic := make(map[string]models.TopicStats, len(stats))
	for _, st := range stats {
		byTopic[st.TopicSlug] = st
	}

	now := s.clock.Now()
	out := make([]models.TopicProficiency, 0, len(topics))
	for _, t := range topics {
		out = append(out, proficiencyFor(t, byTopic[t.Slug], level, now))
	}
	log.Debug("computed %d topic proficiencies", len(out))
	return out, nil
}

func (s *proficiencyService) WeaknessProfile(ctx context.Context, userID int64) (*models.WeaknessProfile, error) {
	profs, err := s.TopicProficiencies(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := weakness.CategorizeWeaknesses(profs)
	return &p, nil
}

func (s *proficiencyService) Readiness(ctx context.Context, userID int64) (*models.ReadinessScore, error) {
	profs, err := s.TopicProficiencies(ctx, userID)
	if err != nil {
		return nil, err
	}
	r := weakness.CalculateReadinessScore(profs)
	return &r, nil
}

func (s *proficiencyService) TimeToMastery(ctx context.Context, userID, itemID int64, sessionsPerDay int) (*models.MasteryEstimate, error) {
	log := logger.FromContext(ctx).WithPrefix("proficiency_service")
	log.Debug("estimating time to mastery: user_id=%d, item_id=%d, sessions_per_day=%d", userID, itemID, sessionsPerDay)

	if sessionsPerDay < 1 {
		return nil, errors.NewValidationError("sessions_per_day", "must be at least 1")
	}
	item, err := s.stores.Content.Get(ctx, itemID)
	if err != nil {
		log.Error("failed to get content item: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if item == nil {
		return nil, errors.NewNotFoundError("content item", itemID)
	}

	rec, err := s.stores.Progress.Get(ctx, userID, itemID)
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if rec == nil {
		fresh := scheduler.NewProgress(userID, itemID)
		rec = &fresh
	}

	return &models.MasteryEstimate{
		ContentItemID:  itemID,
		Repetitions:    rec.Repetitions,
		EaseFactor:     rec.EaseFactor,
		Status:         rec.Status,
		SessionsPerDay: sessionsPerDay,
		DaysToMastery:  scheduler.EstimateTimeToMastery(rec.Repetitions, rec.EaseFactor, sessionsPerDay),
	}, nil
}

// proficiencyFor scores one topic. A topic never practiced has no recency
// credit and reports zero days since practice.
func proficiencyFor(t models.Topic, st models.TopicStats, level int, now time.Time) models.TopicProficiency {
	p := models.TopicProficiency{
		TopicSlug:     t.Slug,
		Pillar:        t.Pillar,
		ItemsMastered: st.ItemsMastered,
		ItemsTotal:    st.ItemsTotal,
		IsUnlocked:    level >= t.UnlockLevel,
	}

	var accuracy, quality, recency float64
	if st.RecentAttempts > 0 {
		accuracy = float64(st.RecentCorrect) / float64(st.RecentAttempts)
		quality = float64(st.QualitySum) / float64(st.RecentAttempts)
	}
	if st.LastPracticed != nil {
		p.DaysSinceLastPractice = max(0, clock.DaysBetween(*st.LastPracticed, now))
		recency = weakness.CalculateRecencyFactor(p.DaysSinceLastPractice)
	}
	p.ProficiencyScore = weakness.CalculateTopicProficiency(p.MasteryRate(), accuracy, quality, recency)
	return p
}
