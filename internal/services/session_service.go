package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vytor/learnloop/internal/clock"
	"github.com/vytor/learnloop/internal/errors"
	"github.com/vytor/learnloop/internal/logger"
	"github.com/vytor/learnloop/internal/models"
	"github.com/vytor/learnloop/internal/repository"
	"github.com/vytor/learnloop/internal/session"
	"github.com/vytor/learnloop/internal/weakness"
)

// MaxSessionMinutes bounds the requested session length.
const MaxSessionMinutes = 120

// SessionService composes and persists practice sessions
type SessionService interface {
	Compose(ctx context.Context, userID int64, cfg models.SessionConfig) (*models.SessionComposition, error)
}

type sessionService struct {
	stores         repository.Stores
	proficiency    ProficiencyService
	clock          clock.Clock
	reviewWindow   int
	defaultMinutes int
	newID          func() string
}

// NewSessionService creates a new SessionService
func NewSessionService(stores repository.Stores, proficiency ProficiencyService, clk clock.Clock, reviewWindow, defaultMinutes int) SessionService {
	return &sessionService{
		stores:         stores,
		proficiency:    proficiency,
		clock:          clk,
		reviewWindow:   reviewWindow,
		defaultMinutes: defaultMinutes,
		newID:          func() string { return uuid.New().String() },
	}
}

func (s *sessionService) Compose(ctx context.Context, userID int64, cfg models.SessionConfig) (*models.SessionComposition, error) {
	log := logger.FromContext(ctx).WithPrefix("session_service").WithField("user_id", userID)

	cfg, err := s.normalize(cfg)
	if err != nil {
		return nil, err
	}
	log.Debug("composing session: type=%s, minutes=%d, topic=%s, pillar=%s",
		cfg.SessionType, cfg.TargetDurationMinutes, cfg.TopicSlug, cfg.Pillar)

	profs, err := s.proficiency.TopicProficiencies(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	pools, err := s.loadPools(ctx, userID, cfg, profs, now)
	if err != nil {
		log.Error("failed to load candidate pools: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Debug("candidate pools: review_due=%d, weakness=%d, new=%d, reinforcement=%d",
		len(pools.ReviewDueItems), len(pools.WeaknessItems), len(pools.NewItems), len(pools.ReinforcementItems))

	comp := session.ComposeSession(cfg, pools, now)
	comp.SessionID = s.newID()

	record := models.Session{
		ID:            comp.SessionID,
		UserID:        userID,
		SessionType:   comp.SessionType,
		TargetMinutes: cfg.TargetDurationMinutes,
		CreatedAt:     now,
		Items:         make([]models.SessionEntry, 0, len(comp.Items)),
	}
	for i, it := range comp.Items {
		record.Items = append(record.Items, models.SessionEntry{
			Position:        i,
			ContentItemID:   it.ID,
			SelectionReason: it.SelectionReason,
			Priority:        it.Priority,
		})
	}
	if err := s.stores.Sessions.Create(ctx, record); err != nil {
		log.Error("failed to persist session: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.WithField("session_id", comp.SessionID).Info("session composed: items=%d, target=%d, minutes=%d",
		len(comp.Items), comp.TargetItemCount, comp.EstimatedDurationMinutes)
	return &comp, nil
}

func (s *sessionService) normalize(cfg models.SessionConfig) (models.SessionConfig, error) {
	if cfg.TargetDurationMinutes == 0 {
		cfg.TargetDurationMinutes = s.defaultMinutes
	}
	if cfg.TargetDurationMinutes < 1 || cfg.TargetDurationMinutes > MaxSessionMinutes {
		return cfg, errors.NewValidationError("target_duration_minutes", "must be between 1 and 120")
	}
	if cfg.SessionType == "" {
		cfg.SessionType = models.SessionPractice
	}
	if !cfg.SessionType.IsValid() {
		return cfg, errors.NewValidationError("session_type", "must be one of practice, review, quick_drill, full_case")
	}
	return cfg, nil
}

// loadPools gathers the four candidate pools concurrently. Only unlocked topics
// contribute new material; weakness items come from critical, moderate and
// rusting topics.
func (s *sessionService) loadPools(ctx context.Context, userID int64, cfg models.SessionConfig, profs []models.TopicProficiency, now time.Time) (models.CandidatePools, error) {
	filter := models.ContentFilter{Pillar: cfg.Pillar}
	if cfg.TopicSlug != "" {
		filter.TopicSlugs = []string{cfg.TopicSlug}
	}

	unlocked := make(map[string]bool, len(profs))
	topicPriority := make(map[string]float64, len(profs))
	for _, p := range profs {
		unlocked[p.TopicSlug] = p.IsUnlocked
		topicPriority[p.TopicSlug] = weakness.GetTopicPriority(p)
	}

	profile := weakness.CategorizeWeaknesses(profs)
	var weakTopics []string
	for _, bucket := range [][]models.TopicProficiency{profile.CriticalWeaknesses, profile.ModerateWeaknesses, profile.RustingTopics} {
		for _, p := range bucket {
			if cfg.TopicSlug == "" || cfg.TopicSlug == p.TopicSlug {
				weakTopics = append(weakTopics, p.TopicSlug)
			}
		}
	}

	newSlots := session.SlotCount(session.EstimateItemCount(cfg.TargetDurationMinutes), session.GetSessionRatios(cfg.SessionType).New)
	var pools models.CandidatePools
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		due, err := s.stores.Progress.DueBefore(gctx, userID, clock.AddDays(now, 1), filter)
		pools.ReviewDueItems = due
		return err
	})

	g.Go(func() error {
		if len(weakTopics) == 0 {
			return nil
		}
		items, err := s.stores.Progress.InTopics(gctx, userID, models.ContentFilter{TopicSlugs: weakTopics, Pillar: cfg.Pillar})
		if err != nil {
			return err
		}
		for i := range items {
			items[i].TopicPriority = topicPriority[items[i].Item.TopicSlug]
		}
		pools.WeaknessItems = items
		return nil
	})

	g.Go(func() error {
		fresh, err := s.stores.Content.Unattempted(gctx, userID, filter)
		if err != nil {
			return err
		}
		recent, err := s.stores.Reviews.Recent(gctx, userID, s.reviewWindow)
		if err != nil {
			return err
		}
		cands := make([]models.Candidate, 0, len(fresh))
		for _, it := range fresh {
			if unlocked[it.TopicSlug] {
				cands = append(cands, models.Candidate{Item: it})
			}
		}
		pools.NewItems = session.SelectNewItems(cands, session.GetAppropriateDifficultyRange(recent), newSlots)
		return nil
	})

	g.Go(func() error {
		since := clock.AddDays(now, -session.ReinforcementWindowDays)
		items, err := s.stores.Progress.MasteredSince(gctx, userID, since, filter)
		pools.ReinforcementItems = items
		return err
	})

	if err := g.Wait(); err != nil {
		return models.CandidatePools{}, err
	}
	return pools, nil
}
