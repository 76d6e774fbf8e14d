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
)

// GamificationService reads and advances per-user reward state
type GamificationService interface {
	State(ctx context.Context, userID int64) (*models.GamificationProfile, error)
	RecordDailyActivity(ctx context.Context, userID int64) (*models.ActivityReward, error)
}

type gamificationService struct {
	stores  repository.Stores
	tx      repository.Transactor
	rewards *gamification.Catalog
	clock   clock.Clock
}

// NewGamificationService creates a new GamificationService
func NewGamificationService(stores repository.Stores, tx repository.Transactor, rewards *gamification.Catalog, clk clock.Clock) GamificationService {
	return &gamificationService{stores: stores, tx: tx, rewards: rewards, clock: clk}
}

func (s *gamificationService) State(ctx context.Context, userID int64) (*models.GamificationProfile, error) {
	log := logger.FromContext(ctx).WithPrefix("gamification_service")
	log.Debug("getting gamification state: user_id=%d", userID)

	state, err := s.stores.Gamification.Get(ctx, userID)
	if err != nil {
		log.Error("failed to get gamification state: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if state == nil {
		fresh := s.rewards.NewState(userID)
		state = &fresh
	}

	return &models.GamificationProfile{
		GamificationState: *state,
		LevelTitle:        s.rewards.LevelForXP(state.TotalXP).Title,
		XPToNextLevel:     s.rewards.XPToNextLevel(state.TotalXP),
	}, nil
}

func (s *gamificationService) RecordDailyActivity(ctx context.Context, userID int64) (*models.ActivityReward, error) {
	log := logger.FromContext(ctx).WithPrefix("gamification_service").WithField("user_id", userID)
	now := s.clock.Now()

	var out gamification.Outcome
	err := s.tx.WithinTx(ctx, func(st repository.Stores) error {
		var err error
		out, err = applyActivity(ctx, st, s.rewards, userID, gamification.Activity{}, now)
		return err
	})
	if err != nil {
		log.Error("failed to record daily activity: %v", err)
		return nil, storeError("gamification state", userID, err)
	}

	log.Info("daily activity recorded: streak=%d, xp=%d", out.State.CurrentStreak, out.XP.Total+out.AchievementXP)
	return &models.ActivityReward{
		Streak:          out.Streak,
		XPAwarded:       out.XP.Total,
		AchievementXP:   out.AchievementXP,
		LevelUp:         out.LevelUp,
		NewAchievements: out.NewAchievements,
		State:           out.State,
	}, nil
}

// applyActivity loads the user's state through st, applies a, and persists
// the result together with any newly earned achievements.
func applyActivity(ctx context.Context, st repository.Stores, rewards *gamification.Catalog, userID int64, a gamification.Activity, now time.Time) (gamification.Outcome, error) {
	state, err := st.Gamification.Get(ctx, userID)
	if err != nil {
		return gamification.Outcome{}, err
	}
	if state == nil {
		fresh := rewards.NewState(userID)
		state = &fresh
	}

	out := rewards.Apply(*state, a, now)

	saved, err := st.Gamification.Save(ctx, out.State)
	if err != nil {
		return gamification.Outcome{}, err
	}
	saved.EarnedAchievements = out.State.EarnedAchievements
	out.State = saved

	if len(out.NewAchievements) > 0 {
		slugs := make([]string, 0, len(out.NewAchievements))
		for _, ach := range out.NewAchievements {
			slugs = append(slugs, ach.Slug)
		}
		if err := st.Gamification.AddAchievements(ctx, userID, slugs, now); err != nil {
			return gamification.Outcome{}, err
		}
	}
	return out, nil
}
