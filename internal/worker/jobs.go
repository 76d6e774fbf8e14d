package worker

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/vytor/learnloop/internal/clock"
	apperrors "github.com/vytor/learnloop/internal/errors"
	"github.com/vytor/learnloop/internal/gamification"
	"github.com/vytor/learnloop/internal/logger"
	"github.com/vytor/learnloop/internal/repository"
)

// StreakSweepJob zeroes streaks that can no longer be continued so the
// displayed streak matches what the next activity would produce.
type StreakSweepJob struct {
	Gamification  repository.GamificationRepository
	Clock         clock.Clock
	MaxConcurrent int
}

func (j *StreakSweepJob) Name() string { return "streak_sweep" }

func (j *StreakSweepJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	now := j.Clock.Now()

	states, err := j.Gamification.ActiveStreaks(ctx)
	if err != nil {
		log.Error("failed to list active streaks: %v", err)
		return err
	}

	maxConc := j.MaxConcurrent
	if maxConc <= 0 {
		maxConc = 4
	}

	var reset, skipped atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConc)
	for _, st := range states {
		if gamification.CanContinueStreak(st.LastActivityDate, st.StreakFreezeCount, now) {
			continue
		}
		st := st
		g.Go(func() error {
			err := j.Gamification.ResetStreak(gctx, st.UserID, st.Version)
			if errors.Is(err, apperrors.ErrConflict) {
				// the user was active since the listing; their new state wins
				log.Debug("streak changed during sweep: user_id=%d", st.UserID)
				skipped.Add(1)
				return nil
			}
			if err != nil {
				return err
			}
			reset.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("streak sweep failed: %v", err)
		return err
	}

	log.Info("streak sweep finished: active=%d, reset=%d, skipped=%d", len(states), reset.Load(), skipped.Load())
	return nil
}
