package services

import (
	"context"
	"math"
	"time"

	"github.com/vytor/learnloop/internal/clock"
	"github.com/vytor/learnloop/internal/errors"
	"github.com/vytor/learnloop/internal/gamification"
	"github.com/vytor/learnloop/internal/logger"
	"github.com/vytor/learnloop/internal/models"
	"github.com/vytor/learnloop/internal/repository"
	"github.com/vytor/learnloop/internal/scheduler"
)

// ReviewService grades a finished session and applies its rewards
type ReviewService interface {
	SubmitResults(ctx context.Context, userID int64, sessionID string, outcomes []models.ItemOutcome) (*models.SessionSummary, error)
}

type reviewService struct {
	tx      repository.Transactor
	rewards *gamification.Catalog
	clock   clock.Clock
}

// NewReviewService creates a new ReviewService
func NewReviewService(tx repository.Transactor, rewards *gamification.Catalog, clk clock.Clock) ReviewService {
	return &reviewService{tx: tx, rewards: rewards, clock: clk}
}

func (s *reviewService) SubmitResults(ctx context.Context, userID int64, sessionID string, outcomes []models.ItemOutcome) (*models.SessionSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("review_service").WithField("user_id", userID).WithField("session_id", sessionID)
	log.Debug("submitting session results: outcomes=%d", len(outcomes))

	if len(outcomes) == 0 {
		return nil, errors.NewValidationError("outcomes", "at least one outcome is required")
	}
	seen := make(map[int64]bool, len(outcomes))
	for _, o := range outcomes {
		if seen[o.ContentItemID] {
			return nil, errors.NewValidationError("outcomes", "duplicate outcome for content item")
		}
		seen[o.ContentItemID] = true
		if o.Quality != nil {
			if err := scheduler.ValidateQuality(*o.Quality); err != nil {
				return nil, errors.NewValidationErrorWrap("quality", err)
			}
		}
	}

	now := s.clock.Now()
	summary := &models.SessionSummary{
		SessionID:      sessionID,
		ItemsAttempted: len(outcomes),
		Items:          make([]models.ItemResult, 0, len(outcomes)),
	}

	err := s.tx.WithinTx(ctx, func(st repository.Stores) error {
		sess, err := st.Sessions.Get(ctx, sessionID)
		if err != nil {
			return err
		}
		if sess == nil || sess.UserID != userID {
			return errors.NewNotFoundError("session", sessionID)
		}
		if sess.CompletedAt != nil {
			return errors.NewConflictError("session", sessionID)
		}
		inSession := make(map[int64]bool, len(sess.Items))
		for _, e := range sess.Items {
			inSession[e.ContentItemID] = true
		}

		for _, o := range outcomes {
			if !inSession[o.ContentItemID] {
				return errors.NewValidationError("content_item_id", "item is not part of this session")
			}
			result, err := s.grade(ctx, st, userID, o, now)
			if err != nil {
				return err
			}
			if o.WasCorrect {
				summary.ItemsCorrect++
			}
			summary.Items = append(summary.Items, result)
		}

		out, err := applyActivity(ctx, st, s.rewards, userID, gamification.Activity{
			Session:        true,
			SessionType:    sess.SessionType,
			ItemsCorrect:   summary.ItemsCorrect,
			ItemsAttempted: summary.ItemsAttempted,
		}, now)
		if err != nil {
			return err
		}
		summary.Streak = out.Streak
		summary.XP = out.XP
		summary.AchievementXP = out.AchievementXP
		summary.LevelUp = out.LevelUp
		summary.NewAchievements = out.NewAchievements
		summary.State = out.State

		return st.Sessions.Complete(ctx, sessionID, now)
	})
	if err != nil {
		log.Error("failed to submit session results: %v", err)
		return nil, storeError("session", sessionID, err)
	}

	if summary.NewAchievements == nil {
		summary.NewAchievements = []models.Achievement{}
	}
	summary.Accuracy = math.Round(float64(summary.ItemsCorrect)/float64(summary.ItemsAttempted)*1000) / 1000

	log.Info("session results applied: correct=%d/%d, xp=%d, streak=%d",
		summary.ItemsCorrect, summary.ItemsAttempted, summary.XP.Total+summary.AchievementXP, summary.State.CurrentStreak)
	return summary, nil
}

// grade replays a single outcome through the scheduler and records it.
func (s *reviewService) grade(ctx context.Context, st repository.Stores, userID int64, o models.ItemOutcome, now time.Time) (models.ItemResult, error) {
	item, err := st.Content.Get(ctx, o.ContentItemID)
	if err != nil {
		return models.ItemResult{}, err
	}
	if item == nil {
		return models.ItemResult{}, errors.NewNotFoundError("content item", o.ContentItemID)
	}

	quality := qualityFor(o, *item)

	prev, err := st.Progress.Get(ctx, userID, item.ID)
	if err != nil {
		return models.ItemResult{}, err
	}
	next, err := scheduler.ApplyReview(prev, userID, item.ID, quality, now)
	if err != nil {
		return models.ItemResult{}, errors.NewValidationErrorWrap("quality", err)
	}
	saved, err := st.Progress.Save(ctx, next)
	if err != nil {
		return models.ItemResult{}, err
	}

	_, err = st.Reviews.Insert(ctx, models.ReviewLogEntry{
		UserID:         userID,
		ContentItemID:  item.ID,
		Quality:        quality,
		WasCorrect:     o.WasCorrect,
		ResponseTimeMs: o.ResponseTimeMs,
		HintsUsed:      o.HintsUsed,
		ReviewedAt:     now,
	})
	if err != nil {
		return models.ItemResult{}, err
	}

	return models.ItemResult{ContentItemID: item.ID, Quality: quality, Progress: saved}, nil
}

func qualityFor(o models.ItemOutcome, item models.ContentItem) int {
	if o.Quality != nil {
		return *o.Quality
	}
	expected := o.ExpectedTimeMs
	if expected <= 0 {
		expected = int64(item.EstimatedSeconds) * 1000
	}
	return scheduler.ResponseToQuality(o.WasCorrect, o.ResponseTimeMs, expected, o.HintsUsed)
}
