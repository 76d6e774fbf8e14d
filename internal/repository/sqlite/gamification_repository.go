package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	apperrors "github.com/vytor/learnloop/internal/errors"
	"github.com/vytor/learnloop/internal/logger"
	"github.com/vytor/learnloop/internal/models"
	"github.com/vytor/learnloop/internal/repository"
)

type gamificationRepository struct {
	db Querier
}

// NewGamificationRepository creates a new GamificationRepository implementation
func NewGamificationRepository(db Querier) repository.GamificationRepository {
	return &gamificationRepository{db: db}
}

const gamificationColumns = `user_id, total_xp, level, current_streak, longest_streak, streak_freeze_count,
       perfect_sessions, last_activity_date, version`

func scanState(s scanner, st *models.GamificationState) error {
	return s.Scan(&st.UserID, &st.TotalXP, &st.Level, &st.CurrentStreak, &st.LongestStreak,
		&st.StreakFreezeCount, &st.PerfectSessions, &st.LastActivityDate, &st.Version)
}

// Get returns nil when the user has no reward state yet.
func (r *gamificationRepository) Get(ctx context.Context, userID int64) (*models.GamificationState, error) {
	log := logger.FromContext(ctx).WithPrefix("gamification_repo")
	log.Debug("getting gamification state: user_id=%d", userID)

	var st models.GamificationState
	err := scanState(r.db.QueryRowContext(ctx, `SELECT `+gamificationColumns+` FROM gamification_states WHERE user_id = ?`, userID), &st)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get gamification state: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT slug FROM user_achievements WHERE user_id = ? ORDER BY earned_at ASC, slug ASC`, userID)
	if err != nil {
		log.Error("failed to list achievements: %v", err)
		return nil, err
	}
	defer rows.Close()

	st.EarnedAchievements = []string{}
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			log.Error("failed to scan achievement row: %v", err)
			return nil, err
		}
		st.EarnedAchievements = append(st.EarnedAchievements, slug)
	}
	return &st, rows.Err()
}

func (r *gamificationRepository) Save(ctx context.Context, st models.GamificationState) (models.GamificationState, error) {
	log := logger.FromContext(ctx).WithPrefix("gamification_repo")
	log.Debug("saving gamification state: user_id=%d, xp=%d, level=%d, streak=%d, version=%d",
		st.UserID, st.TotalXP, st.Level, st.CurrentStreak, st.Version)

	if st.Version == 0 {
		_, err := r.db.ExecContext(ctx, `
INSERT INTO gamification_states (user_id, total_xp, level, current_streak, longest_streak, streak_freeze_count, perfect_sessions, last_activity_date, version)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1)
`, st.UserID, st.TotalXP, st.Level, st.CurrentStreak, st.LongestStreak, st.StreakFreezeCount,
			st.PerfectSessions, utc(st.LastActivityDate))
		if isDuplicateKey(err) {
			log.Warn("gamification state inserted concurrently: user_id=%d", st.UserID)
			return st, apperrors.ErrConflict
		}
		if err != nil {
			log.Error("failed to insert gamification state: %v", err)
			return st, err
		}
		st.Version = 1
		return st, nil
	}

	// total_xp only moves forward.
	res, err := r.db.ExecContext(ctx, `
UPDATE gamification_states
SET total_xp = MAX(total_xp, ?), level = ?, current_streak = ?, longest_streak = ?, streak_freeze_count = ?,
    perfect_sessions = ?, last_activity_date = ?, version = version + 1
WHERE user_id = ? AND version = ?
`, st.TotalXP, st.Level, st.CurrentStreak, st.LongestStreak, st.StreakFreezeCount,
		st.PerfectSessions, utc(st.LastActivityDate), st.UserID, st.Version)
	if err != nil {
		log.Error("failed to update gamification state: %v", err)
		return st, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return st, err
	}
	if n == 0 {
		log.Warn("stale gamification write: user_id=%d, version=%d", st.UserID, st.Version)
		return st, apperrors.ErrConflict
	}
	st.Version++
	return st, nil
}

// AddAchievements records earned slugs. Slugs already earned are left untouched.
func (r *gamificationRepository) AddAchievements(ctx context.Context, userID int64, slugs []string, at time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("gamification_repo")
	log.Debug("adding achievements: user_id=%d, slugs=%v", userID, slugs)

	for _, slug := range slugs {
		if _, err := r.db.ExecContext(ctx, `
INSERT INTO user_achievements (user_id, slug, earned_at)
VALUES (?, ?, ?)
ON CONFLICT(user_id, slug) DO NOTHING
`, userID, slug, at.UTC()); err != nil {
			log.Error("failed to insert achievement %s: %v", slug, err)
			return err
		}
	}
	return nil
}

func (r *gamificationRepository) ActiveStreaks(ctx context.Context) ([]models.GamificationState, error) {
	log := logger.FromContext(ctx).WithPrefix("gamification_repo")

	rows, err := r.db.QueryContext(ctx, `SELECT `+gamificationColumns+` FROM gamification_states WHERE current_streak > 0 ORDER BY user_id ASC`)
	if err != nil {
		log.Error("failed to list active streaks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var states []models.GamificationState
	for rows.Next() {
		var st models.GamificationState
		if err := scanState(rows, &st); err != nil {
			log.Error("failed to scan gamification row: %v", err)
			return nil, err
		}
		states = append(states, st)
	}
	log.Debug("found %d active streaks", len(states))
	return states, rows.Err()
}

func (r *gamificationRepository) ResetStreak(ctx context.Context, userID int64, version int64) error {
	log := logger.FromContext(ctx).WithPrefix("gamification_repo")
	log.Debug("resetting streak: user_id=%d", userID)

	res, err := r.db.ExecContext(ctx, `
UPDATE gamification_states
SET current_streak = 0, version = version + 1
WHERE user_id = ? AND version = ?
`, userID, version)
	if err != nil {
		log.Error("failed to reset streak: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.ErrConflict
	}
	return nil
}
