// Package gamification converts session outcomes into streaks, XP, levels and
// achievements.
package gamification

import (
	"time"

	"github.com/vytor/learnloop/internal/clock"
	"github.com/vytor/learnloop/internal/models"
)

// MaxFreezeBridgeDays is the longest absence, counted in calendar days since
// the last activity, that a streak freeze can bridge (one or two missed days).
const MaxFreezeBridgeDays = 3

// CalculateStreakUpdate advances the daily streak for activity at now.
//
// Activity earlier today keeps the streak. Activity yesterday extends it.
// Missing one or two days extends it too when a freeze is available, which
// is consumed. Anything else restarts the streak at 1.
func CalculateStreakUpdate(currentStreak int, lastActivityDate *time.Time, streakFreezeAvailable int, now time.Time) models.StreakUpdateResult {
	if lastActivityDate == nil {
		return models.StreakUpdateResult{NewStreak: 1}
	}

	days := clock.DaysBetween(*lastActivityDate, now)
	switch {
	case days <= 0:
		return models.StreakUpdateResult{NewStreak: max(currentStreak, 1), StreakMaintained: true}
	case days == 1:
		next := currentStreak + 1
		return models.StreakUpdateResult{NewStreak: next, StreakMaintained: true, XPBonus: CalculateStreakBonus(next)}
	case days <= MaxFreezeBridgeDays && streakFreezeAvailable > 0:
		next := currentStreak + 1
		return models.StreakUpdateResult{
			NewStreak:        next,
			StreakMaintained: true,
			StreakFreezeUsed: true,
			XPBonus:          CalculateStreakBonus(next),
		}
	default:
		return models.StreakUpdateResult{NewStreak: 1, StreakBroken: true}
	}
}

// CanContinueStreak reports whether activity at now could still extend the
// streak, given the freezes available.
func CanContinueStreak(lastActivityDate *time.Time, streakFreezeAvailable int, now time.Time) bool {
	if lastActivityDate == nil {
		return false
	}
	days := clock.DaysBetween(*lastActivityDate, now)
	return days <= 1 || (days <= MaxFreezeBridgeDays && streakFreezeAvailable > 0)
}

// CalculateStreakBonus grows linearly for the first week, slower for the
// first month, and slowest after that.
func CalculateStreakBonus(days int) int {
	switch {
	case days <= 0:
		return 0
	case days <= 7:
		return days * 2
	case days <= 30:
		return 14 + (days - 7)
	default:
		return 37 + (days-30)/5
	}
}
