package gamification

import (
	"time"

	"github.com/vytor/learnloop/internal/clock"
	"github.com/vytor/learnloop/internal/models"
)

const (
	// FreezeEarnInterval awards one streak freeze every this many consecutive days.
	FreezeEarnInterval = 7
	MaxStreakFreezes   = 2
)

// Activity is one rewardable event. A zero ItemsAttempted with Session unset
// is a plain daily check-in that only moves the streak.
type Activity struct {
	Session        bool
	SessionType    models.SessionType
	ItemsCorrect   int
	ItemsAttempted int
}

// Outcome is everything one Activity changed.
type Outcome struct {
	Streak          models.StreakUpdateResult
	XP              models.XPBreakdown
	AchievementXP   int
	LevelUp         *models.LevelUpResult
	NewAchievements []models.Achievement
	State           models.GamificationState
}

// NewState returns the starting state for a user with no reward history.
func (c *Catalog) NewState(userID int64) models.GamificationState {
	return models.GamificationState{
		UserID:             userID,
		Level:              c.LevelForXP(0).Level,
		EarnedAchievements: []string{},
	}
}

// Apply runs streak, XP, level and achievement rules for a at now and returns
// the resulting state. The input state is not modified.
func (c *Catalog) Apply(state models.GamificationState, a Activity, now time.Time) Outcome {
	next := state
	next.EarnedAchievements = append([]string{}, state.EarnedAchievements...)

	streak := CalculateStreakUpdate(state.CurrentStreak, state.LastActivityDate, state.StreakFreezeCount, now)
	if streak.StreakFreezeUsed && next.StreakFreezeCount > 0 {
		next.StreakFreezeCount--
	}
	if streak.NewStreak > state.CurrentStreak && streak.NewStreak%FreezeEarnInterval == 0 && next.StreakFreezeCount < MaxStreakFreezes {
		next.StreakFreezeCount++
	}
	next.CurrentStreak = streak.NewStreak
	next.LongestStreak = max(next.LongestStreak, next.CurrentStreak)
	day := clock.StartOfDay(now)
	next.LastActivityDate = &day

	var xp models.XPBreakdown
	if a.Session {
		perfect := a.ItemsAttempted >= PerfectMinAttempts && a.ItemsCorrect == a.ItemsAttempted
		if perfect {
			next.PerfectSessions++
		}
		xp = CalculateSessionXP(a.ItemsCorrect, a.ItemsAttempted, a.SessionType, streak.XPBonus, perfect)
	} else {
		xp = models.XPBreakdown{StreakBonus: streak.XPBonus, Total: streak.XPBonus}
	}
	next.TotalXP += xp.Total

	earned := c.CheckNewAchievements(next.CurrentStreak, next.TotalXP, next.PerfectSessions, next.EarnedAchievements)
	var achievementXP int
	for _, ach := range earned {
		achievementXP += ach.RewardXP
		next.EarnedAchievements = append(next.EarnedAchievements, ach.Slug)
	}
	next.TotalXP += achievementXP

	levelUp := c.CheckLevelUp(state.Level, state.TotalXP, next.TotalXP-state.TotalXP)
	if levelUp != nil {
		next.Level = levelUp.NewLevel
	}

	return Outcome{
		Streak:          streak,
		XP:              xp,
		AchievementXP:   achievementXP,
		LevelUp:         levelUp,
		NewAchievements: earned,
		State:           next,
	}
}
