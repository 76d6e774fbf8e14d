package models

import (
	"fmt"
	"time"
)

// GamificationState is per-user reward state. TotalXP never decreases and
// earned achievements are never revoked.
type GamificationState struct {
	UserID             int64      `json:"user_id"`
	TotalXP            int        `json:"total_xp"`
	Level              int        `json:"level"`
	CurrentStreak      int        `json:"current_streak"`
	LongestStreak      int        `json:"longest_streak"`
	StreakFreezeCount  int        `json:"streak_freeze_count"`
	PerfectSessions    int        `json:"perfect_sessions"`
	LastActivityDate   *time.Time `json:"last_activity_date"`
	EarnedAchievements []string   `json:"earned_achievements"`
	Version            int64      `json:"-"`
}

type AchievementType string

const (
	AchievementStreak          AchievementType = "streak"
	AchievementTotalXP         AchievementType = "total_xp"
	AchievementPerfectSessions AchievementType = "perfect_sessions"
)

func (t AchievementType) IsValid() bool {
	switch t {
	case AchievementStreak, AchievementTotalXP, AchievementPerfectSessions:
		return true
	}
	return false
}

func (t *AchievementType) UnmarshalText(b []byte) error {
	v := AchievementType(b)
	if !v.IsValid() {
		return fmt.Errorf("unknown achievement type %q", string(b))
	}
	*t = v
	return nil
}

// Achievement is a static catalog definition keyed by Slug.
type Achievement struct {
	Slug      string          `json:"slug" yaml:"slug"`
	Name      string          `json:"name" yaml:"name"`
	Type      AchievementType `json:"type" yaml:"type"`
	Threshold int             `json:"threshold" yaml:"threshold"`
	RewardXP  int             `json:"reward_xp" yaml:"reward_xp"`
}

// Level is one row of the static XP threshold table.
type Level struct {
	Level int    `json:"level" yaml:"level"`
	MinXP int    `json:"min_xp" yaml:"min_xp"`
	Title string `json:"title" yaml:"title"`
}

type StreakUpdateResult struct {
	NewStreak        int  `json:"new_streak"`
	StreakMaintained bool `json:"streak_maintained"`
	StreakBroken     bool `json:"streak_broken"`
	StreakFreezeUsed bool `json:"streak_freeze_used"`
	XPBonus          int  `json:"xp_bonus"`
}

type XPBreakdown struct {
	BaseXP        int `json:"base_xp"`
	AccuracyBonus int `json:"accuracy_bonus"`
	StreakBonus   int `json:"streak_bonus"`
	PerfectBonus  int `json:"perfect_bonus"`
	Total         int `json:"total"`
}

type LevelUpResult struct {
	LeveledUp bool   `json:"leveled_up"`
	NewLevel  int    `json:"new_level"`
	NewTitle  string `json:"new_title"`
}

// GamificationProfile is the read model served to clients.
type GamificationProfile struct {
	GamificationState
	LevelTitle    string `json:"level_title"`
	XPToNextLevel int    `json:"xp_to_next_level"`
}

// ActivityReward is the outcome of one day's activity outside a session.
type ActivityReward struct {
	Streak          StreakUpdateResult `json:"streak"`
	XPAwarded       int                `json:"xp_awarded"`
	AchievementXP   int                `json:"achievement_xp"`
	LevelUp         *LevelUpResult     `json:"level_up,omitempty"`
	NewAchievements []Achievement      `json:"new_achievements"`
	State           GamificationState  `json:"state"`
}
