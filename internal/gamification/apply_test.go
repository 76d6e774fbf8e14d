package gamification_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/learnloop/internal/gamification"
	"github.com/vytor/learnloop/internal/models"
)

func TestApply_FirstSession(t *testing.T) {
	c := testCatalog(t)
	state := c.NewState(42)

	out := c.Apply(state, gamification.Activity{
		Session:        true,
		SessionType:    models.SessionPractice,
		ItemsCorrect:   5,
		ItemsAttempted: 5,
	}, now)

	assert.Equal(t, 1, out.Streak.NewStreak)
	// 25 base + 5 accuracy + 25 perfect; the streak bonus starts on day two
	assert.Equal(t, 55, out.XP.Total)
	assert.Equal(t, []string{"perfect_1"}, slugsOf(out.NewAchievements))
	assert.Equal(t, 15, out.AchievementXP)
	assert.Equal(t, 70, out.State.TotalXP)
	assert.Equal(t, 1, out.State.PerfectSessions)
	assert.Nil(t, out.LevelUp)
	require.NotNil(t, out.State.LastActivityDate)
	assert.Equal(t, time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC), *out.State.LastActivityDate)

	assert.Empty(t, state.EarnedAchievements, "input state is not modified")
	assert.Equal(t, 0, state.TotalXP)
}

func TestApply_LevelUpAndStreak(t *testing.T) {
	c := testCatalog(t)
	state := models.GamificationState{
		UserID:             1,
		TotalXP:            90,
		Level:              1,
		CurrentStreak:      2,
		LongestStreak:      5,
		LastActivityDate:   daysAgo(1),
		EarnedAchievements: []string{"perfect_1"},
	}

	out := c.Apply(state, gamification.Activity{Session: true, SessionType: models.SessionReview, ItemsCorrect: 2, ItemsAttempted: 4}, now)

	assert.Equal(t, 3, out.State.CurrentStreak)
	assert.Equal(t, 5, out.State.LongestStreak)
	// 16 base + 6 streak bonus
	assert.Equal(t, 22, out.XP.Total)
	assert.Equal(t, []string{"streak_3", "xp_100"}, slugsOf(out.NewAchievements))
	assert.Equal(t, 90+22+20, out.State.TotalXP)
	require.NotNil(t, out.LevelUp)
	assert.Equal(t, 2, out.LevelUp.NewLevel)
	assert.Equal(t, 2, out.State.Level)
}

func TestApply_DailyCheckIn(t *testing.T) {
	c := testCatalog(t)
	state := models.GamificationState{UserID: 1, Level: 1, CurrentStreak: 1, LongestStreak: 1, LastActivityDate: daysAgo(1)}

	out := c.Apply(state, gamification.Activity{}, now)
	assert.Equal(t, 2, out.State.CurrentStreak)
	assert.Equal(t, models.XPBreakdown{StreakBonus: 4, Total: 4}, out.XP)

	again := c.Apply(out.State, gamification.Activity{}, now.Add(time.Hour))
	assert.True(t, again.Streak.StreakMaintained)
	assert.Equal(t, 2, again.State.CurrentStreak)
	assert.Equal(t, 0, again.XP.Total)
	assert.Equal(t, out.State.TotalXP, again.State.TotalXP)
}

func TestApply_StreakFreezes(t *testing.T) {
	c := testCatalog(t)

	earn := c.Apply(models.GamificationState{Level: 1, CurrentStreak: 6, LastActivityDate: daysAgo(1)}, gamification.Activity{}, now)
	assert.Equal(t, 7, earn.State.CurrentStreak)
	assert.Equal(t, 1, earn.State.StreakFreezeCount)

	capped := c.Apply(models.GamificationState{Level: 1, CurrentStreak: 13, StreakFreezeCount: 2, LastActivityDate: daysAgo(1)}, gamification.Activity{}, now)
	assert.Equal(t, 2, capped.State.StreakFreezeCount)

	bridged := c.Apply(models.GamificationState{Level: 1, CurrentStreak: 4, StreakFreezeCount: 1, LastActivityDate: daysAgo(3)}, gamification.Activity{}, now)
	assert.True(t, bridged.Streak.StreakFreezeUsed)
	assert.Equal(t, 5, bridged.State.CurrentStreak)
	assert.Equal(t, 0, bridged.State.StreakFreezeCount)

	broken := c.Apply(models.GamificationState{Level: 1, CurrentStreak: 9, LongestStreak: 9, LastActivityDate: daysAgo(5)}, gamification.Activity{}, now)
	assert.True(t, broken.Streak.StreakBroken)
	assert.Equal(t, 1, broken.State.CurrentStreak)
	assert.Equal(t, 9, broken.State.LongestStreak)
}
