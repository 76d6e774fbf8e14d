package gamification_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/learnloop/internal/gamification"
	"github.com/vytor/learnloop/internal/models"
)

var now = time.Date(2024, 11, 20, 8, 30, 0, 0, time.UTC)

func daysAgo(n int) *time.Time {
	t := now.AddDate(0, 0, -n)
	return &t
}

func TestCalculateStreakUpdate(t *testing.T) {
	tests := []struct {
		name    string
		current int
		last    *time.Time
		freezes int
		want    models.StreakUpdateResult
	}{
		{
			name:    "first ever activity",
			current: 0,
			last:    nil,
			freezes: 0,
			want:    models.StreakUpdateResult{NewStreak: 1},
		},
		{
			name:    "already active today",
			current: 4,
			last:    daysAgo(0),
			freezes: 1,
			want:    models.StreakUpdateResult{NewStreak: 4, StreakMaintained: true},
		},
		{
			name:    "active yesterday",
			current: 5,
			last:    daysAgo(1),
			freezes: 1,
			want:    models.StreakUpdateResult{NewStreak: 6, StreakMaintained: true, XPBonus: 12},
		},
		{
			name:    "one missed day bridged by freeze",
			current: 5,
			last:    daysAgo(2),
			freezes: 2,
			want:    models.StreakUpdateResult{NewStreak: 6, StreakMaintained: true, StreakFreezeUsed: true, XPBonus: 12},
		},
		{
			name:    "two missed days bridged by freeze",
			current: 5,
			last:    daysAgo(3),
			freezes: 1,
			want:    models.StreakUpdateResult{NewStreak: 6, StreakMaintained: true, StreakFreezeUsed: true, XPBonus: 12},
		},
		{
			name:    "missed day without freeze",
			current: 5,
			last:    daysAgo(2),
			freezes: 0,
			want:    models.StreakUpdateResult{NewStreak: 1, StreakBroken: true},
		},
		{
			name:    "gap too large without freeze",
			current: 5,
			last:    daysAgo(4),
			freezes: 0,
			want:    models.StreakUpdateResult{NewStreak: 1, StreakBroken: true},
		},
		{
			name:    "gap too large even with freeze",
			current: 40,
			last:    daysAgo(4),
			freezes: 3,
			want:    models.StreakUpdateResult{NewStreak: 1, StreakBroken: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gamification.CalculateStreakUpdate(tt.current, tt.last, tt.freezes, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateStreakUpdate_IgnoresTimeOfDay(t *testing.T) {
	lateYesterday := time.Date(2024, 11, 19, 23, 59, 0, 0, time.UTC)
	earlyToday := time.Date(2024, 11, 20, 0, 1, 0, 0, time.UTC)

	got := gamification.CalculateStreakUpdate(2, &lateYesterday, 0, earlyToday)

	assert.Equal(t, 3, got.NewStreak)
	assert.True(t, got.StreakMaintained)
}

func TestCanContinueStreak(t *testing.T) {
	assert.False(t, gamification.CanContinueStreak(nil, 1, now))
	assert.True(t, gamification.CanContinueStreak(daysAgo(1), 0, now))
	assert.False(t, gamification.CanContinueStreak(daysAgo(2), 0, now))
	assert.True(t, gamification.CanContinueStreak(daysAgo(3), 1, now))
	assert.False(t, gamification.CanContinueStreak(daysAgo(4), 1, now))
}

func TestCalculateStreakBonus(t *testing.T) {
	tests := []struct {
		days int
		want int
	}{
		{0, 0},
		{1, 2},
		{6, 12},
		{7, 14},
		{8, 15},
		{30, 37},
		{31, 37},
		{35, 38},
		{100, 51},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, gamification.CalculateStreakBonus(tt.days), "days=%d", tt.days)
	}
}
