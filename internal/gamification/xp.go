package gamification

import (
	"math"

	"github.com/vytor/learnloop/internal/models"
)

const (
	// AccuracyBonusThreshold is the accuracy at or above which the accuracy bonus applies.
	AccuracyBonusThreshold = 0.8
	AccuracyBonusRate      = 0.2
	PerfectBonusXP         = 25
	// PerfectMinAttempts is the smallest session eligible for the perfect bonus.
	PerfectMinAttempts = 5
)

var perItemXP = map[models.SessionType]int{
	models.SessionPractice:   5,
	models.SessionReview:     8,
	models.SessionQuickDrill: 4,
	models.SessionFullCase:   10,
}

// PerItemXP returns the XP awarded per correct item; unknown types earn the practice rate.
func PerItemXP(t models.SessionType) int {
	if r, ok := perItemXP[t]; ok {
		return r
	}
	return perItemXP[models.SessionPractice]
}

// CalculateSessionXP itemizes the XP earned by one session. Every component is non-negative.
func CalculateSessionXP(itemsCorrect, itemsAttempted int, sessionType models.SessionType, streakBonus int, perfectBonus bool) models.XPBreakdown {
	if itemsCorrect < 0 {
		itemsCorrect = 0
	}
	if streakBonus < 0 {
		streakBonus = 0
	}

	xp := models.XPBreakdown{
		BaseXP:      itemsCorrect * PerItemXP(sessionType),
		StreakBonus: streakBonus,
	}
	if itemsAttempted > 0 && float64(itemsCorrect)/float64(itemsAttempted) >= AccuracyBonusThreshold {
		xp.AccuracyBonus = int(math.Round(float64(xp.BaseXP) * AccuracyBonusRate))
	}
	if perfectBonus && itemsAttempted >= PerfectMinAttempts {
		xp.PerfectBonus = PerfectBonusXP
	}
	xp.Total = xp.BaseXP + xp.AccuracyBonus + xp.StreakBonus + xp.PerfectBonus
	return xp
}
