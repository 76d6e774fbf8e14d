// Package session composes ordered, time-boxed practice sessions from due
// reviews, weak-topic items, new items and recently mastered reinforcement.
package session

import (
	"math"

	"github.com/vytor/learnloop/internal/models"
)

// Ratios is the share of the target item count each explicit pool may claim.
// Reinforcement has no ratio; it only fills leftover capacity.
type Ratios struct {
	Review   float64 `json:"review"`
	Weakness float64 `json:"weakness"`
	New      float64 `json:"new"`
}

const (
	// SecondsPerItem is the average item length assumed by EstimateItemCount.
	SecondsPerItem = 30
	// MinItemCount is the floor for any session.
	MinItemCount = 5
	// ReinforcementWindowDays bounds how recently an item must have been mastered to resurface.
	ReinforcementWindowDays = 30
)

// GetSessionRatios returns the fixed pool mix for a session type. Unknown
// types get the practice mix.
func GetSessionRatios(t models.SessionType) Ratios {
	switch t {
	case models.SessionReview:
		return Ratios{Review: 0.7, Weakness: 0.2, New: 0.1}
	case models.SessionQuickDrill:
		return Ratios{Review: 0.3, Weakness: 0.4, New: 0.3}
	case models.SessionFullCase:
		return Ratios{Review: 0.2, Weakness: 0.3, New: 0.5}
	default:
		return Ratios{Review: 0.4, Weakness: 0.3, New: 0.3}
	}
}

// EstimateItemCount converts a duration into an item budget at SecondsPerItem.
func EstimateItemCount(targetMinutes int) int {
	n := int(math.Round(float64(targetMinutes) * 60 / SecondsPerItem))
	if n < MinItemCount {
		return MinItemCount
	}
	return n
}

// SlotCount is ceil(target*ratio), tolerant of float error such as 20*0.7.
func SlotCount(target int, ratio float64) int {
	n := int(math.Ceil(float64(target)*ratio - 1e-9))
	if n < 0 {
		return 0
	}
	return n
}
