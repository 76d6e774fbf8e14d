package session

import (
	"github.com/vytor/learnloop/internal/models"
)

const (
	MinDifficulty = 1
	MaxDifficulty = 5

	// ColdStartReviews is how many recent reviews are needed before the range adapts.
	ColdStartReviews = 5
)

// DifficultyRange is an inclusive advisory band for new material.
type DifficultyRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r DifficultyRange) Contains(d int) bool {
	return d >= r.Min && d <= r.Max
}

// GetAppropriateDifficultyRange adapts the new-item difficulty band to recent
// performance: widen around the hardest difficulty seen when recall is strong,
// hold near it when adequate, and step back when weak.
func GetAppropriateDifficultyRange(recentReviews []models.ReviewLogEntry) DifficultyRange {
	if len(recentReviews) < ColdStartReviews {
		return DifficultyRange{Min: 1, Max: 2}
	}

	var sum int
	currentMax := MinDifficulty
	for _, r := range recentReviews {
		sum += r.Quality
		if r.Difficulty > currentMax {
			currentMax = r.Difficulty
		}
	}
	if currentMax > MaxDifficulty {
		currentMax = MaxDifficulty
	}
	avg := float64(sum) / float64(len(recentReviews))

	switch {
	case avg >= 4:
		return clampRange(currentMax-1, currentMax+1)
	case avg >= 3:
		return clampRange(currentMax-1, currentMax)
	default:
		return clampRange(1, currentMax-1)
	}
}

// SelectNewItems orders never-attempted candidates for the new-item pool:
// in-range items first, then the rest, each by ascending difficulty and
// display order. limit <= 0 means no limit.
func SelectNewItems(cands []models.Candidate, rng DifficultyRange, limit int) []models.Candidate {
	var inRange, outside []models.Candidate
	for _, c := range cands {
		if rng.Contains(c.Item.Difficulty) {
			inRange = append(inRange, c)
		} else {
			outside = append(outside, c)
		}
	}
	sortByDifficulty(inRange)
	sortByDifficulty(outside)

	out := append(inRange, outside...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func clampRange(lo, hi int) DifficultyRange {
	if lo < MinDifficulty {
		lo = MinDifficulty
	}
	if hi > MaxDifficulty {
		hi = MaxDifficulty
	}
	if hi < lo {
		hi = lo
	}
	return DifficultyRange{Min: lo, Max: hi}
}
