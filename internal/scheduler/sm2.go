// Package scheduler implements the SM-2 spaced-repetition rules that track
// per-item mastery and due dates.
package scheduler

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vytor/learnloop/internal/clock"
	"github.com/vytor/learnloop/internal/models"
)

const (
	MinEaseFactor     = 1.3
	MaxEaseFactor     = 2.8
	DefaultEaseFactor = 2.5
	MinIntervalDays   = 1
	MaxIntervalDays   = 365

	// PassingQuality is the lowest quality that counts as a successful recall.
	PassingQuality = 3
	// MasteredIntervalDays is the interval at which an item counts as mastered.
	MasteredIntervalDays = 21
	// MasteryRepetitions is the repetition count EstimateTimeToMastery simulates towards.
	MasteryRepetitions = 6
)

// ErrInvalidQualityScore is returned for quality scores outside 0..5.
var ErrInvalidQualityScore = errors.New("scheduler: invalid quality score")

// Result is the recalculated SM-2 state of one item.
type Result struct {
	Repetitions  int                   `json:"repetitions"`
	EaseFactor   float64               `json:"ease_factor"`
	IntervalDays int                   `json:"interval_days"`
	NextReviewAt time.Time             `json:"next_review_at"`
	Status       models.ProgressStatus `json:"status"`
}

// ValidateQuality reports ErrInvalidQualityScore when q is outside 0..5.
func ValidateQuality(q int) error {
	if q < 0 || q > 5 {
		return fmt.Errorf("%w: %d", ErrInvalidQualityScore, q)
	}
	return nil
}

// Recalculate applies one graded review to an item's SM-2 state.
// quality: 0=blackout .. 5=perfect recall; below 3 is a failed recall.
func Recalculate(quality, repetitions int, easeFactor float64, intervalDays int, now time.Time) (Result, error) {
	if err := ValidateQuality(quality); err != nil {
		return Result{}, err
	}

	ef := nextEase(easeFactor, quality)

	var reps, interval int
	if quality < PassingQuality {
		reps = 0
		interval = 1
	} else {
		reps = repetitions + 1
		interval = nextInterval(reps, intervalDays, ef)
	}
	interval = clampInt(interval, MinIntervalDays, MaxIntervalDays)

	return Result{
		Repetitions:  reps,
		EaseFactor:   ef,
		IntervalDays: interval,
		NextReviewAt: clock.AddDays(now, interval),
		Status:       statusFor(reps, interval),
	}, nil
}

// NewProgress returns the state of an item the user has never attempted.
func NewProgress(userID, itemID int64) models.ProgressRecord {
	return models.ProgressRecord{
		UserID:        userID,
		ContentItemID: itemID,
		EaseFactor:    DefaultEaseFactor,
		Status:        models.StatusLearning,
	}
}

// ApplyReview runs Recalculate against a stored record and returns the updated copy.
// A nil record is treated as a fresh item.
func ApplyReview(rec *models.ProgressRecord, userID, itemID int64, quality int, now time.Time) (models.ProgressRecord, error) {
	var card models.ProgressRecord
	if rec == nil {
		card = NewProgress(userID, itemID)
	} else {
		card = *rec
	}
	if card.EaseFactor == 0 {
		card.EaseFactor = DefaultEaseFactor
	}

	res, err := Recalculate(quality, card.Repetitions, card.EaseFactor, card.IntervalDays, now)
	if err != nil {
		return card, err
	}

	wasMastered := card.Status == models.StatusMastered
	next := res.NextReviewAt
	reviewed := now.UTC()

	card.Repetitions = res.Repetitions
	card.EaseFactor = res.EaseFactor
	card.IntervalDays = res.IntervalDays
	card.NextReviewAt = &next
	card.Status = res.Status
	card.LastReviewedAt = &reviewed
	switch {
	case res.Status == models.StatusMastered && !wasMastered:
		card.MasteredAt = &reviewed
	case res.Status != models.StatusMastered:
		card.MasteredAt = nil
	}
	return card, nil
}

func nextEase(ease float64, quality int) float64 {
	d := float64(5 - quality)
	return clampFloat(ease+(0.1-d*(0.08+d*0.02)), MinEaseFactor, MaxEaseFactor)
}

// nextInterval is the growth rule shared by Recalculate and EstimateTimeToMastery.
func nextInterval(reps, previous int, ease float64) int {
	switch reps {
	case 1:
		return 1
	case 2:
		return 6
	default:
		return int(math.Round(float64(previous) * ease))
	}
}

func statusFor(reps, interval int) models.ProgressStatus {
	switch {
	case reps < 2:
		return models.StatusLearning
	case interval >= MasteredIntervalDays:
		return models.StatusMastered
	default:
		return models.StatusReview
	}
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
