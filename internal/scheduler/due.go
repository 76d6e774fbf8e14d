package scheduler

import (
	"math"
	"time"

	"github.com/vytor/learnloop/internal/clock"
	"github.com/vytor/learnloop/internal/models"
)

// IsDueForReview compares calendar days only; a nil date is always due.
func IsDueForReview(nextReviewAt *time.Time, now time.Time) bool {
	if nextReviewAt == nil {
		return true
	}
	return !clock.StartOfDay(*nextReviewAt).After(clock.StartOfDay(now))
}

// OverdueDays returns whole days past the review date, 0 when not overdue or unscheduled.
func OverdueDays(nextReviewAt *time.Time, now time.Time) int {
	if nextReviewAt == nil {
		return 0
	}
	d := clock.DaysBetween(*nextReviewAt, now)
	if d < 0 {
		return 0
	}
	return d
}

// CalculateReviewPriority ranks due items for session composition. It is never persisted.
func CalculateReviewPriority(nextReviewAt *time.Time, easeFactor float64, status models.ProgressStatus, now time.Time) float64 {
	p := float64(OverdueDays(nextReviewAt, now))*10 + (3-easeFactor)*5
	if status == models.StatusLearning {
		p += 20
	}
	return p
}

// EstimateTimeToMastery simulates passing reviews at a constant ease until the
// item reaches MasteryRepetitions and returns the days needed at sessionsPerDay.
func EstimateTimeToMastery(repetitions int, easeFactor float64, sessionsPerDay int) int {
	if repetitions >= MasteryRepetitions {
		return 0
	}
	if sessionsPerDay <= 0 {
		sessionsPerDay = 1
	}
	if easeFactor == 0 {
		easeFactor = DefaultEaseFactor
	}
	ease := clampFloat(easeFactor, MinEaseFactor, MaxEaseFactor)

	interval, total := 0, 0
	for reps := 1; reps <= MasteryRepetitions; reps++ {
		interval = clampInt(nextInterval(reps, interval, ease), MinIntervalDays, MaxIntervalDays)
		if reps > repetitions {
			total += interval
		}
	}
	return int(math.Ceil(float64(total) / float64(sessionsPerDay)))
}
