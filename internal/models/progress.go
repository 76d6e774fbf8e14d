package models

import "time"

// ProgressStatus is the SM-2 lifecycle stage of a single item for a single user.
type ProgressStatus string

const (
	StatusLearning ProgressStatus = "learning"
	StatusReview   ProgressStatus = "review"
	StatusMastered ProgressStatus = "mastered"
)

func (s ProgressStatus) IsValid() bool {
	switch s {
	case StatusLearning, StatusReview, StatusMastered:
		return true
	}
	return false
}

// ProgressRecord holds per-(user, item) SM-2 state.
type ProgressRecord struct {
	UserID         int64          `json:"user_id"`
	ContentItemID  int64          `json:"content_item_id"`
	Repetitions    int            `json:"repetitions"`
	EaseFactor     float64        `json:"ease_factor"`
	IntervalDays   int            `json:"interval_days"`
	NextReviewAt   *time.Time     `json:"next_review_at"`
	Status         ProgressStatus `json:"status"`
	LastReviewedAt *time.Time     `json:"last_reviewed_at,omitempty"`
	MasteredAt     *time.Time     `json:"mastered_at,omitempty"`
	Version        int64          `json:"-"`
}

// ReviewLogEntry is one graded attempt at an item.
type ReviewLogEntry struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	ContentItemID  int64     `json:"content_item_id"`
	TopicSlug      string    `json:"topic_slug,omitempty"`
	Difficulty     int       `json:"difficulty,omitempty"`
	Quality        int       `json:"quality"`
	WasCorrect     bool      `json:"was_correct"`
	ResponseTimeMs int64     `json:"response_time_ms"`
	HintsUsed      int       `json:"hints_used"`
	ReviewedAt     time.Time `json:"reviewed_at"`
}

// TopicStats is the raw per-topic aggregate the proficiency model is computed from.
type TopicStats struct {
	TopicSlug      string
	ItemsTotal     int
	ItemsMastered  int
	RecentAttempts int
	RecentCorrect  int
	QualitySum     int
	LastPracticed  *time.Time
}
