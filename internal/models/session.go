package models

import (
	"fmt"
	"time"
)

type SessionType string

const (
	SessionPractice   SessionType = "practice"
	SessionReview     SessionType = "review"
	SessionQuickDrill SessionType = "quick_drill"
	SessionFullCase   SessionType = "full_case"
)

func (t SessionType) IsValid() bool {
	switch t {
	case SessionPractice, SessionReview, SessionQuickDrill, SessionFullCase:
		return true
	}
	return false
}

// SelectionReason records which candidate pool an item was drawn from.
type SelectionReason string

const (
	ReasonReviewDue     SelectionReason = "review_due"
	ReasonWeakness      SelectionReason = "weakness"
	ReasonNew           SelectionReason = "new"
	ReasonReinforcement SelectionReason = "reinforcement"
)

// SelectionReasons lists every reason in first-match-wins order.
var SelectionReasons = []SelectionReason{ReasonReviewDue, ReasonWeakness, ReasonNew, ReasonReinforcement}

func (r SelectionReason) IsValid() bool {
	switch r {
	case ReasonReviewDue, ReasonWeakness, ReasonNew, ReasonReinforcement:
		return true
	}
	return false
}

// UnmarshalText rejects unknown reasons so stored sessions cannot carry free-form strings.
func (r *SelectionReason) UnmarshalText(b []byte) error {
	v := SelectionReason(b)
	if !v.IsValid() {
		return fmt.Errorf("unknown selection reason %q", string(b))
	}
	*r = v
	return nil
}

type SessionConfig struct {
	TargetDurationMinutes int         `json:"target_duration_minutes"`
	SessionType           SessionType `json:"session_type"`
	TopicSlug             string      `json:"topic_slug,omitempty"`
	Pillar                string      `json:"pillar,omitempty"`
}

// Candidate is a content item together with the learner context needed to rank it.
type Candidate struct {
	Item          ContentItem     `json:"item"`
	Progress      *ProgressRecord `json:"progress,omitempty"`
	TopicPriority float64         `json:"topic_priority,omitempty"`
}

// CandidatePools are pre-filtered by the caller from the stores.
type CandidatePools struct {
	ReviewDueItems     []Candidate
	WeaknessItems      []Candidate
	NewItems           []Candidate
	ReinforcementItems []Candidate
}

// ContentItemWithContext is one slot of a composed session.
type ContentItemWithContext struct {
	ContentItem
	SelectionReason SelectionReason `json:"selection_reason"`
	Priority        float64         `json:"priority"`
}

type SessionComposition struct {
	SessionID                string                   `json:"session_id,omitempty"`
	SessionType              SessionType              `json:"session_type"`
	Items                    []ContentItemWithContext `json:"items"`
	TargetItemCount          int                      `json:"target_item_count"`
	EstimatedDurationMinutes int                      `json:"estimated_duration_minutes"`
	Breakdown                map[SelectionReason]int  `json:"breakdown"`
}

// Session is the persisted envelope of a composition.
type Session struct {
	ID            string         `json:"id"`
	UserID        int64          `json:"user_id"`
	SessionType   SessionType    `json:"session_type"`
	TargetMinutes int            `json:"target_minutes"`
	Items         []SessionEntry `json:"items"`
	CreatedAt     time.Time      `json:"created_at"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
}

type SessionEntry struct {
	Position        int             `json:"position"`
	ContentItemID   int64           `json:"content_item_id"`
	SelectionReason SelectionReason `json:"selection_reason"`
	Priority        float64         `json:"priority"`
}

// ItemOutcome is one item result reported after a session. Quality, when set,
// overrides the value derived from correctness, timing and hints.
type ItemOutcome struct {
	ContentItemID  int64 `json:"content_item_id"`
	WasCorrect     bool  `json:"was_correct"`
	Quality        *int  `json:"quality,omitempty"`
	ResponseTimeMs int64 `json:"response_time_ms"`
	ExpectedTimeMs int64 `json:"expected_time_ms,omitempty"`
	HintsUsed      int   `json:"hints_used"`
}

type ItemResult struct {
	ContentItemID int64          `json:"content_item_id"`
	Quality       int            `json:"quality"`
	Progress      ProgressRecord `json:"progress"`
}

type SessionSummary struct {
	SessionID       string             `json:"session_id"`
	ItemsAttempted  int                `json:"items_attempted"`
	ItemsCorrect    int                `json:"items_correct"`
	Accuracy        float64            `json:"accuracy"`
	Items           []ItemResult       `json:"items"`
	Streak          StreakUpdateResult `json:"streak"`
	XP              XPBreakdown        `json:"xp"`
	AchievementXP   int                `json:"achievement_xp"`
	LevelUp         *LevelUpResult     `json:"level_up,omitempty"`
	NewAchievements []Achievement      `json:"new_achievements"`
	State           GamificationState  `json:"state"`
}
