package models

// TopicProficiency is derived from progress records and never stored as source of truth.
type TopicProficiency struct {
	TopicSlug             string  `json:"topic_slug"`
	Pillar                string  `json:"pillar"`
	ProficiencyScore      float64 `json:"proficiency_score"`
	ItemsMastered         int     `json:"items_mastered"`
	ItemsTotal            int     `json:"items_total"`
	DaysSinceLastPractice int     `json:"days_since_last_practice"`
	IsUnlocked            bool    `json:"is_unlocked"`
}

// MasteryRate returns ItemsMastered/ItemsTotal, or 0 for an empty topic.
func (t TopicProficiency) MasteryRate() float64 {
	if t.ItemsTotal <= 0 {
		return 0
	}
	return float64(t.ItemsMastered) / float64(t.ItemsTotal)
}

// WeaknessProfile partitions a user's unlocked topics into four disjoint, ordered buckets.
type WeaknessProfile struct {
	CriticalWeaknesses []TopicProficiency `json:"critical_weaknesses"`
	ModerateWeaknesses []TopicProficiency `json:"moderate_weaknesses"`
	RustingTopics      []TopicProficiency `json:"rusting_topics"`
	StrengthAreas      []TopicProficiency `json:"strength_areas"`
}

type ReadinessScore struct {
	Score            int    `json:"score"`
	ReadyForAdvanced bool   `json:"ready_for_advanced"`
	Message          string `json:"message"`
}

// MasteryEstimate projects how long an item needs to reach mastery.
type MasteryEstimate struct {
	ContentItemID  int64          `json:"content_item_id"`
	Repetitions    int            `json:"repetitions"`
	EaseFactor     float64        `json:"ease_factor"`
	Status         ProgressStatus `json:"status"`
	SessionsPerDay int            `json:"sessions_per_day"`
	DaysToMastery  int            `json:"days_to_mastery"`
}
