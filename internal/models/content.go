package models

// ContentItem is an immutable catalog entry authored outside the engine.
type ContentItem struct {
	ID               int64  `json:"id"`
	Slug             string `json:"slug"`
	TopicSlug        string `json:"topic_slug"`
	Pillar           string `json:"pillar"`
	Difficulty       int    `json:"difficulty"`
	EstimatedSeconds int    `json:"estimated_seconds"`
	XPValue          int    `json:"xp_value"`
	DisplayOrder     int    `json:"display_order"`
}

// Topic groups content items. A topic unlocks once the learner reaches UnlockLevel.
type Topic struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Pillar      string `json:"pillar"`
	UnlockLevel int    `json:"unlock_level"`
}

type ContentFilter struct {
	TopicSlugs    []string
	Pillar        string
	MinDifficulty int
	MaxDifficulty int
	Limit         int
}
