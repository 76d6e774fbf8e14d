package repository

import (
	"context"
	"time"

	"github.com/vytor/learnloop/internal/models"
)

// ContentRepository handles the read-mostly content catalog
type ContentRepository interface {
	SyncCatalog(ctx context.Context, topics []models.Topic, items []models.ContentItem) error
	ListTopics(ctx context.Context) ([]models.Topic, error)
	List(ctx context.Context, filter models.ContentFilter) ([]models.ContentItem, error)
	Get(ctx context.Context, id int64) (*models.ContentItem, error)
	// Unattempted lists items the user has no progress record for.
	Unattempted(ctx context.Context, userID int64, filter models.ContentFilter) ([]models.ContentItem, error)
}

// ProgressRepository handles per-(user, item) SM-2 state
type ProgressRepository interface {
	Get(ctx context.Context, userID, itemID int64) (*models.ProgressRecord, error)
	// Save inserts when Version is 0, otherwise updates only if the stored
	// version still matches. Returns the record with its new version.
	Save(ctx context.Context, rec models.ProgressRecord) (models.ProgressRecord, error)
	DueBefore(ctx context.Context, userID int64, before time.Time, filter models.ContentFilter) ([]models.Candidate, error)
	InTopics(ctx context.Context, userID int64, filter models.ContentFilter) ([]models.Candidate, error)
	MasteredSince(ctx context.Context, userID int64, since time.Time, filter models.ContentFilter) ([]models.Candidate, error)
}

// ReviewLogRepository handles the append-only attempt history
type ReviewLogRepository interface {
	Insert(ctx context.Context, entry models.ReviewLogEntry) (int64, error)
	Recent(ctx context.Context, userID int64, limit int) ([]models.ReviewLogEntry, error)
	// TopicStats aggregates every topic in the catalog, using the last window
	// reviews per topic for the recent figures.
	TopicStats(ctx context.Context, userID int64, window int) ([]models.TopicStats, error)
}

// SessionRepository handles composed sessions
type SessionRepository interface {
	Create(ctx context.Context, session models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Complete(ctx context.Context, id string, at time.Time) error
}

// GamificationRepository handles per-user reward state
type GamificationRepository interface {
	Get(ctx context.Context, userID int64) (*models.GamificationState, error)
	Save(ctx context.Context, state models.GamificationState) (models.GamificationState, error)
	AddAchievements(ctx context.Context, userID int64, slugs []string, at time.Time) error
	ActiveStreaks(ctx context.Context) ([]models.GamificationState, error)
	ResetStreak(ctx context.Context, userID int64, version int64) error
}

// Stores bundles repositories bound to the same connection or transaction.
type Stores struct {
	Content      ContentRepository
	Progress     ProgressRepository
	Reviews      ReviewLogRepository
	Sessions     SessionRepository
	Gamification GamificationRepository
}

// Transactor runs fn with stores bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(Stores) error) error
}
