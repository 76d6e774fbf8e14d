package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/vytor/learnloop/internal/logger"
	"github.com/vytor/learnloop/internal/models"
	"github.com/vytor/learnloop/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NewStores binds every repository to q.
func NewStores(q Querier) repository.Stores {
	return repository.Stores{
		Content:      NewContentRepository(q),
		Progress:     NewProgressRepository(q),
		Reviews:      NewReviewLogRepository(q),
		Sessions:     NewSessionRepository(q),
		Gamification: NewGamificationRepository(q),
	}
}

type transactor struct {
	db *sql.DB
}

// NewTransactor creates a Transactor backed by db
func NewTransactor(db *sql.DB) repository.Transactor {
	return &transactor{db: db}
}

func (t *transactor) WithinTx(ctx context.Context, fn func(repository.Stores) error) error {
	return tx(ctx, t.db, func(tx *sql.Tx) error {
		return fn(NewStores(tx))
	})
}

func tx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	log := logger.FromContext(ctx).WithPrefix("repo")
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		log.Debug("transaction rolled back due to error: %v", err)
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction: %v", err)
		return err
	}
	log.Debug("transaction committed")
	return nil
}

// applyContentFilter narrows a query joined on content_items (aliased ci).
func applyContentFilter(q squirrel.SelectBuilder, f models.ContentFilter) squirrel.SelectBuilder {
	if len(f.TopicSlugs) > 0 {
		q = q.Where(squirrel.Eq{"ci.topic_slug": f.TopicSlugs})
	}
	if f.Pillar != "" {
		q = q.Where(squirrel.Eq{"ci.pillar": f.Pillar})
	}
	if f.MinDifficulty > 0 {
		q = q.Where(squirrel.GtOrEq{"ci.difficulty": f.MinDifficulty})
	}
	if f.MaxDifficulty > 0 {
		q = q.Where(squirrel.LtOrEq{"ci.difficulty": f.MaxDifficulty})
	}
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	return q
}

var contentColumns = []string{
	"ci.id", "ci.slug", "ci.topic_slug", "ci.pillar", "ci.difficulty",
	"ci.estimated_seconds", "ci.xp_value", "ci.display_order",
}

var progressColumns = []string{
	"pr.user_id", "pr.content_item_id", "pr.repetitions", "pr.ease_factor", "pr.interval_days",
	"pr.next_review_at", "pr.status", "pr.last_reviewed_at", "pr.mastered_at", "pr.version",
}

type scanner interface {
	Scan(dest ...any) error
}

func contentDest(c *models.ContentItem) []any {
	return []any{&c.ID, &c.Slug, &c.TopicSlug, &c.Pillar, &c.Difficulty, &c.EstimatedSeconds, &c.XPValue, &c.DisplayOrder}
}

func progressDest(p *models.ProgressRecord) []any {
	return []any{&p.UserID, &p.ContentItemID, &p.Repetitions, &p.EaseFactor, &p.IntervalDays,
		&p.NextReviewAt, &p.Status, &p.LastReviewedAt, &p.MasteredAt, &p.Version}
}

func scanCandidate(s scanner) (models.Candidate, error) {
	var c models.Candidate
	var p models.ProgressRecord
	dest := append(contentDest(&c.Item), progressDest(&p)...)
	if err := s.Scan(dest...); err != nil {
		return c, err
	}
	c.Progress = &p
	return c, nil
}

// utc normalizes optional timestamps before binding so stored values compare lexically.
func utc(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

// parseTimestamp reads a DATETIME value that lost its column type, such as the
// result of an aggregate.
func parseTimestamp(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	v := strings.TrimSuffix(s.String, "Z")
	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
