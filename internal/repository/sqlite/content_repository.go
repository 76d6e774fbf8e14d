package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/learnloop/internal/logger"
	"github.com/vytor/learnloop/internal/models"
	"github.com/vytor/learnloop/internal/repository"
)

type contentRepository struct {
	db Querier
}

// NewContentRepository creates a new ContentRepository implementation
func NewContentRepository(db Querier) repository.ContentRepository {
	return &contentRepository{db: db}
}

// SyncCatalog upserts topics and items by slug. Existing item ids are kept so
// progress records stay attached across catalog reloads.
func (r *contentRepository) SyncCatalog(ctx context.Context, topics []models.Topic, items []models.ContentItem) error {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("syncing catalog: topics=%d, items=%d", len(topics), len(items))

	for _, t := range topics {
		_, err := r.db.ExecContext(ctx, `
INSERT INTO topics (slug, name, pillar, unlock_level)
VALUES (?, ?, ?, ?)
ON CONFLICT(slug) DO UPDATE SET name = excluded.name, pillar = excluded.pillar, unlock_level = excluded.unlock_level
`, t.Slug, t.Name, t.Pillar, t.UnlockLevel)
		if err != nil {
			log.Error("failed to upsert topic %s: %v", t.Slug, err)
			return err
		}
	}

	for _, it := range items {
		_, err := r.db.ExecContext(ctx, `
INSERT INTO content_items (slug, topic_slug, pillar, difficulty, estimated_seconds, xp_value, display_order)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(slug) DO UPDATE SET
    topic_slug = excluded.topic_slug,
    pillar = excluded.pillar,
    difficulty = excluded.difficulty,
    estimated_seconds = excluded.estimated_seconds,
    xp_value = excluded.xp_value,
    display_order = excluded.display_order
`, it.Slug, it.TopicSlug, it.Pillar, it.Difficulty, it.EstimatedSeconds, it.XPValue, it.DisplayOrder)
		if err != nil {
			log.Error("failed to upsert item %s: %v", it.Slug, err)
			return err
		}
	}

	log.Debug("catalog synced")
	return nil
}

func (r *contentRepository) ListTopics(ctx context.Context) ([]models.Topic, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT slug, name, pillar, unlock_level
FROM topics
ORDER BY unlock_level ASC, slug ASC
`)
	if err != nil {
		log.Error("failed to list topics: %v", err)
		return nil, err
	}
	defer rows.Close()

	var topics []models.Topic
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.Slug, &t.Name, &t.Pillar, &t.UnlockLevel); err != nil {
			log.Error("failed to scan topic row: %v", err)
			return nil, err
		}
		topics = append(topics, t)
	}
	log.Debug("found %d topics", len(topics))
	return topics, rows.Err()
}

func (r *contentRepository) List(ctx context.Context, filter models.ContentFilter) ([]models.ContentItem, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("listing content: topics=%v, pillar=%s, difficulty=%d-%d",
		filter.TopicSlugs, filter.Pillar, filter.MinDifficulty, filter.MaxDifficulty)

	query := applyContentFilter(
		sqlBuilder.Select(contentColumns...).From("content_items ci"),
		filter,
	).OrderBy("ci.topic_slug ASC", "ci.display_order ASC", "ci.id ASC")

	return r.queryItems(ctx, log, query)
}

func (r *contentRepository) Get(ctx context.Context, id int64) (*models.ContentItem, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("getting content item: id=%d", id)

	query := sqlBuilder.Select(contentColumns...).From("content_items ci").Where(squirrel.Eq{"ci.id": id})
	q, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var c models.ContentItem
	err = r.db.QueryRowContext(ctx, q, args...).Scan(contentDest(&c)...)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("content item not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get content item: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *contentRepository) Unattempted(ctx context.Context, userID int64, filter models.ContentFilter) ([]models.ContentItem, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("listing unattempted content: user_id=%d", userID)

	query := applyContentFilter(
		sqlBuilder.Select(contentColumns...).
			From("content_items ci").
			LeftJoin("progress_records pr ON pr.content_item_id = ci.id AND pr.user_id = ?", userID).
			Where("pr.content_item_id IS NULL"),
		filter,
	).OrderBy("ci.difficulty ASC", "ci.display_order ASC", "ci.id ASC")

	return r.queryItems(ctx, log, query)
}

func (r *contentRepository) queryItems(ctx context.Context, log *logger.Logger, query squirrel.SelectBuilder) ([]models.ContentItem, error) {
	q, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		log.Error("failed to query content: %v", err)
		return nil, err
	}
	defer rows.Close()

	var items []models.ContentItem
	for rows.Next() {
		var c models.ContentItem
		if err := rows.Scan(contentDest(&c)...); err != nil {
			log.Error("failed to scan content row: %v", err)
			return nil, err
		}
		items = append(items, c)
	}
	log.Debug("found %d content items", len(items))
	return items, rows.Err()
}
