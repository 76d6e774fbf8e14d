package sqlite

import (
	"context"
	"database/sql"

	"github.com/vytor/learnloop/internal/logger"
	"github.com/vytor/learnloop/internal/models"
	"github.com/vytor/learnloop/internal/repository"
)

type reviewLogRepository struct {
	db Querier
}

// NewReviewLogRepository creates a new ReviewLogRepository implementation
func NewReviewLogRepository(db Querier) repository.ReviewLogRepository {
	return &reviewLogRepository{db: db}
}

func (r *reviewLogRepository) Insert(ctx context.Context, e models.ReviewLogEntry) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("review_log_repo")
	log.Debug("inserting review: user_id=%d, item_id=%d, quality=%d", e.UserID, e.ContentItemID, e.Quality)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO review_log (user_id, content_item_id, quality, was_correct, response_time_ms, hints_used, reviewed_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, e.UserID, e.ContentItemID, e.Quality, e.WasCorrect, e.ResponseTimeMs, e.HintsUsed, e.ReviewedAt.UTC())
	if err != nil {
		log.Error("failed to insert review: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get review id: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *reviewLogRepository) Recent(ctx context.Context, userID int64, limit int) ([]models.ReviewLogEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("review_log_repo")
	log.Debug("listing recent reviews: user_id=%d, limit=%d", userID, limit)

	if limit <= 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT rl.id, rl.user_id, rl.content_item_id, ci.topic_slug, ci.difficulty, rl.quality, rl.was_correct,
       rl.response_time_ms, rl.hints_used, rl.reviewed_at
FROM review_log rl
JOIN content_items ci ON ci.id = rl.content_item_id
WHERE rl.user_id = ?
ORDER BY rl.reviewed_at DESC, rl.id DESC
LIMIT ?
`, userID, limit)
	if err != nil {
		log.Error("failed to list reviews: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.ReviewLogEntry
	for rows.Next() {
		var e models.ReviewLogEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.ContentItemID, &e.TopicSlug, &e.Difficulty, &e.Quality, &e.WasCorrect,
			&e.ResponseTimeMs, &e.HintsUsed, &e.ReviewedAt); err != nil {
			log.Error("failed to scan review row: %v", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	log.Debug("found %d reviews", len(entries))
	return entries, rows.Err()
}

func (r *reviewLogRepository) TopicStats(ctx context.Context, userID int64, window int) ([]models.TopicStats, error) {
	log := logger.FromContext(ctx).WithPrefix("review_log_repo")
	log.Debug("aggregating topic stats: user_id=%d, window=%d", userID, window)

	rows, err := r.db.QueryContext(ctx, `
WITH ranked AS (
    SELECT ci.topic_slug, rl.quality, rl.was_correct, rl.reviewed_at,
           ROW_NUMBER() OVER (PARTITION BY ci.topic_slug ORDER BY rl.reviewed_at DESC, rl.id DESC) AS rn
    FROM review_log rl
    JOIN content_items ci ON ci.id = rl.content_item_id
    WHERE rl.user_id = ?
),
recent AS (
    SELECT topic_slug, COUNT(*) AS attempts, SUM(was_correct) AS correct, SUM(quality) AS quality_sum
    FROM ranked
    WHERE rn <= ?
    GROUP BY topic_slug
),
latest AS (
    SELECT topic_slug, MAX(reviewed_at) AS practiced_at
    FROM ranked
    GROUP BY topic_slug
),
items AS (
    SELECT ci.topic_slug, COUNT(*) AS total,
           SUM(CASE WHEN pr.status = 'mastered' THEN 1 ELSE 0 END) AS mastered
    FROM content_items ci
    LEFT JOIN progress_records pr ON pr.content_item_id = ci.id AND pr.user_id = ?
    GROUP BY ci.topic_slug
)
SELECT t.slug, COALESCE(i.total, 0), COALESCE(i.mastered, 0), COALESCE(r.attempts, 0),
       COALESCE(r.correct, 0), COALESCE(r.quality_sum, 0), l.practiced_at
FROM topics t
LEFT JOIN items i ON i.topic_slug = t.slug
LEFT JOIN recent r ON r.topic_slug = t.slug
LEFT JOIN latest l ON l.topic_slug = t.slug
ORDER BY t.slug ASC
`, userID, window, userID)
	if err != nil {
		log.Error("failed to aggregate topic stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.TopicStats
	for rows.Next() {
		var s models.TopicStats
		var practiced sql.NullString
		if err := rows.Scan(&s.TopicSlug, &s.ItemsTotal, &s.ItemsMastered, &s.RecentAttempts,
			&s.RecentCorrect, &s.QualitySum, &practiced); err != nil {
			log.Error("failed to scan topic stats row: %v", err)
			return nil, err
		}
		s.LastPracticed = parseTimestamp(practiced)
		stats = append(stats, s)
	}
	log.Debug("aggregated %d topics", len(stats))
	return stats, rows.Err()
}
