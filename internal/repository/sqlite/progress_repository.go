package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	sqlite3 "github.com/mattn/go-sqlite3"
	apperrors "github.com/vytor/learnloop/internal/errors"
	"github.com/vytor/learnloop/internal/logger"
	"github.com/vytor/learnloop/internal/models"
	"github.com/vytor/learnloop/internal/repository"
)

type progressRepository struct {
	db Querier
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db Querier) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Get(ctx context.Context, userID, itemID int64) (*models.ProgressRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("getting progress: user_id=%d, item_id=%d", userID, itemID)

	q, args, err := sqlBuilder.Select(progressColumns...).
		From("progress_records pr").
		Where(squirrel.Eq{"pr.user_id": userID, "pr.content_item_id": itemID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var p models.ProgressRecord
	err = r.db.QueryRowContext(ctx, q, args...).Scan(progressDest(&p)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *progressRepository) Save(ctx context.Context, rec models.ProgressRecord) (models.ProgressRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("saving progress: user_id=%d, item_id=%d, reps=%d, ease=%.2f, interval=%d, version=%d",
		rec.UserID, rec.ContentItemID, rec.Repetitions, rec.EaseFactor, rec.IntervalDays, rec.Version)

	if rec.Version == 0 {
		_, err := r.db.ExecContext(ctx, `
INSERT INTO progress_records (user_id, content_item_id, repetitions, ease_factor, interval_days, next_review_at, status, last_reviewed_at, mastered_at, version)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
`, rec.UserID, rec.ContentItemID, rec.Repetitions, rec.EaseFactor, rec.IntervalDays,
			utc(rec.NextReviewAt), rec.Status, utc(rec.LastReviewedAt), utc(rec.MasteredAt))
		if isDuplicateKey(err) {
			log.Warn("progress inserted concurrently: user_id=%d, item_id=%d", rec.UserID, rec.ContentItemID)
			return rec, apperrors.ErrConflict
		}
		if err != nil {
			log.Error("failed to insert progress: %v", err)
			return rec, err
		}
		rec.Version = 1
		return rec, nil
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE progress_records
SET repetitions = ?, ease_factor = ?, interval_days = ?, next_review_at = ?, status = ?,
    last_reviewed_at = ?, mastered_at = ?, version = version + 1
WHERE user_id = ? AND content_item_id = ? AND version = ?
`, rec.Repetitions, rec.EaseFactor, rec.IntervalDays, utc(rec.NextReviewAt), rec.Status,
		utc(rec.LastReviewedAt), utc(rec.MasteredAt), rec.UserID, rec.ContentItemID, rec.Version)
	if err != nil {
		log.Error("failed to update progress: %v", err)
		return rec, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return rec, err
	} else if n == 0 {
		log.Warn("stale progress write: user_id=%d, item_id=%d, version=%d", rec.UserID, rec.ContentItemID, rec.Version)
		return rec, apperrors.ErrConflict
	}
	rec.Version++
	return rec, nil
}

func (r *progressRepository) DueBefore(ctx context.Context, userID int64, before time.Time, filter models.ContentFilter) ([]models.Candidate, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing due items: user_id=%d, before=%s", userID, before.Format(time.RFC3339))

	query := r.candidates(userID, filter).
		Where(squirrel.Or{
			squirrel.Eq{"pr.next_review_at": nil},
			squirrel.Lt{"pr.next_review_at": before.UTC()},
		}).
		OrderBy("pr.next_review_at ASC", "ci.id ASC")
	return r.queryCandidates(ctx, log, query)
}

func (r *progressRepository) InTopics(ctx context.Context, userID int64, filter models.ContentFilter) ([]models.Candidate, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing items in topics: user_id=%d, topics=%v", userID, filter.TopicSlugs)

	if len(filter.TopicSlugs) == 0 {
		return nil, nil
	}
	query := r.candidates(userID, filter).
		Where(squirrel.NotEq{"pr.status": models.StatusMastered}).
		OrderBy("ci.topic_slug ASC", "pr.ease_factor ASC", "ci.id ASC")
	return r.queryCandidates(ctx, log, query)
}

func (r *progressRepository) MasteredSince(ctx context.Context, userID int64, since time.Time, filter models.ContentFilter) ([]models.Candidate, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing recently mastered items: user_id=%d, since=%s", userID, since.Format(time.RFC3339))

	query := r.candidates(userID, filter).
		Where(squirrel.Eq{"pr.status": models.StatusMastered}).
		Where(squirrel.GtOrEq{"pr.mastered_at": since.UTC()}).
		OrderBy("pr.mastered_at DESC", "ci.id ASC")
	return r.queryCandidates(ctx, log, query)
}

func (r *progressRepository) candidates(userID int64, filter models.ContentFilter) squirrel.SelectBuilder {
	cols := append(append([]string{}, contentColumns...), progressColumns...)
	return applyContentFilter(
		sqlBuilder.Select(cols...).
			From("progress_records pr").
			Join("content_items ci ON ci.id = pr.content_item_id").
			Where(squirrel.Eq{"pr.user_id": userID}),
		filter,
	)
}

func (r *progressRepository) queryCandidates(ctx context.Context, log *logger.Logger, query squirrel.SelectBuilder) ([]models.Candidate, error) {
	q, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		log.Error("failed to query candidates: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			log.Error("failed to scan candidate row: %v", err)
			return nil, err
		}
		out = append(out, c)
	}
	log.Debug("found %d candidates", len(out))
	return out, rows.Err()
}

// isDuplicateKey reports a primary key or unique violation.
func isDuplicateKey(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey || sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
