package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	apperrors "github.com/vytor/learnloop/internal/errors"
	"github.com/vytor/learnloop/internal/logger"
	"github.com/vytor/learnloop/internal/models"
	"github.com/vytor/learnloop/internal/repository"
)

type sessionRepository struct {
	db Querier
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db Querier) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, s models.Session) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("creating session: id=%s, user_id=%d, items=%d", s.ID, s.UserID, len(s.Items))

	_, err := r.db.ExecContext(ctx, `
INSERT INTO sessions (id, user_id, session_type, target_minutes, created_at)
VALUES (?, ?, ?, ?, ?)
`, s.ID, s.UserID, s.SessionType, s.TargetMinutes, s.CreatedAt.UTC())
	if err != nil {
		log.Error("failed to insert session: %v", err)
		return err
	}

	for _, it := range s.Items {
		_, err := r.db.ExecContext(ctx, `
INSERT INTO session_items (session_id, position, content_item_id, selection_reason, priority)
VALUES (?, ?, ?, ?, ?)
`, s.ID, it.Position, it.ContentItemID, it.SelectionReason, it.Priority)
		if err != nil {
			log.Error("failed to insert session item %d: %v", it.Position, err)
			return err
		}
	}
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("getting session: id=%s", id)

	var s models.Session
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, session_type, target_minutes, created_at, completed_at
FROM sessions
WHERE id = ?
`, id).Scan(&s.ID, &s.UserID, &s.SessionType, &s.TargetMinutes, &s.CreatedAt, &s.CompletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("session not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get session: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT position, content_item_id, selection_reason, priority
FROM session_items
WHERE session_id = ?
ORDER BY position ASC
`, id)
	if err != nil {
		log.Error("failed to list session items: %v", err)
		return nil, err
	}
	defer rows.Close()

	s.Items = []models.SessionEntry{}
	for rows.Next() {
		var e models.SessionEntry
		if err := rows.Scan(&e.Position, &e.ContentItemID, &e.SelectionReason, &e.Priority); err != nil {
			log.Error("failed to scan session item row: %v", err)
			return nil, err
		}
		s.Items = append(s.Items, e)
	}
	return &s, rows.Err()
}

// Complete closes an open session. Completing it twice is a conflict.
func (r *sessionRepository) Complete(ctx context.Context, id string, at time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("completing session: id=%s", id)

	res, err := r.db.ExecContext(ctx, `UPDATE sessions SET completed_at = ? WHERE id = ? AND completed_at IS NULL`, at.UTC(), id)
	if err != nil {
		log.Error("failed to complete session: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		log.Warn("session already completed or missing: id=%s", id)
		return apperrors.ErrConflict
	}
	return nil
}
