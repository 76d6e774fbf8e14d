package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	apperrors "github.com/vytor/learnloop/internal/errors"
	"github.com/vytor/learnloop/internal/models"
	"github.com/vytor/learnloop/internal/repository"
	"github.com/vytor/learnloop/internal/repository/sqlite"
	"github.com/vytor/learnloop/internal/testutil"
)

type SessionRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.SessionRepository
	ids  map[string]int64
}

func (s *SessionRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewSessionRepository(s.db)
	s.ids = seedCatalog(&s.Suite, s.db)
}

func (s *SessionRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *SessionRepositorySuite) TestCreateGetComplete() {
	ctx := context.Background()
	created := time.Date(2024, 11, 20, 8, 0, 0, 0, time.UTC)

	err := s.repo.Create(ctx, models.Session{
		ID:            "7d1f0c1e-2b7a-4e43-9a53-0d2f5a0c9b11",
		UserID:        3,
		SessionType:   models.SessionPractice,
		TargetMinutes: 10,
		CreatedAt:     created,
		Items: []models.SessionEntry{
			{Position: 0, ContentItemID: s.ids["select-1"], SelectionReason: models.ReasonReviewDue, Priority: 42.5},
			{Position: 1, ContentItemID: s.ids["stats-1"], SelectionReason: models.ReasonNew, Priority: 5},
		},
	})
	s.Require().NoError(err)

	got, err := s.repo.Get(ctx, "7d1f0c1e-2b7a-4e43-9a53-0d2f5a0c9b11")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(int64(3), got.UserID)
	s.Assert().Equal(models.SessionPractice, got.SessionType)
	s.Assert().True(got.CreatedAt.Equal(created))
	s.Assert().Nil(got.CompletedAt)
	s.Require().Len(got.Items, 2)
	s.Assert().Equal(models.ReasonReviewDue, got.Items[0].SelectionReason)
	s.Assert().Equal(42.5, got.Items[0].Priority)
	s.Assert().Equal(s.ids["stats-1"], got.Items[1].ContentItemID)

	s.Require().NoError(s.repo.Complete(ctx, got.ID, created.Add(10*time.Minute)))
	err = s.repo.Complete(ctx, got.ID, created.Add(11*time.Minute))
	s.Assert().True(errors.Is(err, apperrors.ErrConflict))

	got, err = s.repo.Get(ctx, got.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got.CompletedAt)
}

func (s *SessionRepositorySuite) TestGetMissing() {
	got, err := s.repo.Get(context.Background(), "missing")
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func TestSessionRepositorySuite(t *testing.T) {
	suite.Run(t, new(SessionRepositorySuite))
}
