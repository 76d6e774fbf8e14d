package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/learnloop/internal/models"
	"github.com/vytor/learnloop/internal/repository"
	"github.com/vytor/learnloop/internal/repository/sqlite"
	"github.com/vytor/learnloop/internal/testutil"
)

var fixtureTopics = []models.Topic{
	{Slug: "joins", Name: "Joins", Pillar: "querying", UnlockLevel: 2},
	{Slug: "select", Name: "Select", Pillar: "querying", UnlockLevel: 1},
	{Slug: "stats", Name: "Stats", Pillar: "statistics", UnlockLevel: 1},
}

var fixtureItems = []models.ContentItem{
	{Slug: "select-1", TopicSlug: "select", Pillar: "querying", Difficulty: 1, EstimatedSeconds: 30, XPValue: 5, DisplayOrder: 1},
	{Slug: "select-2", TopicSlug: "select", Pillar: "querying", Difficulty: 2, EstimatedSeconds: 40, XPValue: 7, DisplayOrder: 2},
	{Slug: "joins-1", TopicSlug: "joins", Pillar: "querying", Difficulty: 3, EstimatedSeconds: 50, XPValue: 9, DisplayOrder: 1},
	{Slug: "stats-1", TopicSlug: "stats", Pillar: "statistics", Difficulty: 1, EstimatedSeconds: 30, XPValue: 5, DisplayOrder: 1},
	{Slug: "stats-2", TopicSlug: "stats", Pillar: "statistics", Difficulty: 4, EstimatedSeconds: 60, XPValue: 11, DisplayOrder: 2},
}

// seedCatalog syncs the fixtures and returns item ids keyed by slug.
func seedCatalog(s *suite.Suite, db *sql.DB) map[string]int64 {
	ctx := context.Background()
	repo := sqlite.NewContentRepository(db)
	s.Require().NoError(repo.SyncCatalog(ctx, fixtureTopics, fixtureItems))

	items, err := repo.List(ctx, models.ContentFilter{})
	s.Require().NoError(err)

	ids := make(map[string]int64, len(items))
	for _, it := range items {
		ids[it.Slug] = it.ID
	}
	return ids
}

type ContentRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ContentRepository
	ids  map[string]int64
}

func (s *ContentRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewContentRepository(s.db)
	s.ids = seedCatalog(&s.Suite, s.db)
}

func (s *ContentRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ContentRepositorySuite) TestSyncCatalogKeepsIDs() {
	ctx := context.Background()

	updated := append([]models.ContentItem(nil), fixtureItems...)
	updated[0].Difficulty = 2
	s.Require().NoError(s.repo.SyncCatalog(ctx, fixtureTopics, updated))

	item, err := s.repo.Get(ctx, s.ids["select-1"])
	s.Require().NoError(err)
	s.Require().NotNil(item)
	s.Assert().Equal("select-1", item.Slug)
	s.Assert().Equal(2, item.Difficulty)

	all, err := s.repo.List(ctx, models.ContentFilter{})
	s.Require().NoError(err)
	s.Assert().Len(all, len(fixtureItems))
}

func (s *ContentRepositorySuite) TestListTopics() {
	topics, err := s.repo.ListTopics(context.Background())
	s.Require().NoError(err)
	s.Require().Len(topics, 3)
	s.Assert().Equal("select", topics[0].Slug)
	s.Assert().Equal("stats", topics[1].Slug)
	s.Assert().Equal("joins", topics[2].Slug)
}

func (s *ContentRepositorySuite) TestListFilters() {
	ctx := context.Background()

	byPillar, err := s.repo.List(ctx, models.ContentFilter{Pillar: "statistics"})
	s.Require().NoError(err)
	s.Assert().Len(byPillar, 2)

	byTopic, err := s.repo.List(ctx, models.ContentFilter{TopicSlugs: []string{"select", "joins"}, MaxDifficulty: 2})
	s.Require().NoError(err)
	s.Require().Len(byTopic, 2)
	s.Assert().Equal("select-1", byTopic[0].Slug)
	s.Assert().Equal("select-2", byTopic[1].Slug)

	limited, err := s.repo.List(ctx, models.ContentFilter{MinDifficulty: 3, Limit: 1})
	s.Require().NoError(err)
	s.Require().Len(limited, 1)
	s.Assert().GreaterOrEqual(limited[0].Difficulty, 3)
}

func (s *ContentRepositorySuite) TestGetMissing() {
	item, err := s.repo.Get(context.Background(), 9999)
	s.Require().NoError(err)
	s.Assert().Nil(item)
}

func (s *ContentRepositorySuite) TestUnattempted() {
	ctx := context.Background()
	progress := sqlite.NewProgressRepository(s.db)
	_, err := progress.Save(ctx, models.ProgressRecord{
		UserID: 1, ContentItemID: s.ids["select-1"], EaseFactor: 2.5, Status: models.StatusLearning,
	})
	s.Require().NoError(err)

	items, err := s.repo.Unattempted(ctx, 1, models.ContentFilter{Pillar: "querying"})
	s.Require().NoError(err)
	s.Require().Len(items, 2)
	s.Assert().Equal("select-2", items[0].Slug)
	s.Assert().Equal("joins-1", items[1].Slug)

	other, err := s.repo.Unattempted(ctx, 2, models.ContentFilter{})
	s.Require().NoError(err)
	s.Assert().Len(other, len(fixtureItems))
}

func TestContentRepositorySuite(t *testing.T) {
	suite.Run(t, new(ContentRepositorySuite))
}
