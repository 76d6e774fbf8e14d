package services_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/learnloop/internal/catalog"
	"github.com/vytor/learnloop/internal/errors"
	"github.com/vytor/learnloop/internal/models"
	"github.com/vytor/learnloop/internal/repository"
	"github.com/vytor/learnloop/internal/services"
	"github.com/vytor/learnloop/internal/testutil/mocks"
)

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return cat
}

func TestContentService_Sync(t *testing.T) {
	repo := new(mocks.MockContentRepository)
	tx := &mocks.MockTransactor{Stores: repository.Stores{Content: repo}}
	cat := defaultCatalog(t)

	repo.On("SyncCatalog", mock.Anything, cat.Topics, cat.Items).Return(nil).Once()
	require.NoError(t, services.NewContentService(tx, repo).Sync(context.Background(), cat))
	assert.Equal(t, 1, tx.Calls)

	repo.On("SyncCatalog", mock.Anything, cat.Topics, cat.Items).Return(stderrors.New("locked")).Once()
	err := services.NewContentService(tx, repo).Sync(context.Background(), cat)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInternal, appErr.Code)
	repo.AssertExpectations(t)
}

func TestContentService_Items(t *testing.T) {
	ctx := context.Background()

	t.Run("empty result is not nil", func(t *testing.T) {
		repo := new(mocks.MockContentRepository)
		filter := models.ContentFilter{Pillar: "statistics", MinDifficulty: 2, MaxDifficulty: 3}
		repo.On("List", ctx, filter).Return(nil, nil)

		items, err := services.NewContentService(nil, repo).Items(ctx, filter)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	for _, filter := range []models.ContentFilter{
		{MinDifficulty: -1},
		{MaxDifficulty: 6},
		{MinDifficulty: 4, MaxDifficulty: 2},
	} {
		repo := new(mocks.MockContentRepository)
		_, err := services.NewContentService(nil, repo).Items(ctx, filter)
		appErr, ok := errors.As(err)
		require.True(t, ok, "filter %+v", filter)
		assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
		repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	}
}

func TestContentService_Topics(t *testing.T) {
	repo := new(mocks.MockContentRepository)
	repo.On("ListTopics", mock.Anything).Return([]models.Topic{{Slug: "sql-basics", UnlockLevel: 1}}, nil)

	topics, err := services.NewContentService(nil, repo).Topics(context.Background())
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, "sql-basics", topics[0].Slug)
}
