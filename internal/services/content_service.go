package services

import (
	"context"

	"github.com/vytor/learnloop/internal/catalog"
	"github.com/vytor/learnloop/internal/errors"
	"github.com/vytor/learnloop/internal/logger"
	"github.com/vytor/learnloop/internal/models"
	"github.com/vytor/learnloop/internal/repository"
)

// ContentService exposes the read-only content catalog
type ContentService interface {
	Sync(ctx context.Context, cat *catalog.Catalog) error
	Topics(ctx context.Context) ([]models.Topic, error)
	Items(ctx context.Context, filter models.ContentFilter) ([]models.ContentItem, error)
}

type contentService struct {
	tx   repository.Transactor
	repo repository.ContentRepository
}

// NewContentService creates a new ContentService
func NewContentService(tx repository.Transactor, repo repository.ContentRepository) ContentService {
	return &contentService{tx: tx, repo: repo}
}

// Sync loads the authored catalog into the content store in one transaction.
func (s *contentService) Sync(ctx context.Context, cat *catalog.Catalog) error {
	log := logger.FromContext(ctx).WithPrefix("content_service")
	log.Info("syncing catalog: topics=%d, items=%d", len(cat.Topics), len(cat.Items))

	err := s.tx.WithinTx(ctx, func(st repository.Stores) error {
		return st.Content.SyncCatalog(ctx, cat.Topics, cat.Items)
	})
	if err != nil {
		log.Error("failed to sync catalog: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *contentService) Topics(ctx context.Context) ([]models.Topic, error) {
	topics, err := s.repo.ListTopics(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list topics: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if topics == nil {
		topics = []models.Topic{}
	}
	return topics, nil
}

func (s *contentService) Items(ctx context.Context, filter models.ContentFilter) ([]models.ContentItem, error) {
	if filter.MinDifficulty < 0 || filter.MaxDifficulty > 5 || (filter.MaxDifficulty > 0 && filter.MinDifficulty > filter.MaxDifficulty) {
		return nil, errors.NewValidationError("difficulty", "range must lie within 1-5")
	}
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list content: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if items == nil {
		items = []models.ContentItem{}
	}
	return items, nil
}
