package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rajgarments/storefront/internal/event"
	"github.com/rajgarments/storefront/internal/model"
	"github.com/rajgarments/storefront/internal/repository"
	"github.com/rajgarments/storefront/internal/storage/cache"
	"github.com/rajgarments/storefront/internal/storage/db"
)

type CreateCategoryParams struct {
	Name        string
	Slug        string
	Description string
}

type CategoryService interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, params CreateCategoryParams) (model.Category, error)
}

type categoryService struct {
	db            db.DB
	categoryRepo  repository.CategoryRepository
	outboxMsgRepo repository.OutboxMsgRepository
	reads         *readThrough
}

func NewCategoryService(
	db db.DB,
	categoryRepo repository.CategoryRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
	cache cache.Cache,
	logger *slog.Logger,
) CategoryService {
	return &categoryService{
		db:            db,
		categoryRepo:  categoryRepo,
		outboxMsgRepo: outboxMsgRepo,
		reads:         newReadThrough(cache, logger.With(slog.String("service", "category"))),
	}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := cachedRead(ctx, s.reads, cache.KeyCategories, s.categoryRepo.ListCategories)
	if err != nil {
		return nil, fmt.Errorf("category repository list categories: %w", err)
	}

	return categories, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, params CreateCategoryParams) (model.Category, error) {
	var category model.Category
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		var err error
		category, err = s.categoryRepo.
			WithDB(db).
			CreateCategory(ctx, repository.CreateCategoryParams{
				Name:        params.Name,
				Slug:        params.Slug,
				Description: params.Description,
			})
		if err != nil {
			return fmt.Errorf("category repository create category: %w", err)
		}

		return publish(ctx, s.outboxMsgRepo.WithDB(db), event.TopicCategoryCreated, category.ID,
			event.CategoryCreatedEvent{
				CategoryID: category.ID,
				Slug:       category.Slug,
				Name:       category.Name,
			})
	}); err != nil {
		return model.Category{}, fmt.Errorf("db with tx: %w", err)
	}

	return category, nil
}
