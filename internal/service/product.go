package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rajgarments/storefront/internal/event"
	"github.com/rajgarments/storefront/internal/model"
	"github.com/rajgarments/storefront/internal/repository"
	"github.com/rajgarments/storefront/internal/storage/cache"
	"github.com/rajgarments/storefront/internal/storage/db"
)

type ListProductsParams struct {
	CategoryID   *int64
	FeaturedOnly bool
}

type CreateProductParams struct {
	Name          string
	Slug          string
	Description   string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	ImageURL      *string
	CategoryID    *int64
	Stock         *int
	Featured      *bool
}

// UpdateProductParams holds a partial update; nil fields are left unchanged.
type UpdateProductParams struct {
	Name          *string
	Slug          *string
	Description   *string
	Price         *decimal.Decimal
	OriginalPrice *decimal.Decimal
	ImageURL      *string
	CategoryID    *int64
	Stock         *int
	Featured      *bool
	IsActive      *bool
}

type ProductService interface {
	ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error)
	SearchProducts(ctx context.Context, query string) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	UpdateProduct(ctx context.Context, id int64, params UpdateProductParams) (model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type productService struct {
	db            db.DB
	productRepo   repository.ProductRepository
	categoryRepo  repository.CategoryRepository
	outboxMsgRepo repository.OutboxMsgRepository
	reads         *readThrough
}

func NewProductService(
	db db.DB,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
	cache cache.Cache,
	logger *slog.Logger,
) ProductService {
	return &productService{
		db:            db,
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		outboxMsgRepo: outboxMsgRepo,
		reads:         newReadThrough(cache, logger.With(slog.String("service", "product"))),
	}
}

func (s *productService) ListProducts(ctx context.Context, params ListProductsParams) ([]model.Product, error) {
	key := cache.KeyProducts(params.CategoryID, params.FeaturedOnly)
	products, err := cachedRead(ctx, s.reads, key, func(ctx context.Context) ([]model.Product, error) {
		return s.productRepo.ListProducts(ctx, repository.ListProductsParams{
			CategoryID:   params.CategoryID,
			FeaturedOnly: params.FeaturedOnly,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("product repository list products: %w", err)
	}

	return products, nil
}

func (s *productService) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	products, err := s.productRepo.SearchProducts(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, fmt.Errorf("product repository search products: %w", err)
	}

	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	product, err := cachedRead(ctx, s.reads, cache.KeyProduct(id), func(ctx context.Context) (model.Product, error) {
		return s.productRepo.GetProduct(ctx, id)
	})
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository get product: %w", err)
	}

	return product, nil
}

func (s *productService) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	var product model.Product
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		if err := s.ensureCategory(ctx, db, params.CategoryID); err != nil {
			return err
		}

		var err error
		product, err = s.productRepo.
			WithDB(db).
			CreateProduct(ctx, repository.CreateProductParams{
				Name:          params.Name,
				Slug:          params.Slug,
				Description:   params.Description,
				Price:         params.Price,
				OriginalPrice: params.OriginalPrice,
				ImageURL:      params.ImageURL,
				CategoryID:    params.CategoryID,
				Stock:         params.Stock,
				Featured:      params.Featured,
			})
		if err != nil {
			return fmt.Errorf("product repository create product: %w", err)
		}

		return publish(ctx, s.outboxMsgRepo.WithDB(db), event.TopicProductCreated, product.ID,
			productChangedEvent(product, categoryIDs(product)))
	}); err != nil {
		return model.Product{}, fmt.Errorf("db with tx: %w", err)
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id int64, params UpdateProductParams) (model.Product, error) {
	var product model.Product
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		productRepo := s.productRepo.WithDB(db)

		before, err := productRepo.GetProduct(ctx, id)
		if err != nil {
			return fmt.Errorf("product repository get product: %w", err)
		}

		if err := s.ensureCategory(ctx, db, params.CategoryID); err != nil {
			return err
		}

		product, err = productRepo.UpdateProduct(ctx, id, repository.UpdateProductParams{
			Name:          params.Name,
			Slug:          params.Slug,
			Description:   params.Description,
			Price:         params.Price,
			OriginalPrice: params.OriginalPrice,
			ImageURL:      params.ImageURL,
			CategoryID:    params.CategoryID,
			Stock:         params.Stock,
			Featured:      params.Featured,
			IsActive:      params.IsActive,
		})
		if err != nil {
			return fmt.Errorf("product repository update product: %w", err)
		}

		return publish(ctx, s.outboxMsgRepo.WithDB(db), event.TopicProductUpdated, product.ID,
			productChangedEvent(product, categoryIDs(before, product)))
	}); err != nil {
		return model.Product{}, fmt.Errorf("db with tx: %w", err)
	}

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		productRepo := s.productRepo.WithDB(db)

		product, err := productRepo.GetProduct(ctx, id)
		if err != nil {
			return fmt.Errorf("product repository get product: %w", err)
		}

		if err := productRepo.DeleteProduct(ctx, id); err != nil {
			return fmt.Errorf("product repository delete product: %w", err)
		}

		return publish(ctx, s.outboxMsgRepo.WithDB(db), event.TopicProductDeleted, id,
			event.ProductDeletedEvent{
				ProductID:   id,
				CategoryIDs: categoryIDs(product),
			})
	}); err != nil {
		return fmt.Errorf("db with tx: %w", err)
	}

	return nil
}

// ensureCategory fails with a not-found error when categoryID names no
// category. A nil id is accepted.
func (s *productService) ensureCategory(ctx context.Context, db db.DB, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.categoryRepo.WithDB(db).GetCategory(ctx, *categoryID); err != nil {
		return fmt.Errorf("category repository get category: %w", err)
	}
	return nil
}

func productChangedEvent(p model.Product, categoryIDs []int64) event.ProductChangedEvent {
	return event.ProductChangedEvent{
		ProductID:   p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Price:       p.Price,
		Featured:    p.IsFeatured(),
		CategoryIDs: categoryIDs,
	}
}

// categoryIDs returns the distinct categories of products.
func categoryIDs(products ...model.Product) []int64 {
	ids := []int64{}
	for _, p := range products {
		if p.CategoryID != nil && !slices.Contains(ids, *p.CategoryID) {
			ids = append(ids, *p.CategoryID)
		}
	}
	return ids
}
