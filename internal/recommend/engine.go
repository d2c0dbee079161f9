package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/rajgarments/storefront/internal/model"
)

const (
	StrategyContent       = "content"
	StrategyCollaborative = "collaborative"
	StrategyHybrid        = "hybrid"
	StrategySimilar       = "similar"
)

// ProductFilter narrows a catalog product listing. A nil CategoryID lists
// every category.
type ProductFilter struct {
	CategoryID   *int64
	FeaturedOnly bool
}

// Catalog is the read access the engine needs.
type Catalog interface {
	GetProducts(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	// GetProduct reports false when no product has the given id.
	GetProduct(ctx context.Context, id int64) (model.Product, bool, error)
	GetCartItems(ctx context.Context, userID string) ([]model.CartItem, error)
}

// Engine computes product recommendations. It is stateless and safe for
// concurrent use.
type Engine struct {
	catalog        Catalog
	popularity     PopularitySource
	priceTolerance decimal.Decimal
	logger         *slog.Logger
}

type Option func(*Engine)

// WithPopularitySource replaces the stock-based popularity heuristic.
func WithPopularitySource(src PopularitySource) Option {
	return func(e *Engine) {
		e.popularity = src
	}
}

func NewEngine(catalog Catalog, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		catalog:        catalog,
		popularity:     StockPopularity{},
		priceTolerance: DefaultPriceTolerance,
		logger:         logger.With(slog.String("service", "recommend")),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ContentBased recommends products from the categories of the user's cart,
// featured first and newest next. An empty cart yields featured products.
func (e *Engine) ContentBased(ctx context.Context, userID string, limit int) []model.Product {
	requestsTotal.WithLabelValues(StrategyContent).Inc()
	return e.contentRanked(ctx, userID, limit)
}

func (e *Engine) contentRanked(ctx context.Context, userID string, limit int) []model.Product {
	products, err := e.contentBased(ctx, userID)
	if err != nil {
		return e.fallback(ctx, StrategyContent, err, limit)
	}
	if products == nil {
		fallbacksTotal.WithLabelValues(StrategyContent, "no_history").Inc()
		return e.featured(ctx, StrategyContent, limit)
	}

	return truncate(products, limit)
}

// contentBased returns nil products when the cart references no category.
func (e *Engine) contentBased(ctx context.Context, userID string) ([]model.Product, error) {
	items, err := e.catalog.GetCartItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart items: %w", err)
	}

	categoryIDs := cartCategories(items)
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	perCategory := make([][]model.Product, len(categoryIDs))
	errs := make([]error, len(categoryIDs))
	var wg sync.WaitGroup
	for i, id := range categoryIDs {
		wg.Go(func() {
			perCategory[i], errs[i] = e.catalog.GetProducts(ctx, ProductFilter{CategoryID: &id})
		})
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("get category products: %w", err)
	}

	products := Dedup(slices.Concat(perCategory...))
	slices.SortStableFunc(products, compareFeaturedRecent)

	return products, nil
}

// cartCategories returns the distinct category ids of the cart in cart order.
func cartCategories(items []model.CartItem) []int64 {
	var ids []int64
	for _, item := range items {
		id := item.Product.CategoryID
		if id == nil || slices.Contains(ids, *id) {
			continue
		}
		ids = append(ids, *id)
	}
	return ids
}

// Collaborative recommends the most popular in-stock or featured products.
// userID is accepted for symmetry with the other strategies; every user
// gets the same result.
func (e *Engine) Collaborative(ctx context.Context, userID string, limit int) []model.Product {
	requestsTotal.WithLabelValues(StrategyCollaborative).Inc()
	return e.collaborativeRanked(ctx, limit)
}

func (e *Engine) collaborativeRanked(ctx context.Context, limit int) []model.Product {
	all, err := e.catalog.GetProducts(ctx, ProductFilter{})
	if err != nil {
		return e.fallback(ctx, StrategyCollaborative, fmt.Errorf("get products: %w", err), limit)
	}

	popular := make([]model.Product, 0, len(all))
	for _, p := range all {
		if p.IsFeatured() || p.StockOrZero() > 0 {
			popular = append(popular, p)
		}
	}
	slices.SortStableFunc(popular, comparePopularity(e.popularity))

	return truncate(popular, limit)
}

// Hybrid merges content-based and collaborative results, content-based
// first, without duplicates. Each strategy is asked for half of limit,
// rounded up, and both run concurrently.
func (e *Engine) Hybrid(ctx context.Context, userID string, limit int) []model.Product {
	requestsTotal.WithLabelValues(StrategyHybrid).Inc()

	if limit <= 0 {
		return []model.Product{}
	}
	half := (limit + 1) / 2

	var (
		content, collaborative []model.Product
		wg                     sync.WaitGroup
	)
	wg.Go(func() {
		content = e.contentRanked(ctx, userID, half)
	})
	wg.Go(func() {
		collaborative = e.collaborativeRanked(ctx, half)
	})
	wg.Wait()

	return truncate(Dedup(slices.Concat(content, collaborative)), limit)
}

// Similar recommends other products of the same category whose price lies
// within the price tolerance of the target, closest price first. A missing
// target yields no recommendations.
func (e *Engine) Similar(ctx context.Context, productID int64, limit int) []model.Product {
	requestsTotal.WithLabelValues(StrategySimilar).Inc()

	products, err := e.similar(ctx, productID)
	if err != nil {
		fallbacksTotal.WithLabelValues(StrategySimilar, "catalog_error").Inc()
		e.logger.WarnContext(ctx, "similar products unavailable",
			slog.Int64("product_id", productID),
			slog.Any("error", err),
		)
		return []model.Product{}
	}

	return truncate(products, limit)
}

func (e *Engine) similar(ctx context.Context, productID int64) ([]model.Product, error) {
	target, found, err := e.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if !found {
		return nil, nil
	}

	candidates, err := e.catalog.GetProducts(ctx, ProductFilter{CategoryID: target.CategoryID})
	if err != nil {
		return nil, fmt.Errorf("get category products: %w", err)
	}

	similar := make([]model.Product, 0, len(candidates))
	for _, p := range candidates {
		if p.ID != target.ID && PriceSimilar(p, target.Price, e.priceTolerance) {
			similar = append(similar, p)
		}
	}
	slices.SortStableFunc(similar, func(a, b model.Product) int {
		return priceDistance(a, target.Price).Cmp(priceDistance(b, target.Price))
	})

	return similar, nil
}

func (e *Engine) fallback(ctx context.Context, strategy string, cause error, limit int) []model.Product {
	fallbacksTotal.WithLabelValues(strategy, "catalog_error").Inc()
	e.logger.WarnContext(ctx, "recommendation failed, serving featured products",
		slog.String("strategy", strategy),
		slog.Any("error", cause),
	)
	return e.featured(ctx, strategy, limit)
}

// featured returns the featured products, or nothing when they cannot be
// read either.
func (e *Engine) featured(ctx context.Context, strategy string, limit int) []model.Product {
	products, err := e.catalog.GetProducts(ctx, ProductFilter{FeaturedOnly: true})
	if err != nil {
		fallbacksTotal.WithLabelValues(strategy, "featured_error").Inc()
		e.logger.ErrorContext(ctx, "featured products unavailable",
			slog.String("strategy", strategy),
			slog.Any("error", err),
		)
		return []model.Product{}
	}
	return truncate(products, limit)
}
