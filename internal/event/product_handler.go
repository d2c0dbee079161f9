package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rajgarments/storefront/internal/storage/cache"
)

func (s *Service) handleProductChanged(ctx context.Context, topic string, ev ProductChangedEvent) error {
	s.logger.InfoContext(ctx, "handling product event",
		slog.String("topic", topic),
		slog.Int64("product_id", ev.ProductID),
	)

	return s.evictProduct(ctx, ev.ProductID, ev.CategoryIDs)
}

func (s *Service) handleProductDeleted(ctx context.Context, topic string, ev ProductDeletedEvent) error {
	s.logger.InfoContext(ctx, "handling product event",
		slog.String("topic", topic),
		slog.Int64("product_id", ev.ProductID),
	)

	return s.evictProduct(ctx, ev.ProductID, ev.CategoryIDs)
}

func (s *Service) evictProduct(ctx context.Context, productID int64, categoryIDs []int64) error {
	keys := append(cache.ProductListKeys(categoryIDs...), cache.KeyProduct(productID))
	if err := s.cache.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("evict product cache: %w", err)
	}

	return nil
}
