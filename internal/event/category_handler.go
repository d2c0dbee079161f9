package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rajgarments/storefront/internal/storage/cache"
)

func (s *Service) handleCategoryCreated(ctx context.Context, _ string, ev CategoryCreatedEvent) error {
	s.logger.InfoContext(ctx, "handling category created event",
		slog.Int64("category_id", ev.CategoryID),
		slog.String("slug", ev.Slug),
	)

	if err := s.cache.Delete(ctx, cache.KeyCategories); err != nil {
		return fmt.Errorf("evict category cache: %w", err)
	}

	return nil
}
