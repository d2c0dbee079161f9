package event

import (
	"context"
	"log/slog"
)

func (s *Service) handleOrderCreated(ctx context.Context, _ string, ev OrderCreatedEvent) error {
	s.logger.InfoContext(ctx, "order placed",
		slog.Int64("order_id", ev.OrderID),
		slog.String("user_id", ev.UserID),
		slog.String("total", ev.Total.StringFixed(2)),
		slog.Int("item_count", ev.ItemCount),
	)
	return nil
}
