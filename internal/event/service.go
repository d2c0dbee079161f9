package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/rajgarments/storefront/internal/storage/cache"
	"github.com/rajgarments/storefront/internal/storage/mq"
)

// Service consumes storefront events and keeps cached catalog reads in step
// with writes.
type Service struct {
	logger     *slog.Logger
	mqConsumer mq.Consumer
	cache      cache.Cache
}

// New creates a new event service.
func New(
	logger *slog.Logger,
	mqConsumer mq.Consumer,
	cache cache.Cache,
) *Service {
	return &Service{
		logger:     logger.With(slog.String("service", "event")),
		mqConsumer: mqConsumer,
		cache:      cache,
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	handlers := map[string]mq.HandlerFunc{
		TopicProductCreated:  jsonHandler(s.handleProductChanged),
		TopicProductUpdated:  jsonHandler(s.handleProductChanged),
		TopicProductDeleted:  jsonHandler(s.handleProductDeleted),
		TopicCategoryCreated: jsonHandler(s.handleCategoryCreated),
		TopicOrderCreated:    jsonHandler(s.handleOrderCreated),
	}
	for topic, handler := range handlers {
		if err := s.mqConsumer.RegisterHandler(topic, handler); err != nil {
			return nil, fmt.Errorf("register %s handler: %w", topic, err)
		}
	}

	mqCleanup, err := s.mqConsumer.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run mq consumer: %w", err)
	}

	cleanup := func() {
		mqCleanup()
	}

	return cleanup, nil
}

func jsonHandler[T any](handle func(ctx context.Context, topic string, ev T) error) mq.HandlerFunc {
	return func(ctx context.Context, topic string, payload []byte) error {
		var ev T
		if err := json.Unmarshal(payload, &ev); err != nil {
			return fmt.Errorf("unmarshal %s event: %w", topic, err)
		}

		if err := handle(ctx, topic, ev); err != nil {
			return fmt.Errorf("handle %s event: %w", topic, err)
		}

		return nil
	}
}
