package relay

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rajgarments/storefront/internal/config"
	"github.com/rajgarments/storefront/internal/repository"
	"github.com/rajgarments/storefront/internal/storage/db"
	"github.com/rajgarments/storefront/internal/storage/mq"
	"github.com/rajgarments/storefront/pkg/ptr"
)

// Service forwards committed outbox messages (catalog and order events) to
// the broker and records the outcome of each message.
type Service struct {
	cfg           config.Relay
	logger        *slog.Logger
	db            db.DB
	outboxMsgRepo repository.OutboxMsgRepository
	mqProducer    mq.Producer

	stopChan chan struct{}
}

func NewService(
	cfg config.Relay,
	logger *slog.Logger,
	db db.DB,
	outboxMsgRepo repository.OutboxMsgRepository,
	mqProducer mq.Producer,
) *Service {
	return &Service{
		cfg:           cfg,
		logger:        logger.With(slog.String("service", "relay")),
		db:            db,
		outboxMsgRepo: outboxMsgRepo,
		mqProducer:    mqProducer,
		stopChan:      make(chan struct{}),
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) CleanupFunc {
	ctx, cancel := context.WithCancel(ctx)

	stoppedChan := make(chan struct{})
	go func() {
		defer close(stoppedChan)
		s.run(ctx)
	}()

	return func() {
		close(s.stopChan)
		select {
		case <-stoppedChan:
		case <-time.After(5 * time.Second):
			cancel()
			<-stoppedChan
		}
		cancel()
	}
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			n, err := s.RelayBatch(ctx)
			if err != nil {
				s.logger.ErrorContext(ctx, "error relaying outbox msgs", slog.Any("error", err))
				continue
			}
			if n > 0 {
				s.logger.DebugContext(ctx, "relayed outbox msgs", slog.Int("count", n))
			}
		}
	}
}

// RelayBatch produces one batch of unprocessed messages and marks each of
// them processed, storing the produce error for failed ones. It returns the
// number of messages handled.
func (s *Service) RelayBatch(ctx context.Context) (int, error) {
	var handled int

	err := s.db.WithTx(ctx, func(db db.DB) error {
		outboxMsgs, err := s.outboxMsgRepo.
			WithDB(db).
			ListUnprocessedOutboxMsgs(ctx, repository.ListUnprocessedOutboxMsgsParams{
				//nolint:gosec
				BatchSize: int32(s.cfg.BatchSize),
			})
		if err != nil {
			return fmt.Errorf("list unprocessed outbox msgs: %w", err)
		}

		if len(outboxMsgs) == 0 {
			return nil
		}

		s.logger.InfoContext(ctx, "relaying outbox msgs", slog.Int("count", len(outboxMsgs)))

		items := make([]repository.BulkUpdateOutboxMsgsItem, len(outboxMsgs))
		var wg sync.WaitGroup

		for i, msg := range outboxMsgs {
			wg.Go(func() {
				items[i] = s.produce(ctx, msg)
			})
		}

		wg.Wait()

		if err := s.outboxMsgRepo.
			WithDB(db).
			BulkUpdateOutboxMsgs(ctx, repository.BulkUpdateOutboxMsgsParams{
				Items: items,
			}); err != nil {
			return fmt.Errorf("bulk update outbox msgs: %w", err)
		}

		handled = len(items)
		return nil
	})

	return handled, err
}

func (s *Service) produce(ctx context.Context, msg repository.ListUnprocessedOutboxMsgsResult) repository.BulkUpdateOutboxMsgsItem {
	err := s.mqProducer.Produce(ctx, mq.ProduceMsg{
		Topic:        msg.Topic,
		Headers:      msg.Headers,
		Payload:      msg.Payload,
		PartitionKey: msg.PartitionKey,
	})
	if err != nil {
		relayedTotal.WithLabelValues(msg.Topic, resultFailed).Inc()
		s.logger.ErrorContext(ctx,
			"error producing message",
			slog.String("outbox_msg_id", msg.ID.String()),
			slog.String("topic", msg.Topic),
			slog.Any("error", err),
		)
		return repository.BulkUpdateOutboxMsgsItem{
			ID:    msg.ID,
			Error: ptr.New(fmt.Sprintf("produce message: %v", err)),
		}
	}

	relayedTotal.WithLabelValues(msg.Topic, resultProduced).Inc()
	return repository.BulkUpdateOutboxMsgsItem{ID: msg.ID}
}
