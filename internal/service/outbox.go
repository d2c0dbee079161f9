package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rajgarments/storefront/internal/repository"
	"github.com/rajgarments/storefront/pkg/outbox"
)

// publish stores ev in the outbox. Callers run it in the transaction that
// performs the change ev describes.
func publish(
	ctx context.Context,
	outboxMsgRepo repository.OutboxMsgRepository,
	topic string,
	key int64,
	ev any,
) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	partitionKey := strconv.FormatInt(key, 10)
	if err := outboxMsgRepo.CreateOutboxMsg(ctx, repository.CreateOutboxMsgParams{
		Topic:        topic,
		Headers:      outbox.BuildHeaders(ctx),
		Payload:      payload,
		PartitionKey: &partitionKey,
	}); err != nil {
		return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
	}

	return nil
}
