package event

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajgarments/storefront/internal/storage/cache"
	"github.com/rajgarments/storefront/internal/storage/mq"
)

type fakeConsumer struct {
	handlers map[string]mq.HandlerFunc
	ran      bool
	stopped  bool
}

func (c *fakeConsumer) RegisterHandler(topic string, handler mq.HandlerFunc) error {
	if c.handlers == nil {
		c.handlers = make(map[string]mq.HandlerFunc)
	}
	if _, ok := c.handlers[topic]; ok {
		return errors.New("duplicate handler")
	}
	c.handlers[topic] = handler
	return nil
}

func (c *fakeConsumer) Run(context.Context) (mq.CleanupFunc, error) {
	c.ran = true
	return func() { c.stopped = true }, nil
}

func (c *fakeConsumer) deliver(t *testing.T, topic string, ev any) error {
	t.Helper()

	payload, err := json.Marshal(ev)
	require.NoError(t, err)

	handler, ok := c.handlers[topic]
	require.True(t, ok, "no handler for %s", topic)

	return handler(context.Background(), topic, payload)
}

type recordingCache struct {
	cache.Noop

	mu      sync.Mutex
	deleted []string
	err     error
}

func (c *recordingCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, keys...)
	return c.err
}

func newTestService(t *testing.T) (*Service, *fakeConsumer, *recordingCache) {
	t.Helper()

	consumer := &fakeConsumer{}
	c := &recordingCache{}
	svc := New(slog.New(slog.NewTextHandler(io.Discard, nil)), consumer, c)

	cleanup, err := svc.Run(context.Background())
	require.NoError(t, err)
	t.Cleanup(cleanup)

	return svc, consumer, c
}

func TestService_Run(t *testing.T) {
	_, consumer, _ := newTestService(t)

	assert.True(t, consumer.ran)
	assert.Len(t, consumer.handlers, 5)
	for _, topic := range []string{
		TopicProductCreated, TopicProductUpdated, TopicProductDeleted,
		TopicCategoryCreated, TopicOrderCreated,
	} {
		assert.Contains(t, consumer.handlers, topic)
	}
}

func TestService_ProductEventsEvictCache(t *testing.T) {
	tests := []struct {
		topic string
		event any
	}{
		{topic: TopicProductCreated, event: ProductChangedEvent{ProductID: 9, CategoryIDs: []int64{2}}},
		{topic: TopicProductUpdated, event: ProductChangedEvent{ProductID: 9, CategoryIDs: []int64{2}}},
		{topic: TopicProductDeleted, event: ProductDeletedEvent{ProductID: 9, CategoryIDs: []int64{2}}},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			_, consumer, c := newTestService(t)

			require.NoError(t, consumer.deliver(t, tt.topic, tt.event))

			assert.ElementsMatch(t, []string{
				cache.KeyProduct(9),
				cache.KeyProductsAll,
				cache.KeyProductsFeatured,
				"products:category:2",
				"products:category:2:featured",
			}, c.deleted)
		})
	}
}

func TestService_CategoryCreatedEvictsCategories(t *testing.T) {
	_, consumer, c := newTestService(t)

	require.NoError(t, consumer.deliver(t, TopicCategoryCreated, CategoryCreatedEvent{CategoryID: 1, Slug: "men"}))

	assert.Equal(t, []string{cache.KeyCategories}, c.deleted)
}

func TestService_OrderCreated(t *testing.T) {
	_, consumer, c := newTestService(t)

	err := consumer.deliver(t, TopicOrderCreated, OrderCreatedEvent{
		OrderID:   1,
		UserID:    "u1",
		Total:     decimal.RequireFromString("999.00"),
		ItemCount: 2,
	})

	require.NoError(t, err)
	assert.Empty(t, c.deleted)
}

func TestService_HandlerErrors(t *testing.T) {
	t.Run("malformed payload", func(t *testing.T) {
		_, consumer, _ := newTestService(t)

		err := consumer.handlers[TopicProductCreated](context.Background(), TopicProductCreated, []byte("{"))

		assert.ErrorContains(t, err, "unmarshal product.created event")
	})

	t.Run("cache failure", func(t *testing.T) {
		_, consumer, c := newTestService(t)
		c.err = errors.New("redis down")

		err := consumer.deliver(t, TopicProductDeleted, ProductDeletedEvent{ProductID: 1})

		assert.ErrorContains(t, err, "evict product cache")
	})
}
