package outbox_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/rajgarments/storefront/pkg/correlationid"
	"github.com/rajgarments/storefront/pkg/outbox"
)

func TestHeaders(t *testing.T) {
	t.Run("Should carry correlation id through headers", func(t *testing.T) {
		ctx := correlationid.NewContext(context.Background(), "corr-1")

		headers := outbox.BuildHeaders(ctx)
		assert.Equal(t, "corr-1", headers[correlationid.Header])

		restored := outbox.ExtractContextFromHeaders(context.Background(), headers)
		id, ok := correlationid.FromContext(restored)
		require.True(t, ok)
		assert.Equal(t, "corr-1", id)
	})

	t.Run("Should restore context from kafka record", func(t *testing.T) {
		rec := &kgo.Record{
			Headers: []kgo.RecordHeader{
				{Key: correlationid.Header, Value: []byte("corr-2")},
			},
		}

		ctx := outbox.ContextFromRecord(context.Background(), rec)
		id, ok := correlationid.FromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, "corr-2", id)
	})

	t.Run("Should leave context untouched without headers", func(t *testing.T) {
		ctx := outbox.ContextFromRecord(context.Background(), &kgo.Record{})
		_, ok := correlationid.FromContext(ctx)
		assert.False(t, ok)
	})
}
