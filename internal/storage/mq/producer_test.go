package mq

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rajgarments/storefront/pkg/ptr"
)

func TestBuildProduceRecord(t *testing.T) {
	t.Run("Should copy headers and partition key", func(t *testing.T) {
		rec := buildProduceRecord(ProduceMsg{
			Topic:        "product.updated",
			Headers:      map[string]string{"X-Correlation-ID": "c1"},
			Payload:      []byte(`{"id":1}`),
			PartitionKey: ptr.New("product-1"),
		})

		assert.Equal(t, "product.updated", rec.Topic)
		assert.Equal(t, []byte(`{"id":1}`), rec.Value)
		assert.Equal(t, []byte("product-1"), rec.Key)
		assert.Len(t, rec.Headers, 1)
		assert.Equal(t, "X-Correlation-ID", rec.Headers[0].Key)
		assert.Equal(t, []byte("c1"), rec.Headers[0].Value)
	})

	t.Run("Should leave key empty without partition key", func(t *testing.T) {
		rec := buildProduceRecord(ProduceMsg{Topic: "order.created"})
		assert.Nil(t, rec.Key)
		assert.Empty(t, rec.Headers)
	})
}

func TestBuildProduceRecordHeaderOrder(t *testing.T) {
	rec := buildProduceRecord(ProduceMsg{
		Topic: "product.created",
		Headers: map[string]string{
			"traceparent":      "00-abc-def-01",
			"X-Correlation-ID": "c1",
			"baggage":          "k=v",
		},
	})

	keys := make([]string, 0, len(rec.Headers))
	for _, h := range rec.Headers {
		keys = append(keys, h.Key)
	}
	assert.Equal(t, []string{"X-Correlation-ID", "baggage", "traceparent"}, keys)
}
