package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajgarments/storefront/internal/model"
	"github.com/rajgarments/storefront/pkg/ptr"
)

func TestProductAccessors(t *testing.T) {
	var empty model.Product
	assert.False(t, empty.IsFeatured())
	assert.Equal(t, 0, empty.StockOrZero())
	assert.True(t, empty.CreatedAtOrZero().IsZero())
	assert.False(t, empty.InCategory(1))

	now := time.Now()
	p := model.Product{
		Featured:   ptr.New(true),
		Stock:      ptr.New(5),
		CreatedAt:  &now,
		CategoryID: ptr.New(int64(3)),
	}
	assert.True(t, p.IsFeatured())
	assert.Equal(t, 5, p.StockOrZero())
	assert.Equal(t, now, p.CreatedAtOrZero())
	assert.True(t, p.InCategory(3))
	assert.False(t, p.InCategory(4))
}

func TestCartTotal(t *testing.T) {
	items := []model.CartItem{
		{Quantity: 2, Product: model.Product{Price: decimal.RequireFromString("499.50")}},
		{Quantity: 1, Product: model.Product{Price: decimal.RequireFromString("0.10")}},
		{Quantity: 0, Product: model.Product{Price: decimal.RequireFromString("0.20")}},
	}

	assert.True(t, decimal.RequireFromString("999.30").Equal(model.CartTotal(items)))
	assert.True(t, model.CartTotal(nil).IsZero())
}

func TestOrderStatusValidate(t *testing.T) {
	assert.NoError(t, model.OrderStatusShipped.Validate())
	assert.Error(t, model.OrderStatus("lost").Validate())
}

func TestMoneyJSON(t *testing.T) {
	t.Run("product prices keep two fraction digits", func(t *testing.T) {
		b, err := json.Marshal(model.Product{
			ID:            1,
			Name:          "Linen Shirt",
			Price:         decimal.RequireFromString("50.00"),
			OriginalPrice: ptr.New(decimal.RequireFromString("64.5")),
			Stock:         ptr.New(3),
		})
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(b, &got))
		assert.Equal(t, "50.00", got["price"])
		assert.Equal(t, "64.50", got["originalPrice"])
		assert.Equal(t, "Linen Shirt", got["name"])
		assert.EqualValues(t, 3, got["stock"])
	})

	t.Run("nil original price", func(t *testing.T) {
		b, err := json.Marshal(model.Product{Price: decimal.NewFromInt(899)})
		require.NoError(t, err)

		assert.Contains(t, string(b), `"price":"899.00"`)
		assert.Contains(t, string(b), `"originalPrice":null`)
	})

	t.Run("order total and item prices", func(t *testing.T) {
		b, err := json.Marshal(model.Order{
			ID:     7,
			Total:  decimal.RequireFromString("100"),
			Status: model.OrderStatusPending,
			Items: []model.OrderItem{
				{ID: 1, Quantity: 2, Price: decimal.RequireFromString("50.0")},
			},
		})
		require.NoError(t, err)

		assert.Contains(t, string(b), `"total":"100.00"`)
		assert.Contains(t, string(b), `"price":"50.00"`)
		assert.Contains(t, string(b), `"status":"pending"`)
	})

	t.Run("round trip keeps the amount", func(t *testing.T) {
		b, err := json.Marshal(model.Product{Price: decimal.RequireFromString("2499.9")})
		require.NoError(t, err)

		var p model.Product
		require.NoError(t, json.Unmarshal(b, &p))
		assert.True(t, decimal.RequireFromString("2499.90").Equal(p.Price))
	})
}
