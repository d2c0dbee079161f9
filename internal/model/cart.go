package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one line of a user's cart. Product is a snapshot of the
// referenced product taken when the cart is read.
type CartItem struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	ProductID int64     `json:"productId"`
	Quantity  int       `json:"quantity"`
	Size      *string   `json:"size"`
	Color     *string   `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	Product   Product   `json:"product"`
}

// LineTotal is the product price multiplied by the quantity. A quantity
// below one counts as one.
func (c CartItem) LineTotal() decimal.Decimal {
	qty := c.Quantity
	if qty < 1 {
		qty = 1
	}
	return c.Product.Price.Mul(decimal.NewFromInt(int64(qty)))
}

// CartTotal sums the line totals of items.
func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}
