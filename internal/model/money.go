package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of fraction digits amounts are rendered with.
const moneyScale = 2

func money(d decimal.Decimal) string {
	return d.StringFixed(moneyScale)
}

func moneyPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := money(*d)
	return &s
}

// MarshalJSON renders prices with two fraction digits.
func (p Product) MarshalJSON() ([]byte, error) {
	type product Product
	return json.Marshal(struct {
		product
		Price         string  `json:"price"`
		OriginalPrice *string `json:"originalPrice"`
	}{
		product:       product(p),
		Price:         money(p.Price),
		OriginalPrice: moneyPtr(p.OriginalPrice),
	})
}

// MarshalJSON renders the total with two fraction digits.
func (o Order) MarshalJSON() ([]byte, error) {
	type order Order
	return json.Marshal(struct {
		order
		Total string `json:"total"`
	}{
		order: order(o),
		Total: money(o.Total),
	})
}

// MarshalJSON renders the unit price with two fraction digits.
func (i OrderItem) MarshalJSON() ([]byte, error) {
	type orderItem OrderItem
	return json.Marshal(struct {
		orderItem
		Price string `json:"price"`
	}{
		orderItem: orderItem(i),
		Price:     money(i.Price),
	})
}
