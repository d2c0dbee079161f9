package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Stock and Featured are nullable: a nil Stock
// means the quantity is unknown or unlimited.
type Product struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
	ImageURL      *string          `json:"imageUrl"`
	CategoryID    *int64           `json:"categoryId"`
	Stock         *int             `json:"stock"`
	Featured      *bool            `json:"featured"`
	IsActive      bool             `json:"isActive"`
	CreatedAt     *time.Time       `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// IsFeatured treats a nil flag as not featured.
func (p Product) IsFeatured() bool {
	return p.Featured != nil && *p.Featured
}

// StockOrZero treats an unknown stock level as zero.
func (p Product) StockOrZero() int {
	if p.Stock == nil {
		return 0
	}
	return *p.Stock
}

// CreatedAtOrZero returns the creation time, or the zero time when unknown.
func (p Product) CreatedAtOrZero() time.Time {
	if p.CreatedAt == nil {
		return time.Time{}
	}
	return *p.CreatedAt
}

// InCategory reports whether p belongs to the category with the given id.
func (p Product) InCategory(id int64) bool {
	return p.CategoryID != nil && *p.CategoryID == id
}
