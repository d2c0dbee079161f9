package event

import "github.com/shopspring/decimal"

const (
	TopicProductCreated  = "product.created"
	TopicProductUpdated  = "product.updated"
	TopicProductDeleted  = "product.deleted"
	TopicCategoryCreated = "category.created"
	TopicOrderCreated    = "order.created"
)

// ProductChangedEvent is published for product.created and product.updated.
// CategoryIDs lists every category whose listing the change affects, so
// both the old and the new category of a moved product are included.
type ProductChangedEvent struct {
	ProductID   int64           `json:"product_id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Price       decimal.Decimal `json:"price"`
	Featured    bool            `json:"featured"`
	CategoryIDs []int64         `json:"category_ids"`
}

type ProductDeletedEvent struct {
	ProductID   int64   `json:"product_id"`
	CategoryIDs []int64 `json:"category_ids"`
}

type CategoryCreatedEvent struct {
	CategoryID int64  `json:"category_id"`
	Slug       string `json:"slug"`
	Name       string `json:"name"`
}

type OrderCreatedEvent struct {
	OrderID   int64           `json:"order_id"`
	UserID    string          `json:"user_id"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}
