package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/rajgarments/storefront/internal/apperr"
	"github.com/rajgarments/storefront/internal/model"
	"github.com/rajgarments/storefront/internal/storage/db"
)

type CreateOrderItemParams struct {
	ProductID int64
	Quantity  int
	Price     decimal.Decimal
	Size      *string
	Color     *string
}

type CreateOrderParams struct {
	UserID          string
	Total           decimal.Decimal
	Status          model.OrderStatus
	ShippingAddress string
	Items           []CreateOrderItemParams
}

type OrderRepository interface {
	WithDB(db db.DB) OrderRepository
	CreateOrder(ctx context.Context, params CreateOrderParams) (model.Order, error)
	ListOrders(ctx context.Context, userID string) ([]model.Order, error)
	GetOrder(ctx context.Context, id int64) (model.Order, error)
}

type orderRepository struct {
	db db.DB
}

func NewOrderRepository(db db.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r orderRepository) WithDB(db db.DB) OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, user_id, total, status, shipping_address, created_at`

// CreateOrder inserts the order and its items. Callers run it inside a
// transaction so a failed item insert leaves no partial order behind.
func (r orderRepository) CreateOrder(ctx context.Context, params CreateOrderParams) (model.Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx, `
		INSERT INTO orders (user_id, total, status, shipping_address)
		VALUES (@user_id, @total, @status, @shipping_address)
		RETURNING `+orderColumns,
		pgx.NamedArgs{
			"user_id":          params.UserID,
			"total":            params.Total,
			"status":           string(params.Status),
			"shipping_address": params.ShippingAddress,
		}))
	if err != nil {
		return model.Order{}, fmt.Errorf("insert order: %w", err)
	}

	batch := &pgx.Batch{}
	for _, item := range params.Items {
		batch.Queue(`
			INSERT INTO order_items (order_id, product_id, quantity, price, size, color)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, order.ID, item.ProductID, item.Quantity, item.Price, item.Size, item.Color)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	order.Items = make([]model.OrderItem, 0, len(params.Items))
	for _, item := range params.Items {
		var id int64
		if err := results.QueryRow().Scan(&id); err != nil {
			return model.Order{}, fmt.Errorf("insert order item: %w", err)
		}

		productID := item.ProductID
		order.Items = append(order.Items, model.OrderItem{
			ID:        id,
			OrderID:   order.ID,
			ProductID: &productID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Size:      item.Size,
			Color:     item.Color,
		})
	}

	return order, nil
}

func (r orderRepository) ListOrders(ctx context.Context, userID string) ([]model.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}

	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Order, error) {
		return scanOrder(row)
	})
	if err != nil {
		return nil, fmt.Errorf("collect orders: %w", err)
	}

	return orders, nil
}

func (r orderRepository) GetOrder(ctx context.Context, id int64) (model.Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if db.IsNoRows(err) {
			return model.Order{}, apperr.OrderNotFoundErr.WrapParent(err)
		}
		return model.Order{}, fmt.Errorf("get order: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, product_id, quantity, price, size, color
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return model.Order{}, fmt.Errorf("query order items: %w", err)
	}

	order.Items, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.OrderItem, error) {
		var item model.OrderItem
		err := row.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.Size, &item.Color)
		return item, err
	})
	if err != nil {
		return model.Order{}, fmt.Errorf("collect order items: %w", err)
	}

	return order, nil
}

func scanOrder(row pgx.Row) (model.Order, error) {
	var (
		o      model.Order
		status string
	)
	if err := row.Scan(&o.ID, &o.UserID, &o.Total, &status, &o.ShippingAddress, &o.CreatedAt); err != nil {
		return model.Order{}, err
	}
	o.Status = model.OrderStatus(status)

	return o, nil
}
