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

type AddCartItemParams struct {
	UserID    string
	ProductID int64
	Quantity  int
	Size      *string
	Color     *string
}

type CartRepository interface {
	WithDB(db db.DB) CartRepository
	ListCartItems(ctx context.Context, userID string) ([]model.CartItem, error)
	GetCartItem(ctx context.Context, userID string, id int64) (model.CartItem, error)
	// AddCartItem inserts a line, or increases the quantity of the line with
	// the same product, size and color. It returns the line id.
	AddCartItem(ctx context.Context, params AddCartItemParams) (int64, error)
	UpdateCartItemQuantity(ctx context.Context, userID string, id int64, quantity int) error
	DeleteCartItem(ctx context.Context, userID string, id int64) error
	ClearCart(ctx context.Context, userID string) error
}

type cartRepository struct {
	db db.DB
}

func NewCartRepository(db db.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r cartRepository) WithDB(db db.DB) CartRepository {
	return &cartRepository{db: db}
}

const cartItemColumns = `ci.id, ci.user_id, ci.product_id, ci.quantity, ci.size, ci.color, ci.created_at, ` + productColumns

func (r cartRepository) ListCartItems(ctx context.Context, userID string) ([]model.CartItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+cartItemColumns+`
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at, ci.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query cart items: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.CartItem, error) {
		return scanCartItem(row)
	})
	if err != nil {
		return nil, fmt.Errorf("collect cart items: %w", err)
	}

	return items, nil
}

func (r cartRepository) GetCartItem(ctx context.Context, userID string, id int64) (model.CartItem, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+cartItemColumns+`
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1 AND ci.id = $2
	`, userID, id)

	item, err := scanCartItem(row)
	if err != nil {
		if db.IsNoRows(err) {
			return model.CartItem{}, apperr.CartItemNotFoundErr.WrapParent(err)
		}
		return model.CartItem{}, fmt.Errorf("get cart item: %w", err)
	}

	return item, nil
}

func (r cartRepository) AddCartItem(ctx context.Context, params AddCartItemParams) (int64, error) {
	args := pgx.NamedArgs{
		"user_id":    params.UserID,
		"product_id": params.ProductID,
		"quantity":   params.Quantity,
		"size":       params.Size,
		"color":      params.Color,
	}

	var id int64
	err := r.db.QueryRow(ctx, `
		UPDATE cart_items
		SET quantity = quantity + @quantity
		WHERE user_id = @user_id
			AND product_id = @product_id
			AND size IS NOT DISTINCT FROM @size::text
			AND color IS NOT DISTINCT FROM @color::text
		RETURNING id
	`, args).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !db.IsNoRows(err) {
		return 0, fmt.Errorf("merge cart item: %w", err)
	}

	if err := r.db.QueryRow(ctx, `
		INSERT INTO cart_items (user_id, product_id, quantity, size, color)
		VALUES (@user_id, @product_id, @quantity, @size, @color)
		RETURNING id
	`, args).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert cart item: %w", err)
	}

	return id, nil
}

func (r cartRepository) UpdateCartItemQuantity(ctx context.Context, userID string, id int64, quantity int) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE cart_items SET quantity = $3 WHERE user_id = $1 AND id = $2
	`, userID, id, quantity)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.CartItemNotFoundErr
	}

	return nil
}

func (r cartRepository) DeleteCartItem(ctx context.Context, userID string, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.CartItemNotFoundErr
	}

	return nil
}

func (r cartRepository) ClearCart(ctx context.Context, userID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	return nil
}

func scanCartItem(row pgx.Row) (model.CartItem, error) {
	var (
		item          model.CartItem
		p             = &item.Product
		originalPrice decimal.NullDecimal
	)
	if err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.Quantity,
		&item.Size,
		&item.Color,
		&item.CreatedAt,
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.Price,
		&originalPrice,
		&p.ImageURL,
		&p.CategoryID,
		&p.Stock,
		&p.Featured,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return model.CartItem{}, err
	}

	if originalPrice.Valid {
		p.OriginalPrice = &originalPrice.Decimal
	}

	return item, nil
}
