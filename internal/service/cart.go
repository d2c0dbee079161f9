package service

import (
	"context"
	"fmt"

	"github.com/rajgarments/storefront/internal/apperr"
	"github.com/rajgarments/storefront/internal/model"
	"github.com/rajgarments/storefront/internal/repository"
	"github.com/rajgarments/storefront/internal/storage/db"
)

type AddCartItemParams struct {
	UserID    string
	ProductID int64
	Quantity  int
	Size      *string
	Color     *string
}

type CartService interface {
	ListCartItems(ctx context.Context, userID string) ([]model.CartItem, error)
	// AddCartItem adds a line to the cart. Adding a product already in the
	// cart with the same size and color increases that line's quantity.
	AddCartItem(ctx context.Context, params AddCartItemParams) (model.CartItem, error)
	UpdateCartItemQuantity(ctx context.Context, userID string, id int64, quantity int) (model.CartItem, error)
	RemoveCartItem(ctx context.Context, userID string, id int64) error
	ClearCart(ctx context.Context, userID string) error
}

type cartService struct {
	db          db.DB
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(
	db db.DB,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
) CartService {
	return &cartService{
		db:          db,
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartService) ListCartItems(ctx context.Context, userID string) ([]model.CartItem, error) {
	items, err := s.cartRepo.ListCartItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("cart repository list cart items: %w", err)
	}

	return items, nil
}

func (s *cartService) AddCartItem(ctx context.Context, params AddCartItemParams) (model.CartItem, error) {
	if params.Quantity < 1 {
		params.Quantity = 1
	}

	var item model.CartItem
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		product, err := s.productRepo.WithDB(db).GetProduct(ctx, params.ProductID)
		if err != nil {
			return fmt.Errorf("product repository get product: %w", err)
		}
		if !product.IsActive {
			return apperr.ProductNotFoundErr
		}

		cartRepo := s.cartRepo.WithDB(db)
		id, err := cartRepo.AddCartItem(ctx, repository.AddCartItemParams{
			UserID:    params.UserID,
			ProductID: params.ProductID,
			Quantity:  params.Quantity,
			Size:      params.Size,
			Color:     params.Color,
		})
		if err != nil {
			return fmt.Errorf("cart repository add cart item: %w", err)
		}

		item, err = cartRepo.GetCartItem(ctx, params.UserID, id)
		if err != nil {
			return fmt.Errorf("cart repository get cart item: %w", err)
		}

		return nil
	}); err != nil {
		return model.CartItem{}, fmt.Errorf("db with tx: %w", err)
	}

	return item, nil
}

func (s *cartService) UpdateCartItemQuantity(ctx context.Context, userID string, id int64, quantity int) (model.CartItem, error) {
	if quantity < 1 {
		return model.CartItem{}, apperr.ValidationErr.WithMsg("quantity must be at least 1")
	}

	var item model.CartItem
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		cartRepo := s.cartRepo.WithDB(db)
		if err := cartRepo.UpdateCartItemQuantity(ctx, userID, id, quantity); err != nil {
			return fmt.Errorf("cart repository update cart item quantity: %w", err)
		}

		var err error
		item, err = cartRepo.GetCartItem(ctx, userID, id)
		if err != nil {
			return fmt.Errorf("cart repository get cart item: %w", err)
		}

		return nil
	}); err != nil {
		return model.CartItem{}, fmt.Errorf("db with tx: %w", err)
	}

	return item, nil
}

func (s *cartService) RemoveCartItem(ctx context.Context, userID string, id int64) error {
	if err := s.cartRepo.DeleteCartItem(ctx, userID, id); err != nil {
		return fmt.Errorf("cart repository delete cart item: %w", err)
	}

	return nil
}

func (s *cartService) ClearCart(ctx context.Context, userID string) error {
	if err := s.cartRepo.ClearCart(ctx, userID); err != nil {
		return fmt.Errorf("cart repository clear cart: %w", err)
	}

	return nil
}
