package service

import (
	"context"
	"fmt"

	"github.com/rajgarments/storefront/internal/apperr"
	"github.com/rajgarments/storefront/internal/event"
	"github.com/rajgarments/storefront/internal/model"
	"github.com/rajgarments/storefront/internal/repository"
	"github.com/rajgarments/storefront/internal/storage/db"
)

type PlaceOrderParams struct {
	UserID          string
	ShippingAddress string
}

type OrderService interface {
	// PlaceOrder turns the user's cart into a pending order and empties the
	// cart. An empty cart is rejected.
	PlaceOrder(ctx context.Context, params PlaceOrderParams) (model.Order, error)
	ListOrders(ctx context.Context, userID string) ([]model.Order, error)
	// GetOrder returns the order only when userID owns it.
	GetOrder(ctx context.Context, userID string, id int64) (model.Order, error)
}

type orderService struct {
	db            db.DB
	orderRepo     repository.OrderRepository
	cartRepo      repository.CartRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewOrderService(
	db db.DB,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) OrderService {
	return &orderService{
		db:            db,
		orderRepo:     orderRepo,
		cartRepo:      cartRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *orderService) PlaceOrder(ctx context.Context, params PlaceOrderParams) (model.Order, error) {
	var order model.Order
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		cartRepo := s.cartRepo.WithDB(db)

		items, err := cartRepo.ListCartItems(ctx, params.UserID)
		if err != nil {
			return fmt.Errorf("cart repository list cart items: %w", err)
		}
		if len(items) == 0 {
			return apperr.CartEmptyErr
		}

		orderItems := make([]repository.CreateOrderItemParams, 0, len(items))
		for _, item := range items {
			orderItems = append(orderItems, repository.CreateOrderItemParams{
				ProductID: item.ProductID,
				Quantity:  max(item.Quantity, 1),
				Price:     item.Product.Price,
				Size:      item.Size,
				Color:     item.Color,
			})
		}

		order, err = s.orderRepo.
			WithDB(db).
			CreateOrder(ctx, repository.CreateOrderParams{
				UserID:          params.UserID,
				Total:           model.CartTotal(items),
				Status:          model.OrderStatusPending,
				ShippingAddress: params.ShippingAddress,
				Items:           orderItems,
			})
		if err != nil {
			return fmt.Errorf("order repository create order: %w", err)
		}

		if err := publish(ctx, s.outboxMsgRepo.WithDB(db), event.TopicOrderCreated, order.ID,
			event.OrderCreatedEvent{
				OrderID:   order.ID,
				UserID:    order.UserID,
				Total:     order.Total,
				ItemCount: len(order.Items),
			}); err != nil {
			return err
		}

		if err := cartRepo.ClearCart(ctx, params.UserID); err != nil {
			return fmt.Errorf("cart repository clear cart: %w", err)
		}

		return nil
	}); err != nil {
		return model.Order{}, fmt.Errorf("db with tx: %w", err)
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, userID string) ([]model.Order, error) {
	orders, err := s.orderRepo.ListOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("order repository list orders: %w", err)
	}

	return orders, nil
}

func (s *orderService) GetOrder(ctx context.Context, userID string, id int64) (model.Order, error) {
	order, err := s.orderRepo.GetOrder(ctx, id)
	if err != nil {
		return model.Order{}, fmt.Errorf("order repository get order: %w", err)
	}
	if order.UserID != userID {
		return model.Order{}, apperr.OrderNotFoundErr
	}

	return order, nil
}
