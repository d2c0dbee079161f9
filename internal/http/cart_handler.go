package http

import (
	"fmt"
	"net/http"

	"github.com/rajgarments/storefront/internal/service"
	"github.com/rajgarments/storefront/pkg/validator"
)

type cartHandler struct {
	validator validator.Validator
	cartSvc   service.CartService
}

func newCartHandler(v validator.Validator, cartSvc service.CartService) *cartHandler {
	return &cartHandler{
		validator: v,
		cartSvc:   cartSvc,
	}
}

type addCartItemRequest struct {
	ProductID int64   `json:"productId" validate:"required,gt=0"`
	Quantity  int     `json:"quantity" validate:"omitempty,gte=1,lte=99"`
	Size      *string `json:"size" validate:"omitempty,max=20"`
	Color     *string `json:"color" validate:"omitempty,max=50"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1,lte=99"`
}

func (h *cartHandler) ListCartItems(r *http.Request) (response, error) {
	user, err := currentUser(r)
	if err != nil {
		return response{}, err
	}

	items, err := h.cartSvc.ListCartItems(r.Context(), user.ID)
	if err != nil {
		return response{}, fmt.Errorf("cart service list cart items: %w", err)
	}

	return jsonOK(items), nil
}

func (h *cartHandler) AddCartItem(r *http.Request) (response, error) {
	user, err := currentUser(r)
	if err != nil {
		return response{}, err
	}

	var req addCartItemRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return response{}, err
	}

	item, err := h.cartSvc.AddCartItem(r.Context(), service.AddCartItemParams{
		UserID:    user.ID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
	})
	if err != nil {
		return response{}, fmt.Errorf("cart service add cart item: %w", err)
	}

	return jsonOK(item), nil
}

func (h *cartHandler) UpdateCartItem(r *http.Request) (response, error) {
	user, err := currentUser(r)
	if err != nil {
		return response{}, err
	}

	id, err := pathParam[int64](r, "id")
	if err != nil {
		return response{}, err
	}

	var req updateCartItemRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return response{}, err
	}

	item, err := h.cartSvc.UpdateCartItemQuantity(r.Context(), user.ID, id, req.Quantity)
	if err != nil {
		return response{}, fmt.Errorf("cart service update cart item quantity: %w", err)
	}

	return jsonOK(item), nil
}

func (h *cartHandler) RemoveCartItem(r *http.Request) (response, error) {
	user, err := currentUser(r)
	if err != nil {
		return response{}, err
	}

	id, err := pathParam[int64](r, "id")
	if err != nil {
		return response{}, err
	}

	if err := h.cartSvc.RemoveCartItem(r.Context(), user.ID, id); err != nil {
		return response{}, fmt.Errorf("cart service remove cart item: %w", err)
	}

	return jsonOK(messageResponse{Message: "Item removed from cart"}), nil
}

func (h *cartHandler) ClearCart(r *http.Request) (response, error) {
	user, err := currentUser(r)
	if err != nil {
		return response{}, err
	}

	if err := h.cartSvc.ClearCart(r.Context(), user.ID); err != nil {
		return response{}, fmt.Errorf("cart service clear cart: %w", err)
	}

	return jsonOK(messageResponse{Message: "Cart cleared"}), nil
}
