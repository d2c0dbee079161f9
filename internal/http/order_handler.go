package http

import (
	"fmt"
	"net/http"

	"github.com/rajgarments/storefront/internal/service"
	"github.com/rajgarments/storefront/pkg/validator"
)

type orderHandler struct {
	validator validator.Validator
	orderSvc  service.OrderService
}

func newOrderHandler(v validator.Validator, orderSvc service.OrderService) *orderHandler {
	return &orderHandler{
		validator: v,
		orderSvc:  orderSvc,
	}
}

type placeOrderRequest struct {
	ShippingAddress string `json:"shippingAddress" validate:"required,max=500"`
}

func (h *orderHandler) PlaceOrder(r *http.Request) (response, error) {
	user, err := currentUser(r)
	if err != nil {
		return response{}, err
	}

	var req placeOrderRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return response{}, err
	}

	order, err := h.orderSvc.PlaceOrder(r.Context(), service.PlaceOrderParams{
		UserID:          user.ID,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		return response{}, fmt.Errorf("order service place order: %w", err)
	}

	return jsonCreated(order), nil
}

func (h *orderHandler) ListOrders(r *http.Request) (response, error) {
	user, err := currentUser(r)
	if err != nil {
		return response{}, err
	}

	orders, err := h.orderSvc.ListOrders(r.Context(), user.ID)
	if err != nil {
		return response{}, fmt.Errorf("order service list orders: %w", err)
	}

	return jsonOK(orders), nil
}

func (h *orderHandler) GetOrder(r *http.Request) (response, error) {
	user, err := currentUser(r)
	if err != nil {
		return response{}, err
	}

	id, err := pathParam[int64](r, "id")
	if err != nil {
		return response{}, err
	}

	order, err := h.orderSvc.GetOrder(r.Context(), user.ID, id)
	if err != nil {
		return response{}, fmt.Errorf("order service get order: %w", err)
	}

	return jsonOK(order), nil
}
