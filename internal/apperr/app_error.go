package apperr

import "github.com/rajgarments/storefront/pkg/zerror"

const (
	ValidationErrorCode = "VALIDATION_FAILED"
)

var (
	ValidationErr = zerror.NewValidationFailed(ValidationErrorCode, "validation error")

	UnauthorizedErr = zerror.NewUnauthorized("UNAUTHORIZED", "authentication required")
	ForbiddenErr    = zerror.NewForbidden("FORBIDDEN", "admin access required")

	ProductNotFoundErr  = zerror.NewNotFound("PRODUCT_NOT_FOUND", "product not found")
	CategoryNotFoundErr = zerror.NewNotFound("CATEGORY_NOT_FOUND", "category not found")
	CartItemNotFoundErr = zerror.NewNotFound("CART_ITEM_NOT_FOUND", "cart item not found")
	OrderNotFoundErr    = zerror.NewNotFound("ORDER_NOT_FOUND", "order not found")

	SlugConflictErr = zerror.NewConflict("SLUG_CONFLICT", "slug already in use")

	TooManyRequestsErr = zerror.NewTooManyRequests("TOO_MANY_REQUESTS", "too many requests, try again later")
	CartEmptyErr       = zerror.NewBadRequest("CART_EMPTY", "cart is empty")
)
