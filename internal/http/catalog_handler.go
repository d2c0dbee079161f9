package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rajgarments/storefront/internal/apperr"
	"github.com/rajgarments/storefront/internal/service"
	"github.com/rajgarments/storefront/pkg/validator"
)

type catalogHandler struct {
	validator   validator.Validator
	categorySvc service.CategoryService
	productSvc  service.ProductService
}

func newCatalogHandler(
	v validator.Validator,
	categorySvc service.CategoryService,
	productSvc service.ProductService,
) *catalogHandler {
	return &catalogHandler{
		validator:   v,
		categorySvc: categorySvc,
		productSvc:  productSvc,
	}
}

type createCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"required,slug,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

type createProductRequest struct {
	Name          string  `json:"name" validate:"required,max=200"`
	Slug          string  `json:"slug" validate:"required,slug,max=200"`
	Description   string  `json:"description" validate:"max=5000"`
	Price         string  `json:"price" validate:"required,money"`
	OriginalPrice *string `json:"originalPrice" validate:"omitempty,money"`
	ImageURL      *string `json:"imageUrl" validate:"omitempty,url"`
	CategoryID    *int64  `json:"categoryId" validate:"omitempty,gt=0"`
	Stock         *int    `json:"stock" validate:"omitempty,gte=0"`
	Featured      *bool   `json:"featured"`
}

type updateProductRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	Slug          *string `json:"slug" validate:"omitempty,slug,max=200"`
	Description   *string `json:"description" validate:"omitempty,max=5000"`
	Price         *string `json:"price" validate:"omitempty,money"`
	OriginalPrice *string `json:"originalPrice" validate:"omitempty,money"`
	ImageURL      *string `json:"imageUrl" validate:"omitempty,url"`
	CategoryID    *int64  `json:"categoryId" validate:"omitempty,gt=0"`
	Stock         *int    `json:"stock" validate:"omitempty,gte=0"`
	Featured      *bool   `json:"featured"`
	IsActive      *bool   `json:"isActive"`
}

func (h *catalogHandler) ListCategories(r *http.Request) (response, error) {
	categories, err := h.categorySvc.ListCategories(r.Context())
	if err != nil {
		return response{}, fmt.Errorf("category service list categories: %w", err)
	}

	return jsonOK(categories), nil
}

func (h *catalogHandler) CreateCategory(r *http.Request) (response, error) {
	var req createCategoryRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return response{}, err
	}

	category, err := h.categorySvc.CreateCategory(r.Context(), service.CreateCategoryParams{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return response{}, fmt.Errorf("category service create category: %w", err)
	}

	return jsonCreated(category), nil
}

func (h *catalogHandler) ListProducts(r *http.Request) (response, error) {
	var (
		categoryID *int64
		featured   *bool
	)
	if err := queryParam(r, "categoryId", &categoryID); err != nil {
		return response{}, err
	}
	if err := queryParam(r, "featured", &featured); err != nil {
		return response{}, err
	}

	products, err := h.productSvc.ListProducts(r.Context(), service.ListProductsParams{
		CategoryID:   categoryID,
		FeaturedOnly: featured != nil && *featured,
	})
	if err != nil {
		return response{}, fmt.Errorf("product service list products: %w", err)
	}

	return jsonOK(products), nil
}

func (h *catalogHandler) SearchProducts(r *http.Request) (response, error) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		return response{}, apperr.ValidationErr.WithMsg("search query is required")
	}

	products, err := h.productSvc.SearchProducts(r.Context(), query)
	if err != nil {
		return response{}, fmt.Errorf("product service search products: %w", err)
	}

	return jsonOK(products), nil
}

func (h *catalogHandler) GetProduct(r *http.Request) (response, error) {
	id, err := pathParam[int64](r, "id")
	if err != nil {
		return response{}, err
	}

	product, err := h.productSvc.GetProduct(r.Context(), id)
	if err != nil {
		return response{}, fmt.Errorf("product service get product: %w", err)
	}

	return jsonOK(product), nil
}

func (h *catalogHandler) CreateProduct(r *http.Request) (response, error) {
	var req createProductRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return response{}, err
	}

	product, err := h.productSvc.CreateProduct(r.Context(), service.CreateProductParams{
		Name:          req.Name,
		Slug:          req.Slug,
		Description:   req.Description,
		Price:         decimal.RequireFromString(req.Price),
		OriginalPrice: parseMoney(req.OriginalPrice),
		ImageURL:      req.ImageURL,
		CategoryID:    req.CategoryID,
		Stock:         req.Stock,
		Featured:      req.Featured,
	})
	if err != nil {
		return response{}, fmt.Errorf("product service create product: %w", err)
	}

	return jsonCreated(product), nil
}

func (h *catalogHandler) UpdateProduct(r *http.Request) (response, error) {
	id, err := pathParam[int64](r, "id")
	if err != nil {
		return response{}, err
	}

	var req updateProductRequest
	if err := decodeBody(r, h.validator, &req); err != nil {
		return response{}, err
	}

	product, err := h.productSvc.UpdateProduct(r.Context(), id, service.UpdateProductParams{
		Name:          req.Name,
		Slug:          req.Slug,
		Description:   req.Description,
		Price:         parseMoney(req.Price),
		OriginalPrice: parseMoney(req.OriginalPrice),
		ImageURL:      req.ImageURL,
		CategoryID:    req.CategoryID,
		Stock:         req.Stock,
		Featured:      req.Featured,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return response{}, fmt.Errorf("product service update product: %w", err)
	}

	return jsonOK(product), nil
}

func (h *catalogHandler) DeleteProduct(r *http.Request) (response, error) {
	id, err := pathParam[int64](r, "id")
	if err != nil {
		return response{}, err
	}

	if err := h.productSvc.DeleteProduct(r.Context(), id); err != nil {
		return response{}, fmt.Errorf("product service delete product: %w", err)
	}

	return jsonOK(messageResponse{Message: "Product deleted successfully"}), nil
}

// parseMoney converts a validated money string.
func parseMoney(s *string) *decimal.Decimal {
	if s == nil {
		return nil
	}
	d := decimal.RequireFromString(*s)
	return &d
}
