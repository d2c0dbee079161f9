package service

import (
	"context"
	"errors"

	"github.com/rajgarments/storefront/internal/apperr"
	"github.com/rajgarments/storefront/internal/model"
	"github.com/rajgarments/storefront/internal/recommend"
)

var _ recommend.Catalog = (*Catalog)(nil)

// Catalog gives the recommendation engine and the assistant read access to
// products and carts.
type Catalog struct {
	products ProductService
	carts    CartService
}

func NewCatalog(products ProductService, carts CartService) *Catalog {
	return &Catalog{
		products: products,
		carts:    carts,
	}
}

func (c *Catalog) GetProducts(ctx context.Context, filter recommend.ProductFilter) ([]model.Product, error) {
	return c.products.ListProducts(ctx, ListProductsParams{
		CategoryID:   filter.CategoryID,
		FeaturedOnly: filter.FeaturedOnly,
	})
}

func (c *Catalog) GetProduct(ctx context.Context, id int64) (model.Product, bool, error) {
	product, err := c.products.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ProductNotFoundErr) {
			return model.Product{}, false, nil
		}
		return model.Product{}, false, err
	}
	return product, true, nil
}

func (c *Catalog) GetCartItems(ctx context.Context, userID string) ([]model.CartItem, error) {
	return c.carts.ListCartItems(ctx, userID)
}
