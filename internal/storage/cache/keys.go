package cache

import "strconv"

const (
	KeyCategories       = "categories"
	KeyProductsAll      = "products:all"
	KeyProductsFeatured = "products:featured"
)

func KeyProduct(id int64) string {
	return "product:" + strconv.FormatInt(id, 10)
}

// KeyProducts names a cached product listing.
func KeyProducts(categoryID *int64, featuredOnly bool) string {
	switch {
	case categoryID != nil && featuredOnly:
		return "products:category:" + strconv.FormatInt(*categoryID, 10) + ":featured"
	case categoryID != nil:
		return "products:category:" + strconv.FormatInt(*categoryID, 10)
	case featuredOnly:
		return KeyProductsFeatured
	default:
		return KeyProductsAll
	}
}

// ProductListKeys returns every listing key a change to a product in the
// given categories can affect.
func ProductListKeys(categoryIDs ...int64) []string {
	keys := []string{KeyProductsAll, KeyProductsFeatured}
	for _, id := range categoryIDs {
		keys = append(keys, KeyProducts(&id, false), KeyProducts(&id, true))
	}
	return keys
}
