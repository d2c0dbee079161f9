package recommend

import "github.com/rajgarments/storefront/internal/model"

// Dedup keeps the first occurrence of every product id, preserving the
// relative order of first occurrences.
func Dedup(products []model.Product) []model.Product {
	seen := make(map[int64]struct{}, len(products))
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}

// truncate returns at most limit products. It never returns nil.
func truncate(products []model.Product, limit int) []model.Product {
	if limit <= 0 {
		return []model.Product{}
	}
	if len(products) > limit {
		products = products[:limit]
	}
	if products == nil {
		return []model.Product{}
	}
	return products
}
