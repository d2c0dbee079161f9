package recommend

import (
	"cmp"

	"github.com/shopspring/decimal"

	"github.com/rajgarments/storefront/internal/model"
)

// featuredBonus is added to the popularity score of featured products.
const featuredBonus = 10

// DefaultPriceTolerance is the fraction of the reference price within which
// two products count as similarly priced.
var DefaultPriceTolerance = decimal.RequireFromString("0.30")

// PopularitySource scores how popular a product is. Higher is more popular.
type PopularitySource interface {
	Score(p model.Product) int
}

// StockPopularity approximates popularity from the featured flag and the
// stock level, in the absence of sales or view telemetry.
type StockPopularity struct{}

func (StockPopularity) Score(p model.Product) int {
	return PopularityScore(p)
}

// PopularityScore returns 10 for featured products plus the stock level,
// with unknown stock counted as zero.
func PopularityScore(p model.Product) int {
	score := p.StockOrZero()
	if p.IsFeatured() {
		score += featuredBonus
	}
	return score
}

// PriceSimilar reports whether p is priced within ref*tolerance of ref,
// boundary inclusive.
func PriceSimilar(p model.Product, ref, tolerance decimal.Decimal) bool {
	return priceDistance(p, ref).LessThanOrEqual(ref.Mul(tolerance))
}

func priceDistance(p model.Product, ref decimal.Decimal) decimal.Decimal {
	return p.Price.Sub(ref).Abs()
}

// compareFeaturedRecent orders featured products first and then newer
// products first. Products without a creation time sort last.
func compareFeaturedRecent(a, b model.Product) int {
	if a.IsFeatured() != b.IsFeatured() {
		if a.IsFeatured() {
			return -1
		}
		return 1
	}
	return b.CreatedAtOrZero().Compare(a.CreatedAtOrZero())
}

// comparePopularity orders by descending popularity score.
func comparePopularity(src PopularitySource) func(a, b model.Product) int {
	return func(a, b model.Product) int {
		return cmp.Compare(src.Score(b), src.Score(a))
	}
}
