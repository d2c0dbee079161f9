// Package recommend ranks catalog products for a shopper.
//
// Four strategies are exposed by Engine: content-based (categories of the
// shopper's cart), collaborative (a popularity proxy shared by every
// shopper), hybrid (both, merged) and similar-products (same category,
// nearby price). Strategies only read the catalog. A failed catalog read
// never surfaces to the caller: the strategy degrades to the featured
// products, or to an empty result when even that read fails.
package recommend
