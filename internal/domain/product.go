package domain

import "github.com/shopspring/decimal"

// Product is a read-only view of a catalog entry. Instances are produced by
// the catalog client after schema validation; within a session they are
// treated as immutable.
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock"`
	Category      string          `json:"category"`
	ImageURL      string          `json:"image_url"`
	CommissionPct decimal.Decimal `json:"commission_pct"`
}

// ProductIndex maps product ids to products for line-item resolution.
type ProductIndex map[string]Product

// IndexProducts builds a ProductIndex from a catalog listing.
func IndexProducts(products []Product) ProductIndex {
	idx := make(ProductIndex, len(products))
	for _, p := range products {
		idx[p.ID] = p
	}
	return idx
}
