package cart

import (
	"github.com/shopspring/decimal"

	"github.com/anlev/shopfront/internal/domain"
)

// TaxRate is the flat tax applied to the subtotal. Policy, not configuration.
var TaxRate = decimal.NewFromFloat(0.08)

// ShippingFee is currently always zero.
var ShippingFee = decimal.Zero

// ComputeTotals prices the cart against the given catalog index. Entries whose
// product is missing from the index are skipped, not treated as an error, so a
// failed or empty catalog fetch yields an all-zero total. Intermediate
// arithmetic keeps full precision; callers round at the presentation boundary.
func ComputeTotals(items []domain.CartItem, products domain.ProductIndex) domain.Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		p, ok := products[it.ProductID]
		if !ok {
			continue
		}
		subtotal = subtotal.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	tax := subtotal.Mul(TaxRate)
	total := subtotal.Add(tax).Add(ShippingFee)

	return domain.Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: ShippingFee,
		Total:    total,
	}
}

// ResolveLines turns cart entries into priced order lines, freezing each unit
// price at the current catalog value. Entries missing from the index are
// dropped, mirroring ComputeTotals.
func ResolveLines(items []domain.CartItem, products domain.ProductIndex) []domain.OrderLine {
	lines := make([]domain.OrderLine, 0, len(items))
	for _, it := range items {
		p, ok := products[it.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, domain.OrderLine{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: p.Price,
		})
	}
	return lines
}
