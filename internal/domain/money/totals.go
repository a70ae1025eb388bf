// Package money holds the pure monetary arithmetic of the billing core:
// invoice totals and the amount-in-words conversion. All arithmetic runs in
// decimal; two-decimal rounding happens only at formatting time so rounding
// error never compounds across line items.
package money

import (
	"github.com/shopspring/decimal"

	"github.com/kdadks/billing-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Totals is the derived monetary summary of an invoice.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// ComputeTotals derives subtotal, tax and grand total from the line items.
// Tax is applied per line at the item's own rate, not at invoice level.
// Total == Subtotal + TaxAmount always holds.
func ComputeTotals(items []entity.InvoiceItem) Totals {
	var subtotal, tax decimal.Decimal
	for _, it := range items {
		line := it.Quantity.Mul(it.UnitPrice)
		subtotal = subtotal.Add(line)
		tax = tax.Add(line.Mul(it.TaxRate).Div(hundred))
	}
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal.Add(tax),
	}
}
