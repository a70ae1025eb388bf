package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kdadks/billing-api/internal/application/dto"
	"github.com/kdadks/billing-api/internal/domain"
	"github.com/kdadks/billing-api/internal/domain/entity"
)

var maxTaxRate = decimal.NewFromInt(100)

// validateSaveRequest is the gate every create/update passes before any
// store call. It returns the usable line items with fully-blank placeholder
// rows silently dropped, or the list of field messages on failure.
func validateSaveRequest(in dto.SaveInvoiceRequest, now time.Time) ([]entity.InvoiceItem, []string) {
	var fields []string

	if in.CustomerID == "" {
		fields = append(fields, "customer is required")
	}
	if in.InvoiceDate.IsZero() {
		fields = append(fields, "invoice date is required")
	} else if in.InvoiceDate.After(endOfDay(now)) {
		fields = append(fields, "invoice date cannot be in the future")
	}
	if in.DueDate != nil && !in.InvoiceDate.IsZero() && in.DueDate.Before(in.InvoiceDate) {
		fields = append(fields, "due date cannot be before the invoice date")
	}

	var items []entity.InvoiceItem
	for i, row := range in.Items {
		item := entity.InvoiceItem{
			ItemName:    row.ItemName,
			Description: row.Description,
			Quantity:    row.Quantity,
			Unit:        row.Unit,
			UnitPrice:   row.UnitPrice,
			TaxRate:     row.TaxRate,
			ProductID:   row.ProductID,
			HSNCode:     row.HSNCode,
			SortOrder:   len(items),
		}
		if item.IsBlank() {
			continue // untouched placeholder row
		}
		if item.ItemName == "" {
			fields = append(fields, fmt.Sprintf("item %d: name is required", i+1))
		}
		if item.Description == "" {
			fields = append(fields, fmt.Sprintf("item %d: description is required", i+1))
		}
		if !item.Quantity.IsPositive() {
			fields = append(fields, fmt.Sprintf("item %d: quantity must be greater than zero", i+1))
		}
		if item.UnitPrice.IsNegative() {
			fields = append(fields, fmt.Sprintf("item %d: unit price cannot be negative", i+1))
		}
		if item.TaxRate.IsNegative() || item.TaxRate.GreaterThan(maxTaxRate) {
			fields = append(fields, fmt.Sprintf("item %d: tax rate must be between 0 and 100", i+1))
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		fields = append(fields, "at least one line item is required")
	}

	if len(fields) > 0 {
		return nil, fields
	}
	return items, nil
}

// endOfDay widens the future-date check to the end of today so a same-day
// invoice entered in another timezone does not bounce.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

// ValidationError wraps field messages behind domain.ErrValidation so
// handlers can surface them inline.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return domain.ErrValidation.Error()
}

func (e *ValidationError) Unwrap() error {
	return domain.ErrValidation
}
