package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry used only to pre-fill invoice item fields.
type Product struct {
	ID          string
	Name        string
	Description string
	Unit        string
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	HSNCode     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
