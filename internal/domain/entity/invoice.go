package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Document statuses of an invoice.
const (
	StatusDraft     = "draft"
	StatusSent      = "sent"
	StatusPaid      = "paid"
	StatusOverdue   = "overdue"
	StatusCancelled = "cancelled"
)

// Payment sub-states, tracked independently of document status.
const (
	PaymentPending = "pending"
	PaymentPartial = "partial"
	PaymentPaid    = "paid"
)

// Invoice is the header of a billing document. Totals are always derived from
// the items; they are stored for querying but recomputed on every mutation.
type Invoice struct {
	ID              string
	InvoiceNumber   string // immutable once reserved
	Status          string
	PaymentStatus   string
	InvoiceDate     time.Time
	DueDate         *time.Time
	CustomerID      string
	Notes           string
	TermsConditions string
	CurrencyCode    string
	Subtotal        decimal.Decimal
	TaxAmount       decimal.Decimal
	TotalAmount     decimal.Decimal
	Items           []InvoiceItem
	IsDeleted       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// InvoiceItem is one line of an invoice. LineTotal = Quantity * UnitPrice,
// LineTax = LineTotal * TaxRate / 100.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	ItemName    string
	Description string
	Quantity    decimal.Decimal
	Unit        string
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal // percentage, 0-100
	ProductID   string          // weak reference, pre-fill only
	HSNCode     string          // jurisdiction classification code
	SortOrder   int
}

// LineTotal returns Quantity * UnitPrice for the item.
func (it InvoiceItem) LineTotal() decimal.Decimal {
	return it.Quantity.Mul(it.UnitPrice)
}

// LineTax returns the tax amount for the item at its own rate.
func (it InvoiceItem) LineTax() decimal.Decimal {
	return it.LineTotal().Mul(it.TaxRate).Div(decimal.NewFromInt(100))
}

// IsBlank reports whether the item is an untouched placeholder row. Blank rows
// are dropped silently during validation instead of being rejected.
func (it InvoiceItem) IsBlank() bool {
	return it.ItemName == "" && it.Description == "" &&
		it.Quantity.IsZero() && it.UnitPrice.IsZero()
}

// IsTerminal reports whether the status forbids structural edits.
func (i *Invoice) IsTerminal() bool {
	return i.Status == StatusPaid || i.Status == StatusCancelled
}

// CanEditInPlace reports whether an edit mutates this invoice directly.
// Sent invoices are preserved for audit and edits spawn a revision instead.
func (i *Invoice) CanEditInPlace() bool {
	return i.Status == StatusDraft
}

// RequiresRevision reports whether an edit must create a new invoice record.
func (i *Invoice) RequiresRevision() bool {
	return i.Status == StatusSent
}

// CanTransition validates a document status transition:
// draft -> sent -> paid, sent -> overdue, any non-terminal -> cancelled.
func (i *Invoice) CanTransition(to string) bool {
	switch to {
	case StatusSent:
		return i.Status == StatusDraft
	case StatusPaid:
		return i.Status == StatusSent || i.Status == StatusOverdue
	case StatusOverdue:
		return i.Status == StatusSent
	case StatusCancelled:
		return !i.IsTerminal()
	default:
		return false
	}
}
