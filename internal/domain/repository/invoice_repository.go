package repository

import (
	"context"

	"github.com/kdadks/billing-api/internal/domain/entity"
)

// InvoiceFilter narrows invoice listings.
type InvoiceFilter struct {
	Status     string
	CustomerID string
	Search     string // matches invoice number
}

// InvoiceRepository is the persistence port for invoices and their items.
type InvoiceRepository interface {
	// Create persists the header and its items atomically.
	Create(ctx context.Context, inv *entity.Invoice) error
	// Update overwrites header fields and replaces the item set. The invoice
	// number is never part of an update.
	Update(ctx context.Context, inv *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// GetByNumber is the exact-match uniqueness probe used by number reservation.
	GetByNumber(ctx context.Context, number string) (*entity.Invoice, error)
	List(ctx context.Context, filter InvoiceFilter, page, pageSize int) ([]*entity.Invoice, int64, error)
	// UpdateStatus sets the document status and, when paymentStatus is
	// non-empty, the payment sub-state in the same statement.
	UpdateStatus(ctx context.Context, id, status, paymentStatus string) error
	// Delete is soft: the row is marked deleted/cancelled and retained for audit.
	Delete(ctx context.Context, id string) error
}
