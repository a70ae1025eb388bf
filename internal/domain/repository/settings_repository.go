package repository

import (
	"context"

	"github.com/kdadks/billing-api/internal/domain/entity"
)

// InvoiceSettingsRepository is the persistence port for the numbering
// configuration. The counter is only ever mutated through IncrementAndGet;
// a read-then-write pair across two calls would duplicate numbers.
type InvoiceSettingsRepository interface {
	// Get returns the singleton settings row, creating defaults when absent.
	Get(ctx context.Context) (*entity.InvoiceSettings, error)
	// IncrementAndGet atomically advances the counter and returns its new
	// value. When the stored financial year differs from financialYear the
	// counter restarts at 1 in the same statement.
	IncrementAndGet(ctx context.Context, financialYear string) (*entity.InvoiceSettings, error)
	// Update overwrites the numbering configuration (not the counter path).
	Update(ctx context.Context, s *entity.InvoiceSettings) error
}

// CompanySettingsRepository reads branding and legal identity. Read-only to
// the billing core.
type CompanySettingsRepository interface {
	Get(ctx context.Context) (*entity.CompanySettings, error)
}

// TermsTemplateRepository lists reusable terms & conditions snippets.
type TermsTemplateRepository interface {
	List(ctx context.Context) ([]*entity.TermsTemplate, error)
}
