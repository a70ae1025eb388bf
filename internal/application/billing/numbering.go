package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/kdadks/billing-api/internal/domain"
	"github.com/kdadks/billing-api/internal/domain/numbering"
	"github.com/kdadks/billing-api/internal/domain/repository"
)

// maxReserveAttempts bounds the collision-retry loop. The counter increment is
// atomic at the store, but concurrent writers and manually edited numbers can
// still collide, so every reservation is verified against persisted invoices.
const maxReserveAttempts = 10

// NumberingService reserves unique, human-readable invoice numbers.
type NumberingService struct {
	settings repository.InvoiceSettingsRepository
	invoices repository.InvoiceRepository
	now      func() time.Time
}

// NewNumberingService builds the service.
func NewNumberingService(settings repository.InvoiceSettingsRepository, invoices repository.InvoiceRepository) *NumberingService {
	return &NumberingService{settings: settings, invoices: invoices, now: time.Now}
}

// Reserve atomically claims the next counter value, formats it, and verifies
// uniqueness by exact-match lookup. On collision it reserves again, up to
// maxReserveAttempts, then fails with domain.ErrNumberingExhausted. Sequential
// by design: each retry is a fresh round-trip to the store.
func (s *NumberingService) Reserve(ctx context.Context) (string, error) {
	current, err := s.settings.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("numbering: load settings: %w", err)
	}

	now := s.now()
	fy := ""
	if current.ResetAnnually {
		fy = numbering.FinancialYear(now, current.FinancialYearStartMonth)
	}

	for attempt := 0; attempt < maxReserveAttempts; attempt++ {
		claimed, err := s.settings.IncrementAndGet(ctx, fy)
		if err != nil {
			return "", fmt.Errorf("numbering: increment counter: %w", err)
		}

		candidate := numbering.Format(claimed, claimed.CurrentNumber, now)

		existing, err := s.invoices.GetByNumber(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("numbering: verify uniqueness: %w", err)
		}
		if existing == nil {
			return candidate, nil
		}
		// Collision: a concurrent writer or a manual edit took this number.
		// Loop for a fresh counter value.
	}

	return "", domain.ErrNumberingExhausted
}

// Peek formats the next number without mutating the counter, for on-screen
// preview before the user commits.
func (s *NumberingService) Peek(ctx context.Context) (string, error) {
	current, err := s.settings.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("numbering: load settings: %w", err)
	}

	now := s.now()
	next := current.CurrentNumber + 1
	if current.ResetAnnually {
		fy := numbering.FinancialYear(now, current.FinancialYearStartMonth)
		if fy != current.CurrentFinancialYear {
			next = 1
		}
	}

	return numbering.Format(current, next, now), nil
}
