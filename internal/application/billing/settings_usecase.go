package billing

import (
	"context"
	"time"

	"github.com/kdadks/billing-api/internal/application/dto"
	"github.com/kdadks/billing-api/internal/domain/entity"
	"github.com/kdadks/billing-api/internal/domain/repository"
)

// SettingsUseCase reads and updates the numbering configuration and lists
// terms templates. The counter itself is never touched here.
type SettingsUseCase struct {
	settings repository.InvoiceSettingsRepository
	terms    repository.TermsTemplateRepository
}

// NewSettingsUseCase builds the use case.
func NewSettingsUseCase(settings repository.InvoiceSettingsRepository, terms repository.TermsTemplateRepository) *SettingsUseCase {
	return &SettingsUseCase{settings: settings, terms: terms}
}

// Get returns the stored numbering configuration.
func (uc *SettingsUseCase) Get(ctx context.Context) (*dto.InvoiceSettingsResponse, error) {
	s, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(s), nil
}

// Update overwrites the numbering configuration. The running counter and
// financial year are deliberately excluded from the writable set.
func (uc *SettingsUseCase) Update(ctx context.Context, in dto.InvoiceSettingsRequest) (*dto.InvoiceSettingsResponse, error) {
	s, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	s.InvoicePrefix = in.InvoicePrefix
	s.InvoiceSuffix = in.InvoiceSuffix
	s.NumberFormat = in.NumberFormat
	s.ResetAnnually = in.ResetAnnually
	if in.FinancialYearStartMonth >= 1 && in.FinancialYearStartMonth <= 12 {
		s.FinancialYearStartMonth = in.FinancialYearStartMonth
	}
	s.UpdatedAt = time.Now()

	if err := uc.settings.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSettingsResponse(s), nil
}

// ListTerms returns the reusable terms & conditions templates.
func (uc *SettingsUseCase) ListTerms(ctx context.Context) ([]*entity.TermsTemplate, error) {
	return uc.terms.List(ctx)
}

func toSettingsResponse(s *entity.InvoiceSettings) *dto.InvoiceSettingsResponse {
	return &dto.InvoiceSettingsResponse{
		InvoicePrefix:           s.InvoicePrefix,
		InvoiceSuffix:           s.InvoiceSuffix,
		NumberFormat:            s.NumberFormat,
		ResetAnnually:           s.ResetAnnually,
		FinancialYearStartMonth: s.FinancialYearStartMonth,
		CurrentFinancialYear:    s.CurrentFinancialYear,
		CurrentNumber:           s.CurrentNumber,
	}
}
