package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kdadks/billing-api/internal/domain/entity"
	"github.com/kdadks/billing-api/internal/domain/repository"
)

var _ repository.InvoiceSettingsRepository = (*InvoiceSettingsRepo)(nil)

// InvoiceSettingsRepo persists the singleton numbering configuration.
type InvoiceSettingsRepo struct {
	q Querier
}

// NewInvoiceSettingsRepository builds the adapter. Pass pool or tx (Querier).
func NewInvoiceSettingsRepository(q Querier) *InvoiceSettingsRepo {
	return &InvoiceSettingsRepo{q: q}
}

const settingsColumns = `id, invoice_prefix, invoice_suffix, number_format, reset_annually,
	financial_year_start_month, current_financial_year, current_number, updated_at`

// Get returns the settings row, creating Indian-financial-year defaults when
// no row exists yet.
func (r *InvoiceSettingsRepo) Get(ctx context.Context) (*entity.InvoiceSettings, error) {
	query := `SELECT ` + settingsColumns + ` FROM invoice_settings LIMIT 1`
	s, err := scanSettings(r.q.QueryRow(ctx, query))
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get invoice settings: %w", err)
	}

	defaults := &entity.InvoiceSettings{
		ID:                      uuid.New().String(),
		InvoicePrefix:           "INV-",
		NumberFormat:            "####",
		ResetAnnually:           true,
		FinancialYearStartMonth: 4, // April, Indian financial year
	}
	insert := `
		INSERT INTO invoice_settings (id, invoice_prefix, invoice_suffix, number_format,
			reset_annually, financial_year_start_month, current_financial_year, current_number, updated_at)
		VALUES ($1, $2, '', $3, $4, $5, '', 0, now())
		ON CONFLICT DO NOTHING`
	if _, err := r.q.Exec(ctx, insert,
		defaults.ID, defaults.InvoicePrefix, defaults.NumberFormat,
		defaults.ResetAnnually, defaults.FinancialYearStartMonth,
	); err != nil {
		return nil, fmt.Errorf("seed invoice settings: %w", err)
	}
	// Re-read: a concurrent seeder may have won the insert.
	s, err = scanSettings(r.q.QueryRow(ctx, query))
	if err != nil {
		return nil, fmt.Errorf("get invoice settings: %w", err)
	}
	return s, nil
}

// IncrementAndGet advances the counter in a single UPDATE ... RETURNING, so
// two concurrent reservations can never observe the same value. The
// financial-year rollover is folded into the same statement: when the stored
// year differs from financialYear the counter restarts at 1.
func (r *InvoiceSettingsRepo) IncrementAndGet(ctx context.Context, financialYear string) (*entity.InvoiceSettings, error) {
	query := `
		UPDATE invoice_settings
		SET current_number = CASE
		        WHEN $1 <> '' AND current_financial_year <> $1 THEN 1
		        ELSE current_number + 1
		    END,
		    current_financial_year = CASE WHEN $1 <> '' THEN $1 ELSE current_financial_year END,
		    updated_at = now()
		RETURNING ` + settingsColumns
	s, err := scanSettings(r.q.QueryRow(ctx, query, financialYear))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No settings row yet: seed defaults and retry once.
			if _, gerr := r.Get(ctx); gerr != nil {
				return nil, gerr
			}
			return r.IncrementAndGet(ctx, financialYear)
		}
		return nil, fmt.Errorf("increment invoice counter: %w", err)
	}
	return s, nil
}

// Update overwrites the numbering configuration. The counter and financial
// year columns are untouched; only IncrementAndGet moves those.
func (r *InvoiceSettingsRepo) Update(ctx context.Context, s *entity.InvoiceSettings) error {
	query := `
		UPDATE invoice_settings
		SET invoice_prefix = $2, invoice_suffix = $3, number_format = $4,
		    reset_annually = $5, financial_year_start_month = $6, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.InvoicePrefix, s.InvoiceSuffix, s.NumberFormat,
		s.ResetAnnually, s.FinancialYearStartMonth,
	)
	if err != nil {
		return fmt.Errorf("update invoice settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update invoice settings: no row")
	}
	return nil
}

func scanSettings(row pgx.Row) (*entity.InvoiceSettings, error) {
	var s entity.InvoiceSettings
	var suffix, fy *string
	err := row.Scan(
		&s.ID, &s.InvoicePrefix, &suffix, &s.NumberFormat, &s.ResetAnnually,
		&s.FinancialYearStartMonth, &fy, &s.CurrentNumber, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.InvoiceSuffix = deref(suffix)
	s.CurrentFinancialYear = deref(fy)
	return &s, nil
}

// ── company settings ──────────────────────────────────────────────────────────

var _ repository.CompanySettingsRepository = (*CompanySettingsRepo)(nil)

// CompanySettingsRepo reads branding and legal identity.
type CompanySettingsRepo struct {
	q Querier
}

// NewCompanySettingsRepository builds the adapter.
func NewCompanySettingsRepository(q Querier) *CompanySettingsRepo {
	return &CompanySettingsRepo{q: q}
}

// Get returns the company profile, or nil when none has been configured.
func (r *CompanySettingsRepo) Get(ctx context.Context) (*entity.CompanySettings, error) {
	query := `
		SELECT id, company_name, address_line1, address_line2, city, state, postal_code, country,
		       email, phone, website, tax_id, pan, cin,
		       logo_image, header_image, footer_image,
		       bank_name, bank_account_name, bank_account_number, bank_ifsc, bank_swift,
		       default_terms, updated_at
		FROM company_settings LIMIT 1`
	var c entity.CompanySettings
	var nullable [18]*string
	err := r.q.QueryRow(ctx, query).Scan(
		&c.ID, &c.CompanyName, &nullable[0], &nullable[1], &nullable[2], &nullable[3], &nullable[4], &nullable[5],
		&nullable[6], &nullable[7], &nullable[8], &nullable[9], &nullable[10], &nullable[11],
		&c.LogoImage, &c.HeaderImage, &c.FooterImage,
		&nullable[12], &nullable[13], &nullable[14], &nullable[15], &nullable[16],
		&nullable[17], &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company settings: %w", err)
	}
	c.AddressLine1 = deref(nullable[0])
	c.AddressLine2 = deref(nullable[1])
	c.City = deref(nullable[2])
	c.State = deref(nullable[3])
	c.PostalCode = deref(nullable[4])
	c.Country = deref(nullable[5])
	c.Email = deref(nullable[6])
	c.Phone = deref(nullable[7])
	c.Website = deref(nullable[8])
	c.TaxID = deref(nullable[9])
	c.PAN = deref(nullable[10])
	c.CIN = deref(nullable[11])
	c.BankName = deref(nullable[12])
	c.BankAccountName = deref(nullable[13])
	c.BankAccountNumber = deref(nullable[14])
	c.BankIFSC = deref(nullable[15])
	c.BankSWIFT = deref(nullable[16])
	c.DefaultTerms = deref(nullable[17])
	return &c, nil
}

// ── terms templates ───────────────────────────────────────────────────────────

var _ repository.TermsTemplateRepository = (*TermsTemplateRepo)(nil)

// TermsTemplateRepo lists reusable terms & conditions snippets.
type TermsTemplateRepo struct {
	q Querier
}

// NewTermsTemplateRepository builds the adapter.
func NewTermsTemplateRepository(q Querier) *TermsTemplateRepo {
	return &TermsTemplateRepo{q: q}
}

func (r *TermsTemplateRepo) List(ctx context.Context) ([]*entity.TermsTemplate, error) {
	query := `SELECT id, name, content, is_default FROM terms_templates ORDER BY is_default DESC, name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list terms templates: %w", err)
	}
	defer rows.Close()

	var out []*entity.TermsTemplate
	for rows.Next() {
		var t entity.TermsTemplate
		if err := rows.Scan(&t.ID, &t.Name, &t.Content, &t.IsDefault); err != nil {
			return nil, fmt.Errorf("scan terms template: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}
