package billing

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/kdadks/billing-api/internal/domain"
	"github.com/kdadks/billing-api/internal/domain/entity"
	"github.com/kdadks/billing-api/internal/domain/layout"
	"github.com/kdadks/billing-api/internal/domain/repository"
)

// Branding image heights reserved on the page (mm). The images themselves are
// renderer concerns; the layout only needs their vertical extent.
const (
	headerImageHeight = 25.0
	footerImageHeight = 15.0
)

// DocumentUseCase assembles everything the layout engine needs for one
// invoice and hands the result to a rendering backend.
type DocumentUseCase struct {
	invoices  repository.InvoiceRepository
	customers repository.CustomerRepository
	countries repository.CountryRepository
	company   repository.CompanySettingsRepository
	renderer  DocumentRenderer
}

// NewDocumentUseCase builds the use case.
func NewDocumentUseCase(
	invoices repository.InvoiceRepository,
	customers repository.CustomerRepository,
	countries repository.CountryRepository,
	company repository.CompanySettingsRepository,
	renderer DocumentRenderer,
) *DocumentUseCase {
	return &DocumentUseCase{
		invoices:  invoices,
		customers: customers,
		countries: countries,
		company:   company,
		renderer:  renderer,
	}
}

// RenderInvoice lays out and renders one invoice, returning the document
// bytes and the download filename.
func (uc *DocumentUseCase) RenderInvoice(ctx context.Context, invoiceID string) ([]byte, string, error) {
	inv, customer, country, company, err := uc.loadAll(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}

	geo := layout.A4()
	if len(company.HeaderImage) > 0 {
		geo.HeaderImageHeight = headerImageHeight
	}
	if len(company.FooterImage) > 0 {
		geo.FooterImageHeight = footerImageHeight
	}

	doc, err := layout.Build(layout.Input{
		Invoice:  inv,
		Customer: customer,
		Country:  country,
		Company:  company,
		Geometry: geo,
	})
	if err != nil {
		return nil, "", fmt.Errorf("document: layout: %w", err)
	}

	out, err := uc.renderer.Render(ctx, doc, company)
	if err != nil {
		return nil, "", fmt.Errorf("document: render: %w", err)
	}

	return out, Filename(inv.InvoiceNumber, customer.Name), nil
}

func (uc *DocumentUseCase) loadAll(ctx context.Context, invoiceID string) (
	*entity.Invoice, *entity.Customer, *entity.Country, *entity.CompanySettings, error,
) {
	inv, err := uc.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("document: load invoice: %w", err)
	}
	if inv == nil {
		return nil, nil, nil, nil, domain.ErrNotFound
	}

	customer, err := uc.customers.GetByID(ctx, inv.CustomerID)
	if err != nil || customer == nil {
		return nil, nil, nil, nil, domain.ErrNotFound
	}

	var country *entity.Country
	if customer.CountryID != "" {
		country, _ = uc.countries.GetByID(ctx, customer.CountryID)
	}

	company, err := uc.company.Get(ctx)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("document: load company settings: %w", err)
	}
	if company == nil {
		// Rendering works before the company profile has been filled in.
		company = &entity.CompanySettings{}
	}

	return inv, customer, country, company, nil
}

// Filename builds the download name `Invoice-<number>-<customerName>` with
// non-alphanumeric characters stripped from both parts.
func Filename(number, customerName string) string {
	return "Invoice-" + stripNonAlnum(number) + "-" + stripNonAlnum(customerName)
}

func stripNonAlnum(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
