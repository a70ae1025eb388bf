package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kdadks/billing-api/internal/application/dto"
	"github.com/kdadks/billing-api/internal/domain"
	"github.com/kdadks/billing-api/internal/domain/currency"
	"github.com/kdadks/billing-api/internal/domain/entity"
	"github.com/kdadks/billing-api/internal/domain/money"
	"github.com/kdadks/billing-api/internal/domain/repository"
	"github.com/kdadks/billing-api/pkg/logger"
)

// InvoiceUseCase owns invoice mutation: the status/edit/revision state
// machine, the validation gate, and totals derivation. One lifecycle
// operation runs at a time per invoice; correctness of numbering relies on
// the store's atomic increment plus the bounded uniqueness retry, not on
// in-process locks.
type InvoiceUseCase struct {
	invoices  repository.InvoiceRepository
	customers repository.CustomerRepository
	countries repository.CountryRepository
	numbering *NumberingService
	log       *logger.Logger
	now       func() time.Time
}

// NewInvoiceUseCase builds the use case.
func NewInvoiceUseCase(
	invoices repository.InvoiceRepository,
	customers repository.CustomerRepository,
	countries repository.CountryRepository,
	numbering *NumberingService,
	log *logger.Logger,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoices:  invoices,
		customers: customers,
		countries: countries,
		numbering: numbering,
		log:       log,
		now:       time.Now,
	}
}

// Create validates, reserves a number, computes totals and persists a new
// draft invoice. Validation failures abort before the numbering reservation,
// so a rejected form never burns a counter value.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.SaveInvoiceRequest) (*dto.InvoiceResponse, error) {
	items, fields := validateSaveRequest(in, uc.now())
	if fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	customer, country, err := uc.loadCustomer(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}

	number, err := uc.numbering.Reserve(ctx)
	if err != nil {
		return nil, err
	}

	inv := uc.buildInvoice(in, items, number, customer, country)
	if err := uc.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}

	uc.log.Info().Str("invoice", inv.InvoiceNumber).Msg("invoice created")
	return uc.toResponse(inv, customer.Name, ""), nil
}

// Update applies the state machine's edit rules:
//   - draft: mutate in place, number untouched, totals recomputed
//   - sent: spawn a revision with a fresh number; the original stays intact
//     for audit and both numbers are surfaced to the caller
//   - paid/overdue/cancelled: rejected before any store write
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.SaveInvoiceRequest) (*dto.InvoiceResponse, error) {
	original, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !original.CanEditInPlace() && !original.RequiresRevision() {
		return nil, domain.ErrStatusEditForbidden
	}

	items, fields := validateSaveRequest(in, uc.now())
	if fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	customer, country, err := uc.loadCustomer(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}

	if original.RequiresRevision() {
		number, err := uc.numbering.Reserve(ctx)
		if err != nil {
			return nil, err
		}
		revision := uc.buildInvoice(in, items, number, customer, country)
		if err := uc.invoices.Create(ctx, revision); err != nil {
			return nil, err
		}
		uc.log.Info().
			Str("original", original.InvoiceNumber).
			Str("revision", revision.InvoiceNumber).
			Msg("sent invoice edited, revision created")
		return uc.toResponse(revision, customer.Name, original.InvoiceNumber), nil
	}

	totals := money.ComputeTotals(items)
	now := uc.now()

	original.CustomerID = customer.ID
	original.InvoiceDate = in.InvoiceDate
	original.DueDate = in.DueDate
	original.Notes = in.Notes
	original.TermsConditions = in.TermsConditions
	original.Items = items
	original.CurrencyCode = currency.Resolve(country).Code
	original.Subtotal = totals.Subtotal
	original.TaxAmount = totals.TaxAmount
	original.TotalAmount = totals.Total
	original.UpdatedAt = now

	if err := uc.invoices.Update(ctx, original); err != nil {
		return nil, err
	}
	return uc.toResponse(original, customer.Name, ""), nil
}

// UpdateStatus applies a document status transition. Marking paid sets
// status and payment sub-state together as one transition.
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, id, status string) error {
	inv, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	if !inv.CanTransition(status) {
		return domain.ErrInvalidTransition
	}

	paymentStatus := ""
	if status == entity.StatusPaid {
		paymentStatus = entity.PaymentPaid
	}
	if err := uc.invoices.UpdateStatus(ctx, id, status, paymentStatus); err != nil {
		return err
	}
	uc.log.Info().Str("invoice", inv.InvoiceNumber).Str("status", status).Msg("invoice status changed")
	return nil
}

// Delete is a soft transition to cancelled: the invoice is marked
// cancelled/deleted and retained for audit rather than physically removed.
// It follows the same transition rules, so terminal invoices stay as they are.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	inv, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	if !inv.CanTransition(entity.StatusCancelled) {
		return domain.ErrInvalidTransition
	}
	return uc.invoices.Delete(ctx, id)
}

// Get returns one invoice with its customer name.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	name := ""
	if customer, err := uc.customers.GetByID(ctx, inv.CustomerID); err == nil && customer != nil {
		name = customer.Name
	}
	return uc.toResponse(inv, name, ""), nil
}

// List returns a page of invoices.
func (uc *InvoiceUseCase) List(ctx context.Context, filter repository.InvoiceFilter, page, pageSize int) (*dto.InvoiceListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	list, total, err := uc.invoices.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}
	out := &dto.InvoiceListResponse{
		Items: make([]dto.InvoiceResponse, 0, len(list)),
		Meta:  dto.ListMeta{Page: page, PageSize: pageSize, Total: total},
	}
	for _, inv := range list {
		out.Items = append(out.Items, *uc.toResponse(inv, "", ""))
	}
	return out, nil
}

// ── internals ─────────────────────────────────────────────────────────────────

func (uc *InvoiceUseCase) load(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := uc.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.IsDeleted {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

func (uc *InvoiceUseCase) loadCustomer(ctx context.Context, id string) (*entity.Customer, *entity.Country, error) {
	customer, err := uc.customers.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if customer == nil {
		return nil, nil, domain.ErrNotFound
	}
	var country *entity.Country
	if customer.CountryID != "" {
		country, _ = uc.countries.GetByID(ctx, customer.CountryID)
	}
	return customer, country, nil
}

func (uc *InvoiceUseCase) buildInvoice(
	in dto.SaveInvoiceRequest,
	items []entity.InvoiceItem,
	number string,
	customer *entity.Customer,
	country *entity.Country,
) *entity.Invoice {
	totals := money.ComputeTotals(items)
	now := uc.now()
	inv := &entity.Invoice{
		ID:              uuid.New().String(),
		InvoiceNumber:   number,
		Status:          entity.StatusDraft,
		PaymentStatus:   entity.PaymentPending,
		InvoiceDate:     in.InvoiceDate,
		DueDate:         in.DueDate,
		CustomerID:      customer.ID,
		Notes:           in.Notes,
		TermsConditions: in.TermsConditions,
		CurrencyCode:    currency.Resolve(country).Code,
		Subtotal:        totals.Subtotal,
		TaxAmount:       totals.TaxAmount,
		TotalAmount:     totals.Total,
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for i := range inv.Items {
		inv.Items[i].ID = uuid.New().String()
		inv.Items[i].InvoiceID = inv.ID
	}
	return inv
}

func (uc *InvoiceUseCase) toResponse(inv *entity.Invoice, customerName, revisionOf string) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:              inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		Status:          inv.Status,
		PaymentStatus:   inv.PaymentStatus,
		InvoiceDate:     inv.InvoiceDate.Format("2006-01-02"),
		CustomerID:      inv.CustomerID,
		CustomerName:    customerName,
		Notes:           inv.Notes,
		TermsConditions: inv.TermsConditions,
		CurrencyCode:    inv.CurrencyCode,
		Subtotal:        inv.Subtotal,
		TaxAmount:       inv.TaxAmount,
		TotalAmount:     inv.TotalAmount,
		Items:           make([]dto.InvoiceItemResponse, 0, len(inv.Items)),
		RevisionOf:      revisionOf,
	}
	if inv.DueDate != nil {
		resp.DueDate = inv.DueDate.Format("2006-01-02")
	}
	for _, it := range inv.Items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:          it.ID,
			ItemName:    it.ItemName,
			Description: it.Description,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			ProductID:   it.ProductID,
			HSNCode:     it.HSNCode,
			LineTotal:   it.LineTotal(),
		})
	}
	return resp
}
