package billing_test

import (
	"context"
	"sync"

	"github.com/kdadks/billing-api/internal/domain/entity"
	"github.com/kdadks/billing-api/internal/domain/repository"
	"github.com/kdadks/billing-api/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// ── settings fake ─────────────────────────────────────────────────────────────

type fakeSettingsRepo struct {
	mu             sync.Mutex
	s              entity.InvoiceSettings
	incrementCalls int
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (*entity.InvoiceSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.s
	return &s, nil
}

func (f *fakeSettingsRepo) IncrementAndGet(ctx context.Context, financialYear string) (*entity.InvoiceSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.incrementCalls++
	if financialYear != "" && financialYear != f.s.CurrentFinancialYear {
		f.s.CurrentNumber = 1
		f.s.CurrentFinancialYear = financialYear
	} else {
		f.s.CurrentNumber++
	}
	s := f.s
	return &s, nil
}

func (f *fakeSettingsRepo) Update(ctx context.Context, s *entity.InvoiceSettings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.s = *s
	return nil
}

// ── invoice fake ──────────────────────────────────────────────────────────────

type fakeInvoiceRepo struct {
	byID map[string]*entity.Invoice

	createCalls int
	updateCalls int
	// alwaysCollide makes every uniqueness probe report an existing invoice,
	// to drive the retry loop to exhaustion.
	alwaysCollide bool

	lastStatus        string
	lastPaymentStatus string
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{byID: map[string]*entity.Invoice{}}
}

func copyInvoice(inv *entity.Invoice) *entity.Invoice {
	c := *inv
	c.Items = append([]entity.InvoiceItem(nil), inv.Items...)
	return &c
}

func (f *fakeInvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	f.createCalls++
	f.byID[inv.ID] = copyInvoice(inv)
	return nil
}

func (f *fakeInvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	f.updateCalls++
	f.byID[inv.ID] = copyInvoice(inv)
	return nil
}

func (f *fakeInvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return copyInvoice(inv), nil
}

func (f *fakeInvoiceRepo) GetByNumber(ctx context.Context, number string) (*entity.Invoice, error) {
	if f.alwaysCollide {
		return &entity.Invoice{InvoiceNumber: number}, nil
	}
	for _, inv := range f.byID {
		if inv.InvoiceNumber == number {
			return copyInvoice(inv), nil
		}
	}
	return nil, nil
}

func (f *fakeInvoiceRepo) List(ctx context.Context, filter repository.InvoiceFilter, page, pageSize int) ([]*entity.Invoice, int64, error) {
	var out []*entity.Invoice
	for _, inv := range f.byID {
		out = append(out, copyInvoice(inv))
	}
	return out, int64(len(out)), nil
}

func (f *fakeInvoiceRepo) UpdateStatus(ctx context.Context, id, status, paymentStatus string) error {
	inv := f.byID[id]
	inv.Status = status
	if paymentStatus != "" {
		inv.PaymentStatus = paymentStatus
	}
	f.lastStatus = status
	f.lastPaymentStatus = paymentStatus
	return nil
}

func (f *fakeInvoiceRepo) Delete(ctx context.Context, id string) error {
	inv := f.byID[id]
	inv.Status = entity.StatusCancelled
	inv.IsDeleted = true
	return nil
}

// seed stores an invoice directly, bypassing the use case.
func (f *fakeInvoiceRepo) seed(inv *entity.Invoice) {
	f.byID[inv.ID] = copyInvoice(inv)
}

// ── customer / country fakes ──────────────────────────────────────────────────

type fakeCustomerRepo struct {
	byID map[string]*entity.Customer
}

func (f *fakeCustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	return f.byID[id], nil
}

func (f *fakeCustomerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, nil
}

type fakeCountryRepo struct {
	byID map[string]*entity.Country
}

func (f *fakeCountryRepo) GetByID(ctx context.Context, id string) (*entity.Country, error) {
	return f.byID[id], nil
}

func (f *fakeCountryRepo) List(ctx context.Context) ([]*entity.Country, error) {
	var out []*entity.Country
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, nil
}
