package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdadks/billing-api/internal/application/billing"
	"github.com/kdadks/billing-api/internal/application/dto"
	"github.com/kdadks/billing-api/internal/domain"
	"github.com/kdadks/billing-api/internal/domain/entity"
)

type usecaseFixture struct {
	uc           *billing.InvoiceUseCase
	invoices     *fakeInvoiceRepo
	settingsRepo *fakeSettingsRepo
}

func newFixture(t *testing.T) *usecaseFixture {
	t.Helper()
	settingsRepo := &fakeSettingsRepo{s: entity.InvoiceSettings{
		InvoicePrefix: "INV-",
		NumberFormat:  "####",
	}}
	invoices := newFakeInvoiceRepo()
	customers := &fakeCustomerRepo{byID: map[string]*entity.Customer{
		"cust-1": {ID: "cust-1", Name: "Acme Traders", CountryID: "in"},
	}}
	countries := &fakeCountryRepo{byID: map[string]*entity.Country{
		"in": {ID: "in", Code: "IN", Name: "India"},
	}}
	numbering := billing.NewNumberingService(settingsRepo, invoices)
	uc := billing.NewInvoiceUseCase(invoices, customers, countries, numbering, testLogger())
	return &usecaseFixture{uc: uc, invoices: invoices, settingsRepo: settingsRepo}
}

func saveRequest() dto.SaveInvoiceRequest {
	due := time.Now().Add(30 * 24 * time.Hour)
	return dto.SaveInvoiceRequest{
		CustomerID:  "cust-1",
		InvoiceDate: time.Now().Add(-time.Hour),
		DueDate:     &due,
		Items: []dto.InvoiceItemRequest{
			{
				ItemName:    "Consulting",
				Description: "Architecture review",
				Quantity:    decimal.NewFromInt(2),
				UnitPrice:   decimal.NewFromFloat(250.50),
				TaxRate:     decimal.NewFromInt(18),
			},
			{
				ItemName:    "Support",
				Description: "Monthly retainer",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   decimal.NewFromInt(385),
				TaxRate:     decimal.NewFromInt(5),
			},
		},
	}
}

func TestCreateAssignsNumberAndTotals(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Create(context.Background(), saveRequest())
	require.NoError(t, err)

	assert.Equal(t, "INV-0001", resp.InvoiceNumber)
	assert.Equal(t, entity.StatusDraft, resp.Status)
	assert.Equal(t, entity.PaymentPending, resp.PaymentStatus)
	assert.Equal(t, "INR", resp.CurrencyCode)
	assert.Equal(t, "Acme Traders", resp.CustomerName)

	// 2×250.50 + 1×385 = 886; 501@18% + 385@5% = 90.18 + 19.25 = 109.43
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(886)), "subtotal = %s", resp.Subtotal)
	assert.True(t, resp.TaxAmount.Equal(decimal.NewFromFloat(109.43)), "tax = %s", resp.TaxAmount)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromFloat(995.43)), "total = %s", resp.TotalAmount)
	require.Len(t, resp.Items, 2)
}

func TestCreateRejectsInvalidBeforeReservingNumber(t *testing.T) {
	f := newFixture(t)

	in := saveRequest()
	in.Items = []dto.InvoiceItemRequest{{}, {}} // only untouched placeholder rows

	_, err := f.uc.Create(context.Background(), in)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	var verr *billing.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Fields)

	assert.Equal(t, 0, f.settingsRepo.incrementCalls, "a rejected form must not burn a counter value")
	assert.Equal(t, 0, f.invoices.createCalls)
}

func TestCreateRejectsFutureInvoiceDate(t *testing.T) {
	f := newFixture(t)

	in := saveRequest()
	in.InvoiceDate = time.Now().Add(48 * time.Hour)

	_, err := f.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateDropsBlankRows(t *testing.T) {
	f := newFixture(t)

	in := saveRequest()
	in.Items = append(in.Items, dto.InvoiceItemRequest{}) // trailing placeholder

	resp, err := f.uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Len(t, resp.Items, 2)
}

func TestUpdateDraftMutatesInPlace(t *testing.T) {
	f := newFixture(t)

	created, err := f.uc.Create(context.Background(), saveRequest())
	require.NoError(t, err)

	in := saveRequest()
	in.Notes = "Payment by NEFT only"
	in.Items = in.Items[:1]

	updated, err := f.uc.Update(context.Background(), created.ID, in)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.InvoiceNumber, updated.InvoiceNumber, "draft edits never change the number")
	assert.Empty(t, updated.RevisionOf)
	assert.Equal(t, "Payment by NEFT only", updated.Notes)
	assert.True(t, updated.Subtotal.Equal(decimal.NewFromInt(501)), "totals recomputed: %s", updated.Subtotal)
	assert.Equal(t, 1, f.invoices.updateCalls)
	assert.Equal(t, 1, f.invoices.createCalls)
}

func TestUpdateSentSpawnsRevision(t *testing.T) {
	f := newFixture(t)

	created, err := f.uc.Create(context.Background(), saveRequest())
	require.NoError(t, err)
	f.invoices.byID[created.ID].Status = entity.StatusSent

	in := saveRequest()
	in.Notes = "Corrected quantity"
	in.Items[0].Quantity = decimal.NewFromInt(3)

	revision, err := f.uc.Update(context.Background(), created.ID, in)
	require.NoError(t, err)

	assert.NotEqual(t, created.ID, revision.ID)
	assert.NotEqual(t, created.InvoiceNumber, revision.InvoiceNumber, "revision gets a fresh number")
	assert.Equal(t, created.InvoiceNumber, revision.RevisionOf)
	assert.Equal(t, entity.StatusDraft, revision.Status, "revision starts its own lifecycle as a draft")

	// The original sent invoice is untouched.
	original := f.invoices.byID[created.ID]
	assert.Equal(t, entity.StatusSent, original.Status)
	assert.Empty(t, original.Notes)
	assert.True(t, original.Items[0].Quantity.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, 2, f.invoices.createCalls)
	assert.Equal(t, 0, f.invoices.updateCalls)
}

func TestUpdateRejectedForSettledStatuses(t *testing.T) {
	for _, status := range []string{entity.StatusPaid, entity.StatusOverdue, entity.StatusCancelled} {
		t.Run(status, func(t *testing.T) {
			f := newFixture(t)

			created, err := f.uc.Create(context.Background(), saveRequest())
			require.NoError(t, err)
			f.invoices.byID[created.ID].Status = status

			increments := f.settingsRepo.incrementCalls

			_, err = f.uc.Update(context.Background(), created.ID, saveRequest())
			require.ErrorIs(t, err, domain.ErrStatusEditForbidden)

			assert.Equal(t, 0, f.invoices.updateCalls)
			assert.Equal(t, 1, f.invoices.createCalls)
			assert.Equal(t, increments, f.settingsRepo.incrementCalls, "rejection must happen before reserving a number")
		})
	}
}

func TestUpdateStatusMarkPaidSetsPaymentState(t *testing.T) {
	f := newFixture(t)

	created, err := f.uc.Create(context.Background(), saveRequest())
	require.NoError(t, err)
	f.invoices.byID[created.ID].Status = entity.StatusSent

	require.NoError(t, f.uc.UpdateStatus(context.Background(), created.ID, entity.StatusPaid))

	assert.Equal(t, entity.StatusPaid, f.invoices.lastStatus)
	assert.Equal(t, entity.PaymentPaid, f.invoices.lastPaymentStatus)
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	f := newFixture(t)

	created, err := f.uc.Create(context.Background(), saveRequest())
	require.NoError(t, err)

	// draft → paid skips "sent"
	err = f.uc.UpdateStatus(context.Background(), created.ID, entity.StatusPaid)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// terminal statuses accept nothing
	f.invoices.byID[created.ID].Status = entity.StatusCancelled
	err = f.uc.UpdateStatus(context.Background(), created.ID, entity.StatusSent)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDeleteIsSoft(t *testing.T) {
	f := newFixture(t)

	created, err := f.uc.Create(context.Background(), saveRequest())
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(context.Background(), created.ID))

	stored := f.invoices.byID[created.ID]
	assert.True(t, stored.IsDeleted, "row is retained, only flagged")
	assert.Equal(t, entity.StatusCancelled, stored.Status)

	_, err = f.uc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Delete follows the transition rules: terminal invoices cannot be cancelled,
// so a paid invoice stays on the books untouched.
func TestDeleteRejectedForTerminalStatuses(t *testing.T) {
	for _, status := range []string{entity.StatusPaid, entity.StatusCancelled} {
		t.Run(status, func(t *testing.T) {
			f := newFixture(t)

			created, err := f.uc.Create(context.Background(), saveRequest())
			require.NoError(t, err)
			f.invoices.byID[created.ID].Status = status

			err = f.uc.Delete(context.Background(), created.ID)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)

			stored := f.invoices.byID[created.ID]
			assert.False(t, stored.IsDeleted)
			assert.Equal(t, status, stored.Status)
		})
	}
}

func TestGetUnknownInvoice(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Get(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
