package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdadks/billing-api/internal/application/billing"
	"github.com/kdadks/billing-api/internal/application/dto"
	"github.com/kdadks/billing-api/internal/domain/entity"
	"github.com/kdadks/billing-api/internal/domain/layout"
	"github.com/kdadks/billing-api/internal/domain/repository"
	apphttp "github.com/kdadks/billing-api/internal/interfaces/http"
	"github.com/kdadks/billing-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory collaborators
// ──────────────────────────────────────────────────────────────────────────────

type memInvoices struct {
	byID map[string]*entity.Invoice
}

func (m *memInvoices) Create(ctx context.Context, inv *entity.Invoice) error {
	c := *inv
	m.byID[inv.ID] = &c
	return nil
}

func (m *memInvoices) Update(ctx context.Context, inv *entity.Invoice) error {
	c := *inv
	m.byID[inv.ID] = &c
	return nil
}

func (m *memInvoices) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return m.byID[id], nil
}

func (m *memInvoices) GetByNumber(ctx context.Context, number string) (*entity.Invoice, error) {
	for _, inv := range m.byID {
		if inv.InvoiceNumber == number {
			return inv, nil
		}
	}
	return nil, nil
}

func (m *memInvoices) List(ctx context.Context, filter repository.InvoiceFilter, page, pageSize int) ([]*entity.Invoice, int64, error) {
	var out []*entity.Invoice
	for _, inv := range m.byID {
		out = append(out, inv)
	}
	return out, int64(len(out)), nil
}

func (m *memInvoices) UpdateStatus(ctx context.Context, id, status, paymentStatus string) error {
	inv := m.byID[id]
	inv.Status = status
	if paymentStatus != "" {
		inv.PaymentStatus = paymentStatus
	}
	return nil
}

func (m *memInvoices) Delete(ctx context.Context, id string) error {
	m.byID[id].IsDeleted = true
	m.byID[id].Status = entity.StatusCancelled
	return nil
}

type memSettings struct {
	s entity.InvoiceSettings
}

func (m *memSettings) Get(ctx context.Context) (*entity.InvoiceSettings, error) {
	s := m.s
	return &s, nil
}

func (m *memSettings) IncrementAndGet(ctx context.Context, financialYear string) (*entity.InvoiceSettings, error) {
	m.s.CurrentNumber++
	s := m.s
	return &s, nil
}

func (m *memSettings) Update(ctx context.Context, s *entity.InvoiceSettings) error {
	m.s = *s
	return nil
}

type memCustomers struct{}

func (memCustomers) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	if id != "cust-1" {
		return nil, nil
	}
	return &entity.Customer{ID: "cust-1", Name: "Acme Traders", Email: "billing@acme.example", CountryID: "in"}, nil
}

func (memCustomers) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	c, _ := memCustomers{}.GetByID(ctx, "cust-1")
	return []*entity.Customer{c}, nil
}

type memCountries struct{}

func (memCountries) GetByID(ctx context.Context, id string) (*entity.Country, error) {
	if id != "in" {
		return nil, nil
	}
	return &entity.Country{ID: "in", Code: "IN", Name: "India"}, nil
}

func (memCountries) List(ctx context.Context) ([]*entity.Country, error) {
	c, _ := memCountries{}.GetByID(ctx, "in")
	return []*entity.Country{c}, nil
}

type memProducts struct{}

func (memProducts) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return nil, nil
}

func (memProducts) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

type memCompany struct{}

func (memCompany) Get(ctx context.Context) (*entity.CompanySettings, error) {
	return &entity.CompanySettings{ID: "co-1", CompanyName: "Kdadks Service Private Limited"}, nil
}

type memTerms struct{}

func (memTerms) List(ctx context.Context) ([]*entity.TermsTemplate, error) {
	return []*entity.TermsTemplate{{ID: "t1", Name: "Standard", Content: "Payment within 30 days.", IsDefault: true}}, nil
}

type stubRenderer struct{}

func (stubRenderer) Render(ctx context.Context, doc *layout.Document, branding *entity.CompanySettings) ([]byte, error) {
	return []byte("%PDF-stub"), nil
}

type stubSender struct {
	sent []billing.EmailMessage
}

func (s *stubSender) Send(ctx context.Context, msg billing.EmailMessage) error {
	s.sent = append(s.sent, msg)
	return nil
}

type stubGateway struct{}

func (stubGateway) ListActiveGateways(ctx context.Context) ([]billing.Gateway, error) {
	return []billing.Gateway{{ID: "gw-razorpay", Name: "Razorpay"}}, nil
}

func (stubGateway) CreatePaymentRequest(ctx context.Context, req billing.PaymentRequest) (string, error) {
	return "req-123", nil
}

func (stubGateway) CreatePaymentLink(ctx context.Context, requestID, channel string) (string, error) {
	return "https://pay.example/" + requestID, nil
}

func buildTestApp(t *testing.T) (*fiber.App, *stubSender) {
	t.Helper()
	invoices := &memInvoices{byID: map[string]*entity.Invoice{}}
	settings := &memSettings{s: entity.InvoiceSettings{InvoicePrefix: "INV-", NumberFormat: "####"}}
	log := logger.New(logger.Config{Env: "production", Level: "error"})

	numbering := billing.NewNumberingService(settings, invoices)
	invoiceUC := billing.NewInvoiceUseCase(invoices, memCustomers{}, memCountries{}, numbering, log)
	documentUC := billing.NewDocumentUseCase(invoices, memCustomers{}, memCountries{}, memCompany{}, stubRenderer{})
	sender := &stubSender{}
	emailUC := billing.NewEmailUseCase(documentUC, invoices, sender, log)
	paymentUC := billing.NewPaymentUseCase(invoices, memCustomers{}, stubGateway{}, 72)
	settingsUC := billing.NewSettingsUseCase(settings, memTerms{})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		InvoiceUC:  invoiceUC,
		DocumentUC: documentUC,
		EmailUC:    emailUC,
		PaymentUC:  paymentUC,
		SettingsUC: settingsUC,
		Numbering:  numbering,
		Customers:  memCustomers{},
		Products:   memProducts{},
		Countries:  memCountries{},
		Company:    memCompany{},
	})
	return app, sender
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func createBody() map[string]any {
	return map[string]any{
		"customer_id":  "cust-1",
		"invoice_date": time.Now().Add(-time.Hour).Format(time.RFC3339),
		"items": []map[string]any{
			{
				"item_name":   "Consulting",
				"description": "Architecture review",
				"quantity":    "2",
				"unit_price":  "250.50",
				"tax_rate":    "18",
			},
		},
	}
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out), "body: %s", data)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateInvoiceEndpoint(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := postJSON(t, app, "/api/invoices", createBody())
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out dto.InvoiceResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, "INV-0001", out.InvoiceNumber)
	assert.Equal(t, entity.StatusDraft, out.Status)
	assert.Equal(t, "INR", out.CurrencyCode)
}

func TestCreateInvoiceValidationErrorBody(t *testing.T) {
	app, _ := buildTestApp(t)

	body := createBody()
	body["items"] = []map[string]any{{"item_name": "", "description": "", "quantity": "0", "unit_price": "0"}}

	resp := postJSON(t, app, "/api/invoices", body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var out dto.ErrorResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.NotEmpty(t, out.Fields)
}

func TestGetInvoiceNotFound(t *testing.T) {
	app, _ := buildTestApp(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/invoices/no-such-id", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var out dto.ErrorResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, "NOT_FOUND", out.Code)
}

func TestStatusTransitionEndpoint(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := postJSON(t, app, "/api/invoices", createBody())
	var created dto.InvoiceResponse
	decodeBody(t, resp, &created)

	// draft → paid skips "sent": rejected with a conflict
	patch := func(status string) *http.Response {
		payload, _ := json.Marshal(dto.UpdateStatusRequest{Status: status})
		req, _ := http.NewRequest(http.MethodPatch, fmt.Sprintf("/api/invoices/%s/status", created.ID), bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		r, err := app.Test(req, -1)
		require.NoError(t, err)
		return r
	}

	resp = patch(entity.StatusPaid)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = patch(entity.StatusSent)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = patch(entity.StatusPaid)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestDownloadPDFEndpoint(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := postJSON(t, app, "/api/invoices", createBody())
	var created dto.InvoiceResponse
	decodeBody(t, resp, &created)

	req, _ := http.NewRequest(http.MethodGet, "/api/invoices/"+created.ID+"/pdf", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "Invoice-INV0001-AcmeTraders")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-stub", string(data))
}

func TestSendEmailEndpoint(t *testing.T) {
	app, sender := buildTestApp(t)

	resp := postJSON(t, app, "/api/invoices", createBody())
	var created dto.InvoiceResponse
	decodeBody(t, resp, &created)

	resp = postJSON(t, app, "/api/invoices/"+created.ID+"/email", dto.SendEmailRequest{Recipient: "billing@acme.example"})
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "billing@acme.example", sender.sent[0].To)
	assert.Contains(t, sender.sent[0].Subject, "INV-0001")
	assert.NotEmpty(t, sender.sent[0].Attachment)
}

func TestPaymentLinkEndpoint(t *testing.T) {
	app, sender := buildTestApp(t)

	resp := postJSON(t, app, "/api/invoices", createBody())
	var created dto.InvoiceResponse
	decodeBody(t, resp, &created)

	resp = postJSON(t, app, "/api/invoices/"+created.ID+"/payment-link", dto.PaymentLinkRequest{
		GatewayID: "gw-razorpay",
		Recipient: "billing@acme.example",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out dto.PaymentLinkResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, "req-123", out.RequestID)
	assert.Equal(t, "https://pay.example/req-123", out.Link)

	// The link is also mailed when a recipient is given.
	require.Len(t, sender.sent, 1)
	assert.Equal(t, billing.EmailPaymentLink, sender.sent[0].Kind)
	assert.Contains(t, sender.sent[0].Body, out.Link)
}

func TestCompanySettingsEndpoint(t *testing.T) {
	app, _ := buildTestApp(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/settings/company", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]any
	decodeBody(t, resp, &out)
	assert.Equal(t, "Kdadks Service Private Limited", out["CompanyName"])
}

func TestNumberPreviewEndpoint(t *testing.T) {
	app, _ := buildTestApp(t)

	req, _ := http.NewRequest(http.MethodGet, "/api/settings/invoice/next-number", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out dto.NumberPreviewResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, "INV-0001", out.NextNumber)

	// Previewing does not move the counter: creating still claims INV-0001.
	resp = postJSON(t, app, "/api/invoices", createBody())
	var created dto.InvoiceResponse
	decodeBody(t, resp, &created)
	assert.Equal(t, "INV-0001", created.InvoiceNumber)
}
