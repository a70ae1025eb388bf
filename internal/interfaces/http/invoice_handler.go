package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/kdadks/billing-api/internal/application/billing"
	"github.com/kdadks/billing-api/internal/application/dto"
	"github.com/kdadks/billing-api/internal/domain/repository"
)

// InvoiceHandler serves the invoice lifecycle endpoints.
type InvoiceHandler struct {
	invoices  *billing.InvoiceUseCase
	documents *billing.DocumentUseCase
	emails    *billing.EmailUseCase
	payments  *billing.PaymentUseCase
	validate  *validator.Validate
}

// NewInvoiceHandler builds the handler.
func NewInvoiceHandler(
	invoices *billing.InvoiceUseCase,
	documents *billing.DocumentUseCase,
	emails *billing.EmailUseCase,
	payments *billing.PaymentUseCase,
) *InvoiceHandler {
	return &InvoiceHandler{
		invoices:  invoices,
		documents: documents,
		emails:    emails,
		payments:  payments,
		validate:  validator.New(),
	}
}

// Create creates a draft invoice with a freshly reserved number.
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := h.validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	resp, err := h.invoices.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update edits an invoice. Drafts mutate in place; sent invoices spawn a
// revision and the response carries both numbers.
// PUT /api/invoices/:id
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.SaveInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := h.validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	resp, err := h.invoices.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// GetByID returns one invoice with its items.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.invoices.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// List returns a page of invoices.
// GET /api/invoices?status=&customer_id=&search=&page=&page_size=
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	filter := repository.InvoiceFilter{
		Status:     c.Query("status"),
		CustomerID: c.Query("customer_id"),
		Search:     c.Query("search"),
	}
	resp, err := h.invoices.List(c.Context(), filter, c.QueryInt("page", 1), c.QueryInt("page_size", 20))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// UpdateStatus applies one status transition.
// PATCH /api/invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := h.validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.invoices.UpdateStatus(c.Context(), c.Params("id"), in.Status); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete soft-deletes an invoice; the row and its number stay claimed.
// DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.invoices.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF renders the invoice document and streams it.
// GET /api/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	data, filename, err := h.documents.RenderInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`.pdf"`)
	return c.Send(data)
}

// SendEmail mails the rendered invoice to a recipient.
// POST /api/invoices/:id/email
func (h *InvoiceHandler) SendEmail(c *fiber.Ctx) error {
	var in dto.SendEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := h.validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	kind := billing.EmailKind(in.Kind)
	if kind == "" {
		kind = billing.EmailInvoice
	}
	if err := h.emails.SendInvoice(c.Context(), c.Params("id"), in.Recipient, kind); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreatePaymentLink creates a gateway payment request and a shareable link.
// POST /api/invoices/:id/payment-link
func (h *InvoiceHandler) CreatePaymentLink(c *fiber.Ctx) error {
	var in dto.PaymentLinkRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := h.validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	resp, err := h.payments.CreateLink(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if in.Recipient != "" {
		if err := h.emails.SendPaymentLink(c.Context(), c.Params("id"), in.Recipient, resp.Link); err != nil {
			return respondError(c, err)
		}
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListGateways returns the active payment gateways.
// GET /api/payments/gateways
func (h *InvoiceHandler) ListGateways(c *fiber.Ctx) error {
	gateways, err := h.payments.ListGateways(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"gateways": gateways})
}
