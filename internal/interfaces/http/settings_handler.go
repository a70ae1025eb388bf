package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/kdadks/billing-api/internal/application/billing"
	"github.com/kdadks/billing-api/internal/application/dto"
	"github.com/kdadks/billing-api/internal/domain"
	"github.com/kdadks/billing-api/internal/domain/repository"
)

// SettingsHandler serves numbering configuration, company profile and terms
// templates.
type SettingsHandler struct {
	settings  *billing.SettingsUseCase
	numbering *billing.NumberingService
	company   repository.CompanySettingsRepository
	validate  *validator.Validate
}

// NewSettingsHandler builds the handler.
func NewSettingsHandler(
	settings *billing.SettingsUseCase,
	numbering *billing.NumberingService,
	company repository.CompanySettingsRepository,
) *SettingsHandler {
	return &SettingsHandler{
		settings:  settings,
		numbering: numbering,
		company:   company,
		validate:  validator.New(),
	}
}

// Get returns the numbering configuration.
// GET /api/settings/invoice
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	resp, err := h.settings.Get(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Update overwrites the numbering configuration. The counter itself is not
// writable through this endpoint.
// PUT /api/settings/invoice
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in dto.InvoiceSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := h.validate.Struct(in); err != nil {
		return badRequest(c, err.Error())
	}
	resp, err := h.settings.Update(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// PreviewNumber shows the next invoice number without reserving it.
// GET /api/settings/invoice/next-number
func (h *SettingsHandler) PreviewNumber(c *fiber.Ctx) error {
	next, err := h.numbering.Peek(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NumberPreviewResponse{NextNumber: next})
}

// GetCompany returns the company profile used on rendered documents.
// GET /api/settings/company
func (h *SettingsHandler) GetCompany(c *fiber.Ctx) error {
	company, err := h.company.Get(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	if company == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(company)
}

// ListTerms returns the reusable terms & conditions templates.
// GET /api/settings/terms-templates
func (h *SettingsHandler) ListTerms(c *fiber.Ctx) error {
	templates, err := h.settings.ListTerms(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"templates": templates})
}
