package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kdadks/billing-api/internal/domain"
	"github.com/kdadks/billing-api/internal/domain/repository"
)

// CatalogHandler serves the read-only collaborator resources invoices point
// at: customers, products and countries.
type CatalogHandler struct {
	customers repository.CustomerRepository
	products  repository.ProductRepository
	countries repository.CountryRepository
}

// NewCatalogHandler builds the handler.
func NewCatalogHandler(
	customers repository.CustomerRepository,
	products repository.ProductRepository,
	countries repository.CountryRepository,
) *CatalogHandler {
	return &CatalogHandler{customers: customers, products: products, countries: countries}
}

// ListCustomers — GET /api/customers
func (h *CatalogHandler) ListCustomers(c *fiber.Ctx) error {
	out, err := h.customers.List(c.Context(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"customers": out})
}

// GetCustomer — GET /api/customers/:id
func (h *CatalogHandler) GetCustomer(c *fiber.Ctx) error {
	customer, err := h.customers.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if customer == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(customer)
}

// ListProducts — GET /api/products
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	out, err := h.products.List(c.Context(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"products": out})
}

// GetProduct — GET /api/products/:id
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.products.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if product == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(product)
}

// ListCountries — GET /api/countries
func (h *CatalogHandler) ListCountries(c *fiber.Ctx) error {
	out, err := h.countries.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"countries": out})
}
