package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kdadks/billing-api/internal/application/billing"
	"github.com/kdadks/billing-api/internal/domain/repository"
)

// RouterDeps carries the wired use cases and read repositories.
type RouterDeps struct {
	InvoiceUC  *billing.InvoiceUseCase
	DocumentUC *billing.DocumentUseCase
	EmailUC    *billing.EmailUseCase
	PaymentUC  *billing.PaymentUseCase
	SettingsUC *billing.SettingsUseCase
	Numbering  *billing.NumberingService

	Customers repository.CustomerRepository
	Products  repository.ProductRepository
	Countries repository.CountryRepository
	Company   repository.CompanySettingsRepository
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.DocumentUC, deps.EmailUC, deps.PaymentUC)
	invoices := api.Group("/invoices")
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Patch("/:id/status", invoiceHandler.UpdateStatus)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Post("/:id/email", invoiceHandler.SendEmail)
	invoices.Post("/:id/payment-link", invoiceHandler.CreatePaymentLink)

	payments := api.Group("/payments")
	payments.Get("/gateways", invoiceHandler.ListGateways)

	settingsHandler := NewSettingsHandler(deps.SettingsUC, deps.Numbering, deps.Company)
	settings := api.Group("/settings")
	settings.Get("/invoice", settingsHandler.Get)
	settings.Put("/invoice", settingsHandler.Update)
	settings.Get("/invoice/next-number", settingsHandler.PreviewNumber)
	settings.Get("/company", settingsHandler.GetCompany)
	settings.Get("/terms-templates", settingsHandler.ListTerms)

	catalogHandler := NewCatalogHandler(deps.Customers, deps.Products, deps.Countries)
	customers := api.Group("/customers")
	customers.Get("/", catalogHandler.ListCustomers)
	customers.Get("/:id", catalogHandler.GetCustomer)

	products := api.Group("/products")
	products.Get("/", catalogHandler.ListProducts)
	products.Get("/:id", catalogHandler.GetProduct)

	countries := api.Group("/countries")
	countries.Get("/", catalogHandler.ListCountries)
}
