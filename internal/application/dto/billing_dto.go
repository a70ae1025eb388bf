package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItemRequest is one line of a create/update body. Rows left entirely
// blank (untouched placeholder rows from the form) are dropped, not rejected.
type InvoiceItemRequest struct {
	ItemName    string          `json:"item_name"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	ProductID   string          `json:"product_id,omitempty"`
	HSNCode     string          `json:"hsn_code,omitempty"`
}

// SaveInvoiceRequest is the body for POST /api/invoices and PUT /api/invoices/:id.
type SaveInvoiceRequest struct {
	CustomerID      string               `json:"customer_id" validate:"required"`
	InvoiceDate     time.Time            `json:"invoice_date" validate:"required"`
	DueDate         *time.Time           `json:"due_date,omitempty"`
	Notes           string               `json:"notes,omitempty"`
	TermsConditions string               `json:"terms_conditions,omitempty"`
	Items           []InvoiceItemRequest `json:"items" validate:"required"`
}

// InvoiceItemResponse is one invoice line in responses.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	ItemName    string          `json:"item_name"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	ProductID   string          `json:"product_id,omitempty"`
	HSNCode     string          `json:"hsn_code,omitempty"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// InvoiceResponse is the full invoice for GET /api/invoices/:id.
type InvoiceResponse struct {
	ID              string                `json:"id"`
	InvoiceNumber   string                `json:"invoice_number"`
	Status          string                `json:"status"`
	PaymentStatus   string                `json:"payment_status"`
	InvoiceDate     string                `json:"invoice_date"`
	DueDate         string                `json:"due_date,omitempty"`
	CustomerID      string                `json:"customer_id"`
	CustomerName    string                `json:"customer_name,omitempty"`
	Notes           string                `json:"notes,omitempty"`
	TermsConditions string                `json:"terms_conditions,omitempty"`
	CurrencyCode    string                `json:"currency_code"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	TaxAmount       decimal.Decimal       `json:"tax_amount"`
	TotalAmount     decimal.Decimal       `json:"total_amount"`
	Items           []InvoiceItemResponse `json:"items"`
	// RevisionOf is set on the response of an edit that spawned a revision:
	// the number of the original sent invoice, surfaced alongside the new one.
	RevisionOf string `json:"revision_of,omitempty"`
}

// InvoiceListResponse is a page of invoices.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Meta  ListMeta          `json:"meta"`
}

// UpdateStatusRequest is the body for PATCH /api/invoices/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent paid overdue cancelled"`
}

// NumberPreviewResponse is the on-screen preview of the next invoice number.
// Peek never mutates the counter.
type NumberPreviewResponse struct {
	NextNumber string `json:"next_number"`
}

// InvoiceSettingsRequest updates the numbering configuration.
type InvoiceSettingsRequest struct {
	InvoicePrefix           string `json:"invoice_prefix"`
	InvoiceSuffix           string `json:"invoice_suffix"`
	NumberFormat            string `json:"number_format"`
	ResetAnnually           bool   `json:"reset_annually"`
	FinancialYearStartMonth int    `json:"financial_year_start_month" validate:"omitempty,min=1,max=12"`
}

// InvoiceSettingsResponse mirrors the stored numbering configuration.
type InvoiceSettingsResponse struct {
	InvoicePrefix           string `json:"invoice_prefix"`
	InvoiceSuffix           string `json:"invoice_suffix"`
	NumberFormat            string `json:"number_format"`
	ResetAnnually           bool   `json:"reset_annually"`
	FinancialYearStartMonth int    `json:"financial_year_start_month"`
	CurrentFinancialYear    string `json:"current_financial_year"`
	CurrentNumber           int64  `json:"current_number"`
}

// SendEmailRequest mails the rendered invoice to a recipient.
type SendEmailRequest struct {
	Recipient string `json:"recipient" validate:"required,email"`
	// Kind distinguishes invoice vs payment-confirmation messaging.
	Kind string `json:"kind" validate:"omitempty,oneof=invoice payment_confirmation"`
}

// PaymentLinkRequest creates a gateway payment request plus a shareable link.
// When Recipient is set the link is also mailed to that address.
type PaymentLinkRequest struct {
	GatewayID string `json:"gateway_id" validate:"required"`
	Channel   string `json:"channel" validate:"omitempty,oneof=email sms link"`
	Recipient string `json:"recipient" validate:"omitempty,email"`
}

// PaymentLinkResponse carries the opaque link token back to the caller.
type PaymentLinkResponse struct {
	RequestID string `json:"request_id"`
	Link      string `json:"link"`
}
