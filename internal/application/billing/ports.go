package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kdadks/billing-api/internal/domain/entity"
	"github.com/kdadks/billing-api/internal/domain/layout"
)

// DocumentRenderer turns a laid-out document into bytes for a concrete
// backend (PDF download, email attachment, print preview).
type DocumentRenderer interface {
	Render(ctx context.Context, doc *layout.Document, branding *entity.CompanySettings) ([]byte, error)
}

// EmailKind distinguishes the two outgoing message flavours.
type EmailKind string

const (
	EmailInvoice             EmailKind = "invoice"
	EmailPaymentConfirmation EmailKind = "payment_confirmation"
	EmailPaymentLink         EmailKind = "payment_link"
)

// EmailMessage is the payload contract with the mail collaborator. One
// attempt per message; the core never retries sends.
type EmailMessage struct {
	To             string
	Subject        string
	Body           string
	AttachmentName string
	Attachment     []byte
	Kind           EmailKind
}

// EmailSender sends one email and reports success or failure.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// Gateway is one active payment provider.
type Gateway struct {
	ID   string
	Name string
}

// PaymentRequest is the contract for creating a gateway payment request.
type PaymentRequest struct {
	InvoiceID      string
	GatewayID      string
	Amount         decimal.Decimal
	Currency       string
	CustomerEmail  string
	ExpiresInHours int
	Metadata       map[string]string
}

// PaymentService is the payment-gateway collaborator. The returned link token
// is opaque; the core only embeds it in outgoing email content.
type PaymentService interface {
	ListActiveGateways(ctx context.Context) ([]Gateway, error)
	CreatePaymentRequest(ctx context.Context, req PaymentRequest) (requestID string, err error)
	CreatePaymentLink(ctx context.Context, requestID, channel string) (link string, err error)
}
