package billing

import (
	"context"
	"fmt"

	"github.com/kdadks/billing-api/internal/application/dto"
	"github.com/kdadks/billing-api/internal/domain"
	"github.com/kdadks/billing-api/internal/domain/repository"
)

// PaymentUseCase creates gateway payment requests and shareable links for an
// invoice. The link token stays opaque end to end.
type PaymentUseCase struct {
	invoices       repository.InvoiceRepository
	customers      repository.CustomerRepository
	gateway        PaymentService
	expiresInHours int
}

// NewPaymentUseCase builds the use case.
func NewPaymentUseCase(invoices repository.InvoiceRepository, customers repository.CustomerRepository, gateway PaymentService, expiresInHours int) *PaymentUseCase {
	if expiresInHours <= 0 {
		expiresInHours = 72
	}
	return &PaymentUseCase{invoices: invoices, customers: customers, gateway: gateway, expiresInHours: expiresInHours}
}

// ListGateways returns the active payment providers.
func (uc *PaymentUseCase) ListGateways(ctx context.Context) ([]Gateway, error) {
	return uc.gateway.ListActiveGateways(ctx)
}

// CreateLink creates a payment request for the invoice total and a link on
// the requested channel.
func (uc *PaymentUseCase) CreateLink(ctx context.Context, invoiceID string, in dto.PaymentLinkRequest) (*dto.PaymentLinkResponse, error) {
	inv, err := uc.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}

	customer, err := uc.customers.GetByID(ctx, inv.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}

	requestID, err := uc.gateway.CreatePaymentRequest(ctx, PaymentRequest{
		InvoiceID:      inv.ID,
		GatewayID:      in.GatewayID,
		Amount:         inv.TotalAmount,
		Currency:       inv.CurrencyCode,
		CustomerEmail:  customer.Email,
		ExpiresInHours: uc.expiresInHours,
		Metadata:       map[string]string{"invoice_number": inv.InvoiceNumber},
	})
	if err != nil {
		return nil, fmt.Errorf("payment: create request: %w", err)
	}

	channel := in.Channel
	if channel == "" {
		channel = "link"
	}
	link, err := uc.gateway.CreatePaymentLink(ctx, requestID, channel)
	if err != nil {
		return nil, fmt.Errorf("payment: create link: %w", err)
	}

	return &dto.PaymentLinkResponse{RequestID: requestID, Link: link}, nil
}
