package billing

import (
	"context"
	"fmt"

	"github.com/kdadks/billing-api/internal/domain"
	"github.com/kdadks/billing-api/internal/domain/repository"
	"github.com/kdadks/billing-api/pkg/logger"
)

// EmailUseCase renders an invoice and mails it. One attempt per send; a
// failure is reported back, never retried here.
type EmailUseCase struct {
	documents *DocumentUseCase
	invoices  repository.InvoiceRepository
	sender    EmailSender
	log       *logger.Logger
}

// NewEmailUseCase builds the use case.
func NewEmailUseCase(documents *DocumentUseCase, invoices repository.InvoiceRepository, sender EmailSender, log *logger.Logger) *EmailUseCase {
	return &EmailUseCase{documents: documents, invoices: invoices, sender: sender, log: log}
}

// SendInvoice renders the invoice document and emails it to the recipient.
// Kind selects invoice vs payment-confirmation messaging.
func (uc *EmailUseCase) SendInvoice(ctx context.Context, invoiceID, recipient string, kind EmailKind) error {
	inv, err := uc.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}

	pdf, filename, err := uc.documents.RenderInvoice(ctx, invoiceID)
	if err != nil {
		return err
	}

	msg := EmailMessage{
		To:             recipient,
		AttachmentName: filename + ".pdf",
		Attachment:     pdf,
		Kind:           kind,
	}
	switch kind {
	case EmailPaymentConfirmation:
		msg.Subject = fmt.Sprintf("Payment received for invoice %s", inv.InvoiceNumber)
		msg.Body = fmt.Sprintf(
			"We have received your payment for invoice %s. A copy of the invoice is attached for your records.",
			inv.InvoiceNumber)
	default:
		msg.Subject = fmt.Sprintf("Invoice %s", inv.InvoiceNumber)
		msg.Body = fmt.Sprintf(
			"Please find attached invoice %s. Payment is due as per the terms on the document.",
			inv.InvoiceNumber)
	}

	if err := uc.sender.Send(ctx, msg); err != nil {
		uc.log.Error().Err(err).Str("invoice", inv.InvoiceNumber).Msg("invoice email failed")
		return err
	}
	uc.log.Info().Str("invoice", inv.InvoiceNumber).Str("to", recipient).Msg("invoice emailed")
	return nil
}

// SendPaymentLink mails an opaque payment link for the invoice. No
// attachment; the link body is the whole message.
func (uc *EmailUseCase) SendPaymentLink(ctx context.Context, invoiceID, recipient, link string) error {
	inv, err := uc.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}

	msg := EmailMessage{
		To:      recipient,
		Subject: fmt.Sprintf("Payment link for invoice %s", inv.InvoiceNumber),
		Body: fmt.Sprintf(
			"You can pay invoice %s online using the link below:\n\n%s\n\nThe link expires automatically; request a new one if needed.",
			inv.InvoiceNumber, link),
		Kind: EmailPaymentLink,
	}
	if err := uc.sender.Send(ctx, msg); err != nil {
		uc.log.Error().Err(err).Str("invoice", inv.InvoiceNumber).Msg("payment link email failed")
		return err
	}
	uc.log.Info().Str("invoice", inv.InvoiceNumber).Str("to", recipient).Msg("payment link emailed")
	return nil
}
