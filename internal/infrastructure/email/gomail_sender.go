// Package email sends outgoing invoice mail over SMTP.
package email

import (
	"bytes"
	"context"
	"fmt"
	"io"

	gomail "gopkg.in/gomail.v2"

	"github.com/kdadks/billing-api/internal/application/billing"
	"github.com/kdadks/billing-api/pkg/config"
)

var _ billing.EmailSender = (*Sender)(nil)

// Sender delivers messages through a configured SMTP relay. One attempt per
// message; retry policy belongs to the caller.
type Sender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSender builds the sender from SMTP configuration.
func NewSender(cfg config.SMTPConfig) *Sender {
	return &Sender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send delivers one message, honoring context cancellation between dial and send.
func (s *Sender) Send(ctx context.Context, msg billing.EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	if len(msg.Attachment) > 0 {
		m.Attach(msg.AttachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := io.Copy(w, bytes.NewReader(msg.Attachment))
			return err
		}))
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email to %s: %w", msg.To, err)
	}
	return nil
}
