// Package mail delivers notification emails over SMTP.
package mail

import (
	"context"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/promedhq/promed/internal/apperrors"
	"github.com/promedhq/promed/internal/config"
)

// Mailer sends email through the configured SMTP relay. Each send is
// bounded by the configured timeout so a hung relay cannot stall an
// alert scan.
type Mailer struct {
	cfg config.MailConfig
}

// NewMailer creates a mailer from SMTP configuration.
func NewMailer(cfg config.MailConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send delivers a plain-text message. A non-nil return means delivery
// was not confirmed and the caller may retry later.
func (m *Mailer) Send(ctx context.Context, recipient, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return apperrors.NewDeliveryError(err, recipient)
	}
	if err := msg.To(recipient); err != nil {
		return apperrors.NewDeliveryError(err, recipient)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	client, err := gomail.NewClient(m.cfg.Host,
		gomail.WithPort(m.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.Username),
		gomail.WithPassword(m.cfg.Password),
		gomail.WithTimeout(time.Duration(m.cfg.TimeoutSeconds)*time.Second),
	)
	if err != nil {
		return apperrors.NewDeliveryError(err, recipient)
	}

	sendCtx, cancel := context.WithTimeout(ctx, time.Duration(m.cfg.TimeoutSeconds)*time.Second)
	defer cancel()

	if err := client.DialAndSendWithContext(sendCtx, msg); err != nil {
		return apperrors.NewDeliveryError(err, recipient)
	}
	return nil
}
