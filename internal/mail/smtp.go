package mail

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"pimapi/internal/config"
)

// smtpMailer implements Mailer over SMTP using gomail.
// A fresh connection is dialed per send; volume is low (password-reset mail).
type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTP creates a Mailer backed by the configured SMTP server.
func NewSMTP(cfg config.SMTPConfig) (Mailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("smtp from address is required")
	}

	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}, nil
}

// Send delivers a plain-text message. The context is honored only between
// messages; gomail does not support per-dial cancellation.
func (m *smtpMailer) Send(ctx context.Context, subject, body string, to []string) error {
	if len(to) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
