package mail

import "context"

// Package mail contains the outbound email abstraction. The core never talks
// to an SMTP server directly; workflows receive a Mailer and treat send
// failures as upstream errors with no retry.

// Mailer sends plain-text email to one or more recipients.
type Mailer interface {
	Send(ctx context.Context, subject, body string, to []string) error
}
