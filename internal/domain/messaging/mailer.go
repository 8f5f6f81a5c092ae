package messaging

import "context"

// Email is an outbound message ready for delivery
// TextBody is optional; when empty the message is sent as HTML only
type Email struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer delivers rendered emails
// Implementations live in infrastructure (SMTP, log-only)
type Mailer interface {
	Send(ctx context.Context, email Email) error
}
