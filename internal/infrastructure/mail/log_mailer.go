package mail

import (
	"context"

	"github.com/nursery/backend/internal/domain/messaging"
	"go.uber.org/zap"
)

// LogMailer writes emails to the application log instead of sending them.
// This is the default driver for development environments
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer creates a log-only mailer
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the email and reports success
func (m *LogMailer) Send(ctx context.Context, email messaging.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.logger.Info("email delivered to log",
		zap.String("to", email.To),
		zap.String("subject", email.Subject),
		zap.Int("html_bytes", len(email.HTMLBody)),
		zap.Int("text_bytes", len(email.TextBody)),
	)
	return nil
}

// Ensure LogMailer implements Mailer
var _ messaging.Mailer = (*LogMailer)(nil)
