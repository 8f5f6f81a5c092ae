package mail

import (
	"fmt"

	"github.com/nursery/backend/internal/domain/messaging"
	"github.com/nursery/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewMailer selects a mailer implementation based on the configured driver
func NewMailer(cfg config.MailConfig, logger *zap.Logger) (messaging.Mailer, error) {
	switch cfg.Driver {
	case "smtp":
		return NewSMTPMailer(cfg), nil
	case "log":
		return NewLogMailer(logger), nil
	default:
		return nil, fmt.Errorf("unknown mail driver: %q", cfg.Driver)
	}
}
