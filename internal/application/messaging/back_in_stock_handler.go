package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/nursery/backend/internal/domain/catalog"
	"github.com/nursery/backend/internal/domain/messaging"
	"github.com/nursery/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// BackInStockHandler notifies waiting subscribers when a product is restocked.
// Each pending alert gets one email and is marked notified, so a second
// restock does not mail the same subscriber again.
type BackInStockHandler struct {
	alertRepo    catalog.StockAlertRepository
	templateRepo messaging.TemplateRepository
	mailer       messaging.Mailer
	logger       *zap.Logger
}

// NewBackInStockHandler creates a new handler for product restock events
func NewBackInStockHandler(
	alertRepo catalog.StockAlertRepository,
	templateRepo messaging.TemplateRepository,
	mailer messaging.Mailer,
	logger *zap.Logger,
) *BackInStockHandler {
	return &BackInStockHandler{
		alertRepo:    alertRepo,
		templateRepo: templateRepo,
		mailer:       mailer,
		logger:       logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *BackInStockHandler) EventTypes() []string {
	return []string{catalog.EventTypeProductRestocked}
}

// Handle mails every pending subscriber for the restocked product
func (h *BackInStockHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	restocked, ok := event.(*catalog.ProductRestockedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			catalog.EventTypeProductRestocked, event.EventType())
	}

	alerts, err := h.alertRepo.FindPendingByProduct(ctx, restocked.ProductID)
	if err != nil {
		return err
	}
	if len(alerts) == 0 {
		return nil
	}

	template, err := h.templateRepo.FindByKind(ctx, messaging.TemplateBackInStock)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.logger.Warn("no back-in-stock template configured, skipping alerts",
				zap.String("product_code", restocked.Code),
				zap.Int("pending_alerts", len(alerts)),
			)
			return nil
		}
		return err
	}
	if !template.Active {
		return nil
	}

	rendered, err := template.Render(map[string]string{
		"product_name": restocked.Name,
		"product_code": restocked.Code,
	})
	if err != nil {
		return err
	}

	notified := 0
	for idx := range alerts {
		alert := &alerts[idx]
		if err := h.mailer.Send(ctx, messaging.Email{
			To:       alert.Email,
			Subject:  rendered.Subject,
			HTMLBody: rendered.HTMLBody,
			TextBody: rendered.TextBody,
		}); err != nil {
			h.logger.Error("failed to send back-in-stock email",
				zap.String("product_code", restocked.Code),
				zap.String("to", alert.Email),
				zap.Error(err),
			)
			continue
		}
		if err := alert.MarkNotified(); err != nil {
			continue
		}
		if err := h.alertRepo.Save(ctx, alert); err != nil {
			return err
		}
		notified++
	}

	h.logger.Info("back-in-stock alerts processed",
		zap.String("product_code", restocked.Code),
		zap.Int("notified", notified),
		zap.Int("pending", len(alerts)),
	)
	return nil
}
