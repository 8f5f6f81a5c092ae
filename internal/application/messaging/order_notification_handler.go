package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/nursery/backend/internal/domain/messaging"
	"github.com/nursery/backend/internal/domain/order"
	"github.com/nursery/backend/internal/domain/pickup"
	"github.com/nursery/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderNotificationHandler sends transactional emails on order lifecycle events.
// Paid orders get a confirmation, shipped orders a shipping notice and
// ready pickup orders a reminder. A missing or deactivated template
// suppresses the email without failing the event.
type OrderNotificationHandler struct {
	orderRepo    order.OrderRepository
	templateRepo messaging.TemplateRepository
	mailer       messaging.Mailer
	locationRepo pickup.LocationRepository
	logger       *zap.Logger
}

// OrderNotificationHandlerOption is a functional option for configuring the handler
type OrderNotificationHandlerOption func(*OrderNotificationHandler)

// WithLocationRepository lets pickup reminders carry the location name
// instead of its ID
func WithLocationRepository(repo pickup.LocationRepository) OrderNotificationHandlerOption {
	return func(h *OrderNotificationHandler) {
		h.locationRepo = repo
	}
}

// NewOrderNotificationHandler creates a new handler for order lifecycle events
func NewOrderNotificationHandler(
	orderRepo order.OrderRepository,
	templateRepo messaging.TemplateRepository,
	mailer messaging.Mailer,
	logger *zap.Logger,
	opts ...OrderNotificationHandlerOption,
) *OrderNotificationHandler {
	h := &OrderNotificationHandler{
		orderRepo:    orderRepo,
		templateRepo: templateRepo,
		mailer:       mailer,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *OrderNotificationHandler) EventTypes() []string {
	return []string{
		order.EventTypeOrderPaid,
		order.EventTypeOrderShipped,
		order.EventTypeOrderReady,
	}
}

// Handle loads the order behind the event and sends the matching email
func (h *OrderNotificationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	var kind messaging.TemplateKind
	switch event.EventType() {
	case order.EventTypeOrderPaid:
		kind = messaging.TemplateOrderConfirmation
	case order.EventTypeOrderShipped:
		kind = messaging.TemplateShippingNotice
	case order.EventTypeOrderReady:
		kind = messaging.TemplatePickupReminder
	default:
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	o, err := h.orderRepo.FindByID(ctx, event.AggregateID())
	if err != nil {
		h.logger.Error("failed to load order for notification",
			zap.String("event_type", event.EventType()),
			zap.String("order_id", event.AggregateID().String()),
			zap.Error(err),
		)
		return err
	}

	template, err := h.templateRepo.FindByKind(ctx, kind)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			h.logger.Warn("no template configured, skipping email",
				zap.String("kind", string(kind)),
				zap.String("order_number", o.OrderNumber),
			)
			return nil
		}
		return err
	}
	if !template.Active {
		return nil
	}

	rendered, err := template.Render(h.orderVariables(ctx, o))
	if err != nil {
		h.logger.Error("failed to render template",
			zap.String("kind", string(kind)),
			zap.String("order_number", o.OrderNumber),
			zap.Error(err),
		)
		return err
	}

	if err := h.mailer.Send(ctx, messaging.Email{
		To:       o.CustomerEmail,
		Subject:  rendered.Subject,
		HTMLBody: rendered.HTMLBody,
		TextBody: rendered.TextBody,
	}); err != nil {
		h.logger.Error("failed to send order email",
			zap.String("kind", string(kind)),
			zap.String("order_number", o.OrderNumber),
			zap.Error(err),
		)
		return err
	}

	h.logger.Info("order email sent",
		zap.String("kind", string(kind)),
		zap.String("order_number", o.OrderNumber),
		zap.String("to", o.CustomerEmail),
	)
	return nil
}

func (h *OrderNotificationHandler) orderVariables(ctx context.Context, o *order.Order) map[string]string {
	vars := map[string]string{
		"customer_name":   o.CustomerName,
		"order_number":    o.OrderNumber,
		"order_total":     o.Total.StringFixed(2),
		"tracking_number": o.TrackingNumber,
		"pickup_date":     o.PickupDate,
	}
	if o.PickupLocationID != nil {
		vars["pickup_location"] = o.PickupLocationID.String()
		if h.locationRepo != nil {
			if location, err := h.locationRepo.FindByID(ctx, *o.PickupLocationID); err == nil {
				vars["pickup_location"] = location.Name
			}
		}
	}
	return vars
}
