package order

import (
	"github.com/nursery/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	// AggregateTypeOrder is the aggregate type for orders
	AggregateTypeOrder = "Order"

	// EventTypeOrderPlaced is emitted when an order is created
	EventTypeOrderPlaced = "order.placed"
	// EventTypeOrderPaid is emitted when payment is recorded
	EventTypeOrderPaid = "order.paid"
	// EventTypeOrderReady is emitted when a pickup order is ready
	EventTypeOrderReady = "order.ready"
	// EventTypeOrderShipped is emitted when a shipping order is handed off
	EventTypeOrderShipped = "order.shipped"
	// EventTypeOrderCompleted is emitted when an order is delivered or collected
	EventTypeOrderCompleted = "order.completed"
	// EventTypeOrderCancelled is emitted when an order is cancelled
	EventTypeOrderCancelled = "order.cancelled"
)

// OrderPlacedEvent is published when a new order is created
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderNumber   string            `json:"order_number"`
	CustomerEmail string            `json:"customer_email"`
	Fulfillment   FulfillmentMethod `json:"fulfillment"`
	Total         decimal.Decimal   `json:"total"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, o.ID),
		OrderNumber:     o.OrderNumber,
		CustomerEmail:   o.CustomerEmail,
		Fulfillment:     o.Fulfillment,
		Total:           o.Total,
	}
}

// OrderPaidEvent is published when payment is recorded on an order
type OrderPaidEvent struct {
	shared.BaseDomainEvent
	OrderNumber   string          `json:"order_number"`
	CustomerEmail string          `json:"customer_email"`
	Total         decimal.Decimal `json:"total"`
}

// NewOrderPaidEvent creates a new OrderPaidEvent
func NewOrderPaidEvent(o *Order) *OrderPaidEvent {
	return &OrderPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaid, AggregateTypeOrder, o.ID),
		OrderNumber:     o.OrderNumber,
		CustomerEmail:   o.CustomerEmail,
		Total:           o.Total,
	}
}

// OrderReadyEvent is published when a pickup order is ready for collection
type OrderReadyEvent struct {
	shared.BaseDomainEvent
	OrderNumber   string `json:"order_number"`
	CustomerEmail string `json:"customer_email"`
	PickupDate    string `json:"pickup_date"`
}

// NewOrderReadyEvent creates a new OrderReadyEvent
func NewOrderReadyEvent(o *Order) *OrderReadyEvent {
	return &OrderReadyEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderReady, AggregateTypeOrder, o.ID),
		OrderNumber:     o.OrderNumber,
		CustomerEmail:   o.CustomerEmail,
		PickupDate:      o.PickupDate,
	}
}

// OrderShippedEvent is published when a shipping order is handed to the carrier
type OrderShippedEvent struct {
	shared.BaseDomainEvent
	OrderNumber    string `json:"order_number"`
	CustomerEmail  string `json:"customer_email"`
	TrackingNumber string `json:"tracking_number"`
}

// NewOrderShippedEvent creates a new OrderShippedEvent
func NewOrderShippedEvent(o *Order) *OrderShippedEvent {
	return &OrderShippedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderShipped, AggregateTypeOrder, o.ID),
		OrderNumber:     o.OrderNumber,
		CustomerEmail:   o.CustomerEmail,
		TrackingNumber:  o.TrackingNumber,
	}
}

// OrderCompletedEvent is published when an order is delivered or collected
type OrderCompletedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string          `json:"order_number"`
	Total       decimal.Decimal `json:"total"`
}

// NewOrderCompletedEvent creates a new OrderCompletedEvent
func NewOrderCompletedEvent(o *Order) *OrderCompletedEvent {
	return &OrderCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCompleted, AggregateTypeOrder, o.ID),
		OrderNumber:     o.OrderNumber,
		Total:           o.Total,
	}
}

// OrderCancelledEvent is published when an order is cancelled
// WasPaid tells subscribers whether stock and redemptions need restoring
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
	Reason      string `json:"reason"`
	WasPaid     bool   `json:"was_paid"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(o *Order, wasPaid bool) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, o.ID),
		OrderNumber:     o.OrderNumber,
		Reason:          o.CancelReason,
		WasPaid:         wasPaid,
	}
}
