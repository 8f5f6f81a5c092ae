package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/shared"
	"github.com/nursery/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a customer order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // placed, awaiting payment
	OrderStatusPaid       OrderStatus = "paid"       // payment recorded
	OrderStatusProcessing OrderStatus = "processing" // being picked and packed
	OrderStatusReady      OrderStatus = "ready"      // pickup orders: ready for collection
	OrderStatusShipped    OrderStatus = "shipped"    // shipping orders: handed to carrier
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusProcessing,
		OrderStatusReady, OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusPaid || target == OrderStatusCancelled
	case OrderStatusPaid:
		return target == OrderStatusProcessing || target == OrderStatusCancelled
	case OrderStatusProcessing:
		return target == OrderStatusReady || target == OrderStatusShipped || target == OrderStatusCancelled
	case OrderStatusReady, OrderStatusShipped:
		return target == OrderStatusCompleted
	case OrderStatusCompleted, OrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// FulfillmentMethod distinguishes shipped orders from local pickups
type FulfillmentMethod string

const (
	FulfillmentShipping FulfillmentMethod = "shipping"
	FulfillmentPickup   FulfillmentMethod = "pickup"
)

// OrderItem represents a line item in an order
// Product name and price are captured at order time
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	ProductCode string          `gorm:"type:varchar(50)"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOrderItem creates an order line
func NewOrderItem(orderID, productID uuid.UUID, productName, productCode string, quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &OrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		ProductCode: productCode,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// AppliedPromotionSnapshot captures a promotion at order time
type AppliedPromotionSnapshot struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	PromotionID  uuid.UUID       `gorm:"type:uuid;not null"`
	Name         string          `gorm:"type:varchar(200);not null"`
	Code         string          `gorm:"type:varchar(50)"`
	Discount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	FreeShipping bool            `gorm:"not null;default:false"`
	CreatedAt    time.Time
}

// Order represents a customer order aggregate root
// It manages the lifecycle from placement through fulfillment
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber      string                     `gorm:"type:varchar(20);not null;uniqueIndex"`
	CustomerID       *uuid.UUID                 `gorm:"type:uuid;index"`
	CustomerName     string                     `gorm:"type:varchar(100);not null"`
	CustomerEmail    string                     `gorm:"type:varchar(255);not null"`
	CustomerPhone    string                     `gorm:"type:varchar(30)"`
	Items            []OrderItem                `gorm:"foreignKey:OrderID"`
	Promotions       []AppliedPromotionSnapshot `gorm:"foreignKey:OrderID"`
	Fulfillment      FulfillmentMethod          `gorm:"type:varchar(20);not null"`
	ShippingAddress  *valueobject.Address       `gorm:"type:text"`
	CarrierServiceID *uuid.UUID                 `gorm:"type:uuid"`
	PickupLocationID *uuid.UUID                 `gorm:"type:uuid"`
	PickupScheduleID *uuid.UUID                 `gorm:"type:uuid"`
	PickupDate       string                     `gorm:"type:varchar(10)"` // YYYY-MM-DD
	Subtotal         decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	DiscountTotal    decimal.Decimal            `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingFee      decimal.Decimal            `gorm:"type:decimal(18,4);not null;default:0"`
	Total            decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	Status           OrderStatus                `gorm:"type:varchar(20);not null;default:'pending'"`
	Note             string                     `gorm:"type:text"`
	TrackingNumber   string                     `gorm:"type:varchar(100)"`
	PaidAt           *time.Time
	ShippedAt        *time.Time
	ReadyAt          *time.Time
	CompletedAt      *time.Time
	CancelledAt      *time.Time
	CancelReason     string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new pending order
func NewOrder(orderNumber string, customerID *uuid.UUID, customerName, customerEmail string, fulfillment FulfillmentMethod) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if customerEmail == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_EMAIL", "Customer email cannot be empty")
	}
	if fulfillment != FulfillmentShipping && fulfillment != FulfillmentPickup {
		return nil, shared.NewDomainError("INVALID_FULFILLMENT", "Unknown fulfillment method")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerID:        customerID,
		CustomerName:      customerName,
		CustomerEmail:     customerEmail,
		Items:             make([]OrderItem, 0),
		Promotions:        make([]AppliedPromotionSnapshot, 0),
		Fulfillment:       fulfillment,
		Subtotal:          decimal.Zero,
		DiscountTotal:     decimal.Zero,
		ShippingFee:       decimal.Zero,
		Total:             decimal.Zero,
		Status:            OrderStatusPending,
	}

	order.AddDomainEvent(NewOrderPlacedEvent(order))

	return order, nil
}

// AddItem adds a line to a pending order
func (o *Order) AddItem(productID uuid.UUID, productName, productCode string, quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	if o.Status != OrderStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a placed order")
	}

	for _, item := range o.Items {
		if item.ProductID == productID {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "Product already exists in order")
		}
	}

	item, err := NewOrderItem(o.ID, productID, productName, productCode, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.Touch()

	return item, nil
}

// ApplyPromotions records the discount outcome computed at checkout
func (o *Order) ApplyPromotions(discountTotal decimal.Decimal, snapshots []AppliedPromotionSnapshot) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot apply promotions to a placed order")
	}
	if discountTotal.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if discountTotal.GreaterThan(o.Subtotal) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed subtotal")
	}

	for idx := range snapshots {
		snapshots[idx].OrderID = o.ID
		if snapshots[idx].ID == uuid.Nil {
			snapshots[idx].ID = uuid.New()
		}
		if snapshots[idx].CreatedAt.IsZero() {
			snapshots[idx].CreatedAt = time.Now()
		}
	}

	o.Promotions = snapshots
	o.DiscountTotal = discountTotal
	o.recalculateTotals()
	o.Touch()
	return nil
}

// SetShippingDetails binds the order to a destination and carrier service
func (o *Order) SetShippingDetails(address valueobject.Address, carrierServiceID uuid.UUID, fee decimal.Decimal) error {
	if o.Fulfillment != FulfillmentShipping {
		return shared.NewDomainError("INVALID_FULFILLMENT", "Order is not a shipping order")
	}
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot change shipping details on a placed order")
	}
	if carrierServiceID == uuid.Nil {
		return shared.NewDomainError("INVALID_SERVICE", "Carrier service is required")
	}
	if fee.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Shipping fee cannot be negative")
	}

	o.ShippingAddress = &address
	o.CarrierServiceID = &carrierServiceID
	o.ShippingFee = fee
	o.recalculateTotals()
	o.Touch()
	return nil
}

// SetPickupDetails binds the order to a pickup slot
func (o *Order) SetPickupDetails(locationID, scheduleID uuid.UUID, pickupDate string) error {
	if o.Fulfillment != FulfillmentPickup {
		return shared.NewDomainError("INVALID_FULFILLMENT", "Order is not a pickup order")
	}
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot change pickup details on a placed order")
	}
	if locationID == uuid.Nil || scheduleID == uuid.Nil {
		return shared.NewDomainError("INVALID_PICKUP", "Pickup location and schedule are required")
	}
	if _, err := time.Parse("2006-01-02", pickupDate); err != nil {
		return shared.NewDomainError("INVALID_DATE", fmt.Sprintf("Invalid pickup date %q, expected YYYY-MM-DD", pickupDate))
	}

	o.PickupLocationID = &locationID
	o.PickupScheduleID = &scheduleID
	o.PickupDate = pickupDate
	o.Touch()
	return nil
}

// SetNote sets the customer note
func (o *Order) SetNote(note string) {
	o.Note = note
	o.Touch()
}

// MarkPaid records payment, transitioning from pending to paid
func (o *Order) MarkPaid() error {
	if !o.Status.CanTransitionTo(OrderStatusPaid) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark order paid in %s status", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot pay for an order without items")
	}

	now := time.Now()
	o.Status = OrderStatusPaid
	o.PaidAt = &now
	o.Touch()

	o.AddDomainEvent(NewOrderPaidEvent(o))
	return nil
}

// StartProcessing moves a paid order into fulfillment
func (o *Order) StartProcessing() error {
	if !o.Status.CanTransitionTo(OrderStatusProcessing) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot process order in %s status", o.Status))
	}

	o.Status = OrderStatusProcessing
	o.Touch()
	return nil
}

// MarkReady marks a pickup order as ready for collection
func (o *Order) MarkReady() error {
	if o.Fulfillment != FulfillmentPickup {
		return shared.NewDomainError("INVALID_FULFILLMENT", "Only pickup orders can be marked ready")
	}
	if !o.Status.CanTransitionTo(OrderStatusReady) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark order ready in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusReady
	o.ReadyAt = &now
	o.Touch()

	o.AddDomainEvent(NewOrderReadyEvent(o))
	return nil
}

// MarkShipped marks a shipping order as handed to the carrier
func (o *Order) MarkShipped(trackingNumber string) error {
	if o.Fulfillment != FulfillmentShipping {
		return shared.NewDomainError("INVALID_FULFILLMENT", "Only shipping orders can be marked shipped")
	}
	if !o.Status.CanTransitionTo(OrderStatusShipped) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot ship order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusShipped
	o.TrackingNumber = trackingNumber
	o.ShippedAt = &now
	o.Touch()

	o.AddDomainEvent(NewOrderShippedEvent(o))
	return nil
}

// Complete marks the order as delivered or collected
func (o *Order) Complete() error {
	if !o.Status.CanTransitionTo(OrderStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusCompleted
	o.CompletedAt = &now
	o.Touch()

	o.AddDomainEvent(NewOrderCompletedEvent(o))
	return nil
}

// Cancel cancels the order
// Stock restoration for paid orders is handled by the application service
func (o *Order) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	wasPaid := o.PaidAt != nil
	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.Touch()

	o.AddDomainEvent(NewOrderCancelledEvent(o, wasPaid))
	return nil
}

// recalculateTotals recomputes the order totals
func (o *Order) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Amount)
	}
	o.Subtotal = subtotal

	if o.DiscountTotal.GreaterThan(o.Subtotal) {
		o.DiscountTotal = o.Subtotal
	}
	o.Total = o.Subtotal.Sub(o.DiscountTotal).Add(o.ShippingFee)
}

// ItemCount returns the number of lines in the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// TotalQuantity returns the sum of all line quantities
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// FreeShipping reports whether any applied promotion waives shipping
func (o *Order) FreeShipping() bool {
	for _, p := range o.Promotions {
		if p.FreeShipping {
			return true
		}
	}
	return false
}

// IsTerminal returns true if the order is completed or cancelled
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled
}

// IsPickup returns true for pickup orders
func (o *Order) IsPickup() bool {
	return o.Fulfillment == FulfillmentPickup
}
