package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// AddCartItemRequest adds a product to a cart
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest changes the quantity of a cart line
// Quantity zero removes the line
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// ApplyCouponRequest attaches a coupon code to a cart
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required,max=50"`
}

// CartItemResponse represents a cart line in API responses
type CartItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// CartResponse represents a cart in API responses
type CartResponse struct {
	ID         uuid.UUID          `json:"id"`
	CustomerID *uuid.UUID         `json:"customer_id,omitempty"`
	SessionKey string             `json:"session_key,omitempty"`
	Items      []CartItemResponse `json:"items"`
	CouponCode string             `json:"coupon_code,omitempty"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
	ItemCount  int                `json:"item_count"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// ToCartResponse converts a domain Cart to CartResponse
func ToCartResponse(c *order.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items))
	for idx := range c.Items {
		item := &c.Items[idx]
		items = append(items, CartItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			CategoryID:  item.CategoryID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount(),
		})
	}
	return CartResponse{
		ID:         c.ID,
		CustomerID: c.CustomerID,
		SessionKey: c.SessionKey,
		Items:      items,
		CouponCode: c.CouponCode,
		Subtotal:   c.Subtotal(),
		ItemCount:  c.ItemCount(),
		UpdatedAt:  c.UpdatedAt,
	}
}

// CheckoutRequest places an order from a cart
type CheckoutRequest struct {
	CartID        uuid.UUID  `json:"cart_id" binding:"required"`
	CustomerName  string     `json:"customer_name" binding:"required,min=1,max=100"`
	CustomerEmail string     `json:"customer_email" binding:"required,email"`
	CustomerPhone string     `json:"customer_phone" binding:"max=30"`
	Fulfillment   string     `json:"fulfillment" binding:"required,oneof=shipping pickup"`
	Note          string     `json:"note" binding:"max=2000"`
	CustomerID    *uuid.UUID `json:"customer_id"`

	// Shipping fulfillment
	AddressLine1     string     `json:"address_line1" binding:"omitempty,max=200"`
	AddressLine2     string     `json:"address_line2" binding:"omitempty,max=200"`
	City             string     `json:"city" binding:"omitempty,max=100"`
	State            string     `json:"state" binding:"omitempty,statecode"`
	PostalCode       string     `json:"postal_code" binding:"omitempty,max=20"`
	CarrierServiceID *uuid.UUID `json:"carrier_service_id"`

	// Pickup fulfillment
	PickupLocationID *uuid.UUID `json:"pickup_location_id"`
	PickupScheduleID *uuid.UUID `json:"pickup_schedule_id"`
	PickupDate       string     `json:"pickup_date" binding:"omitempty,len=10"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductCode string          `json:"product_code"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// AppliedPromotionResponse represents a promotion snapshot in API responses
type AppliedPromotionResponse struct {
	PromotionID  uuid.UUID       `json:"promotion_id"`
	Name         string          `json:"name"`
	Code         string          `json:"code,omitempty"`
	Discount     decimal.Decimal `json:"discount"`
	FreeShipping bool            `json:"free_shipping"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID               uuid.UUID                  `json:"id"`
	OrderNumber      string                     `json:"order_number"`
	CustomerID       *uuid.UUID                 `json:"customer_id,omitempty"`
	CustomerName     string                     `json:"customer_name"`
	CustomerEmail    string                     `json:"customer_email"`
	CustomerPhone    string                     `json:"customer_phone,omitempty"`
	Items            []OrderItemResponse        `json:"items"`
	Promotions       []AppliedPromotionResponse `json:"promotions"`
	Fulfillment      string                     `json:"fulfillment"`
	ShippingAddress  *AddressResponse           `json:"shipping_address,omitempty"`
	CarrierServiceID *uuid.UUID                 `json:"carrier_service_id,omitempty"`
	PickupLocationID *uuid.UUID                 `json:"pickup_location_id,omitempty"`
	PickupScheduleID *uuid.UUID                 `json:"pickup_schedule_id,omitempty"`
	PickupDate       string                     `json:"pickup_date,omitempty"`
	Subtotal         decimal.Decimal            `json:"subtotal"`
	DiscountTotal    decimal.Decimal            `json:"discount_total"`
	ShippingFee      decimal.Decimal            `json:"shipping_fee"`
	Total            decimal.Decimal            `json:"total"`
	Status           string                     `json:"status"`
	Note             string                     `json:"note,omitempty"`
	TrackingNumber   string                     `json:"tracking_number,omitempty"`
	PaidAt           *time.Time                 `json:"paid_at,omitempty"`
	ShippedAt        *time.Time                 `json:"shipped_at,omitempty"`
	ReadyAt          *time.Time                 `json:"ready_at,omitempty"`
	CompletedAt      *time.Time                 `json:"completed_at,omitempty"`
	CancelledAt      *time.Time                 `json:"cancelled_at,omitempty"`
	CancelReason     string                     `json:"cancel_reason,omitempty"`
	CreatedAt        time.Time                  `json:"created_at"`
	UpdatedAt        time.Time                  `json:"updated_at"`
}

// AddressResponse represents a shipping address in API responses
type AddressResponse struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for idx := range o.Items {
		item := &o.Items[idx]
		items = append(items, OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ProductCode: item.ProductCode,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		})
	}
	promotions := make([]AppliedPromotionResponse, 0, len(o.Promotions))
	for idx := range o.Promotions {
		snapshot := &o.Promotions[idx]
		promotions = append(promotions, AppliedPromotionResponse{
			PromotionID:  snapshot.PromotionID,
			Name:         snapshot.Name,
			Code:         snapshot.Code,
			Discount:     snapshot.Discount,
			FreeShipping: snapshot.FreeShipping,
		})
	}

	response := OrderResponse{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		CustomerID:       o.CustomerID,
		CustomerName:     o.CustomerName,
		CustomerEmail:    o.CustomerEmail,
		CustomerPhone:    o.CustomerPhone,
		Items:            items,
		Promotions:       promotions,
		Fulfillment:      string(o.Fulfillment),
		CarrierServiceID: o.CarrierServiceID,
		PickupLocationID: o.PickupLocationID,
		PickupScheduleID: o.PickupScheduleID,
		PickupDate:       o.PickupDate,
		Subtotal:         o.Subtotal,
		DiscountTotal:    o.DiscountTotal,
		ShippingFee:      o.ShippingFee,
		Total:            o.Total,
		Status:           string(o.Status),
		Note:             o.Note,
		TrackingNumber:   o.TrackingNumber,
		PaidAt:           o.PaidAt,
		ShippedAt:        o.ShippedAt,
		ReadyAt:          o.ReadyAt,
		CompletedAt:      o.CompletedAt,
		CancelledAt:      o.CancelledAt,
		CancelReason:     o.CancelReason,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
	if o.ShippingAddress != nil {
		response.ShippingAddress = &AddressResponse{
			Line1:      o.ShippingAddress.Line1(),
			Line2:      o.ShippingAddress.Line2(),
			City:       o.ShippingAddress.City(),
			State:      o.ShippingAddress.State(),
			PostalCode: o.ShippingAddress.PostalCode(),
		}
	}
	return response
}

// ShipOrderRequest marks a shipping order as shipped
type ShipOrderRequest struct {
	TrackingNumber string `json:"tracking_number" binding:"required,max=100"`
}

// CancelOrderRequest cancels an order
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=255"`
}
