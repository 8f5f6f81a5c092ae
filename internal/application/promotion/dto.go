package promotion

import (
	"time"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/promotion"
	"github.com/shopspring/decimal"
)

// CreatePromotionRequest represents a request to create a promotion
type CreatePromotionRequest struct {
	Name             string          `json:"name" binding:"required,min=1,max=200"`
	Description      string          `json:"description" binding:"max=2000"`
	Code             string          `json:"code" binding:"max=50"`
	Type             string          `json:"type" binding:"required,oneof=percentage fixed_amount buy_x_get_y free_shipping"`
	Value            decimal.Decimal `json:"value"`
	BuyQuantity      int             `json:"buy_quantity" binding:"omitempty,min=1"`
	GetQuantity      int             `json:"get_quantity" binding:"omitempty,min=1"`
	Scope            string          `json:"scope" binding:"omitempty,oneof=all products categories"`
	ProductIDs       []uuid.UUID     `json:"product_ids"`
	CategoryIDs      []uuid.UUID     `json:"category_ids"`
	CustomerIDs      []uuid.UUID     `json:"customer_ids"`
	StartsAt         *time.Time      `json:"starts_at"`
	EndsAt           *time.Time      `json:"ends_at"`
	MinSubtotal      decimal.Decimal `json:"min_subtotal"`
	UsageLimit       int             `json:"usage_limit" binding:"omitempty,min=0"`
	PerCustomerLimit int             `json:"per_customer_limit" binding:"omitempty,min=0"`
	Stackable        bool            `json:"stackable"`
}

// UpdatePromotionRequest represents a request to update a promotion
type UpdatePromotionRequest struct {
	Name             *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description      *string          `json:"description" binding:"omitempty,max=2000"`
	Code             *string          `json:"code" binding:"omitempty,max=50"`
	Scope            *string          `json:"scope" binding:"omitempty,oneof=all products categories"`
	ProductIDs       []uuid.UUID      `json:"product_ids"`
	CategoryIDs      []uuid.UUID      `json:"category_ids"`
	CustomerIDs      []uuid.UUID      `json:"customer_ids"`
	StartsAt         *time.Time       `json:"starts_at"`
	EndsAt           *time.Time       `json:"ends_at"`
	MinSubtotal      *decimal.Decimal `json:"min_subtotal"`
	UsageLimit       *int             `json:"usage_limit" binding:"omitempty,min=0"`
	PerCustomerLimit *int             `json:"per_customer_limit" binding:"omitempty,min=0"`
	Stackable        *bool            `json:"stackable"`
}

// PromotionResponse represents a promotion in API responses
type PromotionResponse struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Code             string          `json:"code,omitempty"`
	Type             string          `json:"type"`
	Value            decimal.Decimal `json:"value"`
	BuyQuantity      int             `json:"buy_quantity,omitempty"`
	GetQuantity      int             `json:"get_quantity,omitempty"`
	Scope            string          `json:"scope"`
	ProductIDs       []uuid.UUID     `json:"product_ids,omitempty"`
	CategoryIDs      []uuid.UUID     `json:"category_ids,omitempty"`
	StartsAt         *time.Time      `json:"starts_at,omitempty"`
	EndsAt           *time.Time      `json:"ends_at,omitempty"`
	MinSubtotal      decimal.Decimal `json:"min_subtotal"`
	UsageLimit       int             `json:"usage_limit"`
	PerCustomerLimit int             `json:"per_customer_limit"`
	UsageCount       int             `json:"usage_count"`
	Stackable        bool            `json:"stackable"`
	Active           bool            `json:"active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToPromotionResponse converts a domain Promotion to PromotionResponse
func ToPromotionResponse(p *promotion.Promotion) PromotionResponse {
	return PromotionResponse{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		Code:             p.Code,
		Type:             string(p.Type),
		Value:            p.Value,
		BuyQuantity:      p.BuyQuantity,
		GetQuantity:      p.GetQuantity,
		Scope:            string(p.Scope),
		ProductIDs:       p.ProductIDs,
		CategoryIDs:      p.CategoryIDs,
		StartsAt:         p.StartsAt,
		EndsAt:           p.EndsAt,
		MinSubtotal:      p.MinSubtotal,
		UsageLimit:       p.UsageLimit,
		PerCustomerLimit: p.PerCustomerLimit,
		UsageCount:       p.UsageCount,
		Stackable:        p.Stackable,
		Active:           p.Active,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// CartLineRequest is one line of a cart sent for discount calculation
type CartLineRequest struct {
	ProductID  uuid.UUID       `json:"product_id" binding:"required"`
	CategoryID *uuid.UUID      `json:"category_id"`
	Quantity   int             `json:"quantity" binding:"required,min=1"`
	UnitPrice  decimal.Decimal `json:"unit_price" binding:"required"`
}

// CalculateDiscountRequest asks for the discount outcome of a cart
type CalculateDiscountRequest struct {
	Lines      []CartLineRequest `json:"lines" binding:"required,dive"`
	CouponCode string            `json:"coupon_code" binding:"max=50"`
	CustomerID *uuid.UUID        `json:"customer_id"`
}

// DiscountResponse is the outcome of a cart discount calculation
type DiscountResponse struct {
	Subtotal      decimal.Decimal              `json:"subtotal"`
	DiscountTotal decimal.Decimal              `json:"discount_total"`
	Total         decimal.Decimal              `json:"total"`
	FreeShipping  bool                         `json:"free_shipping"`
	Applied       []promotion.AppliedPromotion `json:"applied"`
}

// ValidateCouponRequest asks whether a coupon can be redeemed
type ValidateCouponRequest struct {
	Code       string          `json:"code" binding:"required,max=50"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	CustomerID *uuid.UUID      `json:"customer_id"`
}

// ValidateCouponResponse reports coupon validity
type ValidateCouponResponse struct {
	Valid     bool               `json:"valid"`
	Reason    string             `json:"reason,omitempty"`
	ErrorCode string             `json:"error_code,omitempty"`
	Promotion *PromotionResponse `json:"promotion,omitempty"`
}

// ToCartLines converts request lines to domain cart lines
func ToCartLines(lines []CartLineRequest) []promotion.CartLine {
	domainLines := make([]promotion.CartLine, 0, len(lines))
	for _, l := range lines {
		domainLines = append(domainLines, promotion.CartLine{
			ProductID:  l.ProductID,
			CategoryID: l.CategoryID,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
		})
	}
	return domainLines
}
