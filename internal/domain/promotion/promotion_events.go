package promotion

import (
	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypePromotion = "Promotion"

// Event type constants
const (
	EventTypePromotionCreated       = "PromotionCreated"
	EventTypePromotionStatusChanged = "PromotionStatusChanged"
	EventTypePromotionRedeemed      = "PromotionRedeemed"
)

// PromotionCreatedEvent is published when a new promotion is created
type PromotionCreatedEvent struct {
	shared.BaseDomainEvent
	PromotionID uuid.UUID     `json:"promotion_id"`
	Name        string        `json:"name"`
	Code        string        `json:"code,omitempty"`
	PromoType   PromotionType `json:"promo_type"`
}

// NewPromotionCreatedEvent creates a new PromotionCreatedEvent
func NewPromotionCreatedEvent(promo *Promotion) *PromotionCreatedEvent {
	return &PromotionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePromotionCreated, AggregateTypePromotion, promo.ID),
		PromotionID:     promo.ID,
		Name:            promo.Name,
		Code:            promo.Code,
		PromoType:       promo.Type,
	}
}

// PromotionStatusChangedEvent is published when a promotion is (de)activated
type PromotionStatusChangedEvent struct {
	shared.BaseDomainEvent
	PromotionID uuid.UUID `json:"promotion_id"`
	Active      bool      `json:"active"`
}

// NewPromotionStatusChangedEvent creates a new PromotionStatusChangedEvent
func NewPromotionStatusChangedEvent(promo *Promotion) *PromotionStatusChangedEvent {
	return &PromotionStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePromotionStatusChanged, AggregateTypePromotion, promo.ID),
		PromotionID:     promo.ID,
		Active:          promo.Active,
	}
}

// PromotionRedeemedEvent is published when a promotion is redeemed on an order
type PromotionRedeemedEvent struct {
	shared.BaseDomainEvent
	PromotionID uuid.UUID `json:"promotion_id"`
	Code        string    `json:"code,omitempty"`
	UsageCount  int       `json:"usage_count"`
}

// NewPromotionRedeemedEvent creates a new PromotionRedeemedEvent
func NewPromotionRedeemedEvent(promo *Promotion) *PromotionRedeemedEvent {
	return &PromotionRedeemedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePromotionRedeemed, AggregateTypePromotion, promo.ID),
		PromotionID:     promo.ID,
		Code:            promo.Code,
		UsageCount:      promo.UsageCount,
	}
}
