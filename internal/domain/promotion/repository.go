package promotion

import (
	"context"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/shared"
)

// PromotionRepository defines the interface for promotion persistence
type PromotionRepository interface {
	// FindByID finds a promotion by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Promotion, error)

	// FindByCode finds a promotion by its coupon code (case-insensitive)
	FindByCode(ctx context.Context, code string) (*Promotion, error)

	// FindAll finds all promotions matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Promotion, error)

	// FindActiveAutomatic finds active promotions without a coupon code
	FindActiveAutomatic(ctx context.Context) ([]Promotion, error)

	// ExistsByCode checks if a promotion with the given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// Save creates or updates a promotion
	Save(ctx context.Context, promo *Promotion) error

	// Delete deletes a promotion
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts promotions matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// RedemptionCounter tracks per-customer promotion redemptions
// Implementations back this with redis so counters survive across instances
type RedemptionCounter interface {
	// CustomerRedemptions returns how many times a customer redeemed a promotion
	CustomerRedemptions(ctx context.Context, promotionID, customerID uuid.UUID) (int, error)

	// RecordRedemption increments the per-customer counter
	RecordRedemption(ctx context.Context, promotionID, customerID uuid.UUID) error
}
