package promotion

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PromotionType represents the kind of discount a promotion grants
type PromotionType string

const (
	TypePercentage   PromotionType = "percentage"
	TypeFixedAmount  PromotionType = "fixed_amount"
	TypeBuyXGetY     PromotionType = "buy_x_get_y"
	TypeFreeShipping PromotionType = "free_shipping"
)

// IsValid checks if the promotion type is recognised
func (t PromotionType) IsValid() bool {
	switch t {
	case TypePercentage, TypeFixedAmount, TypeBuyXGetY, TypeFreeShipping:
		return true
	}
	return false
}

// PromotionScope determines which cart lines a promotion applies to
type PromotionScope string

const (
	ScopeAll        PromotionScope = "all"
	ScopeProducts   PromotionScope = "products"
	ScopeCategories PromotionScope = "categories"
)

// Promotion represents a discount rule, either automatic or coupon-driven
// It is the aggregate root for promotion operations
type Promotion struct {
	shared.BaseAggregateRoot
	Name             string          `gorm:"type:varchar(200);not null"`
	Description      string          `gorm:"type:text"`
	Code             string          `gorm:"type:varchar(50);index"` // empty = automatic promotion
	Type             PromotionType   `gorm:"type:varchar(20);not null"`
	Value            decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	BuyQuantity      int             `gorm:"not null;default:0"` // buy_x_get_y only
	GetQuantity      int             `gorm:"not null;default:0"` // buy_x_get_y only
	Scope            PromotionScope  `gorm:"type:varchar(20);not null;default:'all'"`
	ProductIDs       UUIDList        `gorm:"type:jsonb"`
	CategoryIDs      UUIDList        `gorm:"type:jsonb"`
	CustomerIDs      UUIDList        `gorm:"type:jsonb"` // allowlist; empty = all customers
	StartsAt         *time.Time      `gorm:"index"`
	EndsAt           *time.Time      `gorm:"index"`
	MinSubtotal      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UsageLimit       int             `gorm:"not null;default:0"` // 0 = unlimited
	PerCustomerLimit int             `gorm:"not null;default:0"` // 0 = unlimited
	UsageCount       int             `gorm:"not null;default:0"`
	Stackable        bool            `gorm:"not null;default:false"`
	Active           bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Promotion) TableName() string {
	return "promotions"
}

// NewPromotion creates a new promotion
func NewPromotion(name string, promoType PromotionType, value decimal.Decimal) (*Promotion, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Promotion name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Promotion name cannot exceed 200 characters")
	}
	if !promoType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Unknown promotion type")
	}

	switch promoType {
	case TypePercentage:
		if value.LessThanOrEqual(decimal.Zero) || value.GreaterThan(decimal.NewFromInt(100)) {
			return nil, shared.NewDomainError("INVALID_VALUE", "Percentage must be between 0 and 100")
		}
	case TypeFixedAmount:
		if value.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewDomainError("INVALID_VALUE", "Fixed amount must be positive")
		}
	case TypeBuyXGetY, TypeFreeShipping:
		// Value is unused for these types
		value = decimal.Zero
	}

	promo := &Promotion{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Type:              promoType,
		Value:             value,
		Scope:             ScopeAll,
		MinSubtotal:       decimal.Zero,
		Active:            true,
	}

	promo.AddDomainEvent(NewPromotionCreatedEvent(promo))

	return promo, nil
}

// SetCode attaches a coupon code, making this a coupon promotion
// Codes are stored uppercase and matched case-insensitively
func (p *Promotion) SetCode(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Coupon code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Coupon code cannot exceed 50 characters")
	}
	if strings.ContainsAny(code, " \t") {
		return shared.NewDomainError("INVALID_CODE", "Coupon code cannot contain whitespace")
	}

	p.Code = code
	p.Touch()
	p.IncrementVersion()
	return nil
}

// IsCoupon reports whether the promotion requires a coupon code
func (p *Promotion) IsCoupon() bool {
	return p.Code != ""
}

// SetBuyXGetY configures the buy-X-get-Y quantities
func (p *Promotion) SetBuyXGetY(buy, get int) error {
	if p.Type != TypeBuyXGetY {
		return shared.NewDomainError("INVALID_TYPE", "Promotion is not a buy-X-get-Y promotion")
	}
	if buy <= 0 || get <= 0 {
		return shared.NewDomainError("INVALID_VALUE", "Buy and get quantities must be positive")
	}

	p.BuyQuantity = buy
	p.GetQuantity = get
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SetScope restricts the promotion to specific products or categories
func (p *Promotion) SetScope(scope PromotionScope, productIDs, categoryIDs []uuid.UUID) error {
	switch scope {
	case ScopeAll:
		p.ProductIDs = nil
		p.CategoryIDs = nil
	case ScopeProducts:
		if len(productIDs) == 0 {
			return shared.NewDomainError("INVALID_SCOPE", "Product scope requires at least one product")
		}
		p.ProductIDs = productIDs
		p.CategoryIDs = nil
	case ScopeCategories:
		if len(categoryIDs) == 0 {
			return shared.NewDomainError("INVALID_SCOPE", "Category scope requires at least one category")
		}
		p.CategoryIDs = categoryIDs
		p.ProductIDs = nil
	default:
		return shared.NewDomainError("INVALID_SCOPE", "Unknown promotion scope")
	}

	p.Scope = scope
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SetWindow sets the active window of the promotion
func (p *Promotion) SetWindow(startsAt, endsAt *time.Time) error {
	if startsAt != nil && endsAt != nil && !endsAt.After(*startsAt) {
		return shared.NewDomainError("INVALID_WINDOW", "Promotion end must be after start")
	}
	p.StartsAt = startsAt
	p.EndsAt = endsAt
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SetConstraints sets the redemption constraints
func (p *Promotion) SetConstraints(minSubtotal decimal.Decimal, usageLimit, perCustomerLimit int) error {
	if minSubtotal.IsNegative() {
		return shared.NewDomainError("INVALID_CONSTRAINT", "Minimum subtotal cannot be negative")
	}
	if usageLimit < 0 || perCustomerLimit < 0 {
		return shared.NewDomainError("INVALID_CONSTRAINT", "Usage limits cannot be negative")
	}

	p.MinSubtotal = minSubtotal
	p.UsageLimit = usageLimit
	p.PerCustomerLimit = perCustomerLimit
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SetCustomerAllowlist restricts redemption to specific customers
func (p *Promotion) SetCustomerAllowlist(customerIDs []uuid.UUID) {
	p.CustomerIDs = customerIDs
	p.Touch()
	p.IncrementVersion()
}

// SetStackable marks the promotion as combinable with other stackable promotions
func (p *Promotion) SetStackable(stackable bool) {
	p.Stackable = stackable
	p.Touch()
	p.IncrementVersion()
}

// Activate enables the promotion
func (p *Promotion) Activate() {
	if p.Active {
		return
	}
	p.Active = true
	p.Touch()
	p.IncrementVersion()
	p.AddDomainEvent(NewPromotionStatusChangedEvent(p))
}

// Deactivate disables the promotion
func (p *Promotion) Deactivate() {
	if !p.Active {
		return
	}
	p.Active = false
	p.Touch()
	p.IncrementVersion()
	p.AddDomainEvent(NewPromotionStatusChangedEvent(p))
}

// RecordRedemption increments the usage counter
func (p *Promotion) RecordRedemption() {
	p.UsageCount++
	p.Touch()
	p.IncrementVersion()
	p.AddDomainEvent(NewPromotionRedeemedEvent(p))
}

// IsWithinWindow reports whether the promotion window contains the given time
func (p *Promotion) IsWithinWindow(at time.Time) bool {
	if p.StartsAt != nil && at.Before(*p.StartsAt) {
		return false
	}
	if p.EndsAt != nil && at.After(*p.EndsAt) {
		return false
	}
	return true
}

// AllowsCustomer reports whether the customer may redeem this promotion
// An empty allowlist admits everyone, including anonymous shoppers
func (p *Promotion) AllowsCustomer(customerID *uuid.UUID) bool {
	if len(p.CustomerIDs) == 0 {
		return true
	}
	if customerID == nil {
		return false
	}
	for _, id := range p.CustomerIDs {
		if id == *customerID {
			return true
		}
	}
	return false
}

// ValidateRedemption checks all redemption constraints against the current
// cart subtotal and usage counters, returning a specific domain error for
// the first violated constraint
func (p *Promotion) ValidateRedemption(at time.Time, subtotal decimal.Decimal, customerID *uuid.UUID, customerUsage int) error {
	if !p.Active {
		return shared.NewDomainError("COUPON_INACTIVE", "This promotion is not active")
	}
	if p.StartsAt != nil && at.Before(*p.StartsAt) {
		return shared.NewDomainError("COUPON_NOT_STARTED", "This promotion has not started yet")
	}
	if p.EndsAt != nil && at.After(*p.EndsAt) {
		return shared.NewDomainError("COUPON_EXPIRED", "This promotion has expired")
	}
	if p.UsageLimit > 0 && p.UsageCount >= p.UsageLimit {
		return shared.NewDomainError("COUPON_LIMIT_REACHED", "This promotion has reached its redemption limit")
	}
	if p.PerCustomerLimit > 0 && customerUsage >= p.PerCustomerLimit {
		return shared.NewDomainError("COUPON_CUSTOMER_LIMIT", "You have already redeemed this promotion the maximum number of times")
	}
	if subtotal.LessThan(p.MinSubtotal) {
		return shared.NewDomainError("COUPON_MIN_SUBTOTAL", "Cart subtotal does not meet the promotion minimum")
	}
	if !p.AllowsCustomer(customerID) {
		return shared.NewDomainError("COUPON_NOT_ELIGIBLE", "This promotion is not available for your account")
	}
	return nil
}
