package shipping

import (
	"github.com/nursery/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CarrierService represents a bookable shipping service of a carrier
type CarrierService struct {
	shared.BaseAggregateRoot
	Carrier               string          `gorm:"type:varchar(100);not null"`
	ServiceCode           string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	ServiceName           string          `gorm:"type:varchar(100);not null"`
	Level                 ServiceLevel    `gorm:"type:varchar(20);not null;default:'standard'"`
	MinTransitDays        int             `gorm:"not null;default:1"`
	MaxTransitDays        int             `gorm:"not null;default:1"`
	BaseRate              decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PerItemRate           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	FreeShippingThreshold decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // 0 = never free
	Active                bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CarrierService) TableName() string {
	return "carrier_services"
}

// NewCarrierService creates a new carrier service
func NewCarrierService(carrier, serviceCode, serviceName string, level ServiceLevel, minDays, maxDays int) (*CarrierService, error) {
	if carrier == "" {
		return nil, shared.NewDomainError("INVALID_CARRIER", "Carrier name cannot be empty")
	}
	if serviceCode == "" {
		return nil, shared.NewDomainError("INVALID_SERVICE", "Service code cannot be empty")
	}
	if serviceName == "" {
		return nil, shared.NewDomainError("INVALID_SERVICE", "Service name cannot be empty")
	}
	if level.rank() == 0 {
		return nil, shared.NewDomainError("INVALID_SERVICE", "Unknown service level")
	}
	if err := validateTransitDays(minDays, maxDays); err != nil {
		return nil, err
	}

	return &CarrierService{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Carrier:           carrier,
		ServiceCode:       serviceCode,
		ServiceName:       serviceName,
		Level:             level,
		MinTransitDays:    minDays,
		MaxTransitDays:    maxDays,
		BaseRate:          decimal.Zero,
		PerItemRate:       decimal.Zero,
		Active:            true,
	}, nil
}

// SetTransitDays updates the transit day estimates
// Max transit days must be greater than or equal to min transit days
func (s *CarrierService) SetTransitDays(minDays, maxDays int) error {
	if err := validateTransitDays(minDays, maxDays); err != nil {
		return err
	}

	s.MinTransitDays = minDays
	s.MaxTransitDays = maxDays
	s.Touch()
	s.IncrementVersion()
	return nil
}

// SetRates updates the pricing of the service
func (s *CarrierService) SetRates(baseRate, perItemRate, freeThreshold decimal.Decimal) error {
	if baseRate.IsNegative() || perItemRate.IsNegative() || freeThreshold.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Rates cannot be negative")
	}

	s.BaseRate = baseRate
	s.PerItemRate = perItemRate
	s.FreeShippingThreshold = freeThreshold
	s.Touch()
	s.IncrementVersion()
	return nil
}

// Activate enables the service
func (s *CarrierService) Activate() {
	if s.Active {
		return
	}
	s.Active = true
	s.Touch()
	s.IncrementVersion()
}

// Deactivate disables the service
func (s *CarrierService) Deactivate() {
	if !s.Active {
		return
	}
	s.Active = false
	s.Touch()
	s.IncrementVersion()
}

// RateFor computes the shipping cost for a cart
// Shipping is free above the threshold (when set) or when a free-shipping
// promotion applies
func (s *CarrierService) RateFor(subtotal decimal.Decimal, itemCount int, freeShippingPromo bool) decimal.Decimal {
	if freeShippingPromo {
		return decimal.Zero
	}
	if s.FreeShippingThreshold.IsPositive() && subtotal.GreaterThanOrEqual(s.FreeShippingThreshold) {
		return decimal.Zero
	}
	return s.BaseRate.Add(s.PerItemRate.Mul(decimal.NewFromInt(int64(itemCount)))).Round(2)
}

func validateTransitDays(minDays, maxDays int) error {
	if minDays < 1 {
		return shared.NewDomainError("INVALID_TRANSIT", "Minimum transit days must be at least 1")
	}
	if maxDays < minDays {
		return shared.NewDomainError("INVALID_TRANSIT", "Maximum transit days cannot be less than minimum transit days")
	}
	return nil
}
