package catalog

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/shared"
	"github.com/nursery/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// CareLevel describes how demanding a plant is to keep alive
type CareLevel string

const (
	CareLevelEasy     CareLevel = "easy"
	CareLevelModerate CareLevel = "moderate"
	CareLevelExpert   CareLevel = "expert"
)

// IsValid checks if the care level is recognised
func (c CareLevel) IsValid() bool {
	switch c {
	case CareLevelEasy, CareLevelModerate, CareLevelExpert:
		return true
	}
	return false
}

// LightRequirement describes the light a plant needs
type LightRequirement string

const (
	LightLow    LightRequirement = "low"
	LightMedium LightRequirement = "medium"
	LightBright LightRequirement = "bright"
	LightFull   LightRequirement = "full_sun"
)

// IsValid checks if the light requirement is recognised
func (l LightRequirement) IsValid() bool {
	switch l {
	case LightLow, LightMedium, LightBright, LightFull:
		return true
	}
	return false
}

// SaleType represents the kind of discount applied to a product's price
type SaleType string

const (
	SaleTypeNone       SaleType = "none"
	SaleTypePercentage SaleType = "percentage"
	SaleTypeFlat       SaleType = "flat"
)

var productCodePattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9\-_]*$`)

// Product represents a plant SKU in the catalog
// It is the aggregate root for product-related operations
type Product struct {
	shared.BaseAggregateRoot
	Code              string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name              string           `gorm:"type:varchar(200);not null"`
	BotanicalName     string           `gorm:"type:varchar(200)"`
	Description       string           `gorm:"type:text"`
	CategoryID        *uuid.UUID       `gorm:"type:uuid;index"`
	PotSize           string           `gorm:"type:varchar(20)"` // e.g. "4in", "1gal"
	CareLevel         CareLevel        `gorm:"type:varchar(20);not null;default:'easy'"`
	Light             LightRequirement `gorm:"type:varchar(20);not null;default:'medium'"`
	Price             decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	SaleType          SaleType         `gorm:"type:varchar(20);not null;default:'none'"`
	SaleValue         decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	SaleStartsAt      *time.Time       `gorm:"index"`
	SaleEndsAt        *time.Time       `gorm:"index"`
	StockQuantity     int              `gorm:"not null;default:0"`
	LowStockThreshold int              `gorm:"not null;default:0"`
	Status            ProductStatus    `gorm:"type:varchar(20);not null;default:'active'"`
	Featured          bool             `gorm:"not null;default:false"`
	ImageKey          string           `gorm:"type:varchar(255)"`
	SortOrder         int              `gorm:"not null;default:0"`
	Attributes        string           `gorm:"type:jsonb"` // JSON storage for custom attributes
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(code, name string, price valueobject.Money) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		CareLevel:         CareLevelEasy,
		Light:             LightMedium,
		Price:             price.Amount(),
		SaleType:          SaleTypeNone,
		SaleValue:         decimal.Zero,
		Status:            ProductStatusActive,
		Attributes:        "{}",
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's descriptive information
func (p *Product) Update(name, botanicalName, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if len(botanicalName) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Botanical name cannot exceed 200 characters")
	}

	p.Name = name
	p.BotanicalName = botanicalName
	p.Description = description
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetCategory sets the product category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))
}

// SetCareProfile sets the care level and light requirement
func (p *Product) SetCareProfile(care CareLevel, light LightRequirement) error {
	if !care.IsValid() {
		return shared.NewDomainError("INVALID_CARE_LEVEL", "Unknown care level")
	}
	if !light.IsValid() {
		return shared.NewDomainError("INVALID_LIGHT", "Unknown light requirement")
	}

	p.CareLevel = care
	p.Light = light
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetPotSize sets the pot size label
func (p *Product) SetPotSize(potSize string) error {
	if len(potSize) > 20 {
		return shared.NewDomainError("INVALID_POT_SIZE", "Pot size cannot exceed 20 characters")
	}
	p.PotSize = potSize
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SetPrice sets the base price
func (p *Product) SetPrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	oldPrice := p.Price
	p.Price = price.Amount()
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, oldPrice))

	return nil
}

// SetSale puts the product on sale
// A percentage sale takes a value between 0 and 100; a flat sale takes a
// positive amount deducted from the base price. The optional window limits
// when the sale price applies.
func (p *Product) SetSale(saleType SaleType, value decimal.Decimal, startsAt, endsAt *time.Time) error {
	switch saleType {
	case SaleTypePercentage:
		if value.LessThanOrEqual(decimal.Zero) || value.GreaterThan(decimal.NewFromInt(100)) {
			return shared.NewDomainError("INVALID_SALE", "Percentage discount must be between 0 and 100")
		}
	case SaleTypeFlat:
		if value.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("INVALID_SALE", "Flat discount must be positive")
		}
	default:
		return shared.NewDomainError("INVALID_SALE", "Unknown sale type")
	}
	if startsAt != nil && endsAt != nil && !endsAt.After(*startsAt) {
		return shared.NewDomainError("INVALID_SALE", "Sale end must be after sale start")
	}

	p.SaleType = saleType
	p.SaleValue = value
	p.SaleStartsAt = startsAt
	p.SaleEndsAt = endsAt
	p.Touch()
	p.IncrementVersion()

	return nil
}

// ClearSale removes any sale pricing
func (p *Product) ClearSale() {
	p.SaleType = SaleTypeNone
	p.SaleValue = decimal.Zero
	p.SaleStartsAt = nil
	p.SaleEndsAt = nil
	p.Touch()
	p.IncrementVersion()
}

// SaleActiveAt reports whether the sale window contains the given time
func (p *Product) SaleActiveAt(at time.Time) bool {
	if p.SaleType == SaleTypeNone || p.SaleType == "" {
		return false
	}
	if p.SaleStartsAt != nil && at.Before(*p.SaleStartsAt) {
		return false
	}
	if p.SaleEndsAt != nil && at.After(*p.SaleEndsAt) {
		return false
	}
	return true
}

// SalePriceAt returns the effective selling price at the given time
// Percentage sales apply price*(1-value/100); flat sales deduct the value.
// The result never goes below zero.
func (p *Product) SalePriceAt(at time.Time) decimal.Decimal {
	if !p.SaleActiveAt(at) {
		return p.Price
	}

	var price decimal.Decimal
	switch p.SaleType {
	case SaleTypePercentage:
		factor := decimal.NewFromInt(1).Sub(p.SaleValue.Div(decimal.NewFromInt(100)))
		price = p.Price.Mul(factor)
	case SaleTypeFlat:
		price = p.Price.Sub(p.SaleValue)
	default:
		return p.Price
	}

	if price.IsNegative() {
		return decimal.Zero
	}
	return price.Round(2)
}

// CurrentPrice returns the effective selling price right now
func (p *Product) CurrentPrice() decimal.Decimal {
	return p.SalePriceAt(time.Now())
}

// SetStock sets the absolute stock quantity
func (p *Product) SetStock(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Stock quantity cannot be negative")
	}

	wasOut := p.StockQuantity == 0
	p.StockQuantity = quantity
	p.Touch()
	p.IncrementVersion()

	if wasOut && quantity > 0 {
		p.AddDomainEvent(NewProductRestockedEvent(p))
	}

	return nil
}

// DecrementStock reduces the stock quantity, rejecting oversells
func (p *Product) DecrementStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if quantity > p.StockQuantity {
		return shared.ErrInsufficientStock
	}

	p.StockQuantity -= quantity
	p.Touch()
	p.IncrementVersion()

	return nil
}

// Replenish adds stock, emitting a restock event when the product
// comes back from being out of stock
func (p *Product) Replenish(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	wasOut := p.StockQuantity == 0
	p.StockQuantity += quantity
	p.Touch()
	p.IncrementVersion()

	if wasOut {
		p.AddDomainEvent(NewProductRestockedEvent(p))
	}

	return nil
}

// SetLowStockThreshold sets the stock level that triggers low-stock reporting
func (p *Product) SetLowStockThreshold(threshold int) error {
	if threshold < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Low stock threshold cannot be negative")
	}
	p.LowStockThreshold = threshold
	p.Touch()
	p.IncrementVersion()
	return nil
}

// IsLowStock reports whether the product is at or below its threshold
func (p *Product) IsLowStock() bool {
	return p.LowStockThreshold > 0 && p.StockQuantity <= p.LowStockThreshold
}

// IsInStock reports whether the product has stock available
func (p *Product) IsInStock() bool {
	return p.StockQuantity > 0
}

// SetFeatured marks or unmarks the product as featured on the storefront
func (p *Product) SetFeatured(featured bool) {
	p.Featured = featured
	p.Touch()
	p.IncrementVersion()
}

// SetImageKey sets the storage key of the product image
func (p *Product) SetImageKey(key string) error {
	if len(key) > 255 {
		return shared.NewDomainError("INVALID_IMAGE_KEY", "Image key cannot exceed 255 characters")
	}
	p.ImageKey = key
	p.Touch()
	p.IncrementVersion()
	return nil
}

// SetSortOrder sets the display sort order
func (p *Product) SetSortOrder(order int) {
	p.SortOrder = order
	p.Touch()
	p.IncrementVersion()
}

// SetAttributes sets the custom attributes JSON
func (p *Product) SetAttributes(attributes string) error {
	if attributes == "" {
		attributes = "{}"
	}
	p.Attributes = attributes
	p.Touch()
	p.IncrementVersion()
	return nil
}

// Activate makes the product purchasable
func (p *Product) Activate() error {
	if p.Status == ProductStatusDiscontinued {
		return shared.NewDomainError("INVALID_STATE", "Cannot activate a discontinued product")
	}
	if p.Status == ProductStatusActive {
		return nil
	}

	oldStatus := p.Status
	p.Status = ProductStatusActive
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p, oldStatus, p.Status))

	return nil
}

// Deactivate hides the product from the storefront
func (p *Product) Deactivate() error {
	if p.Status == ProductStatusDiscontinued {
		return shared.NewDomainError("INVALID_STATE", "Cannot deactivate a discontinued product")
	}
	if p.Status == ProductStatusInactive {
		return nil
	}

	oldStatus := p.Status
	p.Status = ProductStatusInactive
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p, oldStatus, p.Status))

	return nil
}

// Discontinue permanently retires the product
func (p *Product) Discontinue() error {
	if p.Status == ProductStatusDiscontinued {
		return nil
	}

	oldStatus := p.Status
	p.Status = ProductStatusDiscontinued
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p, oldStatus, p.Status))

	return nil
}

// IsPurchasable reports whether the product can be added to a cart
func (p *Product) IsPurchasable() bool {
	return p.Status == ProductStatusActive && p.StockQuantity > 0
}

func validateProductCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}
	if !productCodePattern.MatchString(strings.ToUpper(code)) {
		return shared.NewDomainError("INVALID_CODE", "Product code can only contain letters, digits, hyphens and underscores")
	}
	return nil
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
