package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CartItem represents a line in a shopping cart
type CartItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CartID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"` // sale-adjusted price at add time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Amount returns quantity times unit price
func (i *CartItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart represents a customer's shopping cart aggregate root
// Guest carts carry a session key instead of a customer ID
type Cart struct {
	shared.BaseAggregateRoot
	CustomerID *uuid.UUID `gorm:"type:uuid;index"`
	SessionKey string     `gorm:"type:varchar(64);index"`
	Items      []CartItem `gorm:"foreignKey:CartID"`
	CouponCode string     `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// NewCustomerCart creates a cart bound to a customer
func NewCustomerCart(customerID uuid.UUID) (*Cart, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        &customerID,
		Items:             make([]CartItem, 0),
	}, nil
}

// NewGuestCart creates a cart bound to an anonymous session
func NewGuestCart(sessionKey string) (*Cart, error) {
	if sessionKey == "" {
		return nil, shared.NewDomainError("INVALID_SESSION", "Session key cannot be empty")
	}
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SessionKey:        sessionKey,
		Items:             make([]CartItem, 0),
	}, nil
}

// AddItem adds a product to the cart or increments an existing line
func (c *Cart) AddItem(productID uuid.UUID, productName string, categoryID *uuid.UUID, quantity int, unitPrice decimal.Decimal) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			c.Items[idx].Quantity += quantity
			c.Items[idx].UnitPrice = unitPrice
			c.Items[idx].UpdatedAt = now
			c.Touch()
			return nil
		}
	}

	c.Items = append(c.Items, CartItem{
		ID:          uuid.New(),
		CartID:      c.ID,
		ProductID:   productID,
		ProductName: productName,
		CategoryID:  categoryID,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	c.Touch()
	return nil
}

// UpdateItemQuantity sets the quantity of a line, removing it at zero
func (c *Cart) UpdateItemQuantity(productID uuid.UUID, quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			if quantity == 0 {
				c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			} else {
				c.Items[idx].Quantity = quantity
				c.Items[idx].UpdatedAt = time.Now()
			}
			c.Touch()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Cart item not found")
}

// RemoveItem removes a product line from the cart
func (c *Cart) RemoveItem(productID uuid.UUID) error {
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			c.Touch()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Cart item not found")
}

// Clear removes all items and the applied coupon
func (c *Cart) Clear() {
	c.Items = make([]CartItem, 0)
	c.CouponCode = ""
	c.Touch()
}

// Merge folds another cart's items into this one
// Used when a guest logs in and their session cart joins the account cart
func (c *Cart) Merge(other *Cart) {
	for _, item := range other.Items {
		_ = c.AddItem(item.ProductID, item.ProductName, item.CategoryID, item.Quantity, item.UnitPrice)
	}
	if c.CouponCode == "" {
		c.CouponCode = other.CouponCode
	}
	c.Touch()
}

// ApplyCoupon records the coupon code on the cart
// Validation against the promotion happens at checkout
func (c *Cart) ApplyCoupon(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_COUPON", "Coupon code cannot be empty")
	}
	c.CouponCode = code
	c.Touch()
	return nil
}

// RemoveCoupon clears the applied coupon
func (c *Cart) RemoveCoupon() {
	c.CouponCode = ""
	c.Touch()
}

// Subtotal sums all line amounts
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for idx := range c.Items {
		total = total.Add(c.Items[idx].Amount())
	}
	return total
}

// ItemCount returns the number of distinct lines
func (c *Cart) ItemCount() int {
	return len(c.Items)
}

// TotalQuantity returns the sum of all line quantities
func (c *Cart) TotalQuantity() int {
	total := 0
	for idx := range c.Items {
		total += c.Items[idx].Quantity
	}
	return total
}

// IsEmpty reports whether the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
