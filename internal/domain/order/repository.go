package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/catalog"
	"github.com/nursery/backend/internal/domain/shared"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// FindByID finds a cart by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Cart, error)

	// FindByCustomer finds the cart bound to a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID) (*Cart, error)

	// FindBySession finds the cart bound to a guest session
	FindBySession(ctx context.Context, sessionKey string) (*Cart, error)

	// Save creates or updates a cart with its items
	Save(ctx context.Context, cart *Cart) error

	// Delete deletes a cart
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByNumber finds an order by its order number
	FindByNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindAll finds all orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindByCustomer finds orders for a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindByStatus finds orders with the given status
	FindByStatus(ctx context.Context, status OrderStatus, filter shared.Filter) ([]Order, error)

	// FindPickupsForDate finds pickup orders scheduled for a date (YYYY-MM-DD)
	FindPickupsForDate(ctx context.Context, locationID uuid.UUID, date string) ([]Order, error)

	// CountPickups counts booked pickups per schedule and date in the range
	CountPickups(ctx context.Context, locationID uuid.UUID, fromDate, toDate string) (map[uuid.UUID]map[string]int, error)

	// NextSequence reserves the next per-day order number sequence value
	NextSequence(ctx context.Context, date time.Time) (int, error)

	// Save creates or updates an order with its items and promotion snapshots
	Save(ctx context.Context, order *Order) error

	// PlaceOrder persists everything a checkout touches in one atomic unit:
	// the decremented products, the new order, and the cleared cart. A failure
	// anywhere rolls back the stock decrements
	PlaceOrder(ctx context.Context, order *Order, products []*catalog.Product, cart *Cart) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
