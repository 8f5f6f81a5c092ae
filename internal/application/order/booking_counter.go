package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/order"
	"github.com/nursery/backend/internal/domain/pickup"
)

// PickupBookingCounter reports booked pickup counts from the order store
// It backs pickup slot availability
type PickupBookingCounter struct {
	orderRepo order.OrderRepository
}

// NewPickupBookingCounter creates a new PickupBookingCounter
func NewPickupBookingCounter(orderRepo order.OrderRepository) *PickupBookingCounter {
	return &PickupBookingCounter{orderRepo: orderRepo}
}

// CountBookings returns booked counts per schedule and date within the range
func (c *PickupBookingCounter) CountBookings(ctx context.Context, locationID uuid.UUID, fromDate, toDate string) (pickup.BookedCounts, error) {
	counts, err := c.orderRepo.CountPickups(ctx, locationID, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	return pickup.BookedCounts(counts), nil
}
