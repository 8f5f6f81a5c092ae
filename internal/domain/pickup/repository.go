package pickup

import (
	"context"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/shared"
)

// LocationRepository defines the interface for pickup location persistence
type LocationRepository interface {
	// FindByID finds a location by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*PickupLocation, error)

	// FindAll finds all locations matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]PickupLocation, error)

	// FindActive finds all active locations
	FindActive(ctx context.Context) ([]PickupLocation, error)

	// Save creates or updates a location
	Save(ctx context.Context, location *PickupLocation) error

	// Delete deletes a location
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts locations matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ScheduleRepository defines the interface for pickup schedule persistence
type ScheduleRepository interface {
	// FindByID finds a schedule by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*PickupSchedule, error)

	// FindByLocation finds all schedules for a location
	FindByLocation(ctx context.Context, locationID uuid.UUID) ([]PickupSchedule, error)

	// FindActiveByLocation finds active schedules for a location
	FindActiveByLocation(ctx context.Context, locationID uuid.UUID) ([]PickupSchedule, error)

	// FindAll finds all schedules matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]PickupSchedule, error)

	// Save creates or updates a schedule
	Save(ctx context.Context, schedule *PickupSchedule) error

	// Delete deletes a schedule
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts schedules matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// BookingCounter reports how many pickups are already reserved per slot
// Implemented against the order store
type BookingCounter interface {
	// CountBookings returns booked counts per schedule and date within the range
	CountBookings(ctx context.Context, locationID uuid.UUID, fromDate, toDate string) (BookedCounts, error)
}
