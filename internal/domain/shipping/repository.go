package shipping

import (
	"context"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/shared"
)

// ZoneRepository defines the interface for shipping zone persistence
type ZoneRepository interface {
	// FindByID finds a zone by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ShippingZone, error)

	// FindByState finds the zone for a state code
	FindByState(ctx context.Context, stateCode string) (*ShippingZone, error)

	// FindAll finds all zones matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]ShippingZone, error)

	// FindByStatus finds zones with the given status
	FindByStatus(ctx context.Context, status ZoneStatus) ([]ShippingZone, error)

	// ExistsByState checks if a zone exists for a state code
	ExistsByState(ctx context.Context, stateCode string) (bool, error)

	// Save creates or updates a zone
	Save(ctx context.Context, zone *ShippingZone) error

	// Delete deletes a zone
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts zones matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// CarrierServiceRepository defines the interface for carrier service persistence
type CarrierServiceRepository interface {
	// FindByID finds a carrier service by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*CarrierService, error)

	// FindByCode finds a carrier service by its service code
	FindByCode(ctx context.Context, serviceCode string) (*CarrierService, error)

	// FindAll finds all carrier services matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]CarrierService, error)

	// FindActive finds all active carrier services
	FindActive(ctx context.Context) ([]CarrierService, error)

	// ExistsByCode checks if a carrier service exists with the given code
	ExistsByCode(ctx context.Context, serviceCode string) (bool, error)

	// Save creates or updates a carrier service
	Save(ctx context.Context, service *CarrierService) error

	// Delete deletes a carrier service
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts carrier services matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
