package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/pickup"
	"github.com/nursery/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPickupLocationRepository implements LocationRepository using GORM
type GormPickupLocationRepository struct {
	db *gorm.DB
}

// NewGormPickupLocationRepository creates a new GormPickupLocationRepository
func NewGormPickupLocationRepository(db *gorm.DB) *GormPickupLocationRepository {
	return &GormPickupLocationRepository{db: db}
}

// FindByID finds a location by its ID
func (r *GormPickupLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*pickup.PickupLocation, error) {
	var location pickup.PickupLocation
	if err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

// FindAll finds all locations matching the filter
func (r *GormPickupLocationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]pickup.PickupLocation, error) {
	var locations []pickup.PickupLocation
	query := r.applyFilter(r.db.WithContext(ctx).Model(&pickup.PickupLocation{}), filter)

	if err := query.Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// FindActive finds all active locations
func (r *GormPickupLocationRepository) FindActive(ctx context.Context) ([]pickup.PickupLocation, error) {
	var locations []pickup.PickupLocation
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// Save creates or updates a location
func (r *GormPickupLocationRepository) Save(ctx context.Context, location *pickup.PickupLocation) error {
	return r.db.WithContext(ctx).Save(location).Error
}

// Delete deletes a location
func (r *GormPickupLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&pickup.PickupLocation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts locations matching the filter
func (r *GormPickupLocationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&pickup.PickupLocation{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormPickupLocationRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, PickupLocationSortFields, "name")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("name ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormPickupLocationRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		}
	}

	return query
}

// Ensure GormPickupLocationRepository implements LocationRepository
var _ pickup.LocationRepository = (*GormPickupLocationRepository)(nil)
