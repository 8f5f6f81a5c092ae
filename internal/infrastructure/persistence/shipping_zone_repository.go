package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/shared"
	"github.com/nursery/backend/internal/domain/shipping"
	"gorm.io/gorm"
)

// GormShippingZoneRepository implements ZoneRepository using GORM
type GormShippingZoneRepository struct {
	db *gorm.DB
}

// NewGormShippingZoneRepository creates a new GormShippingZoneRepository
func NewGormShippingZoneRepository(db *gorm.DB) *GormShippingZoneRepository {
	return &GormShippingZoneRepository{db: db}
}

// FindByID finds a zone by its ID
func (r *GormShippingZoneRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.ShippingZone, error) {
	var zone shipping.ShippingZone
	if err := r.db.WithContext(ctx).First(&zone, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &zone, nil
}

// FindByState finds the zone for a state code
func (r *GormShippingZoneRepository) FindByState(ctx context.Context, stateCode string) (*shipping.ShippingZone, error) {
	var zone shipping.ShippingZone
	if err := r.db.WithContext(ctx).
		Where("state_code = ?", strings.ToUpper(strings.TrimSpace(stateCode))).
		First(&zone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &zone, nil
}

// FindAll finds all zones matching the filter
func (r *GormShippingZoneRepository) FindAll(ctx context.Context, filter shared.Filter) ([]shipping.ShippingZone, error) {
	var zones []shipping.ShippingZone
	query := r.applyFilter(r.db.WithContext(ctx).Model(&shipping.ShippingZone{}), filter)

	if err := query.Find(&zones).Error; err != nil {
		return nil, err
	}
	return zones, nil
}

// FindByStatus finds zones with the given status
func (r *GormShippingZoneRepository) FindByStatus(ctx context.Context, status shipping.ZoneStatus) ([]shipping.ShippingZone, error) {
	var zones []shipping.ShippingZone
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("state_code ASC").
		Find(&zones).Error; err != nil {
		return nil, err
	}
	return zones, nil
}

// ExistsByState checks if a zone exists for a state code
func (r *GormShippingZoneRepository) ExistsByState(ctx context.Context, stateCode string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&shipping.ShippingZone{}).
		Where("state_code = ?", strings.ToUpper(strings.TrimSpace(stateCode))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a zone
func (r *GormShippingZoneRepository) Save(ctx context.Context, zone *shipping.ShippingZone) error {
	return r.db.WithContext(ctx).Save(zone).Error
}

// Delete deletes a zone
func (r *GormShippingZoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&shipping.ShippingZone{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts zones matching the filter
func (r *GormShippingZoneRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&shipping.ShippingZone{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormShippingZoneRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, ShippingZoneSortFields, "state_code")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("state_code ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormShippingZoneRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("state_code ILIKE ? OR state_name ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "required_service":
			query = query.Where("required_service = ?", value)
		}
	}

	return query
}

// Ensure GormShippingZoneRepository implements ZoneRepository
var _ shipping.ZoneRepository = (*GormShippingZoneRepository)(nil)
