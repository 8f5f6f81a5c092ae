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

// GormCarrierServiceRepository implements CarrierServiceRepository using GORM
type GormCarrierServiceRepository struct {
	db *gorm.DB
}

// NewGormCarrierServiceRepository creates a new GormCarrierServiceRepository
func NewGormCarrierServiceRepository(db *gorm.DB) *GormCarrierServiceRepository {
	return &GormCarrierServiceRepository{db: db}
}

// FindByID finds a carrier service by its ID
func (r *GormCarrierServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.CarrierService, error) {
	var service shipping.CarrierService
	if err := r.db.WithContext(ctx).First(&service, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &service, nil
}

// FindByCode finds a carrier service by its service code
func (r *GormCarrierServiceRepository) FindByCode(ctx context.Context, serviceCode string) (*shipping.CarrierService, error) {
	var service shipping.CarrierService
	if err := r.db.WithContext(ctx).
		Where("service_code = ?", strings.ToUpper(strings.TrimSpace(serviceCode))).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &service, nil
}

// FindAll finds all carrier services matching the filter
func (r *GormCarrierServiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]shipping.CarrierService, error) {
	var services []shipping.CarrierService
	query := r.applyFilter(r.db.WithContext(ctx).Model(&shipping.CarrierService{}), filter)

	if err := query.Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// FindActive finds all active carrier services
func (r *GormCarrierServiceRepository) FindActive(ctx context.Context) ([]shipping.CarrierService, error) {
	var services []shipping.CarrierService
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("base_rate ASC, service_name ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// ExistsByCode checks if a carrier service exists with the given code
func (r *GormCarrierServiceRepository) ExistsByCode(ctx context.Context, serviceCode string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&shipping.CarrierService{}).
		Where("service_code = ?", strings.ToUpper(strings.TrimSpace(serviceCode))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a carrier service
func (r *GormCarrierServiceRepository) Save(ctx context.Context, service *shipping.CarrierService) error {
	return r.db.WithContext(ctx).Save(service).Error
}

// Delete deletes a carrier service
func (r *GormCarrierServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&shipping.CarrierService{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts carrier services matching the filter
func (r *GormCarrierServiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&shipping.CarrierService{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormCarrierServiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, CarrierServiceSortFields, "service_name")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("base_rate ASC, service_name ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormCarrierServiceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("carrier ILIKE ? OR service_code ILIKE ? OR service_name ILIKE ?", searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		case "level":
			query = query.Where("level = ?", value)
		case "carrier":
			query = query.Where("carrier = ?", value)
		}
	}

	return query
}

// Ensure GormCarrierServiceRepository implements CarrierServiceRepository
var _ shipping.CarrierServiceRepository = (*GormCarrierServiceRepository)(nil)
