package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/pickup"
	"github.com/nursery/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPickupScheduleRepository implements ScheduleRepository using GORM
type GormPickupScheduleRepository struct {
	db *gorm.DB
}

// NewGormPickupScheduleRepository creates a new GormPickupScheduleRepository
func NewGormPickupScheduleRepository(db *gorm.DB) *GormPickupScheduleRepository {
	return &GormPickupScheduleRepository{db: db}
}

// FindByID finds a schedule by its ID
func (r *GormPickupScheduleRepository) FindByID(ctx context.Context, id uuid.UUID) (*pickup.PickupSchedule, error) {
	var schedule pickup.PickupSchedule
	if err := r.db.WithContext(ctx).First(&schedule, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &schedule, nil
}

// FindByLocation finds all schedules for a location
func (r *GormPickupScheduleRepository) FindByLocation(ctx context.Context, locationID uuid.UUID) ([]pickup.PickupSchedule, error) {
	var schedules []pickup.PickupSchedule
	if err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("day_of_week ASC, start_time ASC").
		Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

// FindActiveByLocation finds active schedules for a location
func (r *GormPickupScheduleRepository) FindActiveByLocation(ctx context.Context, locationID uuid.UUID) ([]pickup.PickupSchedule, error) {
	var schedules []pickup.PickupSchedule
	if err := r.db.WithContext(ctx).
		Where("location_id = ? AND active = ?", locationID, true).
		Order("day_of_week ASC, start_time ASC").
		Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

// FindAll finds all schedules matching the filter
func (r *GormPickupScheduleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]pickup.PickupSchedule, error) {
	var schedules []pickup.PickupSchedule
	query := r.applyFilter(r.db.WithContext(ctx).Model(&pickup.PickupSchedule{}), filter)

	if err := query.Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

// Save creates or updates a schedule
func (r *GormPickupScheduleRepository) Save(ctx context.Context, schedule *pickup.PickupSchedule) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}

// Delete deletes a schedule
func (r *GormPickupScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&pickup.PickupSchedule{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts schedules matching the filter
func (r *GormPickupScheduleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&pickup.PickupSchedule{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormPickupScheduleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, PickupScheduleSortFields, "day_of_week")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("day_of_week ASC, start_time ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormPickupScheduleRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "location_id":
			query = query.Where("location_id = ?", value)
		case "kind":
			query = query.Where("kind = ?", value)
		case "active":
			query = query.Where("active = ?", value)
		case "day_of_week":
			query = query.Where("day_of_week = ?", value)
		}
	}

	return query
}

// Ensure GormPickupScheduleRepository implements ScheduleRepository
var _ pickup.ScheduleRepository = (*GormPickupScheduleRepository)(nil)
