package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/catalog"
	"github.com/nursery/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockAlertRepository implements StockAlertRepository using GORM
type GormStockAlertRepository struct {
	db *gorm.DB
}

// NewGormStockAlertRepository creates a new GormStockAlertRepository
func NewGormStockAlertRepository(db *gorm.DB) *GormStockAlertRepository {
	return &GormStockAlertRepository{db: db}
}

// FindByID finds an alert by its ID
func (r *GormStockAlertRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.StockAlert, error) {
	var alert catalog.StockAlert
	if err := r.db.WithContext(ctx).First(&alert, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &alert, nil
}

// FindPendingByProduct finds pending alerts for a product
func (r *GormStockAlertRepository) FindPendingByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.StockAlert, error) {
	var alerts []catalog.StockAlert
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND status = ?", productID, catalog.StockAlertStatusPending).
		Order("created_at ASC").
		Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// FindByProductAndEmail finds an alert by product and subscriber email
func (r *GormStockAlertRepository) FindByProductAndEmail(ctx context.Context, productID uuid.UUID, email string) (*catalog.StockAlert, error) {
	var alert catalog.StockAlert
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND email = ?", productID, strings.ToLower(strings.TrimSpace(email))).
		First(&alert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &alert, nil
}

// FindAll finds all alerts matching the filter
func (r *GormStockAlertRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.StockAlert, error) {
	var alerts []catalog.StockAlert
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.StockAlert{}), filter)

	if err := query.Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// Save creates or updates an alert
func (r *GormStockAlertRepository) Save(ctx context.Context, alert *catalog.StockAlert) error {
	return r.db.WithContext(ctx).Save(alert).Error
}

// Delete deletes an alert
func (r *GormStockAlertRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.StockAlert{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts alerts matching the filter
func (r *GormStockAlertRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&catalog.StockAlert{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormStockAlertRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, StockAlertSortFields, "created_at")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormStockAlertRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("email ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "product_id":
			query = query.Where("product_id = ?", value)
		}
	}

	return query
}

// Ensure GormStockAlertRepository implements StockAlertRepository
var _ catalog.StockAlertRepository = (*GormStockAlertRepository)(nil)
