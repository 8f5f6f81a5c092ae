package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/messaging"
	"github.com/nursery/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormEmailTemplateRepository implements TemplateRepository using GORM
type GormEmailTemplateRepository struct {
	db *gorm.DB
}

// NewGormEmailTemplateRepository creates a new GormEmailTemplateRepository
func NewGormEmailTemplateRepository(db *gorm.DB) *GormEmailTemplateRepository {
	return &GormEmailTemplateRepository{db: db}
}

// FindByID finds a template by its ID
func (r *GormEmailTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*messaging.EmailTemplate, error) {
	var template messaging.EmailTemplate
	if err := r.db.WithContext(ctx).First(&template, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &template, nil
}

// FindByKind finds the template for a kind
func (r *GormEmailTemplateRepository) FindByKind(ctx context.Context, kind messaging.TemplateKind) (*messaging.EmailTemplate, error) {
	var template messaging.EmailTemplate
	if err := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &template, nil
}

// FindAll finds all templates matching the filter
func (r *GormEmailTemplateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]messaging.EmailTemplate, error) {
	var templates []messaging.EmailTemplate
	query := r.db.WithContext(ctx).Model(&messaging.EmailTemplate{})

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("kind ILIKE ? OR subject ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		case "kind":
			query = query.Where("kind = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, EmailTemplateSortFields, "kind")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("kind ASC")
	}

	if err := query.Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// Save creates or updates a template
func (r *GormEmailTemplateRepository) Save(ctx context.Context, template *messaging.EmailTemplate) error {
	return r.db.WithContext(ctx).Save(template).Error
}

// Delete deletes a template
func (r *GormEmailTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&messaging.EmailTemplate{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormEmailTemplateRepository implements TemplateRepository
var _ messaging.TemplateRepository = (*GormEmailTemplateRepository)(nil)
