package catalog

import (
	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/shared"
)

// CategoryStatus represents the status of a category
type CategoryStatus string

const (
	CategoryStatusActive   CategoryStatus = "active"
	CategoryStatusInactive CategoryStatus = "inactive"
)

// Category represents a product category
// Categories form a tree via ParentID
type Category struct {
	shared.BaseAggregateRoot
	Name        string         `gorm:"type:varchar(100);not null"`
	Slug        string         `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string         `gorm:"type:text"`
	ParentID    *uuid.UUID     `gorm:"type:uuid;index"`
	Status      CategoryStatus `gorm:"type:varchar(20);not null;default:'active'"`
	SortOrder   int            `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name, slug string, parentID *uuid.UUID) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if err := validateCategorySlug(slug); err != nil {
		return nil, err
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
		ParentID:          parentID,
		Status:            CategoryStatusActive,
	}, nil
}

// Update updates the category's basic information
func (c *Category) Update(name, description string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}

	c.Name = name
	c.Description = description
	c.Touch()
	c.IncrementVersion()

	return nil
}

// SetSlug changes the URL slug
// Uniqueness is enforced by the caller against the repository
func (c *Category) SetSlug(slug string) error {
	if err := validateCategorySlug(slug); err != nil {
		return err
	}

	c.Slug = slug
	c.Touch()
	c.IncrementVersion()

	return nil
}

// MoveTo reparents the category
// The caller is responsible for cycle detection across the tree
func (c *Category) MoveTo(parentID *uuid.UUID) error {
	if parentID != nil && *parentID == c.ID {
		return shared.NewDomainError("INVALID_PARENT", "Category cannot be its own parent")
	}

	c.ParentID = parentID
	c.Touch()
	c.IncrementVersion()

	return nil
}

// SetSortOrder sets the display sort order
func (c *Category) SetSortOrder(order int) {
	c.SortOrder = order
	c.Touch()
	c.IncrementVersion()
}

// Activate makes the category visible
func (c *Category) Activate() {
	if c.Status == CategoryStatusActive {
		return
	}
	c.Status = CategoryStatusActive
	c.Touch()
	c.IncrementVersion()
}

// Deactivate hides the category
func (c *Category) Deactivate() {
	if c.Status == CategoryStatusInactive {
		return
	}
	c.Status = CategoryStatusInactive
	c.Touch()
	c.IncrementVersion()
}

// IsActive reports whether the category is active
func (c *Category) IsActive() bool {
	return c.Status == CategoryStatusActive
}

// IsRoot reports whether the category has no parent
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}

func validateCategorySlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_SLUG", "Category slug cannot be empty")
	}
	if len(slug) > 100 {
		return shared.NewDomainError("INVALID_SLUG", "Category slug cannot exceed 100 characters")
	}
	return nil
}
