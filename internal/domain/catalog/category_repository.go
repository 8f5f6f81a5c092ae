package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/shared"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindBySlug finds a category by its slug
	FindBySlug(ctx context.Context, slug string) (*Category, error)

	// FindAll finds all categories matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)

	// FindRoots finds all root categories
	FindRoots(ctx context.Context) ([]Category, error)

	// FindChildren finds direct children of a category
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Category, error)

	// ExistsBySlug checks if a category with the given slug exists
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Delete deletes a category
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts categories matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// StockAlertRepository defines the interface for back-in-stock subscriptions
type StockAlertRepository interface {
	// FindByID finds an alert by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockAlert, error)

	// FindPendingByProduct finds pending alerts for a product
	FindPendingByProduct(ctx context.Context, productID uuid.UUID) ([]StockAlert, error)

	// FindByProductAndEmail finds an alert by product and subscriber email
	FindByProductAndEmail(ctx context.Context, productID uuid.UUID, email string) (*StockAlert, error)

	// FindAll finds all alerts matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]StockAlert, error)

	// Save creates or updates an alert
	Save(ctx context.Context, alert *StockAlert) error

	// Delete deletes an alert
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts alerts matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
