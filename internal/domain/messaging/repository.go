package messaging

import (
	"context"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/shared"
)

// TemplateRepository defines the interface for email template persistence
type TemplateRepository interface {
	// FindByID finds a template by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*EmailTemplate, error)

	// FindByKind finds the template for a kind
	FindByKind(ctx context.Context, kind TemplateKind) (*EmailTemplate, error)

	// FindAll finds all templates matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]EmailTemplate, error)

	// Save creates or updates a template
	Save(ctx context.Context, template *EmailTemplate) error

	// Delete deletes a template
	Delete(ctx context.Context, id uuid.UUID) error
}
