package messaging

import (
	"context"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/messaging"
	"github.com/nursery/backend/internal/domain/shared"
)

// TemplateService handles email template management
type TemplateService struct {
	templateRepo messaging.TemplateRepository
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(templateRepo messaging.TemplateRepository) *TemplateService {
	return &TemplateService{templateRepo: templateRepo}
}

// Create creates an email template
// Each kind can only have one template
func (s *TemplateService) Create(ctx context.Context, req CreateTemplateRequest) (*TemplateResponse, error) {
	kind := messaging.TemplateKind(req.Kind)
	if existing, err := s.templateRepo.FindByKind(ctx, kind); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A template already exists for this kind")
	}

	template, err := messaging.NewEmailTemplate(kind, req.Name, req.Subject, req.HTMLBody, req.TextBody)
	if err != nil {
		return nil, err
	}

	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, err
	}

	response := ToTemplateResponse(template)
	return &response, nil
}

// GetByID retrieves a template by ID
func (s *TemplateService) GetByID(ctx context.Context, templateID uuid.UUID) (*TemplateResponse, error) {
	template, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	response := ToTemplateResponse(template)
	return &response, nil
}

// List retrieves all templates
func (s *TemplateService) List(ctx context.Context) ([]TemplateResponse, error) {
	templates, err := s.templateRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	responses := make([]TemplateResponse, 0, len(templates))
	for idx := range templates {
		responses = append(responses, ToTemplateResponse(&templates[idx]))
	}
	return responses, nil
}

// Update replaces a template's name, subject and bodies
func (s *TemplateService) Update(ctx context.Context, templateID uuid.UUID, req UpdateTemplateRequest) (*TemplateResponse, error) {
	template, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if err := template.UpdateContent(req.Name, req.Subject, req.HTMLBody, req.TextBody); err != nil {
		return nil, err
	}
	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, err
	}
	response := ToTemplateResponse(template)
	return &response, nil
}

// Activate enables a template
func (s *TemplateService) Activate(ctx context.Context, templateID uuid.UUID) error {
	template, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		return err
	}
	template.Activate()
	return s.templateRepo.Save(ctx, template)
}

// Deactivate disables a template, suppressing its emails
func (s *TemplateService) Deactivate(ctx context.Context, templateID uuid.UUID) error {
	template, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		return err
	}
	template.Deactivate()
	return s.templateRepo.Save(ctx, template)
}

// Delete deletes a template
func (s *TemplateService) Delete(ctx context.Context, templateID uuid.UUID) error {
	if _, err := s.templateRepo.FindByID(ctx, templateID); err != nil {
		return err
	}
	return s.templateRepo.Delete(ctx, templateID)
}

// Preview renders a template with caller-provided variables
func (s *TemplateService) Preview(ctx context.Context, templateID uuid.UUID, req PreviewTemplateRequest) (*PreviewTemplateResponse, error) {
	template, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	rendered, err := template.Render(req.Variables)
	if err != nil {
		return nil, err
	}
	return &PreviewTemplateResponse{
		Subject:  rendered.Subject,
		HTMLBody: rendered.HTMLBody,
		TextBody: rendered.TextBody,
	}, nil
}
