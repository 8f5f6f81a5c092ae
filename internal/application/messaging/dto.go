package messaging

import (
	"time"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/messaging"
)

// CreateTemplateRequest represents a request to create an email template
type CreateTemplateRequest struct {
	Kind     string `json:"kind" binding:"required,oneof=order_confirmation shipping_notice pickup_reminder back_in_stock promotion_announcement"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Subject  string `json:"subject" binding:"required,min=1,max=255"`
	HTMLBody string `json:"html_body" binding:"required,min=1"`
	TextBody string `json:"text_body"`
}

// UpdateTemplateRequest represents a request to update an email template
type UpdateTemplateRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Subject  string `json:"subject" binding:"required,min=1,max=255"`
	HTMLBody string `json:"html_body" binding:"required,min=1"`
	TextBody string `json:"text_body"`
}

// TemplateResponse represents an email template in API responses
type TemplateResponse struct {
	ID           uuid.UUID `json:"id"`
	Kind         string    `json:"kind"`
	Name         string    `json:"name"`
	Subject      string    `json:"subject"`
	HTMLBody     string    `json:"html_body"`
	TextBody     string    `json:"text_body"`
	Placeholders []string  `json:"placeholders"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToTemplateResponse converts a domain EmailTemplate to TemplateResponse
func ToTemplateResponse(t *messaging.EmailTemplate) TemplateResponse {
	return TemplateResponse{
		ID:           t.ID,
		Kind:         string(t.Kind),
		Name:         t.Name,
		Subject:      t.Subject,
		HTMLBody:     t.HTMLBody,
		TextBody:     t.TextBody,
		Placeholders: t.Placeholders(),
		Active:       t.Active,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// PreviewTemplateRequest renders a template with sample variables
type PreviewTemplateRequest struct {
	Variables map[string]string `json:"variables" binding:"required"`
}

// PreviewTemplateResponse is the rendered preview
type PreviewTemplateResponse struct {
	Subject  string `json:"subject"`
	HTMLBody string `json:"html_body"`
	TextBody string `json:"text_body"`
}
