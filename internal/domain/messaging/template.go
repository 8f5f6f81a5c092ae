package messaging

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nursery/backend/internal/domain/shared"
)

// TemplateKind identifies a transactional email template
type TemplateKind string

const (
	TemplateOrderConfirmation     TemplateKind = "order_confirmation"
	TemplateShippingNotice        TemplateKind = "shipping_notice"
	TemplatePickupReminder        TemplateKind = "pickup_reminder"
	TemplateBackInStock           TemplateKind = "back_in_stock"
	TemplatePromotionAnnouncement TemplateKind = "promotion_announcement"
)

// IsValid checks if the template kind is recognised
func (k TemplateKind) IsValid() bool {
	switch k {
	case TemplateOrderConfirmation, TemplateShippingNotice, TemplatePickupReminder,
		TemplateBackInStock, TemplatePromotionAnnouncement:
		return true
	}
	return false
}

// RequiredVariables lists the placeholders each kind cannot render without
func (k TemplateKind) RequiredVariables() []string {
	switch k {
	case TemplateOrderConfirmation:
		return []string{"customer_name", "order_number", "order_total"}
	case TemplateShippingNotice:
		return []string{"customer_name", "order_number", "tracking_number"}
	case TemplatePickupReminder:
		return []string{"customer_name", "order_number", "pickup_date", "pickup_location"}
	case TemplateBackInStock:
		return []string{"product_name"}
	case TemplatePromotionAnnouncement:
		return []string{"promotion_name"}
	}
	return nil
}

var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// EmailTemplate represents an editable transactional email
// Subject and both bodies use {{placeholder}} substitution. The text body
// is an optional plain-text alternative to the HTML body
type EmailTemplate struct {
	shared.BaseAggregateRoot
	Kind     TemplateKind `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name     string       `gorm:"type:varchar(100);not null"`
	Subject  string       `gorm:"type:varchar(255);not null"`
	HTMLBody string       `gorm:"column:html_body;type:text;not null"`
	TextBody string       `gorm:"column:text_body;type:text;not null"`
	Active   bool         `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (EmailTemplate) TableName() string {
	return "email_templates"
}

func validateTemplateContent(name, subject, htmlBody string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_TEMPLATE", "Name cannot be empty")
	}
	if subject == "" {
		return shared.NewDomainError("INVALID_TEMPLATE", "Subject cannot be empty")
	}
	if htmlBody == "" {
		return shared.NewDomainError("INVALID_TEMPLATE", "HTML body cannot be empty")
	}
	return nil
}

// NewEmailTemplate creates a template for a kind
// The text body may be empty, in which case only HTML is sent
func NewEmailTemplate(kind TemplateKind, name, subject, htmlBody, textBody string) (*EmailTemplate, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_TEMPLATE", "Unknown template kind")
	}
	if err := validateTemplateContent(name, subject, htmlBody); err != nil {
		return nil, err
	}

	return &EmailTemplate{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              kind,
		Name:              name,
		Subject:           subject,
		HTMLBody:          htmlBody,
		TextBody:          textBody,
		Active:            true,
	}, nil
}

// UpdateContent replaces the name, subject and bodies
func (t *EmailTemplate) UpdateContent(name, subject, htmlBody, textBody string) error {
	if err := validateTemplateContent(name, subject, htmlBody); err != nil {
		return err
	}
	t.Name = name
	t.Subject = subject
	t.HTMLBody = htmlBody
	t.TextBody = textBody
	t.Touch()
	t.IncrementVersion()
	return nil
}

// Activate enables the template
func (t *EmailTemplate) Activate() {
	if t.Active {
		return
	}
	t.Active = true
	t.Touch()
	t.IncrementVersion()
}

// Deactivate disables the template
func (t *EmailTemplate) Deactivate() {
	if !t.Active {
		return
	}
	t.Active = false
	t.Touch()
	t.IncrementVersion()
}

// Placeholders lists the distinct placeholder names used in the template
func (t *EmailTemplate) Placeholders() []string {
	seen := make(map[string]bool)
	var names []string
	source := t.Subject + "\n" + t.HTMLBody + "\n" + t.TextBody
	for _, match := range placeholderPattern.FindAllStringSubmatch(source, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			names = append(names, match[1])
		}
	}
	return names
}

// RenderedEmail is the result of substituting variables into a template
type RenderedEmail struct {
	Subject  string
	HTMLBody string
	TextBody string
}

// Render substitutes variables into the subject and bodies
// Placeholders without a supplied value are left intact, but the
// kind's required variables must all be present
func (t *EmailTemplate) Render(vars map[string]string) (RenderedEmail, error) {
	for _, name := range t.Kind.RequiredVariables() {
		if _, ok := vars[name]; !ok {
			return RenderedEmail{}, shared.NewDomainError("MISSING_VARIABLE",
				fmt.Sprintf("Template %s requires variable %q", t.Kind, name))
		}
	}

	substitute := func(text string) string {
		return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
			name := strings.Trim(match, "{} \t")
			if value, ok := vars[name]; ok {
				return value
			}
			return match
		})
	}
	return RenderedEmail{
		Subject:  substitute(t.Subject),
		HTMLBody: substitute(t.HTMLBody),
		TextBody: substitute(t.TextBody),
	}, nil
}
