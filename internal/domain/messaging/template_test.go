package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmailTemplate(t *testing.T) {
	t.Run("creates an active template", func(t *testing.T) {
		tpl, err := NewEmailTemplate(TemplateBackInStock, "Restock alert",
			"{{product_name}} is back",
			"<p>Good news, {{product_name}} has returned.</p>",
			"Good news, {{product_name}} has returned.")
		require.NoError(t, err)
		assert.True(t, tpl.Active)
		assert.Equal(t, "Restock alert", tpl.Name)
	})

	t.Run("text body is optional", func(t *testing.T) {
		tpl, err := NewEmailTemplate(TemplateBackInStock, "Restock alert",
			"{{product_name}} is back", "<p>{{product_name}}</p>", "")
		require.NoError(t, err)
		assert.Empty(t, tpl.TextBody)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		_, err := NewEmailTemplate(TemplateKind("newsletter"), "Newsletter", "Hi", "<p>Body</p>", "")
		require.Error(t, err)
	})

	t.Run("rejects empty name, subject or html body", func(t *testing.T) {
		_, err := NewEmailTemplate(TemplateBackInStock, "", "Subject", "<p>Body</p>", "")
		require.Error(t, err)
		_, err = NewEmailTemplate(TemplateBackInStock, "Restock alert", "", "<p>Body</p>", "")
		require.Error(t, err)
		_, err = NewEmailTemplate(TemplateBackInStock, "Restock alert", "Subject", "", "")
		require.Error(t, err)
	})
}

func TestTemplateUpdateContent(t *testing.T) {
	tpl, err := NewEmailTemplate(TemplateBackInStock, "Restock alert",
		"{{product_name}} is back", "<p>{{product_name}}</p>", "")
	require.NoError(t, err)

	require.NoError(t, tpl.UpdateContent("Restock notice", "Back in stock: {{product_name}}",
		"<h1>{{product_name}}</h1>", "{{product_name}} is available."))
	assert.Equal(t, "Restock notice", tpl.Name)
	assert.Equal(t, "<h1>{{product_name}}</h1>", tpl.HTMLBody)
	assert.Equal(t, "{{product_name}} is available.", tpl.TextBody)

	require.Error(t, tpl.UpdateContent("", "Subject", "<p>Body</p>", ""))
}

func TestTemplateRender(t *testing.T) {
	tpl, err := NewEmailTemplate(TemplateOrderConfirmation, "Order confirmation",
		"Order {{order_number}} confirmed",
		"<p>Hi {{customer_name}}, your order {{order_number}} for {{order_total}} is confirmed. {{unknown_tag}}</p>",
		"Hi {{customer_name}}, order {{order_number}} confirmed.")
	require.NoError(t, err)

	vars := map[string]string{
		"customer_name": "Pat",
		"order_number":  "VN-20260831-0001",
		"order_total":   "$72.95",
	}

	t.Run("substitutes into subject and both bodies", func(t *testing.T) {
		rendered, err := tpl.Render(vars)
		require.NoError(t, err)
		assert.Equal(t, "Order VN-20260831-0001 confirmed", rendered.Subject)
		assert.Contains(t, rendered.HTMLBody, "Hi Pat")
		assert.Contains(t, rendered.HTMLBody, "$72.95")
		assert.Equal(t, "Hi Pat, order VN-20260831-0001 confirmed.", rendered.TextBody)
	})

	t.Run("unknown placeholders are left intact", func(t *testing.T) {
		rendered, err := tpl.Render(vars)
		require.NoError(t, err)
		assert.Contains(t, rendered.HTMLBody, "{{unknown_tag}}")
	})

	t.Run("missing required variable fails", func(t *testing.T) {
		_, err := tpl.Render(map[string]string{"customer_name": "Pat"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "order_number")
	})

	t.Run("placeholders tolerate inner whitespace", func(t *testing.T) {
		spaced, err := NewEmailTemplate(TemplateBackInStock, "Restock alert",
			"{{ product_name }} is back", "<p>{{ product_name }}</p>", "")
		require.NoError(t, err)
		rendered, err := spaced.Render(map[string]string{"product_name": "Monstera"})
		require.NoError(t, err)
		assert.Equal(t, "Monstera is back", rendered.Subject)
	})
}

func TestTemplatePlaceholders(t *testing.T) {
	tpl, err := NewEmailTemplate(TemplatePickupReminder, "Pickup reminder",
		"Pickup {{order_number}}",
		"<p>Hi {{customer_name}}, collect {{order_number}} on {{pickup_date}} at {{pickup_location}}.</p>",
		"Bring ID for order {{order_number}}, {{store_phone}} for questions.")
	require.NoError(t, err)

	names := tpl.Placeholders()
	assert.ElementsMatch(t, []string{"order_number", "customer_name", "pickup_date", "pickup_location", "store_phone"}, names)
}
