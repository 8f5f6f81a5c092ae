package handler

import (
	"github.com/gin-gonic/gin"
	messagingapp "github.com/nursery/backend/internal/application/messaging"
)

// TemplateHandler handles notification template API endpoints
type TemplateHandler struct {
	BaseHandler
	templateService *messagingapp.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(templateService *messagingapp.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// Create godoc
// @Summary  Create a notification template
// @Tags     messaging
// @Router   /admin/templates [post]
func (h *TemplateHandler) Create(c *gin.Context) {
	var req messagingapp.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	template, err := h.templateService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, template)
}

// GetByID godoc
// @Summary  Get template by ID
// @Tags     messaging
// @Router   /admin/templates/{id} [get]
func (h *TemplateHandler) GetByID(c *gin.Context) {
	templateID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	template, err := h.templateService.GetByID(c.Request.Context(), templateID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, template)
}

// List godoc
// @Summary  List notification templates
// @Tags     messaging
// @Router   /admin/templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	templates, err := h.templateService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, templates)
}

// Update godoc
// @Summary  Update a template's subject and body
// @Tags     messaging
// @Router   /admin/templates/{id} [put]
func (h *TemplateHandler) Update(c *gin.Context) {
	templateID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	var req messagingapp.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	template, err := h.templateService.Update(c.Request.Context(), templateID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, template)
}

// Activate makes a template eligible for sending
func (h *TemplateHandler) Activate(c *gin.Context) {
	templateID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	if err := h.templateService.Activate(c.Request.Context(), templateID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Deactivate suspends a template from sending
func (h *TemplateHandler) Deactivate(c *gin.Context) {
	templateID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	if err := h.templateService.Deactivate(c.Request.Context(), templateID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete godoc
// @Summary  Delete a template
// @Tags     messaging
// @Router   /admin/templates/{id} [delete]
func (h *TemplateHandler) Delete(c *gin.Context) {
	templateID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	if err := h.templateService.Delete(c.Request.Context(), templateID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Preview godoc
// @Summary  Render a template with sample variables
// @Tags     messaging
// @Router   /admin/templates/{id}/preview [post]
func (h *TemplateHandler) Preview(c *gin.Context) {
	templateID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	var req messagingapp.PreviewTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	preview, err := h.templateService.Preview(c.Request.Context(), templateID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, preview)
}
