package handler

import (
	"github.com/gin-gonic/gin"
	shippingapp "github.com/nursery/backend/internal/application/shipping"
)

// ShippingHandler handles shipping zone and carrier service API endpoints
type ShippingHandler struct {
	BaseHandler
	shippingService *shippingapp.ShippingService
}

// NewShippingHandler creates a new ShippingHandler
func NewShippingHandler(shippingService *shippingapp.ShippingService) *ShippingHandler {
	return &ShippingHandler{shippingService: shippingService}
}

// CreateZone godoc
// @Summary  Create a shipping zone rule for a state
// @Tags     shipping
// @Router   /admin/shipping/zones [post]
func (h *ShippingHandler) CreateZone(c *gin.Context) {
	var req shippingapp.CreateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	zone, err := h.shippingService.CreateZone(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, zone)
}

// GetZone godoc
// @Summary  Get shipping zone by ID
// @Tags     shipping
// @Router   /admin/shipping/zones/{id} [get]
func (h *ShippingHandler) GetZone(c *gin.Context) {
	zoneID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid zone ID format")
		return
	}

	zone, err := h.shippingService.GetZone(c.Request.Context(), zoneID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, zone)
}

// ListZones godoc
// @Summary  List shipping zones
// @Tags     shipping
// @Router   /admin/shipping/zones [get]
func (h *ShippingHandler) ListZones(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	page, err := h.shippingService.ListZones(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// UpdateZone godoc
// @Summary  Update a shipping zone
// @Tags     shipping
// @Router   /admin/shipping/zones/{id} [put]
func (h *ShippingHandler) UpdateZone(c *gin.Context) {
	zoneID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid zone ID format")
		return
	}

	var req shippingapp.UpdateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	zone, err := h.shippingService.UpdateZone(c.Request.Context(), zoneID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, zone)
}

// DeleteZone godoc
// @Summary  Delete a shipping zone
// @Tags     shipping
// @Router   /admin/shipping/zones/{id} [delete]
func (h *ShippingHandler) DeleteZone(c *gin.Context) {
	zoneID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid zone ID format")
		return
	}

	if err := h.shippingService.DeleteZone(c.Request.Context(), zoneID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// EvaluateDestination godoc
// @Summary  Check whether plants can ship to a destination state
// @Tags     shipping
// @Router   /store/shipping/evaluate [get]
func (h *ShippingHandler) EvaluateDestination(c *gin.Context) {
	var req shippingapp.EvaluateDestinationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.shippingService.EvaluateDestination(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// CreateCarrierService godoc
// @Summary  Create a carrier service
// @Tags     shipping
// @Router   /admin/shipping/services [post]
func (h *ShippingHandler) CreateCarrierService(c *gin.Context) {
	var req shippingapp.CreateCarrierServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	service, err := h.shippingService.CreateCarrierService(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, service)
}

// GetCarrierService godoc
// @Summary  Get carrier service by ID
// @Tags     shipping
// @Router   /admin/shipping/services/{id} [get]
func (h *ShippingHandler) GetCarrierService(c *gin.Context) {
	serviceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid service ID format")
		return
	}

	service, err := h.shippingService.GetCarrierService(c.Request.Context(), serviceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, service)
}

// ListCarrierServices godoc
// @Summary  List carrier services
// @Tags     shipping
// @Router   /admin/shipping/services [get]
func (h *ShippingHandler) ListCarrierServices(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if level := c.Query("level"); level != "" {
		filter.Filters["level"] = level
	}

	page, err := h.shippingService.ListCarrierServices(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// UpdateCarrierService godoc
// @Summary  Update a carrier service
// @Tags     shipping
// @Router   /admin/shipping/services/{id} [put]
func (h *ShippingHandler) UpdateCarrierService(c *gin.Context) {
	serviceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid service ID format")
		return
	}

	var req shippingapp.UpdateCarrierServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	service, err := h.shippingService.UpdateCarrierService(c.Request.Context(), serviceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, service)
}

// ActivateCarrierService godoc
// @Summary  Activate a carrier service
// @Tags     shipping
// @Router   /admin/shipping/services/{id}/activate [post]
func (h *ShippingHandler) ActivateCarrierService(c *gin.Context) {
	serviceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid service ID format")
		return
	}

	if err := h.shippingService.ActivateCarrierService(c.Request.Context(), serviceID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// DeactivateCarrierService godoc
// @Summary  Deactivate a carrier service
// @Tags     shipping
// @Router   /admin/shipping/services/{id}/deactivate [post]
func (h *ShippingHandler) DeactivateCarrierService(c *gin.Context) {
	serviceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid service ID format")
		return
	}

	if err := h.shippingService.DeactivateCarrierService(c.Request.Context(), serviceID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// DeleteCarrierService godoc
// @Summary  Delete a carrier service
// @Tags     shipping
// @Router   /admin/shipping/services/{id} [delete]
func (h *ShippingHandler) DeleteCarrierService(c *gin.Context) {
	serviceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid service ID format")
		return
	}

	if err := h.shippingService.DeleteCarrierService(c.Request.Context(), serviceID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// QuoteRates godoc
// @Summary  Quote shipping rates for a destination and cart
// @Tags     shipping
// @Router   /store/shipping/rates [post]
func (h *ShippingHandler) QuoteRates(c *gin.Context) {
	var req shippingapp.QuoteRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quotes, err := h.shippingService.QuoteRates(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quotes)
}
