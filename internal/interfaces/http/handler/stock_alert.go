package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/nursery/backend/internal/application/catalog"
)

// StockAlertHandler handles back-in-stock alert subscriptions
type StockAlertHandler struct {
	BaseHandler
	alertService *catalogapp.StockAlertService
}

// NewStockAlertHandler creates a new StockAlertHandler
func NewStockAlertHandler(alertService *catalogapp.StockAlertService) *StockAlertHandler {
	return &StockAlertHandler{alertService: alertService}
}

// Subscribe godoc
// @Summary  Subscribe to a back-in-stock alert for a product
// @Tags     catalog
// @Router   /store/stock-alerts [post]
func (h *StockAlertHandler) Subscribe(c *gin.Context) {
	var req catalogapp.SubscribeStockAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	alert, err := h.alertService.Subscribe(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, alert)
}

// ListPending godoc
// @Summary  List pending alerts for a product
// @Tags     catalog
// @Router   /admin/products/{id}/stock-alerts [get]
func (h *StockAlertHandler) ListPending(c *gin.Context) {
	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	alerts, err := h.alertService.ListPending(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, alerts)
}

// Unsubscribe godoc
// @Summary  Cancel a back-in-stock alert
// @Tags     catalog
// @Router   /store/stock-alerts/{id} [delete]
func (h *StockAlertHandler) Unsubscribe(c *gin.Context) {
	alertID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid alert ID format")
		return
	}

	if err := h.alertService.Unsubscribe(c.Request.Context(), alertID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
