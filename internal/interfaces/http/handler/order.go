package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderapp "github.com/nursery/backend/internal/application/order"
	orderdomain "github.com/nursery/backend/internal/domain/order"
)

// OrderHandler handles checkout and order lifecycle API endpoints
type OrderHandler struct {
	BaseHandler
	orderService    *orderapp.OrderService
	checkoutService *orderapp.CheckoutService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService, checkoutService *orderapp.CheckoutService) *OrderHandler {
	return &OrderHandler{
		orderService:    orderService,
		checkoutService: checkoutService,
	}
}

// Checkout godoc
// @Summary  Convert a cart into an order
// @Tags     orders
// @Router   /store/checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req orderapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.checkoutService.Checkout(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// GetByID godoc
// @Summary  Get order by ID
// @Tags     orders
// @Router   /admin/orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// GetByNumber godoc
// @Summary  Look up an order by its public order number
// @Tags     orders
// @Router   /store/orders/{number} [get]
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Missing order number")
		return
	}

	order, err := h.orderService.GetByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// List godoc
// @Summary  List orders
// @Tags     orders
// @Router   /admin/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if fulfillment := c.Query("fulfillment"); fulfillment != "" {
		filter.Filters["fulfillment"] = fulfillment
	}

	page, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListByCustomer godoc
// @Summary  List a customer's orders
// @Tags     orders
// @Router   /admin/customers/{id}/orders [get]
func (h *OrderHandler) ListByCustomer(c *gin.Context) {
	customerID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, err := h.orderService.ListByCustomer(c.Request.Context(), customerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// ListByStatus godoc
// @Summary  List orders in a given status
// @Tags     orders
// @Router   /admin/orders/status/{status} [get]
func (h *OrderHandler) ListByStatus(c *gin.Context) {
	status := orderdomain.OrderStatus(c.Param("status"))
	if !status.IsValid() {
		h.BadRequest(c, "Invalid order status")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, err := h.orderService.ListByStatus(c.Request.Context(), status, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// MarkPaid records payment received for an order
func (h *OrderHandler) MarkPaid(c *gin.Context) {
	h.transition(c, h.orderService.MarkPaid)
}

// StartProcessing moves a paid order into processing
func (h *OrderHandler) StartProcessing(c *gin.Context) {
	h.transition(c, h.orderService.StartProcessing)
}

// MarkReady flags a pickup order as ready for collection
func (h *OrderHandler) MarkReady(c *gin.Context) {
	h.transition(c, h.orderService.MarkReady)
}

// Complete closes out a fulfilled order
func (h *OrderHandler) Complete(c *gin.Context) {
	h.transition(c, h.orderService.Complete)
}

func (h *OrderHandler) transition(c *gin.Context, op func(ctx context.Context, orderID uuid.UUID) (*orderapp.OrderResponse, error)) {
	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := op(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Ship godoc
// @Summary  Mark an order shipped with a tracking number
// @Tags     orders
// @Router   /admin/orders/{id}/ship [post]
func (h *OrderHandler) Ship(c *gin.Context) {
	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderapp.ShipOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.MarkShipped(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Cancel godoc
// @Summary  Cancel an order and restock its items
// @Tags     orders
// @Router   /admin/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderapp.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// PickupsForDate godoc
// @Summary  List pickup orders due at a location on a date
// @Tags     orders
// @Router   /admin/pickup/locations/{id}/orders [get]
func (h *OrderHandler) PickupsForDate(c *gin.Context) {
	locationID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	date := c.Query("date")
	if date == "" {
		h.BadRequest(c, "Missing date query parameter")
		return
	}

	orders, err := h.orderService.ListPickupsForDate(c.Request.Context(), locationID, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}
