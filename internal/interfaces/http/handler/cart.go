package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderapp "github.com/nursery/backend/internal/application/order"
)

// CartHandler handles storefront cart API endpoints. Guest carts are keyed
// by a client-generated session key; customer carts by customer ID.
type CartHandler struct {
	BaseHandler
	cartService *orderapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *orderapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// OpenCartRequest resolves or creates the caller's active cart
type OpenCartRequest struct {
	SessionKey string     `json:"session_key" binding:"required_without=CustomerID,max=128"`
	CustomerID *uuid.UUID `json:"customer_id"`
}

// MergeCartRequest folds a guest cart into a customer cart
type MergeCartRequest struct {
	SessionKey string    `json:"session_key" binding:"required,max=128"`
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
}

// Open godoc
// @Summary  Get or create the active cart for a guest session or customer
// @Tags     cart
// @Router   /store/carts [post]
func (h *CartHandler) Open(c *gin.Context) {
	var req OpenCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var (
		cart *orderapp.CartResponse
		err  error
	)
	if req.CustomerID != nil {
		cart, err = h.cartService.GetOrCreateCustomerCart(c.Request.Context(), *req.CustomerID)
	} else {
		cart, err = h.cartService.GetOrCreateGuestCart(c.Request.Context(), req.SessionKey)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// Get godoc
// @Summary  Get cart by ID
// @Tags     cart
// @Router   /store/carts/{id} [get]
func (h *CartHandler) Get(c *gin.Context) {
	cartID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cart ID format")
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), cartID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// AddItem godoc
// @Summary  Add a product to the cart
// @Tags     cart
// @Router   /store/carts/{id}/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	cartID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cart ID format")
		return
	}

	var req orderapp.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), cartID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// UpdateItem godoc
// @Summary  Change the quantity of a cart line
// @Tags     cart
// @Router   /store/carts/{id}/items/{productId} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	cartID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cart ID format")
		return
	}
	productID, err := parseUUIDParam(c, "productId")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req orderapp.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cart, err := h.cartService.UpdateItem(c.Request.Context(), cartID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// RemoveItem godoc
// @Summary  Remove a product from the cart
// @Tags     cart
// @Router   /store/carts/{id}/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	cartID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cart ID format")
		return
	}
	productID, err := parseUUIDParam(c, "productId")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), cartID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// ApplyCoupon godoc
// @Summary  Apply a coupon code to the cart
// @Tags     cart
// @Router   /store/carts/{id}/coupon [post]
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	cartID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cart ID format")
		return
	}

	var req orderapp.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cart, err := h.cartService.ApplyCoupon(c.Request.Context(), cartID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// RemoveCoupon godoc
// @Summary  Remove the coupon from the cart
// @Tags     cart
// @Router   /store/carts/{id}/coupon [delete]
func (h *CartHandler) RemoveCoupon(c *gin.Context) {
	cartID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cart ID format")
		return
	}

	cart, err := h.cartService.RemoveCoupon(c.Request.Context(), cartID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// Clear godoc
// @Summary  Empty the cart
// @Tags     cart
// @Router   /store/carts/{id}/items [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	cartID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid cart ID format")
		return
	}

	cart, err := h.cartService.ClearCart(c.Request.Context(), cartID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// Merge godoc
// @Summary  Merge a guest cart into a customer cart after sign-in
// @Tags     cart
// @Router   /store/carts/merge [post]
func (h *CartHandler) Merge(c *gin.Context) {
	var req MergeCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cart, err := h.cartService.MergeGuestCart(c.Request.Context(), req.SessionKey, req.CustomerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}
