package handler

import (
	"github.com/gin-gonic/gin"
	promotionapp "github.com/nursery/backend/internal/application/promotion"
)

// PromotionHandler handles promotion and coupon API endpoints
type PromotionHandler struct {
	BaseHandler
	promotionService *promotionapp.PromotionService
}

// NewPromotionHandler creates a new PromotionHandler
func NewPromotionHandler(promotionService *promotionapp.PromotionService) *PromotionHandler {
	return &PromotionHandler{promotionService: promotionService}
}

// Create godoc
// @Summary  Create a new promotion
// @Tags     promotions
// @Router   /admin/promotions [post]
func (h *PromotionHandler) Create(c *gin.Context) {
	var req promotionapp.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	promo, err := h.promotionService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, promo)
}

// GetByID godoc
// @Summary  Get promotion by ID
// @Tags     promotions
// @Router   /admin/promotions/{id} [get]
func (h *PromotionHandler) GetByID(c *gin.Context) {
	promoID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid promotion ID format")
		return
	}

	promo, err := h.promotionService.GetByID(c.Request.Context(), promoID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, promo)
}

// List godoc
// @Summary  List promotions
// @Tags     promotions
// @Router   /admin/promotions [get]
func (h *PromotionHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if promoType := c.Query("type"); promoType != "" {
		filter.Filters["type"] = promoType
	}

	page, err := h.promotionService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update godoc
// @Summary  Update a promotion
// @Tags     promotions
// @Router   /admin/promotions/{id} [put]
func (h *PromotionHandler) Update(c *gin.Context) {
	promoID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid promotion ID format")
		return
	}

	var req promotionapp.UpdatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	promo, err := h.promotionService.Update(c.Request.Context(), promoID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, promo)
}

// Activate godoc
// @Summary  Activate a promotion
// @Tags     promotions
// @Router   /admin/promotions/{id}/activate [post]
func (h *PromotionHandler) Activate(c *gin.Context) {
	promoID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid promotion ID format")
		return
	}

	if err := h.promotionService.Activate(c.Request.Context(), promoID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Deactivate godoc
// @Summary  Deactivate a promotion
// @Tags     promotions
// @Router   /admin/promotions/{id}/deactivate [post]
func (h *PromotionHandler) Deactivate(c *gin.Context) {
	promoID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid promotion ID format")
		return
	}

	if err := h.promotionService.Deactivate(c.Request.Context(), promoID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete godoc
// @Summary  Delete a promotion
// @Tags     promotions
// @Router   /admin/promotions/{id} [delete]
func (h *PromotionHandler) Delete(c *gin.Context) {
	promoID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid promotion ID format")
		return
	}

	if err := h.promotionService.Delete(c.Request.Context(), promoID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ValidateCoupon godoc
// @Summary  Check whether a coupon code is currently redeemable
// @Tags     promotions
// @Router   /store/coupons/validate [post]
func (h *PromotionHandler) ValidateCoupon(c *gin.Context) {
	var req promotionapp.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.promotionService.ValidateCoupon(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// CalculateDiscount godoc
// @Summary  Preview the discount a cart would receive
// @Tags     promotions
// @Router   /store/promotions/calculate [post]
func (h *PromotionHandler) CalculateDiscount(c *gin.Context) {
	var req promotionapp.CalculateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.promotionService.CalculateCartDiscount(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
