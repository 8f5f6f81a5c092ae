package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	reportapp "github.com/nursery/backend/internal/application/report"
)

// RollupScheduler exposes the manual controls of the nightly rollup job.
type RollupScheduler interface {
	TriggerManualRun(ctx context.Context) error
	GetStatus() map[string]any
}

// ReportHandler handles sales reporting and rollup API endpoints
type ReportHandler struct {
	BaseHandler
	reportService      *reportapp.ReportService
	aggregationService *reportapp.AggregationService
	scheduler          RollupScheduler
}

// NewReportHandler creates a new ReportHandler. The scheduler may be nil
// when the cron runner is disabled by configuration.
func NewReportHandler(
	reportService *reportapp.ReportService,
	aggregationService *reportapp.AggregationService,
	scheduler RollupScheduler,
) *ReportHandler {
	return &ReportHandler{
		reportService:      reportService,
		aggregationService: aggregationService,
		scheduler:          scheduler,
	}
}

func (h *ReportHandler) bindSalesFilter(c *gin.Context) (reportapp.SalesReportFilter, bool) {
	var filter reportapp.SalesReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return filter, false
	}
	return filter, true
}

// SalesSummary godoc
// @Summary  Sales totals for a date range
// @Tags     reports
// @Router   /admin/reports/sales/summary [get]
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	filter, ok := h.bindSalesFilter(c)
	if !ok {
		return
	}

	summary, err := h.reportService.GetSalesSummary(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// DailySalesSeries godoc
// @Summary  Day-by-day sales figures for a date range
// @Tags     reports
// @Router   /admin/reports/sales/daily [get]
func (h *ReportHandler) DailySalesSeries(c *gin.Context) {
	filter, ok := h.bindSalesFilter(c)
	if !ok {
		return
	}

	series, err := h.reportService.GetDailySalesSeries(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, series)
}

// ProductRanking godoc
// @Summary  Best selling products for a date range
// @Tags     reports
// @Router   /admin/reports/sales/products [get]
func (h *ReportHandler) ProductRanking(c *gin.Context) {
	filter, ok := h.bindSalesFilter(c)
	if !ok {
		return
	}

	ranking, err := h.reportService.GetProductSalesRanking(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ranking)
}

// CategorySplit godoc
// @Summary  Sales split by category
// @Tags     reports
// @Router   /admin/reports/sales/categories [get]
func (h *ReportHandler) CategorySplit(c *gin.Context) {
	filter, ok := h.bindSalesFilter(c)
	if !ok {
		return
	}

	split, err := h.reportService.GetCategorySalesSplit(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, split)
}

// FulfillmentSplit godoc
// @Summary  Sales split by shipping versus pickup
// @Tags     reports
// @Router   /admin/reports/sales/fulfillment [get]
func (h *ReportHandler) FulfillmentSplit(c *gin.Context) {
	filter, ok := h.bindSalesFilter(c)
	if !ok {
		return
	}

	split, err := h.reportService.GetFulfillmentSplit(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, split)
}

// CouponUsage godoc
// @Summary  Coupon redemption stats for a date range
// @Tags     reports
// @Router   /admin/reports/coupons [get]
func (h *ReportHandler) CouponUsage(c *gin.Context) {
	filter, ok := h.bindSalesFilter(c)
	if !ok {
		return
	}

	usage, err := h.reportService.GetCouponUsage(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, usage)
}

// LowStock godoc
// @Summary  Products at or below their low stock threshold
// @Tags     reports
// @Router   /admin/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *gin.Context) {
	items, err := h.reportService.GetLowStockItems(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// PickupManifest godoc
// @Summary  Pickup manifest for a location and date
// @Tags     reports
// @Router   /admin/reports/pickup-manifest [get]
func (h *ReportHandler) PickupManifest(c *gin.Context) {
	locationID, err := parseUUIDQuery(c, "location_id")
	if err != nil {
		h.BadRequest(c, "Invalid location_id")
		return
	}

	date := c.Query("date")
	if date == "" {
		h.BadRequest(c, "Missing date query parameter")
		return
	}

	manifest, err := h.reportService.GetPickupManifest(c.Request.Context(), locationID, date)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, manifest)
}

// CategoryPie godoc
// @Summary  Category sales as pie chart slices
// @Tags     reports
// @Router   /admin/reports/charts/categories [get]
func (h *ReportHandler) CategoryPie(c *gin.Context) {
	filter, ok := h.bindSalesFilter(c)
	if !ok {
		return
	}

	slices, err := h.reportService.GetCategorySalesPie(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, slices)
}

// FulfillmentPie godoc
// @Summary  Fulfillment split as pie chart slices
// @Tags     reports
// @Router   /admin/reports/charts/fulfillment [get]
func (h *ReportHandler) FulfillmentPie(c *gin.Context) {
	filter, ok := h.bindSalesFilter(c)
	if !ok {
		return
	}

	slices, err := h.reportService.GetFulfillmentPie(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, slices)
}

// TopProductsBar godoc
// @Summary  Top products as scaled bar chart geometry
// @Tags     reports
// @Router   /admin/reports/charts/products [get]
func (h *ReportHandler) TopProductsBar(c *gin.Context) {
	filter, ok := h.bindSalesFilter(c)
	if !ok {
		return
	}

	var chart reportapp.ChartRequest
	if err := c.ShouldBindQuery(&chart); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bars, err := h.reportService.GetTopProductsBarChart(c.Request.Context(), filter, chart)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bars)
}

// DailySalesLine godoc
// @Summary  Daily sales as scaled line chart points
// @Tags     reports
// @Router   /admin/reports/charts/daily [get]
func (h *ReportHandler) DailySalesLine(c *gin.Context) {
	filter, ok := h.bindSalesFilter(c)
	if !ok {
		return
	}

	var chart reportapp.ChartRequest
	if err := c.ShouldBindQuery(&chart); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	points, err := h.reportService.GetDailySalesLineChart(c.Request.Context(), filter, chart)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, points)
}

// RollupRequest selects the day or range to re-aggregate
type RollupRequest struct {
	Date     string `json:"date" binding:"omitempty,len=10"`
	FromDate string `json:"from_date" binding:"omitempty,len=10"`
	ToDate   string `json:"to_date" binding:"omitempty,len=10"`
}

// TriggerRollup godoc
// @Summary  Re-run the daily sales rollup for a day or range
// @Tags     reports
// @Router   /admin/reports/rollup [post]
func (h *ReportHandler) TriggerRollup(c *gin.Context) {
	var req RollupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	switch {
	case req.FromDate != "" && req.ToDate != "":
		from, err := time.Parse("2006-01-02", req.FromDate)
		if err != nil {
			h.BadRequest(c, "Invalid from_date")
			return
		}
		to, err := time.Parse("2006-01-02", req.ToDate)
		if err != nil {
			h.BadRequest(c, "Invalid to_date")
			return
		}
		if err := h.aggregationService.RollupRange(ctx, from, to); err != nil {
			h.HandleError(c, err)
			return
		}
	case req.Date != "":
		day, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			h.BadRequest(c, "Invalid date")
			return
		}
		if err := h.aggregationService.RollupDay(ctx, day); err != nil {
			h.HandleError(c, err)
			return
		}
	default:
		if err := h.aggregationService.RollupYesterday(ctx); err != nil {
			h.HandleError(c, err)
			return
		}
	}

	h.Success(c, gin.H{"status": "completed"})
}

// SchedulerStatus godoc
// @Summary  Current state of the rollup cron scheduler
// @Tags     reports
// @Router   /admin/reports/scheduler [get]
func (h *ReportHandler) SchedulerStatus(c *gin.Context) {
	if h.scheduler == nil {
		h.Success(c, gin.H{"enabled": false})
		return
	}

	h.Success(c, h.scheduler.GetStatus())
}

// TriggerScheduledRun godoc
// @Summary  Fire the scheduled rollup job immediately
// @Tags     reports
// @Router   /admin/reports/scheduler/run [post]
func (h *ReportHandler) TriggerScheduledRun(c *gin.Context) {
	if h.scheduler == nil {
		h.ErrorWithCode(c, "INVALID_STATE", "Rollup scheduler is disabled")
		return
	}

	if err := h.scheduler.TriggerManualRun(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"status": "triggered"})
}
