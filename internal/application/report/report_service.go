package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/report"
	"github.com/shopspring/decimal"
)

// ReportService provides application-level report operations
// Summary and ranking queries hit the order tables directly, the daily
// series reads from the pre-aggregated rollup rows
type ReportService struct {
	salesRepo  report.SalesReportRepository
	rollupRepo report.RollupRepository
}

// NewReportService creates a new ReportService
func NewReportService(salesRepo report.SalesReportRepository, rollupRepo report.RollupRepository) *ReportService {
	return &ReportService{
		salesRepo:  salesRepo,
		rollupRepo: rollupRepo,
	}
}

// SalesReportFilter defines the request filter for sales reports
type SalesReportFilter struct {
	StartDate  time.Time  `form:"start_date" binding:"required" time_format:"2006-01-02"`
	EndDate    time.Time  `form:"end_date" binding:"required" time_format:"2006-01-02"`
	CategoryID *uuid.UUID `form:"category_id"`
	TopN       int        `form:"top_n"`
}

// SalesSummaryResponse represents the sales summary response
type SalesSummaryResponse struct {
	PeriodStart   time.Time `json:"period_start"`
	PeriodEnd     time.Time `json:"period_end"`
	TotalOrders   int64     `json:"total_orders"`
	TotalItems    int64     `json:"total_items"`
	GrossSales    float64   `json:"gross_sales"`
	DiscountTotal float64   `json:"discount_total"`
	ShippingTotal float64   `json:"shipping_total"`
	NetSales      float64   `json:"net_sales"`
	AvgOrderValue float64   `json:"avg_order_value"`
}

// DailySalesPointResponse represents one day in the sales series
type DailySalesPointResponse struct {
	Date        time.Time `json:"date"`
	OrderCount  int64     `json:"order_count"`
	ItemsSold   int64     `json:"items_sold"`
	NetSales    float64   `json:"net_sales"`
	PickupCount int64     `json:"pickup_count"`
}

// ProductSalesRankingResponse represents product sales ranking
type ProductSalesRankingResponse struct {
	Rank          int     `json:"rank"`
	ProductID     string  `json:"product_id"`
	ProductCode   string  `json:"product_code"`
	ProductName   string  `json:"product_name"`
	CategoryName  string  `json:"category_name,omitempty"`
	TotalQuantity int64   `json:"total_quantity"`
	TotalAmount   float64 `json:"total_amount"`
	OrderCount    int64   `json:"order_count"`
}

// CategorySalesSplitResponse represents sales grouped by category
type CategorySalesSplitResponse struct {
	CategoryID   string  `json:"category_id,omitempty"`
	CategoryName string  `json:"category_name"`
	TotalAmount  float64 `json:"total_amount"`
	Percentage   float64 `json:"percentage"`
}

// FulfillmentSplitResponse represents order volume by fulfillment method
type FulfillmentSplitResponse struct {
	Method     string  `json:"method"`
	OrderCount int64   `json:"order_count"`
	NetSales   float64 `json:"net_sales"`
}

// CouponUsageResponse represents redemption statistics per promotion
type CouponUsageResponse struct {
	PromotionID   string  `json:"promotion_id"`
	Name          string  `json:"name"`
	Code          string  `json:"code,omitempty"`
	Redemptions   int64   `json:"redemptions"`
	DiscountTotal float64 `json:"discount_total"`
}

// LowStockItemResponse represents a product at or below its restock threshold
type LowStockItemResponse struct {
	ProductID     string `json:"product_id"`
	ProductCode   string `json:"product_code"`
	ProductName   string `json:"product_name"`
	StockQuantity int    `json:"stock_quantity"`
	Threshold     int    `json:"threshold"`
	PendingAlerts int64  `json:"pending_alerts"`
}

// PickupManifestEntryResponse is one order on a day's pickup manifest
type PickupManifestEntryResponse struct {
	OrderID       string `json:"order_id"`
	OrderNumber   string `json:"order_number"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	ItemCount     int    `json:"item_count"`
	Status        string `json:"status"`
}

// ChartRequest defines viewport options for chart endpoints
type ChartRequest struct {
	Width  float64 `form:"width"`
	Height float64 `form:"height"`
}

// GetSalesSummary returns aggregated sales for the period
func (s *ReportService) GetSalesSummary(ctx context.Context, filter SalesReportFilter) (*SalesSummaryResponse, error) {
	summary, err := s.salesRepo.GetSalesSummary(s.toDomainFilter(filter))
	if err != nil {
		return nil, err
	}

	return &SalesSummaryResponse{
		PeriodStart:   summary.PeriodStart,
		PeriodEnd:     summary.PeriodEnd,
		TotalOrders:   summary.TotalOrders,
		TotalItems:    summary.TotalItems,
		GrossSales:    toFloat64(summary.GrossSales),
		DiscountTotal: toFloat64(summary.DiscountTotal),
		ShippingTotal: toFloat64(summary.ShippingTotal),
		NetSales:      toFloat64(summary.NetSales),
		AvgOrderValue: toFloat64(summary.AvgOrderValue),
	}, nil
}

// GetDailySalesSeries returns the daily sales series from the rollup rows
func (s *ReportService) GetDailySalesSeries(ctx context.Context, filter SalesReportFilter) ([]DailySalesPointResponse, error) {
	rollups, err := s.rollupRepo.FindRange(ctx, filter.StartDate, filter.EndDate)
	if err != nil {
		return nil, err
	}

	responses := make([]DailySalesPointResponse, len(rollups))
	for i, r := range rollups {
		responses[i] = DailySalesPointResponse{
			Date:        r.Date,
			OrderCount:  r.OrderCount,
			ItemsSold:   r.ItemsSold,
			NetSales:    toFloat64(r.NetSales),
			PickupCount: r.PickupCount,
		}
	}
	return responses, nil
}

// GetProductSalesRanking returns top products by sales amount
func (s *ReportService) GetProductSalesRanking(ctx context.Context, filter SalesReportFilter) ([]ProductSalesRankingResponse, error) {
	if filter.TopN <= 0 {
		filter.TopN = 10
	}

	rankings, err := s.salesRepo.GetProductSalesRanking(s.toDomainFilter(filter))
	if err != nil {
		return nil, err
	}

	responses := make([]ProductSalesRankingResponse, len(rankings))
	for i, r := range rankings {
		responses[i] = ProductSalesRankingResponse{
			Rank:          r.Rank,
			ProductID:     r.ProductID.String(),
			ProductCode:   r.ProductCode,
			ProductName:   r.ProductName,
			CategoryName:  r.CategoryName,
			TotalQuantity: r.TotalQuantity,
			TotalAmount:   toFloat64(r.TotalAmount),
			OrderCount:    r.OrderCount,
		}
	}
	return responses, nil
}

// GetCategorySalesSplit returns sales grouped by category
func (s *ReportService) GetCategorySalesSplit(ctx context.Context, filter SalesReportFilter) ([]CategorySalesSplitResponse, error) {
	splits, err := s.salesRepo.GetCategorySalesSplit(s.toDomainFilter(filter))
	if err != nil {
		return nil, err
	}

	responses := make([]CategorySalesSplitResponse, len(splits))
	for i, split := range splits {
		categoryID := ""
		if split.CategoryID != nil {
			categoryID = split.CategoryID.String()
		}
		responses[i] = CategorySalesSplitResponse{
			CategoryID:   categoryID,
			CategoryName: split.CategoryName,
			TotalAmount:  toFloat64(split.TotalAmount),
			Percentage:   toFloat64(split.Percentage),
		}
	}
	return responses, nil
}

// GetFulfillmentSplit returns order volume by fulfillment method
func (s *ReportService) GetFulfillmentSplit(ctx context.Context, filter SalesReportFilter) ([]FulfillmentSplitResponse, error) {
	splits, err := s.salesRepo.GetFulfillmentSplit(s.toDomainFilter(filter))
	if err != nil {
		return nil, err
	}

	responses := make([]FulfillmentSplitResponse, len(splits))
	for i, split := range splits {
		responses[i] = FulfillmentSplitResponse{
			Method:     split.Method,
			OrderCount: split.OrderCount,
			NetSales:   toFloat64(split.NetSales),
		}
	}
	return responses, nil
}

// GetCouponUsage returns redemption statistics per promotion
func (s *ReportService) GetCouponUsage(ctx context.Context, filter SalesReportFilter) ([]CouponUsageResponse, error) {
	usages, err := s.salesRepo.GetCouponUsage(s.toDomainFilter(filter))
	if err != nil {
		return nil, err
	}

	responses := make([]CouponUsageResponse, len(usages))
	for i, u := range usages {
		responses[i] = CouponUsageResponse{
			PromotionID:   u.PromotionID.String(),
			Name:          u.Name,
			Code:          u.Code,
			Redemptions:   u.Redemptions,
			DiscountTotal: toFloat64(u.DiscountTotal),
		}
	}
	return responses, nil
}

// GetLowStockItems returns products at or below their restock threshold
func (s *ReportService) GetLowStockItems(ctx context.Context) ([]LowStockItemResponse, error) {
	items, err := s.salesRepo.GetLowStockItems()
	if err != nil {
		return nil, err
	}

	responses := make([]LowStockItemResponse, len(items))
	for i, item := range items {
		responses[i] = LowStockItemResponse{
			ProductID:     item.ProductID.String(),
			ProductCode:   item.ProductCode,
			ProductName:   item.ProductName,
			StockQuantity: item.StockQuantity,
			Threshold:     item.Threshold,
			PendingAlerts: item.PendingAlerts,
		}
	}
	return responses, nil
}

// GetPickupManifest returns the pickup manifest for a location and date
func (s *ReportService) GetPickupManifest(ctx context.Context, locationID uuid.UUID, date string) ([]PickupManifestEntryResponse, error) {
	entries, err := s.salesRepo.GetPickupManifest(locationID, date)
	if err != nil {
		return nil, err
	}

	responses := make([]PickupManifestEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = PickupManifestEntryResponse{
			OrderID:       e.OrderID.String(),
			OrderNumber:   e.OrderNumber,
			CustomerName:  e.CustomerName,
			CustomerEmail: e.CustomerEmail,
			StartTime:     e.StartTime,
			EndTime:       e.EndTime,
			ItemCount:     e.ItemCount,
			Status:        e.Status,
		}
	}
	return responses, nil
}

// GetCategorySalesPie returns category split as pie chart geometry
func (s *ReportService) GetCategorySalesPie(ctx context.Context, filter SalesReportFilter) ([]report.PieSlice, error) {
	splits, err := s.salesRepo.GetCategorySalesSplit(s.toDomainFilter(filter))
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(splits))
	values := make([]float64, len(splits))
	for i, split := range splits {
		labels[i] = split.CategoryName
		values[i] = toFloat64(split.TotalAmount)
	}
	return report.PieChart(labels, values), nil
}

// GetFulfillmentPie returns the fulfillment split as pie chart geometry
func (s *ReportService) GetFulfillmentPie(ctx context.Context, filter SalesReportFilter) ([]report.PieSlice, error) {
	splits, err := s.salesRepo.GetFulfillmentSplit(s.toDomainFilter(filter))
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(splits))
	values := make([]float64, len(splits))
	for i, split := range splits {
		labels[i] = split.Method
		values[i] = float64(split.OrderCount)
	}
	return report.PieChart(labels, values), nil
}

// GetTopProductsBarChart returns the product ranking as bar chart geometry
func (s *ReportService) GetTopProductsBarChart(ctx context.Context, filter SalesReportFilter, chart ChartRequest) ([]report.Bar, error) {
	if chart.Height <= 0 {
		chart.Height = 100
	}

	rankings, err := s.GetProductSalesRanking(ctx, filter)
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(rankings))
	values := make([]float64, len(rankings))
	for i, r := range rankings {
		labels[i] = r.ProductCode
		values[i] = r.TotalAmount
	}
	return report.BarChart(labels, values, chart.Height), nil
}

// GetDailySalesLineChart returns the daily net sales series as polyline geometry
func (s *ReportService) GetDailySalesLineChart(ctx context.Context, filter SalesReportFilter, chart ChartRequest) ([]report.LinePoint, error) {
	if chart.Width <= 0 {
		chart.Width = 600
	}
	if chart.Height <= 0 {
		chart.Height = 200
	}

	series, err := s.GetDailySalesSeries(ctx, filter)
	if err != nil {
		return nil, err
	}

	values := make([]float64, len(series))
	for i, point := range series {
		values[i] = point.NetSales
	}
	return report.LineChart(values, chart.Width, chart.Height), nil
}

func (s *ReportService) toDomainFilter(filter SalesReportFilter) report.SalesReportFilter {
	return report.SalesReportFilter{
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		CategoryID: filter.CategoryID,
		TopN:       filter.TopN,
	}
}

func toFloat64(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
