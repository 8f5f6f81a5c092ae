package persistence

import (
	"time"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/report"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// salesStatuses are the order statuses counted as realized sales.
// Pending orders have no recorded payment and cancelled orders are excluded
var salesStatuses = []string{"paid", "processing", "ready", "shipped", "completed"}

// GormSalesReportRepository implements SalesReportRepository using GORM
type GormSalesReportRepository struct {
	db *gorm.DB
}

// NewGormSalesReportRepository creates a new GormSalesReportRepository
func NewGormSalesReportRepository(db *gorm.DB) *GormSalesReportRepository {
	return &GormSalesReportRepository{db: db}
}

// GetSalesSummary returns aggregated sales summary for the period
func (r *GormSalesReportRepository) GetSalesSummary(filter report.SalesReportFilter) (*report.SalesSummary, error) {
	type summaryResult struct {
		TotalOrders   int64
		TotalItems    int64
		GrossSales    decimal.Decimal
		DiscountTotal decimal.Decimal
		ShippingTotal decimal.Decimal
		NetSales      decimal.Decimal
	}

	var result summaryResult

	// An items join would double-count order-level amounts, so
	// order-level figures and item counts are aggregated separately
	err := r.db.Table("orders o").
		Select(`
			COUNT(o.id) as total_orders,
			COALESCE(SUM(o.subtotal), 0) as gross_sales,
			COALESCE(SUM(o.discount_total), 0) as discount_total,
			COALESCE(SUM(o.shipping_fee), 0) as shipping_total,
			COALESCE(SUM(o.total), 0) as net_sales
		`).
		Where("o.created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("o.status IN ?", salesStatuses).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	var totalItems struct{ TotalItems int64 }
	err = r.db.Table("order_items oi").
		Select("COALESCE(SUM(oi.quantity), 0) as total_items").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("o.status IN ?", salesStatuses).
		Scan(&totalItems).Error
	if err != nil {
		return nil, err
	}

	var avgOrderValue decimal.Decimal
	if result.TotalOrders > 0 {
		avgOrderValue = result.NetSales.Div(decimal.NewFromInt(result.TotalOrders)).Round(2)
	}

	return &report.SalesSummary{
		PeriodStart:   filter.StartDate,
		PeriodEnd:     filter.EndDate,
		TotalOrders:   result.TotalOrders,
		TotalItems:    totalItems.TotalItems,
		GrossSales:    result.GrossSales,
		DiscountTotal: result.DiscountTotal,
		ShippingTotal: result.ShippingTotal,
		NetSales:      result.NetSales,
		AvgOrderValue: avgOrderValue,
	}, nil
}

// GetDailySalesSeries returns the daily sales series
func (r *GormSalesReportRepository) GetDailySalesSeries(filter report.SalesReportFilter) ([]report.DailySalesPoint, error) {
	type dailyResult struct {
		Date        time.Time
		OrderCount  int64
		NetSales    decimal.Decimal
		PickupCount int64
	}

	var results []dailyResult

	err := r.db.Table("orders o").
		Select(`
			DATE(o.created_at) as date,
			COUNT(o.id) as order_count,
			COALESCE(SUM(o.total), 0) as net_sales,
			COUNT(o.id) FILTER (WHERE o.fulfillment = 'pickup') as pickup_count
		`).
		Where("o.created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("o.status IN ?", salesStatuses).
		Group("DATE(o.created_at)").
		Order("date ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	type itemsResult struct {
		Date      time.Time
		ItemsSold int64
	}
	var itemRows []itemsResult
	err = r.db.Table("order_items oi").
		Select(`
			DATE(o.created_at) as date,
			COALESCE(SUM(oi.quantity), 0) as items_sold
		`).
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("o.status IN ?", salesStatuses).
		Group("DATE(o.created_at)").
		Scan(&itemRows).Error
	if err != nil {
		return nil, err
	}

	itemsByDate := make(map[string]int64, len(itemRows))
	for _, row := range itemRows {
		itemsByDate[row.Date.Format("2006-01-02")] = row.ItemsSold
	}

	points := make([]report.DailySalesPoint, len(results))
	for i, row := range results {
		points[i] = report.DailySalesPoint{
			Date:        row.Date,
			OrderCount:  row.OrderCount,
			ItemsSold:   itemsByDate[row.Date.Format("2006-01-02")],
			NetSales:    row.NetSales,
			PickupCount: row.PickupCount,
		}
	}

	return points, nil
}

// GetProductSalesRanking returns top N products by sales
func (r *GormSalesReportRepository) GetProductSalesRanking(filter report.SalesReportFilter) ([]report.ProductSalesRanking, error) {
	type rankingResult struct {
		ProductID     uuid.UUID
		ProductCode   string
		ProductName   string
		CategoryName  string
		TotalQuantity int64
		TotalAmount   decimal.Decimal
		OrderCount    int64
	}

	var results []rankingResult

	topN := filter.TopN
	if topN <= 0 {
		topN = 10
	}

	query := r.db.Table("order_items oi").
		Select(`
			oi.product_id,
			oi.product_code,
			oi.product_name,
			COALESCE(c.name, '') as category_name,
			COALESCE(SUM(oi.quantity), 0) as total_quantity,
			COALESCE(SUM(oi.amount), 0) as total_amount,
			COUNT(DISTINCT o.id) as order_count
		`).
		Joins("JOIN orders o ON o.id = oi.order_id").
		Joins("LEFT JOIN products p ON p.id = oi.product_id").
		Joins("LEFT JOIN categories c ON c.id = p.category_id").
		Where("o.created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("o.status IN ?", salesStatuses).
		Group("oi.product_id, oi.product_code, oi.product_name, c.name").
		Order("total_amount DESC").
		Limit(topN)

	if filter.CategoryID != nil {
		query = query.Where("p.category_id = ?", *filter.CategoryID)
	}

	if err := query.Scan(&results).Error; err != nil {
		return nil, err
	}

	rankings := make([]report.ProductSalesRanking, len(results))
	for i, row := range results {
		rankings[i] = report.ProductSalesRanking{
			Rank:          i + 1,
			ProductID:     row.ProductID,
			ProductCode:   row.ProductCode,
			ProductName:   row.ProductName,
			CategoryName:  row.CategoryName,
			TotalQuantity: row.TotalQuantity,
			TotalAmount:   row.TotalAmount,
			OrderCount:    row.OrderCount,
		}
	}

	return rankings, nil
}

// GetCategorySalesSplit returns sales grouped by category
// Products without a category fall into an "Uncategorized" bucket
func (r *GormSalesReportRepository) GetCategorySalesSplit(filter report.SalesReportFilter) ([]report.CategorySalesSplit, error) {
	type splitResult struct {
		CategoryID   *uuid.UUID
		CategoryName string
		TotalAmount  decimal.Decimal
	}

	var results []splitResult

	err := r.db.Table("order_items oi").
		Select(`
			p.category_id,
			COALESCE(c.name, 'Uncategorized') as category_name,
			COALESCE(SUM(oi.amount), 0) as total_amount
		`).
		Joins("JOIN orders o ON o.id = oi.order_id").
		Joins("LEFT JOIN products p ON p.id = oi.product_id").
		Joins("LEFT JOIN categories c ON c.id = p.category_id").
		Where("o.created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("o.status IN ?", salesStatuses).
		Group("p.category_id, c.name").
		Order("total_amount DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, row := range results {
		total = total.Add(row.TotalAmount)
	}

	splits := make([]report.CategorySalesSplit, len(results))
	for i, row := range results {
		var percentage decimal.Decimal
		if !total.IsZero() {
			percentage = row.TotalAmount.Div(total).Mul(decimal.NewFromInt(100)).Round(2)
		}
		splits[i] = report.CategorySalesSplit{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			TotalAmount:  row.TotalAmount,
			Percentage:   percentage,
		}
	}

	return splits, nil
}

// GetFulfillmentSplit returns order volume by fulfillment method
func (r *GormSalesReportRepository) GetFulfillmentSplit(filter report.SalesReportFilter) ([]report.FulfillmentSplit, error) {
	type splitResult struct {
		Method     string
		OrderCount int64
		NetSales   decimal.Decimal
	}

	var results []splitResult

	err := r.db.Table("orders o").
		Select(`
			o.fulfillment as method,
			COUNT(o.id) as order_count,
			COALESCE(SUM(o.total), 0) as net_sales
		`).
		Where("o.created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("o.status IN ?", salesStatuses).
		Group("o.fulfillment").
		Order("order_count DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	splits := make([]report.FulfillmentSplit, len(results))
	for i, row := range results {
		splits[i] = report.FulfillmentSplit{
			Method:     row.Method,
			OrderCount: row.OrderCount,
			NetSales:   row.NetSales,
		}
	}

	return splits, nil
}

// GetCouponUsage returns redemption statistics per promotion
func (r *GormSalesReportRepository) GetCouponUsage(filter report.SalesReportFilter) ([]report.CouponUsage, error) {
	type usageResult struct {
		PromotionID   uuid.UUID
		Name          string
		Code          string
		Redemptions   int64
		DiscountTotal decimal.Decimal
	}

	var results []usageResult

	err := r.db.Table("applied_promotion_snapshots aps").
		Select(`
			aps.promotion_id,
			MAX(aps.name) as name,
			MAX(aps.code) as code,
			COUNT(aps.id) as redemptions,
			COALESCE(SUM(aps.discount), 0) as discount_total
		`).
		Joins("JOIN orders o ON o.id = aps.order_id").
		Where("o.created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("o.status IN ?", salesStatuses).
		Group("aps.promotion_id").
		Order("redemptions DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	usages := make([]report.CouponUsage, len(results))
	for i, row := range results {
		usages[i] = report.CouponUsage{
			PromotionID:   row.PromotionID,
			Name:          row.Name,
			Code:          row.Code,
			Redemptions:   row.Redemptions,
			DiscountTotal: row.DiscountTotal,
		}
	}

	return usages, nil
}

// GetLowStockItems returns products at or below their restock threshold
func (r *GormSalesReportRepository) GetLowStockItems() ([]report.LowStockItem, error) {
	type lowStockResult struct {
		ProductID     uuid.UUID
		ProductCode   string
		ProductName   string
		StockQuantity int
		Threshold     int
		PendingAlerts int64
	}

	var results []lowStockResult

	err := r.db.Table("products p").
		Select(`
			p.id as product_id,
			p.code as product_code,
			p.name as product_name,
			p.stock_quantity,
			p.low_stock_threshold as threshold,
			COUNT(sa.id) FILTER (WHERE sa.status = 'pending') as pending_alerts
		`).
		Joins("LEFT JOIN stock_alerts sa ON sa.product_id = p.id").
		Where("p.low_stock_threshold > 0 AND p.stock_quantity <= p.low_stock_threshold").
		Where("p.status != ?", "discontinued").
		Group("p.id, p.code, p.name, p.stock_quantity, p.low_stock_threshold").
		Order("p.stock_quantity ASC, p.name ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	items := make([]report.LowStockItem, len(results))
	for i, row := range results {
		items[i] = report.LowStockItem{
			ProductID:     row.ProductID,
			ProductCode:   row.ProductCode,
			ProductName:   row.ProductName,
			StockQuantity: row.StockQuantity,
			Threshold:     row.Threshold,
			PendingAlerts: row.PendingAlerts,
		}
	}

	return items, nil
}

// GetPickupManifest returns the pickup manifest for a location and date
func (r *GormSalesReportRepository) GetPickupManifest(locationID uuid.UUID, date string) ([]report.PickupManifestEntry, error) {
	type manifestResult struct {
		OrderID       uuid.UUID
		OrderNumber   string
		CustomerName  string
		CustomerEmail string
		StartTime     string
		EndTime       string
		ItemCount     int
		Status        string
	}

	var results []manifestResult

	err := r.db.Table("orders o").
		Select(`
			o.id as order_id,
			o.order_number,
			o.customer_name,
			o.customer_email,
			COALESCE(ps.start_time, '') as start_time,
			COALESCE(ps.end_time, '') as end_time,
			COALESCE(SUM(oi.quantity), 0) as item_count,
			o.status
		`).
		Joins("LEFT JOIN order_items oi ON oi.order_id = o.id").
		Joins("LEFT JOIN pickup_schedules ps ON ps.id = o.pickup_schedule_id").
		Where("o.fulfillment = ? AND o.pickup_location_id = ? AND o.pickup_date = ?", "pickup", locationID, date).
		Where("o.status != ?", "cancelled").
		Group("o.id, o.order_number, o.customer_name, o.customer_email, ps.start_time, ps.end_time, o.status").
		Order("start_time ASC, o.order_number ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	entries := make([]report.PickupManifestEntry, len(results))
	for i, row := range results {
		entries[i] = report.PickupManifestEntry{
			OrderID:       row.OrderID,
			OrderNumber:   row.OrderNumber,
			CustomerName:  row.CustomerName,
			CustomerEmail: row.CustomerEmail,
			StartTime:     row.StartTime,
			EndTime:       row.EndTime,
			ItemCount:     row.ItemCount,
			Status:        row.Status,
		}
	}

	return entries, nil
}

// Ensure GormSalesReportRepository implements SalesReportRepository
var _ report.SalesReportRepository = (*GormSalesReportRepository)(nil)
