package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesSummary provides aggregated sales statistics
// This is a CQRS read model optimized for querying
type SalesSummary struct {
	PeriodStart   time.Time       `json:"period_start"`
	PeriodEnd     time.Time       `json:"period_end"`
	TotalOrders   int64           `json:"total_orders"`
	TotalItems    int64           `json:"total_items"`
	GrossSales    decimal.Decimal `json:"gross_sales"` // before discounts
	DiscountTotal decimal.Decimal `json:"discount_total"`
	ShippingTotal decimal.Decimal `json:"shipping_total"`
	NetSales      decimal.Decimal `json:"net_sales"` // GrossSales - DiscountTotal + ShippingTotal
	AvgOrderValue decimal.Decimal `json:"avg_order_value"`
}

// DailySalesPoint represents one day in the sales series
type DailySalesPoint struct {
	Date        time.Time       `json:"date"`
	OrderCount  int64           `json:"order_count"`
	ItemsSold   int64           `json:"items_sold"`
	NetSales    decimal.Decimal `json:"net_sales"`
	PickupCount int64           `json:"pickup_count"`
}

// ProductSalesRanking represents product sales ranking
type ProductSalesRanking struct {
	Rank          int             `json:"rank"`
	ProductID     uuid.UUID       `json:"product_id"`
	ProductCode   string          `json:"product_code"`
	ProductName   string          `json:"product_name"`
	CategoryName  string          `json:"category_name,omitempty"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	OrderCount    int64           `json:"order_count"`
}

// CategorySalesSplit represents sales grouped by category
type CategorySalesSplit struct {
	CategoryID   *uuid.UUID      `json:"category_id,omitempty"`
	CategoryName string          `json:"category_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Percentage   decimal.Decimal `json:"percentage"` // Percentage of net sales
}

// FulfillmentSplit represents order volume by fulfillment method
type FulfillmentSplit struct {
	Method     string          `json:"method"`
	OrderCount int64           `json:"order_count"`
	NetSales   decimal.Decimal `json:"net_sales"`
}

// CouponUsage represents redemption statistics per promotion
type CouponUsage struct {
	PromotionID   uuid.UUID       `json:"promotion_id"`
	Name          string          `json:"name"`
	Code          string          `json:"code,omitempty"`
	Redemptions   int64           `json:"redemptions"`
	DiscountTotal decimal.Decimal `json:"discount_total"`
}

// LowStockItem represents a product at or below its restock threshold
type LowStockItem struct {
	ProductID     uuid.UUID `json:"product_id"`
	ProductCode   string    `json:"product_code"`
	ProductName   string    `json:"product_name"`
	StockQuantity int       `json:"stock_quantity"`
	Threshold     int       `json:"threshold"`
	PendingAlerts int64     `json:"pending_alerts"` // back-in-stock subscriptions waiting
}

// PickupManifestEntry is one order on a day's pickup manifest
type PickupManifestEntry struct {
	OrderID       uuid.UUID `json:"order_id"`
	OrderNumber   string    `json:"order_number"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	ItemCount     int       `json:"item_count"`
	Status        string    `json:"status"`
}

// SalesReportFilter defines filtering options for sales reports
type SalesReportFilter struct {
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	TopN       int        `json:"top_n,omitempty"` // For rankings
}

// SalesReportRepository defines the interface for sales report queries
type SalesReportRepository interface {
	// GetSalesSummary returns aggregated sales summary for the period
	GetSalesSummary(filter SalesReportFilter) (*SalesSummary, error)

	// GetDailySalesSeries returns the daily sales series
	GetDailySalesSeries(filter SalesReportFilter) ([]DailySalesPoint, error)

	// GetProductSalesRanking returns top N products by sales
	GetProductSalesRanking(filter SalesReportFilter) ([]ProductSalesRanking, error)

	// GetCategorySalesSplit returns sales grouped by category
	GetCategorySalesSplit(filter SalesReportFilter) ([]CategorySalesSplit, error)

	// GetFulfillmentSplit returns order volume by fulfillment method
	GetFulfillmentSplit(filter SalesReportFilter) ([]FulfillmentSplit, error)

	// GetCouponUsage returns redemption statistics per promotion
	GetCouponUsage(filter SalesReportFilter) ([]CouponUsage, error)

	// GetLowStockItems returns products at or below their restock threshold
	GetLowStockItems() ([]LowStockItem, error)

	// GetPickupManifest returns the pickup manifest for a location and date
	GetPickupManifest(locationID uuid.UUID, date string) ([]PickupManifestEntry, error)
}
