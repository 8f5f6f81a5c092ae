package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// Common allowed sort fields for entities with base fields
// These are the common fields present in most entities

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":                  true,
	"created_at":          true,
	"updated_at":          true,
	"code":                true,
	"name":                true,
	"category_id":         true,
	"status":              true,
	"price":               true,
	"sale_value":          true,
	"stock_quantity":      true,
	"low_stock_threshold": true,
	"featured":            true,
	"sort_order":          true,
}

// CategorySortFields contains allowed sort fields for categories
var CategorySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"slug":       true,
	"name":       true,
	"parent_id":  true,
	"sort_order": true,
}

// StockAlertSortFields contains allowed sort fields for stock alerts
var StockAlertSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"product_id":  true,
	"email":       true,
	"status":      true,
	"notified_at": true,
}

// PromotionSortFields contains allowed sort fields for promotions
var PromotionSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"active":     true,
	"starts_at":  true,
	"ends_at":    true,
	"priority":   true,
}

// ShippingZoneSortFields contains allowed sort fields for shipping zones
var ShippingZoneSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"state_code": true,
	"status":     true,
}

// CarrierServiceSortFields contains allowed sort fields for carrier services
var CarrierServiceSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"carrier":      true,
	"service_code": true,
	"service_name": true,
	"level":        true,
	"active":       true,
	"base_rate":    true,
}

// PickupLocationSortFields contains allowed sort fields for pickup locations
var PickupLocationSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"active":     true,
}

// PickupScheduleSortFields contains allowed sort fields for pickup schedules
var PickupScheduleSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"location_id": true,
	"kind":        true,
	"day_of_week": true,
	"date":        true,
	"start_time":  true,
	"capacity":    true,
	"active":      true,
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"order_number":   true,
	"customer_name":  true,
	"customer_email": true,
	"status":         true,
	"fulfillment":    true,
	"pickup_date":    true,
	"subtotal":       true,
	"total":          true,
	"paid_at":        true,
	"shipped_at":     true,
	"completed_at":   true,
}

// EmailTemplateSortFields contains allowed sort fields for email templates
var EmailTemplateSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"kind":       true,
	"name":       true,
	"subject":    true,
	"active":     true,
}

// RollupSortFields contains allowed sort fields for daily sales rollups
var RollupSortFields = map[string]bool{
	"date":        true,
	"order_count": true,
	"net_sales":   true,
}
