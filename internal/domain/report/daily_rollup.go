package report

import (
	"context"
	"time"

	"github.com/nursery/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DailySalesRollup is a pre-aggregated row written by the nightly job
// Dashboard series read from these rows instead of scanning orders
type DailySalesRollup struct {
	shared.BaseEntity
	Date          time.Time       `gorm:"type:date;not null;uniqueIndex"`
	OrderCount    int64           `gorm:"not null;default:0"`
	ItemsSold     int64           `gorm:"not null;default:0"`
	GrossSales    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountTotal decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingTotal decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	NetSales      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PickupCount   int64           `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (DailySalesRollup) TableName() string {
	return "daily_sales_rollups"
}

// RollupRepository defines the interface for rollup persistence
type RollupRepository interface {
	// Upsert writes or replaces the rollup for its date
	Upsert(ctx context.Context, rollup *DailySalesRollup) error

	// FindRange returns rollups between two dates inclusive
	FindRange(ctx context.Context, from, to time.Time) ([]DailySalesRollup, error)
}
