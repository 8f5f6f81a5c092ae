package persistence

import (
	"context"
	"time"

	"github.com/nursery/backend/internal/domain/report"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRollupRepository implements RollupRepository using GORM
type GormRollupRepository struct {
	db *gorm.DB
}

// NewGormRollupRepository creates a new GormRollupRepository
func NewGormRollupRepository(db *gorm.DB) *GormRollupRepository {
	return &GormRollupRepository{db: db}
}

// Upsert writes or replaces the rollup for its date
// Re-running the nightly job for a day overwrites the previous row
func (r *GormRollupRepository) Upsert(ctx context.Context, rollup *report.DailySalesRollup) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"order_count",
				"items_sold",
				"gross_sales",
				"discount_total",
				"shipping_total",
				"net_sales",
				"pickup_count",
				"updated_at",
			}),
		}).
		Create(rollup).Error
}

// FindRange returns rollups between two dates inclusive
func (r *GormRollupRepository) FindRange(ctx context.Context, from, to time.Time) ([]report.DailySalesRollup, error) {
	var rollups []report.DailySalesRollup
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date ASC").
		Find(&rollups).Error; err != nil {
		return nil, err
	}
	return rollups, nil
}

// Ensure GormRollupRepository implements RollupRepository
var _ report.RollupRepository = (*GormRollupRepository)(nil)
