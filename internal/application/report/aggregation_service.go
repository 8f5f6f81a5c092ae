package report

import (
	"context"
	"time"

	"github.com/nursery/backend/internal/domain/report"
	"github.com/nursery/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AggregationService computes the daily sales rollups
// The nightly job calls RollupYesterday, RollupRange backfills after
// downtime or data fixes
type AggregationService struct {
	salesRepo  report.SalesReportRepository
	rollupRepo report.RollupRepository
	logger     *zap.Logger
}

// NewAggregationService creates a new AggregationService
func NewAggregationService(
	salesRepo report.SalesReportRepository,
	rollupRepo report.RollupRepository,
	logger *zap.Logger,
) *AggregationService {
	return &AggregationService{
		salesRepo:  salesRepo,
		rollupRepo: rollupRepo,
		logger:     logger,
	}
}

// RollupDay computes and stores the rollup for a single calendar day
func (s *AggregationService) RollupDay(ctx context.Context, date time.Time) error {
	day := truncateToDay(date)
	filter := report.SalesReportFilter{
		StartDate: day,
		EndDate:   day.AddDate(0, 0, 1),
	}

	summary, err := s.salesRepo.GetSalesSummary(filter)
	if err != nil {
		return err
	}

	rollup := &report.DailySalesRollup{
		BaseEntity:    shared.NewBaseEntity(),
		Date:          day,
		OrderCount:    summary.TotalOrders,
		ItemsSold:     summary.TotalItems,
		GrossSales:    summary.GrossSales,
		DiscountTotal: summary.DiscountTotal,
		ShippingTotal: summary.ShippingTotal,
		NetSales:      summary.NetSales,
	}

	// The summary has no fulfillment breakdown, the series query does
	series, err := s.salesRepo.GetDailySalesSeries(filter)
	if err != nil {
		return err
	}
	for _, point := range series {
		if truncateToDay(point.Date).Equal(day) {
			rollup.PickupCount = point.PickupCount
		}
	}

	if err := s.rollupRepo.Upsert(ctx, rollup); err != nil {
		return err
	}

	s.logger.Info("daily sales rollup stored",
		zap.String("date", day.Format("2006-01-02")),
		zap.Int64("orders", rollup.OrderCount),
		zap.String("net_sales", rollup.NetSales.StringFixed(2)),
	)
	return nil
}

// RollupYesterday rolls up the previous calendar day
func (s *AggregationService) RollupYesterday(ctx context.Context) error {
	return s.RollupDay(ctx, time.Now().AddDate(0, 0, -1))
}

// RollupRange recomputes rollups for every day between from and to inclusive
func (s *AggregationService) RollupRange(ctx context.Context, from, to time.Time) error {
	from = truncateToDay(from)
	to = truncateToDay(to)
	if to.Before(from) {
		return shared.NewDomainError("INVALID_RANGE", "End date must not be before start date")
	}

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if err := s.RollupDay(ctx, day); err != nil {
			s.logger.Error("failed to roll up day",
				zap.String("date", day.Format("2006-01-02")),
				zap.Error(err),
			)
			return err
		}
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
