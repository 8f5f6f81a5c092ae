package shipping

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShippingZone(t *testing.T) {
	t.Run("normalizes state code", func(t *testing.T) {
		zone, err := NewShippingZone(" ca ", "California", ZoneConditional)
		require.NoError(t, err)
		assert.Equal(t, "CA", zone.StateCode)
	})

	t.Run("rejects malformed state code", func(t *testing.T) {
		_, err := NewShippingZone("CAL", "California", ZoneAllowed)
		require.Error(t, err)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := NewShippingZone("CA", "California", ZoneStatus("maybe"))
		require.Error(t, err)
	})
}

func TestSeasonalWindow(t *testing.T) {
	zone, err := NewShippingZone("MN", "Minnesota", ZoneConditional)
	require.NoError(t, err)

	t.Run("requires conditional status", func(t *testing.T) {
		allowed, err := NewShippingZone("OR", "Oregon", ZoneAllowed)
		require.NoError(t, err)
		require.Error(t, allowed.SetSeasonalWindow("04-01", "10-31"))
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		require.Error(t, zone.SetSeasonalWindow("13-01", "10-31"))
		require.Error(t, zone.SetSeasonalWindow("04-01", "10-32"))
	})

	t.Run("plain window covers interior dates only", func(t *testing.T) {
		require.NoError(t, zone.SetSeasonalWindow("04-01", "10-31"))

		assert.True(t, zone.InSeason(time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)))
		assert.True(t, zone.InSeason(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))
		assert.True(t, zone.InSeason(time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC)))
		assert.False(t, zone.InSeason(time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)))
		assert.False(t, zone.InSeason(time.Date(2026, 12, 5, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("window wrapping the year end", func(t *testing.T) {
		require.NoError(t, zone.SetSeasonalWindow("10-01", "04-30"))

		assert.True(t, zone.InSeason(time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)))
		assert.True(t, zone.InSeason(time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)))
		assert.True(t, zone.InSeason(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)))
		assert.True(t, zone.InSeason(time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)))
		assert.False(t, zone.InSeason(time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("no window means always in season", func(t *testing.T) {
		fresh, err := NewShippingZone("WI", "Wisconsin", ZoneConditional)
		require.NoError(t, err)
		assert.True(t, fresh.InSeason(time.Now()))
	})
}

func TestZoneEvaluate(t *testing.T) {
	now := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)

	t.Run("allowed zone passes", func(t *testing.T) {
		zone, err := NewShippingZone("OR", "Oregon", ZoneAllowed)
		require.NoError(t, err)
		assert.NoError(t, zone.Evaluate(now, ServiceLevelStandard))
	})

	t.Run("blocked zone rejects", func(t *testing.T) {
		zone, err := NewShippingZone("HI", "Hawaii", ZoneBlocked)
		require.NoError(t, err)
		err = zone.Evaluate(now, ServiceLevelOvernight)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not available")
	})

	t.Run("conditional zone out of season rejects", func(t *testing.T) {
		zone, err := NewShippingZone("AZ", "Arizona", ZoneConditional)
		require.NoError(t, err)
		require.NoError(t, zone.SetSeasonalWindow("10-01", "04-30"))
		require.Error(t, zone.Evaluate(now, ServiceLevelStandard))
	})

	t.Run("conditional zone enforces service level", func(t *testing.T) {
		zone, err := NewShippingZone("NV", "Nevada", ZoneConditional)
		require.NoError(t, err)
		require.NoError(t, zone.SetRequiredService(ServiceLevelExpedited))

		require.Error(t, zone.Evaluate(now, ServiceLevelStandard))
		assert.NoError(t, zone.Evaluate(now, ServiceLevelExpedited))
		assert.NoError(t, zone.Evaluate(now, ServiceLevelOvernight))
	})

	t.Run("clearing conditional status drops conditions", func(t *testing.T) {
		zone, err := NewShippingZone("NM", "New Mexico", ZoneConditional)
		require.NoError(t, err)
		require.NoError(t, zone.SetSeasonalWindow("10-01", "04-30"))
		require.NoError(t, zone.SetStatus(ZoneAllowed))
		assert.Empty(t, zone.SeasonStart)
		assert.NoError(t, zone.Evaluate(now, ServiceLevelStandard))
	})
}

func TestCarrierService(t *testing.T) {
	t.Run("rejects max transit below min", func(t *testing.T) {
		_, err := NewCarrierService("UPS", "ups_ground", "UPS Ground", ServiceLevelStandard, 5, 3)
		require.Error(t, err)
	})

	t.Run("rejects zero min transit", func(t *testing.T) {
		_, err := NewCarrierService("UPS", "ups_ground", "UPS Ground", ServiceLevelStandard, 0, 3)
		require.Error(t, err)
	})

	t.Run("equal min and max is valid", func(t *testing.T) {
		svc, err := NewCarrierService("FedEx", "fedex_overnight", "FedEx Overnight", ServiceLevelOvernight, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, svc.MaxTransitDays)
	})

	t.Run("SetTransitDays enforces the same invariant", func(t *testing.T) {
		svc, err := NewCarrierService("UPS", "ups_ground", "UPS Ground", ServiceLevelStandard, 3, 7)
		require.NoError(t, err)
		require.Error(t, svc.SetTransitDays(4, 2))
		require.NoError(t, svc.SetTransitDays(2, 8))
	})
}

func TestCarrierRates(t *testing.T) {
	svc, err := NewCarrierService("UPS", "ups_ground", "UPS Ground", ServiceLevelStandard, 3, 7)
	require.NoError(t, err)
	require.NoError(t, svc.SetRates(decimal.NewFromFloat(7.95), decimal.NewFromFloat(1.25), decimal.NewFromInt(75)))

	t.Run("base plus per item", func(t *testing.T) {
		rate := svc.RateFor(decimal.NewFromInt(40), 3, false)
		assert.True(t, rate.Equal(decimal.NewFromFloat(11.70)), "got %s", rate)
	})

	t.Run("free above threshold", func(t *testing.T) {
		rate := svc.RateFor(decimal.NewFromInt(80), 3, false)
		assert.True(t, rate.IsZero())
	})

	t.Run("free shipping promotion overrides", func(t *testing.T) {
		rate := svc.RateFor(decimal.NewFromInt(10), 1, true)
		assert.True(t, rate.IsZero())
	})

	t.Run("rejects negative rates", func(t *testing.T) {
		require.Error(t, svc.SetRates(decimal.NewFromInt(-1), decimal.Zero, decimal.Zero))
	})
}
