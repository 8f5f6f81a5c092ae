package promotion

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPromotion(t *testing.T) {
	t.Run("creates percentage promotion", func(t *testing.T) {
		promo, err := NewPromotion("Spring Sale", TypePercentage, decimal.NewFromInt(15))
		require.NoError(t, err)
		assert.True(t, promo.Active)
		assert.Equal(t, ScopeAll, promo.Scope)
		assert.False(t, promo.IsCoupon())
	})

	t.Run("rejects percentage over 100", func(t *testing.T) {
		_, err := NewPromotion("Bad", TypePercentage, decimal.NewFromInt(150))
		require.Error(t, err)
	})

	t.Run("rejects non-positive fixed amount", func(t *testing.T) {
		_, err := NewPromotion("Bad", TypeFixedAmount, decimal.Zero)
		require.Error(t, err)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewPromotion("Bad", PromotionType("mystery"), decimal.NewFromInt(1))
		require.Error(t, err)
	})
}

func TestPromotionCode(t *testing.T) {
	promo, err := NewPromotion("Welcome", TypePercentage, decimal.NewFromInt(10))
	require.NoError(t, err)

	t.Run("stores code uppercase", func(t *testing.T) {
		require.NoError(t, promo.SetCode("welcome10"))
		assert.Equal(t, "WELCOME10", promo.Code)
		assert.True(t, promo.IsCoupon())
	})

	t.Run("rejects whitespace in code", func(t *testing.T) {
		require.Error(t, promo.SetCode("WELCOME 10"))
	})
}

func TestValidateRedemption(t *testing.T) {
	now := time.Now()
	subtotal := decimal.NewFromInt(50)

	newCoupon := func(t *testing.T) *Promotion {
		t.Helper()
		promo, err := NewPromotion("Welcome", TypePercentage, decimal.NewFromInt(10))
		require.NoError(t, err)
		require.NoError(t, promo.SetCode("WELCOME10"))
		return promo
	}

	t.Run("valid coupon passes", func(t *testing.T) {
		promo := newCoupon(t)
		assert.NoError(t, promo.ValidateRedemption(now, subtotal, nil, 0))
	})

	t.Run("inactive", func(t *testing.T) {
		promo := newCoupon(t)
		promo.Deactivate()
		err := promo.ValidateRedemption(now, subtotal, nil, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not active")
	})

	t.Run("not started", func(t *testing.T) {
		promo := newCoupon(t)
		starts := now.Add(time.Hour)
		require.NoError(t, promo.SetWindow(&starts, nil))
		require.Error(t, promo.ValidateRedemption(now, subtotal, nil, 0))
	})

	t.Run("expired", func(t *testing.T) {
		promo := newCoupon(t)
		starts := now.Add(-2 * time.Hour)
		ends := now.Add(-time.Hour)
		require.NoError(t, promo.SetWindow(&starts, &ends))
		err := promo.ValidateRedemption(now, subtotal, nil, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expired")
	})

	t.Run("usage limit reached", func(t *testing.T) {
		promo := newCoupon(t)
		require.NoError(t, promo.SetConstraints(decimal.Zero, 1, 0))
		promo.RecordRedemption()
		require.Error(t, promo.ValidateRedemption(now, subtotal, nil, 0))
	})

	t.Run("per-customer limit reached", func(t *testing.T) {
		promo := newCoupon(t)
		require.NoError(t, promo.SetConstraints(decimal.Zero, 0, 2))
		customerID := uuid.New()
		require.Error(t, promo.ValidateRedemption(now, subtotal, &customerID, 2))
		assert.NoError(t, promo.ValidateRedemption(now, subtotal, &customerID, 1))
	})

	t.Run("minimum subtotal not met", func(t *testing.T) {
		promo := newCoupon(t)
		require.NoError(t, promo.SetConstraints(decimal.NewFromInt(100), 0, 0))
		require.Error(t, promo.ValidateRedemption(now, subtotal, nil, 0))
	})

	t.Run("customer allowlist", func(t *testing.T) {
		promo := newCoupon(t)
		allowed := uuid.New()
		promo.SetCustomerAllowlist([]uuid.UUID{allowed})

		assert.NoError(t, promo.ValidateRedemption(now, subtotal, &allowed, 0))

		other := uuid.New()
		require.Error(t, promo.ValidateRedemption(now, subtotal, &other, 0))
		require.Error(t, promo.ValidateRedemption(now, subtotal, nil, 0))
	})
}

func TestPromotionScopeValidation(t *testing.T) {
	promo, err := NewPromotion("Scoped", TypePercentage, decimal.NewFromInt(10))
	require.NoError(t, err)

	t.Run("product scope requires products", func(t *testing.T) {
		require.Error(t, promo.SetScope(ScopeProducts, nil, nil))
	})

	t.Run("category scope requires categories", func(t *testing.T) {
		require.Error(t, promo.SetScope(ScopeCategories, nil, nil))
	})

	t.Run("switching scope clears the other list", func(t *testing.T) {
		productID := uuid.New()
		require.NoError(t, promo.SetScope(ScopeProducts, []uuid.UUID{productID}, nil))
		require.NoError(t, promo.SetScope(ScopeAll, nil, nil))
		assert.Empty(t, promo.ProductIDs)
	})
}
