package promotion

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPromotion(t *testing.T, name string, promoType PromotionType, value float64) *Promotion {
	t.Helper()
	promo, err := NewPromotion(name, promoType, decimal.NewFromFloat(value))
	require.NoError(t, err)
	return promo
}

func line(price float64, qty int) CartLine {
	return CartLine{
		ProductID: uuid.New(),
		Quantity:  qty,
		UnitPrice: decimal.NewFromFloat(price),
	}
}

func TestPercentageDiscount(t *testing.T) {
	promo := mustPromotion(t, "Spring Sale", TypePercentage, 20)
	lines := []CartLine{line(25, 2), line(10, 1)} // subtotal 60

	result := CalculateCartDiscount(lines, []Promotion{*promo}, time.Now())

	assert.True(t, result.Subtotal.Equal(decimal.NewFromInt(60)))
	assert.True(t, result.DiscountTotal.Equal(decimal.NewFromInt(12)), "got %s", result.DiscountTotal)
	assert.True(t, result.Total.Equal(decimal.NewFromInt(48)))
	require.Len(t, result.Applied, 1)
	assert.Equal(t, promo.ID, result.Applied[0].PromotionID)
}

func TestFixedAmountDiscount(t *testing.T) {
	t.Run("deducts the fixed amount", func(t *testing.T) {
		promo := mustPromotion(t, "Five Off", TypeFixedAmount, 5)
		result := CalculateCartDiscount([]CartLine{line(20, 1)}, []Promotion{*promo}, time.Now())
		assert.True(t, result.DiscountTotal.Equal(decimal.NewFromInt(5)))
	})

	t.Run("caps at eligible subtotal", func(t *testing.T) {
		promo := mustPromotion(t, "Fifty Off", TypeFixedAmount, 50)
		result := CalculateCartDiscount([]CartLine{line(20, 1)}, []Promotion{*promo}, time.Now())
		assert.True(t, result.DiscountTotal.Equal(decimal.NewFromInt(20)))
		assert.True(t, result.Total.IsZero())
	})
}

func TestBuyXGetYDiscount(t *testing.T) {
	promo := mustPromotion(t, "Buy 2 Get 1", TypeBuyXGetY, 0)
	require.NoError(t, promo.SetBuyXGetY(2, 1))

	t.Run("grants free units per full group", func(t *testing.T) {
		// 7 units in groups of 3: two full groups, two free units
		result := CalculateCartDiscount([]CartLine{line(10, 7)}, []Promotion{*promo}, time.Now())
		assert.True(t, result.DiscountTotal.Equal(decimal.NewFromInt(20)), "got %s", result.DiscountTotal)
	})

	t.Run("no discount below group size", func(t *testing.T) {
		result := CalculateCartDiscount([]CartLine{line(10, 2)}, []Promotion{*promo}, time.Now())
		assert.True(t, result.DiscountTotal.IsZero())
		assert.Empty(t, result.Applied)
	})

	t.Run("computed per line", func(t *testing.T) {
		result := CalculateCartDiscount([]CartLine{line(10, 3), line(4, 3)}, []Promotion{*promo}, time.Now())
		assert.True(t, result.DiscountTotal.Equal(decimal.NewFromInt(14)))
	})
}

func TestFreeShippingPromotion(t *testing.T) {
	promo := mustPromotion(t, "Free Shipping Weekend", TypeFreeShipping, 0)

	result := CalculateCartDiscount([]CartLine{line(30, 1)}, []Promotion{*promo}, time.Now())

	assert.True(t, result.FreeShipping)
	assert.True(t, result.DiscountTotal.IsZero())
	require.Len(t, result.Applied, 1)
	assert.True(t, result.Applied[0].FreeShipping)
}

func TestScopedPromotions(t *testing.T) {
	targetProduct := uuid.New()
	targetCategory := uuid.New()

	t.Run("product scope only discounts matching lines", func(t *testing.T) {
		promo := mustPromotion(t, "Monstera Sale", TypePercentage, 50)
		require.NoError(t, promo.SetScope(ScopeProducts, []uuid.UUID{targetProduct}, nil))

		lines := []CartLine{
			{ProductID: targetProduct, Quantity: 1, UnitPrice: decimal.NewFromInt(40)},
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
		}
		result := CalculateCartDiscount(lines, []Promotion{*promo}, time.Now())
		assert.True(t, result.DiscountTotal.Equal(decimal.NewFromInt(20)))
	})

	t.Run("category scope matches line category", func(t *testing.T) {
		promo := mustPromotion(t, "Succulent Sale", TypePercentage, 10)
		require.NoError(t, promo.SetScope(ScopeCategories, nil, []uuid.UUID{targetCategory}))

		lines := []CartLine{
			{ProductID: uuid.New(), CategoryID: &targetCategory, Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
		}
		result := CalculateCartDiscount(lines, []Promotion{*promo}, time.Now())
		assert.True(t, result.DiscountTotal.Equal(decimal.NewFromInt(5)))
	})
}

func TestStackingRules(t *testing.T) {
	t.Run("stackable promotions combine", func(t *testing.T) {
		a := mustPromotion(t, "Stack A", TypeFixedAmount, 5)
		a.SetStackable(true)
		b := mustPromotion(t, "Stack B", TypeFixedAmount, 3)
		b.SetStackable(true)

		result := CalculateCartDiscount([]CartLine{line(50, 1)}, []Promotion{*a, *b}, time.Now())
		assert.True(t, result.DiscountTotal.Equal(decimal.NewFromInt(8)))
		assert.Len(t, result.Applied, 2)
	})

	t.Run("best non-stackable beats weaker stack", func(t *testing.T) {
		stack := mustPromotion(t, "Small Stack", TypeFixedAmount, 2)
		stack.SetStackable(true)
		big := mustPromotion(t, "Big Single", TypePercentage, 50)

		result := CalculateCartDiscount([]CartLine{line(50, 1)}, []Promotion{*stack, *big}, time.Now())
		require.Len(t, result.Applied, 1)
		assert.Equal(t, "Big Single", result.Applied[0].Name)
		assert.True(t, result.DiscountTotal.Equal(decimal.NewFromInt(25)))
	})

	t.Run("stack beats weaker single", func(t *testing.T) {
		a := mustPromotion(t, "Stack A", TypeFixedAmount, 10)
		a.SetStackable(true)
		b := mustPromotion(t, "Stack B", TypeFixedAmount, 10)
		b.SetStackable(true)
		single := mustPromotion(t, "Single", TypeFixedAmount, 15)

		result := CalculateCartDiscount([]CartLine{line(100, 1)}, []Promotion{*a, *b, *single}, time.Now())
		assert.Len(t, result.Applied, 2)
		assert.True(t, result.DiscountTotal.Equal(decimal.NewFromInt(20)))
	})

	t.Run("free shipping single wins when nothing discounts more", func(t *testing.T) {
		promo := mustPromotion(t, "Ships Free", TypeFreeShipping, 0)

		result := CalculateCartDiscount([]CartLine{line(50, 1)}, []Promotion{*promo}, time.Now())
		require.Len(t, result.Applied, 1)
		assert.True(t, result.FreeShipping)
		assert.True(t, result.DiscountTotal.IsZero())
	})

	t.Run("stackable discount beats free shipping single", func(t *testing.T) {
		ships := mustPromotion(t, "Ships Free", TypeFreeShipping, 0)
		stack := mustPromotion(t, "Stack", TypeFixedAmount, 5)
		stack.SetStackable(true)

		result := CalculateCartDiscount([]CartLine{line(50, 1)}, []Promotion{*ships, *stack}, time.Now())
		require.Len(t, result.Applied, 1)
		assert.Equal(t, "Stack", result.Applied[0].Name)
		assert.False(t, result.FreeShipping)
	})

	t.Run("discount never exceeds subtotal", func(t *testing.T) {
		a := mustPromotion(t, "Stack A", TypeFixedAmount, 8)
		a.SetStackable(true)
		b := mustPromotion(t, "Stack B", TypeFixedAmount, 9)
		b.SetStackable(true)

		result := CalculateCartDiscount([]CartLine{line(10, 1)}, []Promotion{*a, *b}, time.Now())
		assert.True(t, result.DiscountTotal.Equal(decimal.NewFromInt(10)))
		assert.True(t, result.Total.IsZero())
	})
}

func TestCandidateFiltering(t *testing.T) {
	now := time.Now()

	t.Run("inactive promotions are skipped", func(t *testing.T) {
		promo := mustPromotion(t, "Disabled", TypePercentage, 10)
		promo.Deactivate()
		result := CalculateCartDiscount([]CartLine{line(20, 1)}, []Promotion{*promo}, now)
		assert.Empty(t, result.Applied)
	})

	t.Run("promotions outside their window are skipped", func(t *testing.T) {
		promo := mustPromotion(t, "Future Sale", TypePercentage, 10)
		starts := now.Add(time.Hour)
		require.NoError(t, promo.SetWindow(&starts, nil))
		result := CalculateCartDiscount([]CartLine{line(20, 1)}, []Promotion{*promo}, now)
		assert.Empty(t, result.Applied)
	})

	t.Run("minimum subtotal gates eligibility", func(t *testing.T) {
		promo := mustPromotion(t, "Big Cart Only", TypePercentage, 10)
		require.NoError(t, promo.SetConstraints(decimal.NewFromInt(100), 0, 0))

		small := CalculateCartDiscount([]CartLine{line(20, 1)}, []Promotion{*promo}, now)
		assert.Empty(t, small.Applied)

		big := CalculateCartDiscount([]CartLine{line(60, 2)}, []Promotion{*promo}, now)
		assert.Len(t, big.Applied, 1)
	})

	t.Run("empty cart yields empty result", func(t *testing.T) {
		promo := mustPromotion(t, "Sale", TypePercentage, 10)
		result := CalculateCartDiscount(nil, []Promotion{*promo}, now)
		assert.True(t, result.Subtotal.IsZero())
		assert.Empty(t, result.Applied)
	})
}
