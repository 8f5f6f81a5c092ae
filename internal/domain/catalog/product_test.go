package catalog

import (
	"testing"
	"time"

	"github.com/nursery/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct("MONSTERA-4IN", "Monstera Deliciosa", valueobject.NewMoneyUSDFromFloat(24.99))
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, "MONSTERA-4IN", product.Code)
		assert.Equal(t, "Monstera Deliciosa", product.Name)
		assert.True(t, product.Price.Equal(decimal.NewFromFloat(24.99)))
		assert.Equal(t, ProductStatusActive, product.Status)
		assert.Equal(t, SaleTypeNone, product.SaleType)
		assert.Equal(t, CareLevelEasy, product.CareLevel)
		assert.Zero(t, product.StockQuantity)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("converts code to uppercase", func(t *testing.T) {
		product, err := NewProduct("monstera-4in", "Monstera", valueobject.ZeroUSD())
		require.NoError(t, err)
		assert.Equal(t, "MONSTERA-4IN", product.Code)
	})

	t.Run("publishes ProductCreated event", func(t *testing.T) {
		product, err := NewProduct("FICUS-6IN", "Fiddle Leaf Fig", valueobject.ZeroUSD())
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())

		event, ok := events[0].(*ProductCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, product.ID, event.ProductID)
		assert.Equal(t, product.Code, event.Code)
	})

	t.Run("fails with empty code", func(t *testing.T) {
		_, err := NewProduct("", "Monstera", valueobject.ZeroUSD())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "code cannot be empty")
	})

	t.Run("fails with invalid code characters", func(t *testing.T) {
		_, err := NewProduct("MON@4", "Monstera", valueobject.ZeroUSD())
		require.Error(t, err)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("MONSTERA-4IN", "", valueobject.ZeroUSD())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProduct("MONSTERA-4IN", "Monstera", valueobject.NewMoneyUSDFromFloat(-1))
		require.Error(t, err)
	})
}

func TestProductSalePrice(t *testing.T) {
	newProduct := func(t *testing.T, price float64) *Product {
		t.Helper()
		p, err := NewProduct("POTHOS-4IN", "Golden Pothos", valueobject.NewMoneyUSDFromFloat(price))
		require.NoError(t, err)
		return p
	}
	now := time.Now()

	t.Run("returns base price without sale", func(t *testing.T) {
		p := newProduct(t, 20)
		assert.True(t, p.SalePriceAt(now).Equal(decimal.NewFromInt(20)))
	})

	t.Run("applies percentage discount", func(t *testing.T) {
		p := newProduct(t, 20)
		require.NoError(t, p.SetSale(SaleTypePercentage, decimal.NewFromInt(25), nil, nil))
		assert.True(t, p.SalePriceAt(now).Equal(decimal.NewFromInt(15)), "got %s", p.SalePriceAt(now))
	})

	t.Run("applies flat discount", func(t *testing.T) {
		p := newProduct(t, 20)
		require.NoError(t, p.SetSale(SaleTypeFlat, decimal.NewFromFloat(5.50), nil, nil))
		assert.True(t, p.SalePriceAt(now).Equal(decimal.NewFromFloat(14.50)))
	})

	t.Run("clamps flat discount at zero", func(t *testing.T) {
		p := newProduct(t, 5)
		require.NoError(t, p.SetSale(SaleTypeFlat, decimal.NewFromInt(10), nil, nil))
		assert.True(t, p.SalePriceAt(now).IsZero())
	})

	t.Run("ignores sale outside its window", func(t *testing.T) {
		p := newProduct(t, 20)
		start := now.Add(24 * time.Hour)
		end := now.Add(48 * time.Hour)
		require.NoError(t, p.SetSale(SaleTypePercentage, decimal.NewFromInt(50), &start, &end))

		assert.True(t, p.SalePriceAt(now).Equal(decimal.NewFromInt(20)))
		assert.True(t, p.SalePriceAt(start.Add(time.Hour)).Equal(decimal.NewFromInt(10)))
		assert.True(t, p.SalePriceAt(end.Add(time.Hour)).Equal(decimal.NewFromInt(20)))
	})

	t.Run("rejects percentage above 100", func(t *testing.T) {
		p := newProduct(t, 20)
		err := p.SetSale(SaleTypePercentage, decimal.NewFromInt(120), nil, nil)
		require.Error(t, err)
	})

	t.Run("rejects inverted window", func(t *testing.T) {
		p := newProduct(t, 20)
		start := now.Add(48 * time.Hour)
		end := now.Add(24 * time.Hour)
		err := p.SetSale(SaleTypeFlat, decimal.NewFromInt(5), &start, &end)
		require.Error(t, err)
	})

	t.Run("clear sale restores base price", func(t *testing.T) {
		p := newProduct(t, 20)
		require.NoError(t, p.SetSale(SaleTypePercentage, decimal.NewFromInt(50), nil, nil))
		p.ClearSale()
		assert.True(t, p.SalePriceAt(now).Equal(decimal.NewFromInt(20)))
	})
}

func TestProductStock(t *testing.T) {
	newProduct := func(t *testing.T) *Product {
		t.Helper()
		p, err := NewProduct("SNAKE-6IN", "Snake Plant", valueobject.NewMoneyUSDFromFloat(18))
		require.NoError(t, err)
		return p
	}

	t.Run("decrement reduces stock", func(t *testing.T) {
		p := newProduct(t)
		require.NoError(t, p.SetStock(10))
		require.NoError(t, p.DecrementStock(4))
		assert.Equal(t, 6, p.StockQuantity)
	})

	t.Run("decrement rejects oversell", func(t *testing.T) {
		p := newProduct(t)
		require.NoError(t, p.SetStock(2))
		err := p.DecrementStock(3)
		require.Error(t, err)
		assert.Equal(t, 2, p.StockQuantity)
	})

	t.Run("replenish from zero emits restock event", func(t *testing.T) {
		p := newProduct(t)
		p.ClearDomainEvents()

		require.NoError(t, p.Replenish(5))

		events := p.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductRestocked, events[0].EventType())

		event, ok := events[0].(*ProductRestockedEvent)
		require.True(t, ok)
		assert.Equal(t, 5, event.StockQuantity)
	})

	t.Run("replenish with stock on hand emits nothing", func(t *testing.T) {
		p := newProduct(t)
		require.NoError(t, p.SetStock(3))
		p.ClearDomainEvents()

		require.NoError(t, p.Replenish(5))
		assert.Empty(t, p.GetDomainEvents())
	})

	t.Run("low stock threshold", func(t *testing.T) {
		p := newProduct(t)
		require.NoError(t, p.SetStock(5))
		require.NoError(t, p.SetLowStockThreshold(5))
		assert.True(t, p.IsLowStock())

		require.NoError(t, p.Replenish(10))
		assert.False(t, p.IsLowStock())
	})
}

func TestProductStatusTransitions(t *testing.T) {
	newProduct := func(t *testing.T) *Product {
		t.Helper()
		p, err := NewProduct("CALATHEA-4IN", "Calathea Orbifolia", valueobject.NewMoneyUSDFromFloat(16))
		require.NoError(t, err)
		return p
	}

	t.Run("deactivate then activate", func(t *testing.T) {
		p := newProduct(t)
		require.NoError(t, p.Deactivate())
		assert.Equal(t, ProductStatusInactive, p.Status)
		require.NoError(t, p.Activate())
		assert.Equal(t, ProductStatusActive, p.Status)
	})

	t.Run("discontinued is terminal", func(t *testing.T) {
		p := newProduct(t)
		require.NoError(t, p.Discontinue())
		require.Error(t, p.Activate())
		require.Error(t, p.Deactivate())
	})

	t.Run("purchasable requires active status and stock", func(t *testing.T) {
		p := newProduct(t)
		assert.False(t, p.IsPurchasable())

		require.NoError(t, p.SetStock(1))
		assert.True(t, p.IsPurchasable())

		require.NoError(t, p.Deactivate())
		assert.False(t, p.IsPurchasable())
	})
}
