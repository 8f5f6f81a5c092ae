package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid inputs", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(19.99), USD)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(19.99)))
		assert.Equal(t, USD, m.Currency())
	})

	t.Run("fails with empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(10), "")
		require.Error(t, err)
	})

	t.Run("parses string amounts", func(t *testing.T) {
		m, err := NewMoneyFromString("42.50", USD)
		require.NoError(t, err)
		assert.Equal(t, "42.50 USD", m.String())

		_, err = NewMoneyFromString("not-a-number", USD)
		require.Error(t, err)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	ten := NewMoneyUSDFromFloat(10)
	five := NewMoneyUSDFromFloat(5)

	t.Run("add", func(t *testing.T) {
		sum, err := ten.Add(five)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(15)))
	})

	t.Run("sub", func(t *testing.T) {
		diff, err := ten.Sub(five)
		require.NoError(t, err)
		assert.True(t, diff.Amount().Equal(decimal.NewFromInt(5)))
	})

	t.Run("mul", func(t *testing.T) {
		doubled := five.Mul(decimal.NewFromInt(2))
		assert.True(t, doubled.Amount().Equal(decimal.NewFromInt(10)))
	})

	t.Run("div by zero fails", func(t *testing.T) {
		_, err := ten.Div(decimal.Zero)
		require.Error(t, err)
	})

	t.Run("currency mismatch fails", func(t *testing.T) {
		eur, err := NewMoney(decimal.NewFromInt(5), EUR)
		require.NoError(t, err)
		_, err = ten.Add(eur)
		require.Error(t, err)
		_, err = ten.Sub(eur)
		require.Error(t, err)
		_, err = ten.LessThan(eur)
		require.Error(t, err)
	})
}

func TestMoneyComparison(t *testing.T) {
	ten := NewMoneyUSDFromFloat(10)
	five := NewMoneyUSDFromFloat(5)

	less, err := five.LessThan(ten)
	require.NoError(t, err)
	assert.True(t, less)

	greater, err := ten.GreaterThan(five)
	require.NoError(t, err)
	assert.True(t, greater)

	assert.True(t, ten.Equals(NewMoneyUSDFromFloat(10)))
	assert.False(t, ten.Equals(five))
	assert.True(t, ZeroUSD().IsZero())
	assert.True(t, five.Neg().IsNegative())
}

func TestMoneyJSON(t *testing.T) {
	m := NewMoneyUSDFromFloat(12.34)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))

	t.Run("rejects missing currency", func(t *testing.T) {
		var bad Money
		err := json.Unmarshal([]byte(`{"amount":"1.00"}`), &bad)
		require.Error(t, err)
	})
}

func TestMoneyScan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("19.99"))
	assert.True(t, m.Amount().Equal(decimal.NewFromFloat(19.99)))
	assert.Equal(t, DefaultCurrency, m.Currency())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())
}
