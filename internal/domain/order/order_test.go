package order

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShippingOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder("VN-20260831-0001", nil, "Pat Doyle", "pat@example.com", FulfillmentShipping)
	require.NoError(t, err)
	return o
}

func newPaidPickupOrder(t *testing.T) *Order {
	t.Helper()
	o, err := NewOrder("VN-20260831-0002", nil, "Pat Doyle", "pat@example.com", FulfillmentPickup)
	require.NoError(t, err)
	_, err = o.AddItem(uuid.New(), "Monstera Deliciosa", "MON-001", 1, decimal.NewFromInt(30))
	require.NoError(t, err)
	require.NoError(t, o.MarkPaid())
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates pending order with placed event", func(t *testing.T) {
		o := newShippingOrder(t)
		assert.Equal(t, OrderStatusPending, o.Status)

		events := o.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderPlaced, events[0].EventType())
	})

	t.Run("rejects missing customer info", func(t *testing.T) {
		_, err := NewOrder("VN-20260831-0001", nil, "", "pat@example.com", FulfillmentShipping)
		require.Error(t, err)
		_, err = NewOrder("VN-20260831-0001", nil, "Pat", "", FulfillmentShipping)
		require.Error(t, err)
	})

	t.Run("rejects unknown fulfillment", func(t *testing.T) {
		_, err := NewOrder("VN-20260831-0001", nil, "Pat", "pat@example.com", FulfillmentMethod("drone"))
		require.Error(t, err)
	})
}

func TestOrderTotals(t *testing.T) {
	o := newShippingOrder(t)

	_, err := o.AddItem(uuid.New(), "Monstera Deliciosa", "MON-001", 2, decimal.NewFromInt(30))
	require.NoError(t, err)
	_, err = o.AddItem(uuid.New(), "Snake Plant", "SNK-001", 1, decimal.NewFromInt(15))
	require.NoError(t, err)

	t.Run("subtotal sums line amounts", func(t *testing.T) {
		assert.True(t, o.Subtotal.Equal(decimal.NewFromInt(75)))
		assert.Equal(t, 3, o.TotalQuantity())
	})

	t.Run("duplicate product rejected", func(t *testing.T) {
		_, err := o.AddItem(o.Items[0].ProductID, "Monstera Deliciosa", "MON-001", 1, decimal.NewFromInt(30))
		require.Error(t, err)
	})

	t.Run("promotions reduce the total", func(t *testing.T) {
		snapshot := AppliedPromotionSnapshot{
			PromotionID: uuid.New(),
			Name:        "Spring Sale",
			Discount:    decimal.NewFromInt(10),
		}
		require.NoError(t, o.ApplyPromotions(decimal.NewFromInt(10), []AppliedPromotionSnapshot{snapshot}))
		assert.True(t, o.Total.Equal(decimal.NewFromInt(65)))
	})

	t.Run("discount above subtotal rejected", func(t *testing.T) {
		require.Error(t, o.ApplyPromotions(decimal.NewFromInt(500), nil))
	})

	t.Run("shipping fee adds to the total", func(t *testing.T) {
		addr, err := valueobject.NewAddress("12 Garden Way", "Portland", "OR", "97201")
		require.NoError(t, err)
		require.NoError(t, o.SetShippingDetails(addr, uuid.New(), decimal.NewFromFloat(7.95)))
		assert.True(t, o.Total.Equal(decimal.NewFromFloat(72.95)))
	})
}

func TestOrderStatusMachine(t *testing.T) {
	t.Run("pending to paid to processing to shipped to completed", func(t *testing.T) {
		o := newShippingOrder(t)
		_, err := o.AddItem(uuid.New(), "Monstera Deliciosa", "MON-001", 1, decimal.NewFromInt(30))
		require.NoError(t, err)

		require.NoError(t, o.MarkPaid())
		require.NoError(t, o.StartProcessing())
		require.NoError(t, o.MarkShipped("1Z999AA10123456784"))
		require.NoError(t, o.Complete())
		assert.True(t, o.IsTerminal())
	})

	t.Run("pickup orders go ready instead of shipped", func(t *testing.T) {
		o := newPaidPickupOrder(t)
		require.NoError(t, o.StartProcessing())

		require.Error(t, o.MarkShipped("x"))
		require.NoError(t, o.MarkReady())
		require.NoError(t, o.Complete())
	})

	t.Run("cannot pay an empty order", func(t *testing.T) {
		o := newShippingOrder(t)
		require.Error(t, o.MarkPaid())
	})

	t.Run("cannot skip payment", func(t *testing.T) {
		o := newShippingOrder(t)
		_, err := o.AddItem(uuid.New(), "Monstera Deliciosa", "MON-001", 1, decimal.NewFromInt(30))
		require.NoError(t, err)
		require.Error(t, o.StartProcessing())
	})

	t.Run("terminal states reject transitions", func(t *testing.T) {
		o := newPaidPickupOrder(t)
		require.NoError(t, o.StartProcessing())
		require.NoError(t, o.MarkReady())
		require.NoError(t, o.Complete())
		require.Error(t, o.Cancel("too late"))
	})
}

func TestOrderCancel(t *testing.T) {
	t.Run("cancelling a paid order flags restoration", func(t *testing.T) {
		o := newPaidPickupOrder(t)
		o.ClearDomainEvents()

		require.NoError(t, o.Cancel("customer request"))

		events := o.GetDomainEvents()
		require.Len(t, events, 1)
		cancelled, ok := events[0].(*OrderCancelledEvent)
		require.True(t, ok)
		assert.True(t, cancelled.WasPaid)
	})

	t.Run("cancelling pending order does not flag restoration", func(t *testing.T) {
		o := newShippingOrder(t)
		o.ClearDomainEvents()

		require.NoError(t, o.Cancel("abandoned"))

		events := o.GetDomainEvents()
		require.Len(t, events, 1)
		cancelled, ok := events[0].(*OrderCancelledEvent)
		require.True(t, ok)
		assert.False(t, cancelled.WasPaid)
	})

	t.Run("cancel requires a reason", func(t *testing.T) {
		o := newShippingOrder(t)
		require.Error(t, o.Cancel(""))
	})
}

func TestFormatOrderNumber(t *testing.T) {
	date := time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "VN-20260831-0042", FormatOrderNumber(date, 42))
	assert.Equal(t, "VN-20260831-0001", FormatOrderNumber(date, 1))
}

func TestPickupDetails(t *testing.T) {
	o, err := NewOrder("VN-20260831-0003", nil, "Pat Doyle", "pat@example.com", FulfillmentPickup)
	require.NoError(t, err)

	t.Run("binds location schedule and date", func(t *testing.T) {
		require.NoError(t, o.SetPickupDetails(uuid.New(), uuid.New(), "2026-09-05"))
		assert.Equal(t, "2026-09-05", o.PickupDate)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		require.Error(t, o.SetPickupDetails(uuid.New(), uuid.New(), "09/05/2026"))
	})

	t.Run("shipping order rejects pickup details", func(t *testing.T) {
		s := newShippingOrder(t)
		require.Error(t, s.SetPickupDetails(uuid.New(), uuid.New(), "2026-09-05"))
	})
}
