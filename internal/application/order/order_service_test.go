package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/catalog"
	"github.com/nursery/backend/internal/domain/order"
	"github.com/nursery/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaidShippingOrder(t *testing.T, product *catalog.Product) *order.Order {
	t.Helper()
	o, err := order.NewOrder(order.FormatOrderNumber(time.Now(), 1), nil,
		"Jordan Reyes", "jordan@example.com", order.FulfillmentShipping)
	require.NoError(t, err)
	_, err = o.AddItem(product.ID, product.Name, product.Code, 2, product.Price)
	require.NoError(t, err)
	address, err := valueobject.NewAddress("88 Fern St", "Portland", "OR", "97203")
	require.NoError(t, err)
	require.NoError(t, o.SetShippingDetails(address, uuid.New(), decimal.NewFromFloat(7.95)))
	require.NoError(t, o.MarkPaid())
	o.ClearDomainEvents()
	return o
}

func TestOrderLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("ship and complete", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		productRepo := new(MockProductRepository)
		service := NewOrderService(orderRepo, productRepo)

		product := newCheckoutProduct(t, 10)
		o := newPaidShippingOrder(t, product)

		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		orderRepo.On("Save", ctx, o).Return(nil)

		_, err := service.StartProcessing(ctx, o.ID)
		require.NoError(t, err)

		resp, err := service.MarkShipped(ctx, o.ID, ShipOrderRequest{TrackingNumber: "1Z999AA10123456784"})
		require.NoError(t, err)
		assert.Equal(t, "shipped", resp.Status)
		assert.Equal(t, "1Z999AA10123456784", resp.TrackingNumber)

		resp, err = service.Complete(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
	})

	t.Run("pickup order cannot be shipped", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewOrderService(orderRepo, new(MockProductRepository))

		o, err := order.NewOrder(order.FormatOrderNumber(time.Now(), 2), nil,
			"Jordan Reyes", "jordan@example.com", order.FulfillmentPickup)
		require.NoError(t, err)
		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

		_, err = service.MarkShipped(ctx, o.ID, ShipOrderRequest{TrackingNumber: "X"})
		require.Error(t, err)
	})

	t.Run("cancel restores stock", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		productRepo := new(MockProductRepository)
		service := NewOrderService(orderRepo, productRepo)

		product := newCheckoutProduct(t, 8) // stock after the 2-unit sale
		o := newPaidShippingOrder(t, product)

		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)
		orderRepo.On("Save", ctx, o).Return(nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("Save", ctx, product).Return(nil)

		resp, err := service.Cancel(ctx, o.ID, CancelOrderRequest{Reason: "Customer request"})
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		assert.Equal(t, "Customer request", resp.CancelReason)
		assert.Equal(t, 10, product.StockQuantity)
	})

	t.Run("completed order cannot be cancelled", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewOrderService(orderRepo, new(MockProductRepository))

		product := newCheckoutProduct(t, 10)
		o := newPaidShippingOrder(t, product)
		require.NoError(t, o.StartProcessing())
		require.NoError(t, o.MarkShipped("1Z999AA10123456784"))
		require.NoError(t, o.Complete())
		o.ClearDomainEvents()

		orderRepo.On("FindByID", ctx, o.ID).Return(o, nil)

		_, err := service.Cancel(ctx, o.ID, CancelOrderRequest{})
		require.Error(t, err)
	})
}
