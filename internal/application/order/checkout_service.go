package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/catalog"
	"github.com/nursery/backend/internal/domain/order"
	"github.com/nursery/backend/internal/domain/pickup"
	"github.com/nursery/backend/internal/domain/shared"
	"github.com/nursery/backend/internal/domain/shared/valueobject"
	"github.com/nursery/backend/internal/domain/shipping"

	promotionapp "github.com/nursery/backend/internal/application/promotion"
)

// CheckoutService turns a cart into an order
// It revalidates stock and coupons, evaluates the fulfillment method and
// decrements inventory when the order is placed
type CheckoutService struct {
	cartRepo       order.CartRepository
	orderRepo      order.OrderRepository
	productRepo    catalog.ProductRepository
	promotions     *promotionapp.PromotionService
	zoneRepo       shipping.ZoneRepository
	carrierRepo    shipping.CarrierServiceRepository
	scheduleRepo   pickup.ScheduleRepository
	bookings       pickup.BookingCounter
	eventPublisher shared.EventPublisher
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	cartRepo order.CartRepository,
	orderRepo order.OrderRepository,
	productRepo catalog.ProductRepository,
	promotions *promotionapp.PromotionService,
	zoneRepo shipping.ZoneRepository,
	carrierRepo shipping.CarrierServiceRepository,
	scheduleRepo pickup.ScheduleRepository,
	bookings pickup.BookingCounter,
) *CheckoutService {
	return &CheckoutService{
		cartRepo:     cartRepo,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		promotions:   promotions,
		zoneRepo:     zoneRepo,
		carrierRepo:  carrierRepo,
		scheduleRepo: scheduleRepo,
		bookings:     bookings,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *CheckoutService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Checkout places an order from a cart
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) (*OrderResponse, error) {
	cart, err := s.cartRepo.FindByID(ctx, req.CartID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot check out an empty cart")
	}

	products, err := s.loadProducts(ctx, cart)
	if err != nil {
		return nil, err
	}

	discount, err := s.promotions.CalculateCartDiscount(ctx, promotionapp.CalculateDiscountRequest{
		Lines:      cartToDiscountLines(cart),
		CouponCode: cart.CouponCode,
		CustomerID: req.CustomerID,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sequence, err := s.orderRepo.NextSequence(ctx, now)
	if err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(order.FormatOrderNumber(now, sequence),
		req.CustomerID, req.CustomerName, req.CustomerEmail, order.FulfillmentMethod(req.Fulfillment))
	if err != nil {
		return nil, err
	}
	newOrder.CustomerPhone = req.CustomerPhone
	if req.Note != "" {
		newOrder.SetNote(req.Note)
	}

	for idx := range cart.Items {
		item := &cart.Items[idx]
		product := products[item.ProductID]
		if _, err := newOrder.AddItem(item.ProductID, item.ProductName, product.Code, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}

	snapshots := make([]order.AppliedPromotionSnapshot, 0, len(discount.Applied))
	for _, applied := range discount.Applied {
		snapshots = append(snapshots, order.AppliedPromotionSnapshot{
			PromotionID:  applied.PromotionID,
			Name:         applied.Name,
			Code:         applied.Code,
			Discount:     applied.Discount,
			FreeShipping: applied.FreeShipping,
		})
	}
	if err := newOrder.ApplyPromotions(discount.DiscountTotal, snapshots); err != nil {
		return nil, err
	}

	switch order.FulfillmentMethod(req.Fulfillment) {
	case order.FulfillmentShipping:
		if err := s.applyShipping(ctx, newOrder, req, discount.FreeShipping, now); err != nil {
			return nil, err
		}
	case order.FulfillmentPickup:
		if err := s.applyPickup(ctx, newOrder, req, now); err != nil {
			return nil, err
		}
	}

	decremented := make([]*catalog.Product, 0, len(cart.Items))
	for idx := range cart.Items {
		item := &cart.Items[idx]
		product := products[item.ProductID]
		if err := product.DecrementStock(item.Quantity); err != nil {
			return nil, err
		}
		decremented = append(decremented, product)
	}

	cart.Clear()
	if err := s.orderRepo.PlaceOrder(ctx, newOrder, decremented, cart); err != nil {
		return nil, err
	}

	if len(discount.Applied) > 0 {
		promotionIDs := make([]uuid.UUID, 0, len(discount.Applied))
		for _, applied := range discount.Applied {
			promotionIDs = append(promotionIDs, applied.PromotionID)
		}
		if err := s.promotions.RecordRedemptions(ctx, promotionIDs, req.CustomerID); err != nil {
			return nil, err
		}
	}

	s.publishEvents(ctx, newOrder)

	response := ToOrderResponse(newOrder)
	return &response, nil
}

func cartToDiscountLines(cart *order.Cart) []promotionapp.CartLineRequest {
	lines := make([]promotionapp.CartLineRequest, 0, len(cart.Items))
	for idx := range cart.Items {
		item := &cart.Items[idx]
		lines = append(lines, promotionapp.CartLineRequest{
			ProductID:  item.ProductID,
			CategoryID: item.CategoryID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		})
	}
	return lines
}

func (s *CheckoutService) loadProducts(ctx context.Context, cart *order.Cart) (map[uuid.UUID]*catalog.Product, error) {
	products := make(map[uuid.UUID]*catalog.Product, len(cart.Items))
	for idx := range cart.Items {
		item := &cart.Items[idx]
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.IsPurchasable() {
			return nil, shared.NewDomainError("NOT_PURCHASABLE", "A cart item is no longer available: "+product.Name)
		}
		if item.Quantity > product.StockQuantity {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Not enough stock for "+product.Name)
		}
		products[item.ProductID] = product
	}
	return products, nil
}

func (s *CheckoutService) applyShipping(ctx context.Context, newOrder *order.Order, req CheckoutRequest, freeShipping bool, now time.Time) error {
	if req.CarrierServiceID == nil {
		return shared.NewDomainError("INVALID_SHIPPING", "A carrier service is required for shipping orders")
	}

	carrier, err := s.carrierRepo.FindByID(ctx, *req.CarrierServiceID)
	if err != nil {
		return err
	}
	if !carrier.Active {
		return shared.NewDomainError("INVALID_SHIPPING", "The selected shipping service is not available")
	}

	var opts []valueobject.AddressOption
	if req.AddressLine2 != "" {
		opts = append(opts, valueobject.WithLine2(req.AddressLine2))
	}
	address, err := valueobject.NewAddress(req.AddressLine1, req.City, req.State, req.PostalCode, opts...)
	if err != nil {
		return err
	}

	zone, err := s.zoneRepo.FindByState(ctx, address.State())
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if zone != nil {
		if err := zone.Evaluate(now, carrier.Level); err != nil {
			return err
		}
	}

	fee := carrier.RateFor(newOrder.Subtotal.Sub(newOrder.DiscountTotal), newOrder.TotalQuantity(), freeShipping)
	return newOrder.SetShippingDetails(address, carrier.ID, fee)
}

func (s *CheckoutService) applyPickup(ctx context.Context, newOrder *order.Order, req CheckoutRequest, now time.Time) error {
	if req.PickupLocationID == nil || req.PickupScheduleID == nil || req.PickupDate == "" {
		return shared.NewDomainError("INVALID_PICKUP", "A pickup location, schedule and date are required for pickup orders")
	}

	day, err := time.Parse("2006-01-02", req.PickupDate)
	if err != nil {
		return shared.NewDomainError("INVALID_DATE", "Invalid pickup date, expected YYYY-MM-DD")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		return shared.NewDomainError("SLOT_UNAVAILABLE", "Pickup dates in the past cannot be booked")
	}

	schedule, err := s.scheduleRepo.FindByID(ctx, *req.PickupScheduleID)
	if err != nil {
		return err
	}
	if schedule.LocationID != *req.PickupLocationID {
		return shared.NewDomainError("INVALID_PICKUP", "The schedule does not belong to the selected location")
	}
	if !schedule.CoversDate(day) {
		return shared.NewDomainError("SLOT_UNAVAILABLE", "The selected pickup slot is not offered on that date")
	}

	booked, err := s.bookings.CountBookings(ctx, schedule.LocationID, req.PickupDate, req.PickupDate)
	if err != nil {
		return err
	}
	if !schedule.HasRoom(booked.Get(schedule.ID, req.PickupDate)) {
		return shared.NewDomainError("SLOT_FULL", "The selected pickup slot is fully booked")
	}

	return newOrder.SetPickupDetails(*req.PickupLocationID, *req.PickupScheduleID, req.PickupDate)
}

func (s *CheckoutService) publishEvents(ctx context.Context, aggregate *order.Order) {
	if s.eventPublisher == nil {
		aggregate.ClearDomainEvents()
		return
	}
	for _, event := range aggregate.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	aggregate.ClearDomainEvents()
}
