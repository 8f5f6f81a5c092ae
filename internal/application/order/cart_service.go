package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/catalog"
	"github.com/nursery/backend/internal/domain/order"
	"github.com/nursery/backend/internal/domain/shared"
)

// CartService handles shopping cart operations for customers and guests
type CartService struct {
	cartRepo    order.CartRepository
	productRepo catalog.ProductRepository
}

// NewCartService creates a new CartService
func NewCartService(cartRepo order.CartRepository, productRepo catalog.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetOrCreateCustomerCart returns the customer's cart, creating one if needed
func (s *CartService) GetOrCreateCustomerCart(ctx context.Context, customerID uuid.UUID) (*CartResponse, error) {
	cart, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		cart, err = order.NewCustomerCart(customerID)
		if err != nil {
			return nil, err
		}
		if err := s.cartRepo.Save(ctx, cart); err != nil {
			return nil, err
		}
	}
	response := ToCartResponse(cart)
	return &response, nil
}

// GetOrCreateGuestCart returns the guest session's cart, creating one if needed
func (s *CartService) GetOrCreateGuestCart(ctx context.Context, sessionKey string) (*CartResponse, error) {
	cart, err := s.cartRepo.FindBySession(ctx, sessionKey)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		cart, err = order.NewGuestCart(sessionKey)
		if err != nil {
			return nil, err
		}
		if err := s.cartRepo.Save(ctx, cart); err != nil {
			return nil, err
		}
	}
	response := ToCartResponse(cart)
	return &response, nil
}

// GetCart retrieves a cart by ID
func (s *CartService) GetCart(ctx context.Context, cartID uuid.UUID) (*CartResponse, error) {
	cart, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	response := ToCartResponse(cart)
	return &response, nil
}

// AddItem adds a product to a cart
// The unit price is captured at add time, sale-adjusted
func (s *CartService) AddItem(ctx context.Context, cartID uuid.UUID, req AddCartItemRequest) (*CartResponse, error) {
	cart, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsPurchasable() {
		return nil, shared.NewDomainError("NOT_PURCHASABLE", "This product is not available for purchase")
	}

	existing := 0
	for idx := range cart.Items {
		if cart.Items[idx].ProductID == req.ProductID {
			existing = cart.Items[idx].Quantity
		}
	}
	if existing+req.Quantity > product.StockQuantity {
		return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Not enough stock for the requested quantity")
	}

	unitPrice := product.SalePriceAt(time.Now())
	if err := cart.AddItem(product.ID, product.Name, product.CategoryID, req.Quantity, unitPrice); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	response := ToCartResponse(cart)
	return &response, nil
}

// UpdateItem changes the quantity of a cart line, removing it at zero
func (s *CartService) UpdateItem(ctx context.Context, cartID, productID uuid.UUID, req UpdateCartItemRequest) (*CartResponse, error) {
	cart, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if req.Quantity > 0 {
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if req.Quantity > product.StockQuantity {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Not enough stock for the requested quantity")
		}
	}

	if err := cart.UpdateItemQuantity(productID, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	response := ToCartResponse(cart)
	return &response, nil
}

// RemoveItem removes a product from a cart
func (s *CartService) RemoveItem(ctx context.Context, cartID, productID uuid.UUID) (*CartResponse, error) {
	cart, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if err := cart.RemoveItem(productID); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	response := ToCartResponse(cart)
	return &response, nil
}

// ApplyCoupon attaches a coupon code to a cart
// The code is validated at checkout, not here
func (s *CartService) ApplyCoupon(ctx context.Context, cartID uuid.UUID, req ApplyCouponRequest) (*CartResponse, error) {
	cart, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if err := cart.ApplyCoupon(req.Code); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	response := ToCartResponse(cart)
	return &response, nil
}

// RemoveCoupon detaches the coupon code from a cart
func (s *CartService) RemoveCoupon(ctx context.Context, cartID uuid.UUID) (*CartResponse, error) {
	cart, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	cart.RemoveCoupon()
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	response := ToCartResponse(cart)
	return &response, nil
}

// ClearCart removes every item and the coupon from a cart
func (s *CartService) ClearCart(ctx context.Context, cartID uuid.UUID) (*CartResponse, error) {
	cart, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	cart.Clear()
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	response := ToCartResponse(cart)
	return &response, nil
}

// MergeGuestCart folds a guest cart into the customer's cart after login
// The guest cart is deleted afterwards
func (s *CartService) MergeGuestCart(ctx context.Context, sessionKey string, customerID uuid.UUID) (*CartResponse, error) {
	guestCart, err := s.cartRepo.FindBySession(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return s.GetOrCreateCustomerCart(ctx, customerID)
		}
		return nil, err
	}

	customerCart, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		customerCart, err = order.NewCustomerCart(customerID)
		if err != nil {
			return nil, err
		}
	}

	customerCart.Merge(guestCart)
	if err := s.cartRepo.Save(ctx, customerCart); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Delete(ctx, guestCart.ID); err != nil {
		return nil, err
	}

	response := ToCartResponse(customerCart)
	return &response, nil
}
