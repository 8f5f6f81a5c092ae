package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/order"
	"github.com/nursery/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCartRepository implements CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByID finds a cart by its ID
func (r *GormCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Cart, error) {
	var cart order.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&cart, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// FindByCustomer finds the cart bound to a customer
func (r *GormCartRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*order.Cart, error) {
	var cart order.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Order("updated_at DESC").
		First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// FindBySession finds the cart bound to a guest session
func (r *GormCartRepository) FindBySession(ctx context.Context, sessionKey string) (*order.Cart, error) {
	var cart order.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("session_key = ?", sessionKey).
		Order("updated_at DESC").
		First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// Save creates or updates a cart with its items
// Items removed from the cart are deleted so the stored item set
// always mirrors the aggregate
func (r *GormCartRepository) Save(ctx context.Context, cart *order.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveCartTx(tx, cart)
	})
}

func saveCartTx(tx *gorm.DB, cart *order.Cart) error {
	if err := tx.Save(cart).Error; err != nil {
		return err
	}

	if cart.ID != uuid.Nil {
		currentItemIDs := make([]uuid.UUID, len(cart.Items))
		for i, item := range cart.Items {
			currentItemIDs[i] = item.ID
		}

		if len(currentItemIDs) > 0 {
			if err := tx.Where("cart_id = ? AND id NOT IN ?", cart.ID, currentItemIDs).
				Delete(&order.CartItem{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("cart_id = ?", cart.ID).
				Delete(&order.CartItem{}).Error; err != nil {
				return err
			}
		}

		for i := range cart.Items {
			cart.Items[i].CartID = cart.ID
			if err := tx.Save(&cart.Items[i]).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// Delete deletes a cart and its items
func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&order.CartItem{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&order.Cart{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Ensure GormCartRepository implements CartRepository
var _ order.CartRepository = (*GormCartRepository)(nil)
