package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/catalog"
	"github.com/nursery/backend/internal/domain/order"
	"github.com/nursery/backend/internal/domain/pickup"
	"github.com/nursery/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Promotions").
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByNumber finds an order by its order number
func (r *GormOrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Promotions").
		Where("order_number = ?", orderNumber).
		First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindAll finds all orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.applyFilter(r.db.WithContext(ctx).Model(&order.Order{}), filter)

	if err := query.Preload("Items").Preload("Promotions").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByCustomer finds orders for a customer
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&order.Order{}).
			Where("customer_id = ?", customerID),
		filter,
	)

	if err := query.Preload("Items").Preload("Promotions").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByStatus finds orders with the given status
func (r *GormOrderRepository) FindByStatus(ctx context.Context, status order.OrderStatus, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&order.Order{}).
			Where("status = ?", status),
		filter,
	)

	if err := query.Preload("Items").Preload("Promotions").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindPickupsForDate finds pickup orders scheduled for a date (YYYY-MM-DD)
// Cancelled orders are excluded so manifests only show live pickups
func (r *GormOrderRepository) FindPickupsForDate(ctx context.Context, locationID uuid.UUID, date string) ([]order.Order, error) {
	var orders []order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("fulfillment = ? AND pickup_location_id = ? AND pickup_date = ?", order.FulfillmentPickup, locationID, date).
		Where("status != ?", order.OrderStatusCancelled).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CountPickups counts booked pickups per schedule and date in the range
func (r *GormOrderRepository) CountPickups(ctx context.Context, locationID uuid.UUID, fromDate, toDate string) (map[uuid.UUID]map[string]int, error) {
	type pickupCount struct {
		PickupScheduleID uuid.UUID
		PickupDate       string
		Count            int
	}

	var rows []pickupCount
	if err := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Select("pickup_schedule_id, pickup_date, COUNT(*) as count").
		Where("fulfillment = ? AND pickup_location_id = ?", order.FulfillmentPickup, locationID).
		Where("pickup_date >= ? AND pickup_date <= ?", fromDate, toDate).
		Where("pickup_schedule_id IS NOT NULL").
		Where("status != ?", order.OrderStatusCancelled).
		Group("pickup_schedule_id, pickup_date").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]map[string]int)
	for _, row := range rows {
		if counts[row.PickupScheduleID] == nil {
			counts[row.PickupScheduleID] = make(map[string]int)
		}
		counts[row.PickupScheduleID][row.PickupDate] = row.Count
	}
	return counts, nil
}

// NextSequence reserves the next per-day order number sequence value.
// The upsert keeps the counter race-free under concurrent checkouts
func (r *GormOrderRepository) NextSequence(ctx context.Context, date time.Time) (int, error) {
	day := date.Format("2006-01-02")

	var value int
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO order_number_sequences (date, value)
		VALUES (?, 1)
		ON CONFLICT (date)
		DO UPDATE SET value = order_number_sequences.value + 1
		RETURNING value`, day).
		Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}

// Save creates or updates an order with its items and promotion snapshots
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveOrderTx(tx, o)
	})
}

// PlaceOrder persists the decremented products, the new order, and the
// cleared cart in a single transaction so a failed save rolls back the
// stock decrements
func (r *GormOrderRepository) PlaceOrder(ctx context.Context, o *order.Order, products []*catalog.Product, cart *order.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, product := range products {
			if err := tx.Save(product).Error; err != nil {
				return err
			}
		}
		if err := saveOrderTx(tx, o); err != nil {
			return err
		}
		return saveCartTx(tx, cart)
	})
}

func saveOrderTx(tx *gorm.DB, o *order.Order) error {
	if err := tx.Save(o).Error; err != nil {
		return err
	}

	if o.ID != uuid.Nil {
		if err := syncOrderItems(tx, o); err != nil {
			return err
		}
		if err := syncOrderPromotions(tx, o); err != nil {
			return err
		}
	}

	return nil
}

// syncOrderItems deletes removed items and saves the current set
func syncOrderItems(tx *gorm.DB, o *order.Order) error {
	currentItemIDs := make([]uuid.UUID, len(o.Items))
	for i, item := range o.Items {
		currentItemIDs[i] = item.ID
	}

	if len(currentItemIDs) > 0 {
		if err := tx.Where("order_id = ? AND id NOT IN ?", o.ID, currentItemIDs).
			Delete(&order.OrderItem{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("order_id = ?", o.ID).
			Delete(&order.OrderItem{}).Error; err != nil {
			return err
		}
	}

	for i := range o.Items {
		o.Items[i].OrderID = o.ID
		if err := tx.Save(&o.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// syncOrderPromotions deletes removed snapshots and saves the current set
func syncOrderPromotions(tx *gorm.DB, o *order.Order) error {
	currentIDs := make([]uuid.UUID, len(o.Promotions))
	for i, promo := range o.Promotions {
		currentIDs[i] = promo.ID
	}

	if len(currentIDs) > 0 {
		if err := tx.Where("order_id = ? AND id NOT IN ?", o.ID, currentIDs).
			Delete(&order.AppliedPromotionSnapshot{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("order_id = ?", o.ID).
			Delete(&order.AppliedPromotionSnapshot{}).Error; err != nil {
			return err
		}
	}

	for i := range o.Promotions {
		o.Promotions[i].OrderID = o.ID
		if err := tx.Save(&o.Promotions[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&order.Order{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountBookings returns booked counts per schedule and date within the range
// Satisfies the pickup BookingCounter against the order store
func (r *GormOrderRepository) CountBookings(ctx context.Context, locationID uuid.UUID, fromDate, toDate string) (pickup.BookedCounts, error) {
	counts, err := r.CountPickups(ctx, locationID, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	return pickup.BookedCounts(counts), nil
}

// applyFilter applies filter options to the query
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ? OR customer_name ILIKE ? OR customer_email ILIKE ?", searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "fulfillment":
			query = query.Where("fulfillment = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "pickup_location_id":
			query = query.Where("pickup_location_id = ?", value)
		case "pickup_date":
			query = query.Where("pickup_date = ?", value)
		case "date_from":
			query = query.Where("created_at >= ?", value)
		case "date_to":
			query = query.Where("created_at <= ?", value)
		}
	}

	return query
}

// Ensure GormOrderRepository implements both repository interfaces
var (
	_ order.OrderRepository = (*GormOrderRepository)(nil)
	_ pickup.BookingCounter = (*GormOrderRepository)(nil)
)
