package cache

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/promotion"
)

// InMemoryRedemptionCounter implements RedemptionCounter using an in-memory map
// This is suitable for single-instance deployments and testing
type InMemoryRedemptionCounter struct {
	mu     sync.RWMutex
	counts map[string]int
}

// NewInMemoryRedemptionCounter creates a new in-memory redemption counter
func NewInMemoryRedemptionCounter() *InMemoryRedemptionCounter {
	return &InMemoryRedemptionCounter{
		counts: make(map[string]int),
	}
}

func (c *InMemoryRedemptionCounter) key(promotionID, customerID uuid.UUID) string {
	return promotionID.String() + ":" + customerID.String()
}

// CustomerRedemptions returns how many times a customer redeemed a promotion
func (c *InMemoryRedemptionCounter) CustomerRedemptions(_ context.Context, promotionID, customerID uuid.UUID) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counts[c.key(promotionID, customerID)], nil
}

// RecordRedemption increments the per-customer counter
func (c *InMemoryRedemptionCounter) RecordRedemption(_ context.Context, promotionID, customerID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[c.key(promotionID, customerID)]++
	return nil
}

// Ensure InMemoryRedemptionCounter implements RedemptionCounter
var _ promotion.RedemptionCounter = (*InMemoryRedemptionCounter)(nil)
