package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/promotion"
	"github.com/nursery/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// RedisRedemptionCounter implements RedemptionCounter using Redis
// This is suitable for distributed deployments where multiple instances
// need to share per-customer coupon usage counts
type RedisRedemptionCounter struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisRedemptionCounter creates a new Redis-based redemption counter
func NewRedisRedemptionCounter(cfg config.RedisConfig) (*RedisRedemptionCounter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisRedemptionCounter{
		client:    client,
		keyPrefix: "promotion:redemptions:",
	}, nil
}

// NewRedisRedemptionCounterWithClient creates a counter with an existing Redis client
// This is useful for testing or when sharing a client across components
func NewRedisRedemptionCounterWithClient(client *redis.Client, keyPrefix string) *RedisRedemptionCounter {
	if keyPrefix == "" {
		keyPrefix = "promotion:redemptions:"
	}
	return &RedisRedemptionCounter{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// key returns the Redis key for a promotion/customer pair
func (c *RedisRedemptionCounter) key(promotionID, customerID uuid.UUID) string {
	return c.keyPrefix + promotionID.String() + ":" + customerID.String()
}

// CustomerRedemptions returns how many times a customer redeemed a promotion
func (c *RedisRedemptionCounter) CustomerRedemptions(ctx context.Context, promotionID, customerID uuid.UUID) (int, error) {
	count, err := c.client.Get(ctx, c.key(promotionID, customerID)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read redemption count: %w", err)
	}
	return count, nil
}

// RecordRedemption increments the per-customer counter
func (c *RedisRedemptionCounter) RecordRedemption(ctx context.Context, promotionID, customerID uuid.UUID) error {
	if err := c.client.Incr(ctx, c.key(promotionID, customerID)).Err(); err != nil {
		return fmt.Errorf("failed to record redemption: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisRedemptionCounter) Close() error {
	return c.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisRedemptionCounter) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisRedemptionCounter implements RedemptionCounter
var _ promotion.RedemptionCounter = (*RedisRedemptionCounter)(nil)
