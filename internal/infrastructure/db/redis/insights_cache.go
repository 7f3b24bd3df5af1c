package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const insightTTL = 10 * time.Minute

// InsightsCache stores generated marketing copy so repeat requests skip
// the text-generation service.
type InsightsCache struct {
	client *redis.Client
}

func NewInsightsCache(client *redis.Client) *InsightsCache {
	return &InsightsCache{client: client}
}

// Get returns the cached value, or ("", nil) on a miss.
func (c *InsightsCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("insight cache get: %w", err)
	}
	return val, nil
}

func (c *InsightsCache) Set(ctx context.Context, key, value string) error {
	return c.client.Set(ctx, key, value, insightTTL).Err()
}
