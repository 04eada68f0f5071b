package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront/assembly/internal/domain"
)

// TreeCache stores built assembly trees by SKU so the rendering tier can
// read them without triggering a rebuild. Entries are replaced wholesale on
// resync; trees are immutable snapshots.
type TreeCache interface {
	Put(ctx context.Context, skuID string, tree map[string]*domain.OptionGroup) error
	Get(ctx context.Context, skuID string) (map[string]*domain.OptionGroup, bool, error)
	Invalidate(ctx context.Context, skuID string) error
}

type redisTreeCache struct {
	redisClient *redis.Client
	keyPrefix   string
	ttl         time.Duration
}

func NewRedisTreeCache(redisClient *redis.Client, ttl time.Duration) TreeCache {
	return &redisTreeCache{
		redisClient: redisClient,
		keyPrefix:   "assembly:tree:",
		ttl:         ttl,
	}
}

func (c *redisTreeCache) Put(ctx context.Context, skuID string, tree map[string]*domain.OptionGroup) error {
	data, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("failed to serialize tree for sku %s: %w", skuID, err)
	}

	if err := c.redisClient.Set(ctx, c.keyPrefix+skuID, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache tree for sku %s: %w", skuID, err)
	}
	return nil
}

func (c *redisTreeCache) Get(ctx context.Context, skuID string) (map[string]*domain.OptionGroup, bool, error) {
	val, err := c.redisClient.Get(ctx, c.keyPrefix+skuID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cached tree for sku %s: %w", skuID, err)
	}

	var tree map[string]*domain.OptionGroup
	if err := json.Unmarshal(val, &tree); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached tree for sku %s: %w", skuID, err)
	}
	return tree, true, nil
}

func (c *redisTreeCache) Invalidate(ctx context.Context, skuID string) error {
	return c.redisClient.Del(ctx, c.keyPrefix+skuID).Err()
}
