package state

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// StateManager tracks how far the listing crawl has progressed per
// category, so an interrupted sync resumes instead of starting over.
type StateManager interface {
	GetLastSyncedPage(ctx context.Context, category string) (int, error)
	SetLastSyncedPage(ctx context.Context, category string, pageNumber int) error
}

type redisStateManager struct {
	redisClient *redis.Client
	keyPrefix   string
}

func NewRedisStateManager(redisClient *redis.Client) StateManager {
	return &redisStateManager{
		redisClient: redisClient,
		keyPrefix:   "assembly:progress:page:",
	}
}

func (s *redisStateManager) GetLastSyncedPage(ctx context.Context, category string) (int, error) {
	key := s.keyPrefix + category
	val, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil // No progress saved yet
		}
		return 0, fmt.Errorf("failed to get last synced page for category %s: %w", category, err)
	}

	page, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("failed to parse page number for category %s: %w", category, err)
	}

	return page, nil
}

func (s *redisStateManager) SetLastSyncedPage(ctx context.Context, category string, pageNumber int) error {
	key := s.keyPrefix + category
	err := s.redisClient.Set(ctx, key, pageNumber, 0).Err() // No expiration
	if err != nil {
		return fmt.Errorf("failed to set last synced page for category %s: %w", category, err)
	}
	return nil
}
