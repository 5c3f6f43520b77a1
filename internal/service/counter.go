package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const generationCounterPrefix = "generations:"

// RedisGenerationCounter keeps a lifetime count of successful generations per user.
type RedisGenerationCounter struct {
	redis *redis.Client
}

func NewRedisGenerationCounter(client *redis.Client) *RedisGenerationCounter {
	return &RedisGenerationCounter{redis: client}
}

func (c *RedisGenerationCounter) key(userID uuid.UUID) string {
	return generationCounterPrefix + userID.String()
}

func (c *RedisGenerationCounter) Increment(ctx context.Context, userID uuid.UUID) error {
	if err := c.redis.Incr(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to increment generation count: %w", err)
	}
	return nil
}

func (c *RedisGenerationCounter) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := c.redis.Get(ctx, c.key(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read generation count: %w", err)
	}
	return n, nil
}
