package repository

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
)

const TotalRequestsKey = "studyai:stats:total_requests"

// MemoryRequestCounter counts chat requests for the lifetime of the process.
type MemoryRequestCounter struct {
	n atomic.Int64
}

func NewMemoryRequestCounter() *MemoryRequestCounter {
	return &MemoryRequestCounter{}
}

func (c *MemoryRequestCounter) Incr(ctx context.Context) (int64, error) {
	return c.n.Add(1), nil
}

func (c *MemoryRequestCounter) Total(ctx context.Context) (int64, error) {
	return c.n.Load(), nil
}

// RedisRequestCounter shares the count across instances and restarts.
type RedisRequestCounter struct {
	client *redis.Client
	key    string
}

func NewRedisRequestCounter(client *redis.Client) *RedisRequestCounter {
	return &RedisRequestCounter{client: client, key: TotalRequestsKey}
}

func (c *RedisRequestCounter) Incr(ctx context.Context) (int64, error) {
	n, err := c.client.Incr(ctx, c.key).Result()
	if err != nil {
		return 0, fmt.Errorf("incrementing %s: %w", c.key, err)
	}
	return n, nil
}

func (c *RedisRequestCounter) Total(ctx context.Context) (int64, error) {
	n, err := c.client.Get(ctx, c.key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", c.key, err)
	}
	return n, nil
}
