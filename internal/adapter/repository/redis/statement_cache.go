package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// StatementCache caches rendered statement responses. Statements over a
// closed date range never change, so short-lived caching is safe; unranged
// statements are cached briefly and refreshed as the balance moves.
type StatementCache struct {
	client *redis.Client
	prefix string
}

// NewStatementCache creates a new StatementCache.
func NewStatementCache(client *redis.Client) *StatementCache {
	return &StatementCache{
		client: client,
		prefix: "statement:",
	}
}

// Get retrieves a cached statement by key.
func (c *StatementCache) Get(ctx context.Context, key string) ([]byte, error) {
	return c.client.Get(ctx, c.prefix+key).Bytes()
}

// Set stores a rendered statement with TTL.
func (c *StatementCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// Invalidate removes a cached statement.
func (c *StatementCache) Invalidate(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}
