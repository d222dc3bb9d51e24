package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const searchTTL = 5 * time.Minute

// SearchCache keeps serialized service-search responses in Redis for a
// short TTL. A nil *SearchCache is a valid no-op cache, so callers
// never branch on whether Redis is configured.
type SearchCache struct {
	client *redis.Client
}

func NewSearchCache(addr, password string) *SearchCache {
	if addr == "" {
		return nil
	}

	return &SearchCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

func (c *SearchCache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}

	raw, err := c.client.Get(ctx, "search:"+key).Bytes()
	if err != nil {
		return false
	}

	return json.Unmarshal(raw, dest) == nil
}

func (c *SearchCache) Set(ctx context.Context, key string, value any) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	c.client.Set(ctx, "search:"+key, raw, searchTTL)
}

// Invalidate drops all cached search responses. Called after offering
// writes; stale entries would otherwise outlive availability toggles.
func (c *SearchCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, "search:*", 100).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
}
