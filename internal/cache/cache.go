// Package cache provides a small Redis-backed response cache. A nil *Cache
// is valid and caches nothing, so callers never branch on whether Redis is
// configured.
package cache

import (
	"context"
	"time"

	"github.com/redis/rueidis"
)

type Cache struct {
	client rueidis.Client
}

func New(addr string) (*Cache, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, err
	}

	return &Cache{client: client}, nil
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	value, err := c.client.Do(ctx, c.client.B().Get().Key(key).Build()).AsBytes()
	if err != nil {
		return nil, false
	}
	return value, true
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if c == nil {
		return
	}
	c.client.Do(ctx, c.client.B().Set().Key(key).Value(string(value)).Ex(ttl).Build())
}

func (c *Cache) Close() {
	if c != nil {
		c.client.Close()
	}
}
