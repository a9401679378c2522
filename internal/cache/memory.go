package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const defaultMemoryEntries = 1024

// MemoryCache keeps pages in process memory. Used when no Redis is configured
// or Redis cannot be reached at startup.
type MemoryCache struct {
	lru *expirable.LRU[string, []byte]
}

func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	if size <= 0 {
		size = defaultMemoryEntries
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	body, ok := c.lru.Get(key)
	return body, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, body []byte) error {
	stored := make([]byte, len(body))
	copy(stored, body)
	c.lru.Add(key, stored)
	return nil
}

func (c *MemoryCache) Clear(_ context.Context) error {
	c.lru.Purge()
	return nil
}
