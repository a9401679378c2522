// Package cache stores fully rendered pages for a fixed time.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long a rendered index page is served from the cache.
const DefaultTTL = 20 * time.Second

// PageCache holds rendered responses. Entries expire only by time or by an
// explicit Clear; writes to the underlying data never invalidate them.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte) error
	Clear(ctx context.Context) error
}
