// Package cache mirrors the most recent bar per symbol into Redis so
// downstream readers get the latest quote without touching the database.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_ingest/internal/feature/prices/domain/entity"
	"stock_ingest/internal/feature/prices/usecase"
)

// QuoteCache stores the freshest bar per symbol under a namespaced Redis
// key with a TTL. Writes are best effort; the caller decides whether a
// failed write matters. A nil Redis client disables the cache entirely.
type QuoteCache struct {
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.QuoteCache = (*QuoteCache)(nil)

// NewQuoteCache creates a QuoteCache. If ttl is 0, it defaults to
// 15 minutes. If namespace is empty, it uses "quotes:latest".
func NewQuoteCache(rdb *redis.Client, ttl time.Duration, namespace string) *QuoteCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if namespace == "" {
		namespace = "quotes:latest"
	}
	return &QuoteCache{
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// SetLatest writes the bar as JSON under the symbol's key, replacing any
// previous value and refreshing the TTL.
func (c *QuoteCache) SetLatest(ctx context.Context, symbol string, rec entity.PriceRecord) error {
	if c == nil || c.rdb == nil {
		return nil
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal quote: %w", err)
	}
	return c.rdb.Set(ctx, c.key(symbol), b, c.ttl).Err()
}

// key generates the Redis key for a symbol's latest quote.
func (c *QuoteCache) key(symbol string) string {
	return fmt.Sprintf("%s:%s", c.namespace, safe(strings.ToUpper(symbol)))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
