package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const cachePrefix = "querycache:"

// Cache key classes used by the admin services. Writers invalidate these,
// readers populate them; the upstream stays the source of truth.
const (
	KeyRequestsList      = "requests:list"
	KeyReceiptsUnmatched = "receipts:unmatched"
	KeyReceiptsMatched   = "receipts:matched"
	KeySettlementsList   = "settlements:list"
	KeyCatalogAlbums     = "catalog:albums"
	KeyCatalogEvents     = "catalog:events"
)

var ErrCacheMiss = errors.New("cache miss")

func KeyRequestDetail(requestID int64) string {
	return fmt.Sprintf("requests:detail:%d", requestID)
}

func KeySettlementDetail(settlementID int64) string {
	return fmt.Sprintf("settlements:detail:%d", settlementID)
}

// QueryCache is a keyed read-through cache over upstream list/detail
// queries. It stands in for the original panel's data-fetching layer:
// reads deduplicate by key, mutations invalidate the affected keys and the
// next read refetches from the upstream.
type QueryCache struct {
	client *goredis.Client
}

func NewQueryCache(client *goredis.Client) *QueryCache {
	return &QueryCache{client: client}
}

func (c *QueryCache) Get(ctx context.Context, key string, target any) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	raw, err := c.client.Get(ctx, cachePrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("get cached query %q: %w", key, err)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode cached query %q: %w", key, err)
	}
	return nil
}

func (c *QueryCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if ttl <= 0 {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cached query %q: %w", key, err)
	}

	if err := c.client.Set(ctx, cachePrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("set cached query %q: %w", key, err)
	}
	return nil
}

func (c *QueryCache) Invalidate(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, 0, len(keys))
	for _, key := range keys {
		prefixed = append(prefixed, cachePrefix+key)
	}

	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("invalidate cached queries: %w", err)
	}
	return nil
}

// InvalidatePrefix drops every cached query under a key class, e.g. all
// request list pages.
func (c *QueryCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	var cursor uint64
	pattern := cachePrefix + prefix + "*"
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("scan cached queries %q: %w", prefix, err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("invalidate cached queries %q: %w", prefix, err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
