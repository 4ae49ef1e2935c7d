package database

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"time"

	"neelakshi-ai/internal/common/logger"
	"neelakshi-ai/internal/common/metrics"
)

const cacheKeyPrefix = "neelakshi"

// ResultCache stores successful provider payloads. A nil *ResultCache is a
// valid, always-missing cache. Errors are logged and swallowed: a cache
// problem never changes a provider outcome.
type ResultCache struct {
	redis   *RedisClient
	log     logger.Logger
	timeout time.Duration
}

func NewResultCache(redis *RedisClient, log logger.Logger) *ResultCache {
	if redis == nil {
		return nil
	}
	return &ResultCache{
		redis:   redis,
		log:     log.With(map[string]interface{}{"component": "result-cache"}),
		timeout: 500 * time.Millisecond,
	}
}

// CacheKey is neelakshi:<provider>:<sha1(normalized query)>.
func CacheKey(provider, query string) string {
	sum := sha1.Sum([]byte(strings.ToLower(strings.TrimSpace(query))))
	return cacheKeyPrefix + ":" + provider + ":" + hex.EncodeToString(sum[:])
}

func (c *ResultCache) Lookup(ctx context.Context, provider, query string, dst interface{}) bool {
	if c == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	found, err := c.redis.GetJSON(ctx, CacheKey(provider, query), dst)
	if err != nil {
		c.log.Warn("cache lookup failed", map[string]interface{}{
			"provider": provider,
			"error":    err.Error(),
		})
		return false
	}

	result := "miss"
	if found {
		result = "hit"
	}
	metrics.CacheLookups.WithLabelValues(provider, result).Inc()
	return found
}

func (c *ResultCache) Store(ctx context.Context, provider, query string, value interface{}, ttl time.Duration) {
	if c == nil || ttl <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.redis.SetJSON(ctx, CacheKey(provider, query), value, ttl); err != nil {
		c.log.Warn("cache store failed", map[string]interface{}{
			"provider": provider,
			"error":    err.Error(),
		})
	}
}
