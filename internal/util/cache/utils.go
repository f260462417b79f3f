package cache_utils

import (
	"context"
	"encoding/json"
	"time"

	"teamspace/internal/cache"
	"teamspace/internal/util/logger"

	"github.com/valkey-io/valkey-go"
)

const (
	DefaultCacheTimeout = 10 * time.Second
	DefaultCacheExpiry  = 10 * time.Minute

	scanBatchSize = 200
)

// CacheUtil stores JSON encoded values of T under a key prefix. Failures are
// logged and reported as misses so a cache outage never fails a request.
type CacheUtil[T any] struct {
	client  valkey.Client
	prefix  string
	timeout time.Duration
	expiry  time.Duration
}

func NewCacheUtil[T any](client valkey.Client, prefix string) *CacheUtil[T] {
	return &CacheUtil[T]{
		client:  client,
		prefix:  prefix,
		timeout: DefaultCacheTimeout,
		expiry:  DefaultCacheExpiry,
	}
}

func TestCacheConnection() {
	client := cache.GetCache()
	cacheUtil := NewCacheUtil[string](client, "test:")
	ctx := context.Background()

	testKey := "connection_test"
	testValue := "valkey_is_working"

	cacheUtil.Set(ctx, testKey, &testValue)

	retrievedValue := cacheUtil.Get(ctx, testKey)
	if retrievedValue == nil {
		panic("Cache test failed: could not retrieve cached value")
	}

	if *retrievedValue != testValue {
		panic("Cache test failed: retrieved value does not match expected")
	}

	cacheUtil.Invalidate(ctx, testKey)

	if cleanupCheck := cacheUtil.Get(ctx, testKey); cleanupCheck != nil {
		panic("Cache test failed: test key was not properly invalidated")
	}
}

func (c *CacheUtil[T]) Get(ctx context.Context, key string) *T {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	fullKey := c.prefix + key
	result := c.client.Do(ctx, c.client.B().Get().Key(fullKey).Build())

	if result.Error() != nil {
		if !valkey.IsValkeyNil(result.Error()) {
			logger.GetLogger().Warn("cache read failed", "key", fullKey, "error", result.Error())
		}
		return nil
	}

	data, err := result.AsBytes()
	if err != nil {
		return nil
	}

	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return nil
	}

	return &item
}

func (c *CacheUtil[T]) Set(ctx context.Context, key string, item *T) {
	c.SetWithExpiry(ctx, key, item, c.expiry)
}

func (c *CacheUtil[T]) SetWithExpiry(ctx context.Context, key string, item *T, expiry time.Duration) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	data, err := json.Marshal(item)
	if err != nil {
		return
	}

	fullKey := c.prefix + key
	result := c.client.Do(ctx, c.client.B().Set().Key(fullKey).Value(string(data)).Ex(expiry).Build())
	if result.Error() != nil {
		logger.GetLogger().Warn("cache write failed", "key", fullKey, "error", result.Error())
	}
}

func (c *CacheUtil[T]) Invalidate(ctx context.Context, key string) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	fullKey := c.prefix + key
	result := c.client.Do(ctx, c.client.B().Del().Key(fullKey).Build())
	if result.Error() != nil {
		logger.GetLogger().Warn("cache invalidation failed", "key", fullKey, "error", result.Error())
	}
}

// InvalidateByPattern deletes every key under the prefix matching the glob
// pattern. Deleting an absent key is a no-op, so repeated calls are safe.
func (c *CacheUtil[T]) InvalidateByPattern(ctx context.Context, pattern string) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	fullPattern := c.prefix + pattern
	var cursor uint64

	for {
		result := c.client.Do(
			ctx,
			c.client.B().Scan().Cursor(cursor).Match(fullPattern).Count(scanBatchSize).Build(),
		)
		if result.Error() != nil {
			logger.GetLogger().Warn("cache scan failed", "pattern", fullPattern, "error", result.Error())
			return
		}

		entry, err := result.AsScanEntry()
		if err != nil {
			logger.GetLogger().Warn("cache scan failed", "pattern", fullPattern, "error", err)
			return
		}

		if len(entry.Elements) > 0 {
			del := c.client.Do(ctx, c.client.B().Del().Key(entry.Elements...).Build())
			if del.Error() != nil {
				logger.GetLogger().Warn("cache invalidation failed", "pattern", fullPattern, "error", del.Error())
				return
			}
		}

		cursor = entry.Cursor
		if cursor == 0 {
			return
		}
	}
}
