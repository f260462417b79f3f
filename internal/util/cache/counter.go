package cache_utils

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

// Counter is a monotonically increasing integer per key. Keys never expire:
// a reset would let a reader reuse a generation that was already retired.
type Counter struct {
	client  valkey.Client
	prefix  string
	timeout time.Duration
}

func NewCounter(client valkey.Client, prefix string) *Counter {
	return &Counter{
		client:  client,
		prefix:  prefix,
		timeout: DefaultCacheTimeout,
	}
}

// Current returns the counter value, 0 when the key was never advanced.
func (c *Counter) Current(ctx context.Context, key string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	fullKey := c.prefix + key
	value, err := c.client.Do(ctx, c.client.B().Get().Key(fullKey).Build()).AsInt64()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return 0, nil
		}

		return 0, fmt.Errorf("failed to read counter %s: %w", fullKey, err)
	}

	return value, nil
}

func (c *Counter) Advance(ctx context.Context, key string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	fullKey := c.prefix + key
	value, err := c.client.Do(ctx, c.client.B().Incr().Key(fullKey).Build()).AsInt64()
	if err != nil {
		return 0, fmt.Errorf("failed to advance counter %s: %w", fullKey, err)
	}

	return value, nil
}
