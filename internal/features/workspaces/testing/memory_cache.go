package workspaces_testing

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryCache stores JSON encoded values like the valkey cache does, so a
// cached value never aliases the caller's copy.
type MemoryCache[T any] struct {
	mu            sync.Mutex
	items         map[string][]byte
	invalidations int

	// OnInvalidate, when set, runs before every pattern invalidation.
	OnInvalidate func(pattern string)
}

func NewMemoryCache[T any]() *MemoryCache[T] {
	return &MemoryCache[T]{items: make(map[string][]byte)}
}

func (c *MemoryCache[T]) Get(_ context.Context, key string) *T {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.items[key]
	if !ok {
		return nil
	}

	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return nil
	}

	return &item
}

func (c *MemoryCache[T]) SetWithExpiry(_ context.Context, key string, item *T, _ time.Duration) {
	data, err := json.Marshal(item)
	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = data
}

func (c *MemoryCache[T]) Invalidate(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// InvalidateByPattern fails silently on a finished context, as the valkey
// cache does when its SCAN times out.
func (c *MemoryCache[T]) InvalidateByPattern(ctx context.Context, pattern string) {
	if ctx.Err() != nil {
		return
	}

	if c.OnInvalidate != nil {
		c.OnInvalidate(pattern)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.invalidations++
	for key := range c.items {
		if matched, _ := path.Match(pattern, key); matched {
			delete(c.items, key)
		}
	}
}

func (c *MemoryCache[T]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.items))
	for key := range c.items {
		keys = append(keys, key)
	}

	return keys
}

func (c *MemoryCache[T]) Invalidations() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.invalidations
}

// MemoryCounter mirrors the valkey generation counter.
type MemoryCounter struct {
	mu     sync.Mutex
	values map[string]int64
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{values: make(map[string]int64)}
}

func (c *MemoryCounter) Current(ctx context.Context, key string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.values[key], nil
}

func (c *MemoryCounter) Advance(ctx context.Context, key string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.values[key]++
	return c.values[key], nil
}

type AuditLogEntry struct {
	Message     string
	UserID      *uuid.UUID
	WorkspaceID *uuid.UUID
}

type AuditLogRecorder struct {
	mu      sync.Mutex
	entries []AuditLogEntry
}

func (r *AuditLogRecorder) WriteAuditLog(message string, userID *uuid.UUID, workspaceID *uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, AuditLogEntry{Message: message, UserID: userID, WorkspaceID: workspaceID})
}

func (r *AuditLogRecorder) Entries() []AuditLogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]AuditLogEntry{}, r.entries...)
}
