package workspaces_interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type AuditLogWriter interface {
	WriteAuditLog(message string, userID *uuid.UUID, workspaceID *uuid.UUID)
}

// Cache is the read-through cache contract used by the workspace services.
// Implementations treat every failure as a miss.
type Cache[T any] interface {
	Get(ctx context.Context, key string) *T
	SetWithExpiry(ctx context.Context, key string, item *T, expiry time.Duration)
	Invalidate(ctx context.Context, key string)
	InvalidateByPattern(ctx context.Context, pattern string)
}

// GenerationCounter versions a cache namespace. Advancing it retires every
// entry written under an earlier generation.
type GenerationCounter interface {
	Current(ctx context.Context, key string) (int64, error)
	Advance(ctx context.Context, key string) (int64, error)
}
