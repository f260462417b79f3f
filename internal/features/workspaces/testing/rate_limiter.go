package workspaces_testing

import (
	"context"
	"sync"
	"time"

	"teamspace/internal/util/rate_limit"

	"github.com/google/uuid"
)

// StaticRateLimiter allows the first Allowance checks per actor and denies
// the rest. A zero Allowance never denies.
type StaticRateLimiter struct {
	Allowance int
	Err       error

	mu     sync.Mutex
	checks map[uuid.UUID]int
}

func (l *StaticRateLimiter) CheckRateLimit(
	_ context.Context,
	actorID uuid.UUID,
	_ int,
	_ int,
) (*rate_limit.RateLimitResult, error) {
	if l.Err != nil {
		return nil, l.Err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.checks == nil {
		l.checks = make(map[uuid.UUID]int)
	}
	l.checks[actorID]++

	if l.Allowance > 0 && l.checks[actorID] > l.Allowance {
		return &rate_limit.RateLimitResult{
			Allowed:       false,
			ResetTime:     time.Now().Add(time.Second),
			RetryAfterSec: 1,
		}, nil
	}

	return &rate_limit.RateLimitResult{Allowed: true, ResetTime: time.Now()}, nil
}
