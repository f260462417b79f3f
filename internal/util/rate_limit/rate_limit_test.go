package rate_limit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_CheckRateLimit_WhenActorWithinBurst_AllowsMutation(t *testing.T) {
	rateLimiter := NewRateLimiter()
	actorID := uuid.New()
	ctx := context.Background()

	_ = rateLimiter.ResetRateLimit(ctx, actorID)

	result, err := rateLimiter.CheckRateLimit(ctx, actorID, 5, 20)

	assert.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 19, result.Remaining)
	assert.Equal(t, 0, result.RetryAfterSec)
}

func Test_CheckRateLimit_WhenActorExhaustsBurst_DeniesMutation(t *testing.T) {
	rateLimiter := NewRateLimiter()
	actorID := uuid.New()
	ctx := context.Background()

	_ = rateLimiter.ResetRateLimit(ctx, actorID)

	for i := 0; i < 2; i++ {
		result, err := rateLimiter.CheckRateLimit(ctx, actorID, 1, 2)
		assert.NoError(t, err)
		assert.True(t, result.Allowed, "request %d should be allowed", i+1)
	}

	result, err := rateLimiter.CheckRateLimit(ctx, actorID, 1, 2)
	assert.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
	assert.True(t, result.RetryAfterSec > 0)
	assert.True(t, result.ResetTime.After(time.Now()))
}

func Test_CheckRateLimit_WhenDifferentActors_BucketsAreIsolated(t *testing.T) {
	rateLimiter := NewRateLimiter()
	firstActor, secondActor := uuid.New(), uuid.New()
	ctx := context.Background()

	_ = rateLimiter.ResetRateLimit(ctx, firstActor)
	_ = rateLimiter.ResetRateLimit(ctx, secondActor)

	result, err := rateLimiter.CheckRateLimit(ctx, firstActor, 1, 1)
	assert.NoError(t, err)
	assert.True(t, result.Allowed)

	result, err = rateLimiter.CheckRateLimit(ctx, firstActor, 1, 1)
	assert.NoError(t, err)
	assert.False(t, result.Allowed)

	result, err = rateLimiter.CheckRateLimit(ctx, secondActor, 1, 1)
	assert.NoError(t, err)
	assert.True(t, result.Allowed)
}

func Test_ResetRateLimit_WhenBucketExhausted_RestoresTokens(t *testing.T) {
	rateLimiter := NewRateLimiter()
	actorID := uuid.New()
	ctx := context.Background()

	_ = rateLimiter.ResetRateLimit(ctx, actorID)

	_, err := rateLimiter.CheckRateLimit(ctx, actorID, 1, 1)
	assert.NoError(t, err)

	err = rateLimiter.ResetRateLimit(ctx, actorID)
	assert.NoError(t, err)

	result, err := rateLimiter.CheckRateLimit(ctx, actorID, 1, 1)
	assert.NoError(t, err)
	assert.True(t, result.Allowed)
}

func Test_CheckRateLimit_WhenLimitsNotPositive_UsesFallbacks(t *testing.T) {
	rps, burst := normalizeLimits(0, -1)
	assert.Equal(t, fallbackRatePerSecond, rps)
	assert.Equal(t, minFallbackBurst, burst)

	rps, burst = normalizeLimits(200, 0)
	assert.Equal(t, 200, rps)
	assert.Equal(t, 1000, burst)

	rps, burst = normalizeLimits(3, 7)
	assert.Equal(t, 3, rps)
	assert.Equal(t, 7, burst)
}

func Test_CheckRateLimit_WhenBucketEmpty_RetryAfterRoundsUpToWholeSeconds(t *testing.T) {
	startedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	denied, err := resultFromReply([]int64{0, 0, 1500, 4200}, startedAt)
	assert.NoError(t, err)
	assert.False(t, denied.Allowed)
	assert.Equal(t, 2, denied.RetryAfterSec)
	assert.Equal(t, startedAt.Add(4200*time.Millisecond), denied.ResetTime)

	denied, err = resultFromReply([]int64{0, 0, 0, 0}, startedAt)
	assert.NoError(t, err)
	assert.Equal(t, 1, denied.RetryAfterSec)

	allowed, err := resultFromReply([]int64{1, 3, 0, 250}, startedAt)
	assert.NoError(t, err)
	assert.True(t, allowed.Allowed)
	assert.Equal(t, 3, allowed.Remaining)
	assert.Equal(t, 0, allowed.RetryAfterSec)
}

func Test_CheckRateLimit_WhenReplyMalformed_ReturnsError(t *testing.T) {
	_, err := resultFromReply([]int64{1, 2, 3}, time.Now())
	assert.Error(t, err)
}

func Test_CheckRateLimit_WhenTimePasses_RefillsFractionally(t *testing.T) {
	rateLimiter := NewRateLimiter()
	actorID := uuid.New()
	ctx := context.Background()

	clock := time.Now()
	rateLimiter.now = func() time.Time { return clock }

	_ = rateLimiter.ResetRateLimit(ctx, actorID)

	// 2 tokens per second, burst 1
	result, err := rateLimiter.CheckRateLimit(ctx, actorID, 2, 1)
	assert.NoError(t, err)
	assert.True(t, result.Allowed)

	clock = clock.Add(250 * time.Millisecond)
	result, err = rateLimiter.CheckRateLimit(ctx, actorID, 2, 1)
	assert.NoError(t, err)
	assert.False(t, result.Allowed)

	// the half token from the denied call is kept, another 250ms completes it
	clock = clock.Add(250 * time.Millisecond)
	result, err = rateLimiter.CheckRateLimit(ctx, actorID, 2, 1)
	assert.NoError(t, err)
	assert.True(t, result.Allowed)
}
