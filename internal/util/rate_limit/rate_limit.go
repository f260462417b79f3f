package rate_limit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"teamspace/internal/cache"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

const (
	memberMutationsKeyPrefix = "ts_rate_limit:member_mutations:"
	bucketCallTimeout        = 5 * time.Second

	fallbackRatePerSecond = 100
	minFallbackBurst      = 500
)

// Each actor owns a hash {tokens, ts}. Tokens refill continuously, so a
// fraction of a token earned between two calls is kept rather than lost.
// Reply: {allowed, whole tokens left, ms until next token, ms until full}.
var takeTokenScript = valkey.NewLuaScript(`
local rps = tonumber(ARGV[2])
local burst = tonumber(ARGV[3])
local now = tonumber(ARGV[1])

local state = redis.call('HMGET', KEYS[1], 'tokens', 'ts')
local tokens = tonumber(state[1])
local ts = tonumber(state[2])
if tokens == nil or ts == nil then
    tokens = burst
    ts = now
end

if now > ts then
    tokens = math.min(burst, tokens + (now - ts) * rps / 1000)
end

local allowed = 0
if tokens >= 1 then
    tokens = tokens - 1
    allowed = 1
end

local full_in = math.ceil((burst - tokens) * 1000 / rps)
local next_in = 0
if tokens < 1 then
    next_in = math.ceil((1 - tokens) * 1000 / rps)
end

redis.call('HSET', KEYS[1], 'tokens', tostring(tokens), 'ts', now)
redis.call('PEXPIRE', KEYS[1], full_in + 1000)

return {allowed, math.floor(tokens), next_in, full_in}
`)

// RateLimiter throttles membership mutations per acting user with a token
// bucket kept in valkey, so every API instance shares one budget.
type RateLimiter struct {
	client valkey.Client
	now    func() time.Time
}

type RateLimitResult struct {
	Allowed       bool      `json:"allowed"`
	Remaining     int       `json:"remaining"`
	ResetTime     time.Time `json:"resetTime"`
	RetryAfterSec int       `json:"retryAfterSec,omitempty"`
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		client: cache.GetCache(),
		now:    time.Now,
	}
}

// CheckRateLimit takes one token from the actor's bucket. Non-positive
// limits fall back to the service defaults.
func (r *RateLimiter) CheckRateLimit(
	ctx context.Context,
	actorID uuid.UUID,
	rpsLimit, burstLimit int,
) (*RateLimitResult, error) {
	rps, burst := normalizeLimits(rpsLimit, burstLimit)

	ctx, cancel := context.WithTimeout(ctx, bucketCallTimeout)
	defer cancel()

	startedAt := r.now()
	reply, err := takeTokenScript.Exec(
		ctx,
		r.client,
		[]string{bucketKey(actorID)},
		[]string{
			strconv.FormatInt(startedAt.UnixMilli(), 10),
			strconv.Itoa(rps),
			strconv.Itoa(burst),
		},
	).AsIntSlice()
	if err != nil {
		return nil, fmt.Errorf("failed to take rate limit token for %s: %w", actorID, err)
	}

	return resultFromReply(reply, startedAt)
}

// ResetRateLimit refills the actor's bucket to its burst size.
func (r *RateLimiter) ResetRateLimit(ctx context.Context, actorID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, bucketCallTimeout)
	defer cancel()

	if err := r.client.Do(ctx, r.client.B().Del().Key(bucketKey(actorID)).Build()).Error(); err != nil {
		return fmt.Errorf("failed to reset rate limit for %s: %w", actorID, err)
	}

	return nil
}

func bucketKey(actorID uuid.UUID) string {
	return memberMutationsKeyPrefix + actorID.String()
}

func normalizeLimits(rpsLimit, burstLimit int) (int, int) {
	if rpsLimit <= 0 {
		rpsLimit = fallbackRatePerSecond
	}

	if burstLimit <= 0 {
		burstLimit = max(rpsLimit*5, minFallbackBurst)
	}

	return rpsLimit, burstLimit
}

func resultFromReply(reply []int64, startedAt time.Time) (*RateLimitResult, error) {
	if len(reply) != 4 {
		return nil, fmt.Errorf("unexpected rate limit reply: want 4 values, got %d", len(reply))
	}

	allowed, remaining, nextTokenMs, fullMs := reply[0] == 1, reply[1], reply[2], reply[3]

	result := &RateLimitResult{
		Allowed:   allowed,
		Remaining: int(remaining),
		ResetTime: startedAt.Add(time.Duration(fullMs) * time.Millisecond),
	}

	if !allowed {
		// Retry-After is whole seconds; never advertise 0 on a denial
		result.RetryAfterSec = max(1, int((nextTokenMs+999)/1000))
	}

	return result, nil
}
