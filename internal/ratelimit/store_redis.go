package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slidingWindowScript trims the sorted set to the window, then records the request
// if it fits. Returns {allowed, count, oldestMillis}.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
local allowed = 0
if count < limit then
  redis.call('ZADD', key, now, member)
  count = count + 1
  allowed = 1
end
redis.call('PEXPIRE', key, window)
local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local oldestScore = now
if oldest[2] then
  oldestScore = tonumber(oldest[2])
end
return {allowed, count, oldestScore}
`)

// Redis shares counters across replicas.
type Redis struct {
	client redis.Scripter
	now    func() time.Time
}

func NewRedis(client redis.Scripter) *Redis {
	return &Redis{client: client, now: time.Now}
}

func (s *Redis) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	now := s.now()
	raw, err := slidingWindowScript.Run(ctx, s.client, []string{key},
		now.UnixMilli(), window.Milliseconds(), limit, uuid.NewString()).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("rate limit script: %w", err)
	}
	if len(raw) != 3 {
		return nil, fmt.Errorf("rate limit script: unexpected reply of length %d", len(raw))
	}

	resetAt := time.UnixMilli(raw[2]).Add(window)
	res := &Result{
		Allowed:   raw[0] == 1,
		Limit:     limit,
		Remaining: max(limit-int(raw[1]), 0),
		ResetAt:   resetAt,
	}
	if !res.Allowed {
		res.RetryAfter = retryAfterSeconds(resetAt, now)
	}
	return res, nil
}
