// Package ratelimit throttles unauthenticated endpoints per client IP using a
// sliding window.
package ratelimit

import (
	"context"
	"time"
)

// Result is the outcome of one Allow call.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter int // seconds; set only when !Allowed
}

// Store counts requests per key inside a sliding window and records the
// request when it fits.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}

// Policy is the limit applied to one endpoint class.
type Policy struct {
	Class  string
	Limit  int
	Window time.Duration
}

// Key scopes a counter to an endpoint class and client IP.
func Key(class, ip string) string {
	return "ratelimit:" + class + ":" + ip
}

func retryAfterSeconds(resetAt, now time.Time) int {
	secs := int(resetAt.Sub(now).Round(time.Second) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
