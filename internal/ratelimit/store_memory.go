package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Memory is a process-local Store. Counters are not shared across replicas; use
// Redis when more than one instance serves traffic.
type Memory struct {
	mu      sync.Mutex
	buckets map[string]*slidingWindow
	now     func() time.Time
}

type slidingWindow struct {
	timestamps []time.Time
	window     time.Duration
}

type MemoryOption func(*Memory)

// WithClock overrides time.Now for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		m.now = now
	}
}

func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{buckets: make(map[string]*slidingWindow), now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Allow(_ context.Context, key string, limit int, window time.Duration) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	sw := m.getOrCreateBucket(key, window)
	sw.cleanup(now)

	if len(sw.timestamps) < limit {
		sw.timestamps = append(sw.timestamps, now)
		return &Result{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit - len(sw.timestamps),
			ResetAt:   sw.timestamps[0].Add(window),
		}, nil
	}

	resetAt := now.Add(window)
	if len(sw.timestamps) > 0 {
		resetAt = sw.timestamps[0].Add(window)
	}
	return &Result{
		Allowed:    false,
		Limit:      limit,
		Remaining:  0,
		ResetAt:    resetAt,
		RetryAfter: retryAfterSeconds(resetAt, now),
	}, nil
}

// cleanup drops timestamps that fell out of the window.
func (sw *slidingWindow) cleanup(now time.Time) {
	cutoff := now.Add(-sw.window)
	i := 0
	for ; i < len(sw.timestamps); i++ {
		if sw.timestamps[i].After(cutoff) {
			break
		}
	}
	sw.timestamps = sw.timestamps[i:]
}

// getOrCreateBucket must be called with m.mu held.
func (m *Memory) getOrCreateBucket(key string, window time.Duration) *slidingWindow {
	if sw := m.buckets[key]; sw != nil {
		return sw
	}
	sw := &slidingWindow{window: window}
	m.buckets[key] = sw
	return sw
}
