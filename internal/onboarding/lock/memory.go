package lock

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	owner   string
	expires time.Time
}

// Memory is a process-local Locker used when Redis is not configured.
type Memory struct {
	mu      sync.Mutex
	held    map[string]entry
	maxWait time.Duration
	now     func() time.Time
}

func NewMemory(maxWait time.Duration) *Memory {
	return &Memory{held: make(map[string]entry), maxWait: maxWait, now: time.Now}
}

func (m *Memory) Acquire(ctx context.Context, key string, ttl time.Duration) (Release, error) {
	owner, err := ownerToken()
	if err != nil {
		return nil, err
	}
	err = acquireWithin(ctx, m.maxWait, func(context.Context) (bool, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		now := m.now()
		if cur, ok := m.held[key]; ok && now.Before(cur.expires) {
			return false, nil
		}
		m.held[key] = entry{owner: owner, expires: now.Add(ttl)}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return func(context.Context) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		if cur, ok := m.held[key]; ok && cur.owner == owner {
			delete(m.held, key)
		}
		return nil
	}, nil
}
