package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "onboard/pkg/domain-errors"
)

func TestMemory_ExclusiveUntilReleased(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(50 * time.Millisecond)

	release, err := m.Acquire(ctx, CustomerKey("c-1"), time.Minute)
	require.NoError(t, err)

	_, err = m.Acquire(ctx, CustomerKey("c-1"), time.Minute)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))

	_, err = m.Acquire(ctx, CustomerKey("c-2"), time.Minute)
	require.NoError(t, err, "other customers are not blocked")

	require.NoError(t, release(ctx))
	_, err = m.Acquire(ctx, CustomerKey("c-1"), time.Minute)
	require.NoError(t, err)
}

func TestMemory_ExpiredLockCanBeTaken(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(10 * time.Millisecond)
	m.now = func() time.Time { return now }

	staleRelease, err := m.Acquire(ctx, "k", time.Second)
	require.NoError(t, err)

	now = now.Add(2 * time.Second)
	_, err = m.Acquire(ctx, "k", time.Second)
	require.NoError(t, err)

	// the stale owner must not free the new holder's lock
	require.NoError(t, staleRelease(ctx))
	_, err = m.Acquire(ctx, "k", time.Second)
	require.Error(t, err)
}

func TestMemory_WaitsForRelease(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(2 * time.Second)

	release, err := m.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)

	go func() {
		time.Sleep(30 * time.Millisecond)
		_ = release(ctx)
	}()

	_, err = m.Acquire(ctx, "k", time.Minute)
	require.NoError(t, err)
}

func TestMemory_SingleHolderUnderContention(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(10 * time.Millisecond)

	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Acquire(ctx, "k", time.Minute); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())
}
