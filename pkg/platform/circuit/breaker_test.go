package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreaker(t *testing.T) {
	t.Run("starts closed", func(t *testing.T) {
		b := New("invite-delivery")
		assert.Equal(t, "invite-delivery", b.Name())
		assert.Equal(t, StateClosed, b.State())
		assert.True(t, b.Allow())
	})

	t.Run("opens on the threshold-th consecutive failure", func(t *testing.T) {
		b := New("invite-delivery", WithFailureThreshold(3))

		for range 2 {
			fallback, change := b.RecordFailure()
			require.False(t, fallback)
			require.False(t, change.Opened)
		}
		fallback, change := b.RecordFailure()
		assert.True(t, fallback)
		assert.True(t, change.Opened)
		assert.True(t, b.IsOpen())

		fallback, change = b.RecordFailure()
		assert.True(t, fallback)
		assert.False(t, change.Opened, "already open")
	})

	t.Run("a success between failures restarts the count", func(t *testing.T) {
		b := New("invite-delivery", WithFailureThreshold(2))
		b.RecordFailure()
		b.RecordSuccess()
		b.RecordFailure()
		assert.False(t, b.IsOpen())
		b.RecordFailure()
		assert.True(t, b.IsOpen())
	})

	t.Run("closes after consecutive successes", func(t *testing.T) {
		b := New("invite-delivery", WithFailureThreshold(1), WithSuccessThreshold(2))
		b.RecordFailure()

		primary, change := b.RecordSuccess()
		assert.False(t, primary)
		assert.False(t, change.Closed)

		b.RecordFailure()
		primary, _ = b.RecordSuccess()
		assert.False(t, primary, "the failure reset the success streak")

		primary, change = b.RecordSuccess()
		assert.True(t, primary)
		assert.True(t, change.Closed)
		assert.Equal(t, StateClosed, b.State())
	})

	t.Run("reset closes immediately", func(t *testing.T) {
		b := New("invite-delivery", WithFailureThreshold(1))
		b.RecordFailure()
		b.Reset()
		assert.False(t, b.IsOpen())
		assert.True(t, b.Allow())
	})
}

func TestBreaker_ProbesOncePerCooldown(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	b := New("invite-delivery",
		WithFailureThreshold(1),
		WithCooldown(30*time.Second),
		WithClock(func() time.Time { return now }),
	)

	b.RecordFailure()
	assert.False(t, b.Allow())

	now = now.Add(29 * time.Second)
	assert.False(t, b.Allow())

	now = now.Add(time.Second)
	assert.True(t, b.Allow(), "one probe after the cooldown")
	assert.False(t, b.Allow(), "only one")
}
