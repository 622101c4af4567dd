package publisher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "onboard/pkg/domain"
	audit "onboard/pkg/platform/audit"
	"onboard/pkg/platform/audit/store/memory"
)

type failingStore struct{}

func (failingStore) Append(context.Context, audit.Event) error {
	return errors.New("disk full")
}

func (failingStore) ListBySubject(context.Context, string) ([]audit.Event, error) {
	return nil, nil
}

func TestPublisher_EmitAndList(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := New(store)

	subject := uuid.NewString()
	err := pub.Emit(context.Background(), audit.Event{
		Subject: subject,
		ActorID: id.UserID(uuid.New()),
		Action:  string(audit.EventInviteCreated),
	})
	require.NoError(t, err)

	events, err := pub.List(context.Background(), subject)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventInviteCreated), events[0].Action)
	assert.Equal(t, audit.CategoryOperations, events[0].Category)
}

func TestPublisher_DerivesCategoryFromAction(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := New(store)

	subject := uuid.NewString()
	require.NoError(t, pub.Emit(context.Background(), audit.Event{Subject: subject, Action: string(audit.EventOnboardingFinalized)}))
	require.NoError(t, pub.Emit(context.Background(), audit.Event{Subject: subject, Action: string(audit.EventInviteRejected)}))

	events, err := pub.List(context.Background(), subject)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, audit.CategoryCompliance, events[0].Category)
	assert.Equal(t, audit.CategorySecurity, events[1].Category)
}

func TestPublisher_SetsTimestamp(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store := memory.NewInMemoryStore()
	pub := New(store, WithClock(func() time.Time { return fixed }))

	subject := uuid.NewString()
	require.NoError(t, pub.Emit(context.Background(), audit.Event{Subject: subject, Action: string(audit.EventKycPartial)}))

	events, err := pub.List(context.Background(), subject)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, fixed, events[0].Timestamp)
}

func TestPublisher_PreservesExistingTimestamp(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := New(store)

	subject := uuid.NewString()
	custom := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, pub.Emit(context.Background(), audit.Event{
		Subject:   subject,
		Action:    string(audit.EventInviteValidated),
		Timestamp: custom,
	}))

	events, err := pub.List(context.Background(), subject)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, custom, events[0].Timestamp)
}

func TestPublisher_RejectsMissingAction(t *testing.T) {
	pub := New(memory.NewInMemoryStore())
	err := pub.Emit(context.Background(), audit.Event{Subject: "x"})
	require.ErrorIs(t, err, errMissingAction)
}

func TestPublisher_PersistFailureIsReturnedAndCounted(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	pub := New(failingStore{}, WithMetrics(m))

	err := pub.Emit(context.Background(), audit.Event{Subject: "x", Action: string(audit.EventInviteCreated)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.PersistFailures))
}

func TestPublisher_SeparatesSubjects(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	pub := New(memory.NewInMemoryStore(), WithMetrics(m))

	first, second := uuid.NewString(), uuid.NewString()
	require.NoError(t, pub.Emit(context.Background(), audit.Event{Subject: first, Action: string(audit.EventInviteCreated)}))
	require.NoError(t, pub.Emit(context.Background(), audit.Event{Subject: second, Action: string(audit.EventOnboardingFinalized)}))

	events, err := pub.List(context.Background(), first)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventInviteCreated), events[0].Action)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.Emitted.WithLabelValues("operations")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Emitted.WithLabelValues("compliance")))
}
