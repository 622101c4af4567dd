package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onboard/pkg/platform/audit/store/postgres"
)

type fakeSource struct {
	mu        sync.Mutex
	entries   []postgres.Entry
	processed []uuid.UUID
}

func (f *fakeSource) FetchPending(_ context.Context, limit int) ([]postgres.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []postgres.Entry
	for _, e := range f.entries {
		if f.isProcessed(e.ID) {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeSource) MarkProcessed(_ context.Context, entryID uuid.UUID, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.processed = append(f.processed, entryID)
	return nil
}

func (f *fakeSource) processedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.processed)
}

func (f *fakeSource) isProcessed(entryID uuid.UUID) bool {
	for _, p := range f.processed {
		if p == entryID {
			return true
		}
	}
	return false
}

type record struct {
	topic, key string
	headers    map[string]string
}

type fakeSink struct {
	records []record
	failOn  int
}

func (f *fakeSink) Publish(_ context.Context, topic, key string, _ []byte, headers map[string]string) error {
	if f.failOn > 0 && len(f.records)+1 == f.failOn {
		return errors.New("broker unavailable")
	}
	f.records = append(f.records, record{topic: topic, key: key, headers: headers})
	return nil
}

func entries(n int) []postgres.Entry {
	out := make([]postgres.Entry, n)
	for i := range out {
		out[i] = postgres.Entry{
			ID:          uuid.New(),
			AggregateID: "customer-1",
			EventType:   "invite_created",
			Payload:     []byte(`{}`),
		}
	}
	return out
}

func TestRelayOnce_DeliversAndMarks(t *testing.T) {
	src := &fakeSource{entries: entries(3)}
	sink := &fakeSink{}
	r := NewRelay(src, sink, "onboarding.audit-events")

	sent, err := r.RelayOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, sent)
	assert.Len(t, src.processed, 3)
	require.Len(t, sink.records, 3)
	assert.Equal(t, "onboarding.audit-events", sink.records[0].topic)
	assert.Equal(t, "customer-1", sink.records[0].key)
	assert.Equal(t, "invite_created", sink.records[0].headers["event_type"])
}

func TestRelayOnce_RespectsBatchSize(t *testing.T) {
	src := &fakeSource{entries: entries(5)}
	r := NewRelay(src, &fakeSink{}, "t", WithBatchSize(2))

	sent, err := r.RelayOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	sent, err = r.RelayOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
}

func TestRelayOnce_StopsAtFirstFailure(t *testing.T) {
	src := &fakeSource{entries: entries(3)}
	sink := &fakeSink{failOn: 2}
	r := NewRelay(src, sink, "t")

	sent, err := r.RelayOnce(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []uuid.UUID{src.entries[0].ID}, src.processed)

	sink.failOn = 0
	sent, err = r.RelayOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
}

func TestRun_StopsOnCancel(t *testing.T) {
	src := &fakeSource{entries: entries(1)}
	sink := &fakeSink{}
	r := NewRelay(src, sink, "t", WithInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool { return src.processedCount() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
