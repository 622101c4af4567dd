// Package worker relays committed outbox rows to Kafka.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"onboard/pkg/platform/audit/store/postgres"
)

type Source interface {
	FetchPending(ctx context.Context, limit int) ([]postgres.Entry, error)
	MarkProcessed(ctx context.Context, entryID uuid.UUID, at time.Time) error
}

// Sink matches kafka.Producer.Publish.
type Sink interface {
	Publish(ctx context.Context, topic, key string, value []byte, headers map[string]string) error
}

// Relay polls the outbox and forwards entries in creation order. An entry is
// marked processed only after the broker acknowledges it, so delivery is at
// least once.
type Relay struct {
	source   Source
	sink     Sink
	topic    string
	interval time.Duration
	batch    int
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*Relay)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Relay) {
		r.logger = logger
	}
}

func WithInterval(d time.Duration) Option {
	return func(r *Relay) {
		if d > 0 {
			r.interval = d
		}
	}
}

func WithBatchSize(n int) Option {
	return func(r *Relay) {
		if n > 0 {
			r.batch = n
		}
	}
}

func NewRelay(source Source, sink Sink, topic string, opts ...Option) *Relay {
	r := &Relay{
		source:   source,
		sink:     sink,
		topic:    topic,
		interval: 2 * time.Second,
		batch:    100,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run relays until ctx is cancelled. Errors are logged and retried on the next tick.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.RelayOnce(ctx); err != nil && r.logger != nil {
				r.logger.WarnContext(ctx, "audit relay failed", "error", err)
			}
		}
	}
}

// RelayOnce forwards one batch and returns how many entries were delivered.
// It stops at the first failed publish to keep per-customer ordering.
func (r *Relay) RelayOnce(ctx context.Context) (int, error) {
	entries, err := r.source.FetchPending(ctx, r.batch)
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, e := range entries {
		headers := map[string]string{"event_type": e.EventType}
		if err := r.sink.Publish(ctx, r.topic, e.AggregateID, e.Payload, headers); err != nil {
			return sent, err
		}
		if err := r.source.MarkProcessed(ctx, e.ID, r.now()); err != nil {
			return sent, err
		}
		sent++
	}
	if sent > 0 && r.logger != nil {
		r.logger.DebugContext(ctx, "audit events relayed", "count", sent)
	}
	return sent, nil
}
