// Package kafka wraps a franz-go client for the topics this service writes to.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"onboard/internal/platform/config"
)

// Producer publishes records synchronously.
type Producer struct {
	client *kgo.Client
	logger *slog.Logger
}

// NewProducer connects to the brokers, retrying the first ping with backoff.
func NewProducer(ctx context.Context, cfg config.KafkaConfig, logger *slog.Logger) (*Producer, error) {
	if !cfg.Enabled() {
		return nil, errors.New("kafka brokers are not configured")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchMaxBytes(1<<20),
		kgo.RecordDeliveryTimeout(10*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		if err := client.Ping(ctx); err != nil {
			if logger != nil {
				logger.WarnContext(ctx, "kafka not reachable yet", "error", err)
			}
			return struct{}{}, err
		}
		return struct{}{}, nil
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxElapsedTime(30*time.Second))
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("ping kafka: %w", err)
	}
	return &Producer{client: client, logger: logger}, nil
}

// Publish writes one record and waits for the broker acknowledgement.
func (p *Producer) Publish(ctx context.Context, topic, key string, value []byte, headers map[string]string) error {
	rec := &kgo.Record{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	}
	for k, v := range headers {
		rec.Headers = append(rec.Headers, kgo.RecordHeader{Key: k, Value: []byte(v)})
	}
	if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("produce to %s: %w", topic, err)
	}
	return nil
}

// EnsureTopics creates missing topics. Existing topics are left untouched.
func (p *Producer) EnsureTopics(ctx context.Context, partitions int32, replicationFactor int16, topics ...string) error {
	adm := kadm.NewClient(p.client)
	resp, err := adm.CreateTopics(ctx, partitions, replicationFactor, nil, topics...)
	if err != nil {
		return fmt.Errorf("create topics: %w", err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

// Health pings the cluster.
func (p *Producer) Health(ctx context.Context) error {
	return p.client.Ping(ctx)
}

func (p *Producer) Close() {
	p.client.Close()
}
