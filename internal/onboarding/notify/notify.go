// Package notify hands invite deliveries to the external email/SMS service.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// InviteDelivery is the message the delivery service renders and sends.
type InviteDelivery struct {
	CustomerID string  `json:"customerId"`
	Channel    Channel `json:"channel"`
	Recipient  string  `json:"recipient"`
	Subject    string  `json:"subject,omitempty"`
	Body       string  `json:"body"`
	URL        string  `json:"url"`
}

// Publisher matches kafka.Producer.Publish.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, value []byte, headers map[string]string) error
}

// Kafka publishes deliveries to a topic keyed by customer ID.
type Kafka struct {
	publisher Publisher
	topic     string
}

func NewKafka(publisher Publisher, topic string) *Kafka {
	return &Kafka{publisher: publisher, topic: topic}
}

func (k *Kafka) Notify(ctx context.Context, d InviteDelivery) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal invite delivery: %w", err)
	}
	return k.publisher.Publish(ctx, k.topic, d.CustomerID, payload, map[string]string{
		"channel": string(d.Channel),
	})
}

// Log writes deliveries to the log. Used in development and as the fallback
// while Kafka is unavailable.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Notify(ctx context.Context, d InviteDelivery) error {
	if l.logger == nil {
		return nil
	}
	// the recipient is logged, the invite URL is not: it carries the token
	l.logger.InfoContext(ctx, "invite delivery",
		"customer_id", d.CustomerID,
		"channel", d.Channel,
		"recipient", d.Recipient,
	)
	return nil
}
