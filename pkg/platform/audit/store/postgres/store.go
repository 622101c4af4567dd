package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	id "onboard/pkg/domain"
	audit "onboard/pkg/platform/audit"
	txcontext "onboard/pkg/platform/tx"
)

// Store implements audit.Store with the transactional outbox pattern. Events written
// inside a request transaction commit or roll back with it; the relay worker
// forwards committed rows to Kafka.
type Store struct {
	db txcontext.DBTX
}

func New(db txcontext.DBTX) *Store {
	return &Store{db: db}
}

// outboxPayload is the JSON record published to Kafka.
type outboxPayload struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Timestamp string `json:"timestamp"`
	ActorID   string `json:"actorId,omitempty"`
	Subject   string `json:"subject"`
	Action    string `json:"action"`
	ClientID  string `json:"clientId,omitempty"`
	BranchID  string `json:"branchId,omitempty"`
	Decision  string `json:"decision,omitempty"`
	Reason    string `json:"reason,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// Entry is one outbox row awaiting relay.
type Entry struct {
	ID          uuid.UUID
	AggregateID string
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	eventID := uuid.New()
	// the action decides the category
	category := audit.AuditEvent(event.Action).Category()

	payload := outboxPayload{
		ID:        eventID.String(),
		Category:  string(category),
		Timestamp: event.Timestamp.Format(time.RFC3339Nano),
		Subject:   event.Subject,
		Action:    event.Action,
		ClientID:  event.ClientID,
		BranchID:  event.BranchID,
		Decision:  event.Decision,
		Reason:    event.Reason,
		RequestID: event.RequestID,
	}
	if !event.ActorID.IsNil() {
		payload.ActorID = event.ActorID.String()
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	query := `
		INSERT INTO outbox (id, aggregate_type, aggregate_id, event_type, payload, created_at)
		VALUES ($1, 'customer', $2, $3, $4, $5)
	`
	_, err = txcontext.Querier(ctx, s.db).Exec(ctx, query,
		eventID, event.Subject, event.Action, payloadBytes, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}
	return nil
}

func (s *Store) ListBySubject(ctx context.Context, subject string) ([]audit.Event, error) {
	query := `
		SELECT payload FROM outbox
		WHERE aggregate_type = 'customer' AND aggregate_id = $1
		ORDER BY created_at
	`
	rows, err := txcontext.Querier(ctx, s.db).Query(ctx, query, subject)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event, err := toEvent(raw)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}

// FetchPending returns up to limit unrelayed entries, oldest first.
func (s *Store) FetchPending(ctx context.Context, limit int) ([]Entry, error) {
	query := `
		SELECT id, aggregate_id, event_type, payload, created_at
		FROM outbox
		WHERE processed_at IS NULL
		ORDER BY created_at
		LIMIT $1
	`
	rows, err := txcontext.Querier(ctx, s.db).Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query pending outbox: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.AggregateID, &e.EventType, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox: %w", err)
	}
	return entries, nil
}

func (s *Store) MarkProcessed(ctx context.Context, entryID uuid.UUID, at time.Time) error {
	_, err := txcontext.Querier(ctx, s.db).Exec(ctx,
		`UPDATE outbox SET processed_at = $2 WHERE id = $1`, entryID, at)
	if err != nil {
		return fmt.Errorf("mark outbox entry processed: %w", err)
	}
	return nil
}

func toEvent(raw []byte) (audit.Event, error) {
	var p outboxPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return audit.Event{}, fmt.Errorf("decode audit payload: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, p.Timestamp)
	if err != nil {
		return audit.Event{}, fmt.Errorf("decode audit timestamp: %w", err)
	}
	event := audit.Event{
		Category:  audit.EventCategory(p.Category),
		Timestamp: ts,
		Subject:   p.Subject,
		Action:    p.Action,
		ClientID:  p.ClientID,
		BranchID:  p.BranchID,
		Decision:  p.Decision,
		Reason:    p.Reason,
		RequestID: p.RequestID,
	}
	if p.ActorID != "" {
		actor, err := id.ParseUserID(p.ActorID)
		if err != nil {
			return audit.Event{}, err
		}
		event.ActorID = actor
	}
	return event, nil
}
