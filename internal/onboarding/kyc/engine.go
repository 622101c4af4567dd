// Package kyc merges incoming KYC payloads into the personal and entity records of a
// customer.
package kyc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"onboard/internal/onboarding/models"
	id "onboard/pkg/domain"
	dErrors "onboard/pkg/domain-errors"
	"onboard/pkg/platform/sentinel"
)

// EntityStore persists entity KYC documents. Lookups return sentinel.ErrNotFound.
type EntityStore interface {
	FindByScope(ctx context.Context, kind models.EntityKind, customer id.CustomerID, client id.ClientID, branch id.BranchID) (models.EntityKyc, error)
	FindByCustomerClient(ctx context.Context, kind models.EntityKind, customer id.CustomerID, client id.ClientID) (models.EntityKyc, error)
	Save(ctx context.Context, doc models.EntityKyc) error
}

// Sections merged key by key; every other top-level section is replaced.
var shallowMergeSections = map[string]bool{
	"general_information": true,
	"trust_details":       true,
}

type Engine struct {
	store EntityStore
	now   func() time.Time
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func NewEngine(store EntityStore, opts ...Option) *Engine {
	e := &Engine{store: store, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// UpsertPersonalKyc merges incoming into the customer's personal KYC and reports
// whether the result is non-empty.
func UpsertPersonalKyc(c *models.Customer, incoming *models.PersonalKyc) bool {
	if incoming != nil {
		c.PersonalKyc.Merge(*incoming)
	}
	return c.HasPersonalKyc()
}

// UpsertEntityKyc creates or merges the entity document for the scope. An empty payload
// writes nothing and returns the existing document for (customer, client), or nil.
func (e *Engine) UpsertEntityKyc(ctx context.Context, entityType models.EntityType, payload models.KycPayload,
	customer id.CustomerID, client id.ClientID, branch id.BranchID) (models.EntityKyc, error) {
	kind, err := models.KindFor(entityType)
	if err != nil {
		return nil, err
	}

	if payload.IsEmpty() {
		doc, err := e.store.FindByCustomerClient(ctx, kind, customer, client)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load entity kyc")
		}
		return doc, nil
	}

	existing, err := e.store.FindByScope(ctx, kind, customer, client, branch)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load entity kyc")
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		existing = nil
	}

	base := map[string]json.RawMessage{}
	if existing != nil {
		raw, err := json.Marshal(existing)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode entity kyc")
		}
		if err := json.Unmarshal(raw, &base); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to decode entity kyc")
		}
	}
	if err := mergeSections(base, payload); err != nil {
		return nil, err
	}

	doc := models.NewEntityKyc(kind)
	raw, err := json.Marshal(base)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode entity kyc")
	}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("invalid %s kyc payload", kind))
	}

	now := e.now()
	h := doc.Header()
	if existing != nil {
		prev := existing.Header()
		h.ID = prev.ID
		h.CreatedAt = prev.CreatedAt
	} else {
		h.ID = id.EntityKycID(uuid.New())
		h.CreatedAt = now
	}
	h.Customer = customer
	h.Client = client
	h.Branch = branch
	h.EntityType = entityType
	h.UpdatedAt = now
	doc.Normalize()

	if err := e.store.Save(ctx, doc); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save entity kyc")
	}
	return doc, nil
}

func mergeSections(base map[string]json.RawMessage, payload models.KycPayload) error {
	header := make(map[string]bool, len(models.HeaderKeys))
	for _, k := range models.HeaderKeys {
		header[k] = true
	}
	for key, incoming := range payload {
		if header[key] {
			continue
		}
		current, ok := base[key]
		if !ok || !shallowMergeSections[key] {
			base[key] = incoming
			continue
		}
		merged, err := mergeObject(current, incoming)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeValidation, "invalid "+key)
		}
		base[key] = merged
	}
	return nil
}

func mergeObject(current, incoming json.RawMessage) (json.RawMessage, error) {
	into := map[string]json.RawMessage{}
	if len(current) > 0 && string(current) != "null" {
		if err := json.Unmarshal(current, &into); err != nil {
			return nil, err
		}
	}
	var patch map[string]json.RawMessage
	if err := json.Unmarshal(incoming, &patch); err != nil {
		return nil, err
	}
	if patch == nil {
		return incoming, nil
	}
	for k, v := range patch {
		into[k] = v
	}
	return json.Marshal(into)
}
