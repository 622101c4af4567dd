// Package entitykyc persists entity KYC documents.
package entitykyc

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"onboard/internal/onboarding/models"
	id "onboard/pkg/domain"
	"onboard/pkg/platform/sentinel"
)

type scopeKey struct {
	kind     models.EntityKind
	customer id.CustomerID
	client   id.ClientID
	branch   id.BranchID
}

// InMemory stores documents as JSON so callers never share pointers with the store.
type InMemory struct {
	mu   sync.RWMutex
	docs map[scopeKey][]byte
}

func NewInMemory() *InMemory {
	return &InMemory{docs: make(map[scopeKey][]byte)}
}

func (s *InMemory) FindByScope(_ context.Context, kind models.EntityKind, customer id.CustomerID, client id.ClientID, branch id.BranchID) (models.EntityKyc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.docs[scopeKey{kind, customer, client, branch}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return decode(kind, raw)
}

// FindByCustomerClient returns the first document for (customer, client) regardless of
// branch, preferring the client-level document.
func (s *InMemory) FindByCustomerClient(_ context.Context, kind models.EntityKind, customer id.CustomerID, client id.ClientID) (models.EntityKyc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if raw, ok := s.docs[scopeKey{kind, customer, client, id.BranchID{}}]; ok {
		return decode(kind, raw)
	}
	for key, raw := range s.docs {
		if key.kind == kind && key.customer == customer && key.client == client {
			return decode(kind, raw)
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) Save(_ context.Context, doc models.EntityKyc) error {
	h := doc.Header()
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode entity kyc: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := scopeKey{doc.Kind(), h.Customer, h.Client, h.Branch}
	if prev, ok := s.docs[key]; ok {
		existing, err := decode(doc.Kind(), prev)
		if err != nil {
			return err
		}
		if existing.Header().ID != h.ID {
			return fmt.Errorf("entity kyc for scope already exists: %w", sentinel.ErrConflict)
		}
	}
	s.docs[key] = raw
	return nil
}

func decode(kind models.EntityKind, raw []byte) (models.EntityKyc, error) {
	doc := models.NewEntityKyc(kind)
	if doc == nil {
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("decode entity kyc: %w", err)
	}
	return doc, nil
}
