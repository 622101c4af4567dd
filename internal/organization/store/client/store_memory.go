// Package client persists invite-issuing clients.
package client

import (
	"context"
	"fmt"
	"sync"

	"onboard/internal/organization/models"
	id "onboard/pkg/domain"
	"onboard/pkg/platform/sentinel"
)

// InMemory is a thread-safe in-memory client store.
type InMemory struct {
	mu      sync.RWMutex
	clients map[id.ClientID]models.Client
}

func NewInMemory() *InMemory {
	return &InMemory{clients: make(map[id.ClientID]models.Client)}
}

func (s *InMemory) Create(_ context.Context, c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c.ID]; ok {
		return fmt.Errorf("client %s: %w", c.ID, sentinel.ErrConflict)
	}
	s.clients[c.ID] = *c
	return nil
}

func (s *InMemory) FindByID(_ context.Context, clientID id.ClientID) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[clientID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &c, nil
}

// FindByOwner returns the oldest client owned by the user.
func (s *InMemory) FindByOwner(_ context.Context, owner id.UserID) (*models.Client, error) {
	if owner.IsNil() {
		return nil, sentinel.ErrNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var found *models.Client
	for _, c := range s.clients {
		if c.OwnerUserID != owner {
			continue
		}
		if found == nil || c.CreatedAt.Before(found.CreatedAt) {
			cp := c
			found = &cp
		}
	}
	if found == nil {
		return nil, sentinel.ErrNotFound
	}
	return found, nil
}
