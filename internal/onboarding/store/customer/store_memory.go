// Package customer persists onboarding customers with optimistic versioning.
package customer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"onboard/internal/onboarding/models"
	id "onboard/pkg/domain"
	"onboard/pkg/platform/sentinel"
)

// InMemory is a thread-safe customer store for tests and development.
type InMemory struct {
	mu        sync.RWMutex
	customers map[id.CustomerID]*models.Customer
}

func NewInMemory() *InMemory {
	return &InMemory{customers: make(map[id.CustomerID]*models.Customer)}
}

func (s *InMemory) FindByID(_ context.Context, customerID id.CustomerID) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[customerID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(c)
}

func (s *InMemory) FindByUserID(_ context.Context, userID id.UserID) (*models.Customer, error) {
	if userID.IsNil() {
		return nil, sentinel.ErrNotFound
	}
	return s.findFirst(func(c *models.Customer) bool { return c.UserID == userID })
}

// FindByContactEmail matches the email declared in personal KYC.
func (s *InMemory) FindByContactEmail(_ context.Context, email string) (*models.Customer, error) {
	if email == "" {
		return nil, sentinel.ErrNotFound
	}
	return s.findFirst(func(c *models.Customer) bool { return c.PersonalKyc.ContactEmail() == email })
}

// FindByInviteContact matches a customer not yet linked to a user by the contact its
// latest invite was sent to, trying email before phone.
func (s *InMemory) FindByInviteContact(_ context.Context, email, phone string) (*models.Customer, error) {
	if email != "" {
		c, err := s.findFirst(func(c *models.Customer) bool {
			return c.UserID.IsNil() && c.Metadata[models.MetaEmail] == email
		})
		if err == nil {
			return c, nil
		}
	}
	if phone == "" {
		return nil, sentinel.ErrNotFound
	}
	return s.findFirst(func(c *models.Customer) bool {
		return c.UserID.IsNil() && c.Metadata[models.MetaPhone] == phone
	})
}

func (s *InMemory) FindByInviteTokenHash(_ context.Context, hash string) (*models.Customer, error) {
	if hash == "" {
		return nil, sentinel.ErrNotFound
	}
	return s.findFirst(func(c *models.Customer) bool { return c.InviteTokenHash == hash })
}

// Create stores a new customer at version 1.
func (s *InMemory) Create(_ context.Context, c *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.customers[c.ID]; ok {
		return fmt.Errorf("customer %s: %w", c.ID, sentinel.ErrConflict)
	}
	if err := s.checkTokenUnique(c); err != nil {
		return err
	}
	c.Version = 1
	stored, err := clone(c)
	if err != nil {
		return err
	}
	s.customers[c.ID] = stored
	return nil
}

// Update writes c when its Version matches the stored one, then bumps it.
func (s *InMemory) Update(_ context.Context, c *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.customers[c.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if current.Version != c.Version {
		return fmt.Errorf("customer %s version %d is stale: %w", c.ID, c.Version, sentinel.ErrConflict)
	}
	if err := s.checkTokenUnique(c); err != nil {
		return err
	}
	c.Version++
	stored, err := clone(c)
	if err != nil {
		c.Version--
		return err
	}
	s.customers[c.ID] = stored
	return nil
}

func (s *InMemory) findFirst(match func(*models.Customer) bool) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var found *models.Customer
	for _, c := range s.customers {
		if !match(c) {
			continue
		}
		if found == nil || c.CreatedAt.Before(found.CreatedAt) {
			found = c
		}
	}
	if found == nil {
		return nil, sentinel.ErrNotFound
	}
	return clone(found)
}

func (s *InMemory) checkTokenUnique(c *models.Customer) error {
	if c.InviteTokenHash == "" {
		return nil
	}
	for otherID, other := range s.customers {
		if otherID != c.ID && other.InviteTokenHash == c.InviteTokenHash {
			return fmt.Errorf("invite token already assigned: %w", sentinel.ErrConflict)
		}
	}
	return nil
}

// clone deep-copies through JSON and carries over the fields JSON never sees.
func clone(c *models.Customer) (*models.Customer, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode customer: %w", err)
	}
	out := &models.Customer{}
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("decode customer: %w", err)
	}
	out.InviteTokenHash = c.InviteTokenHash
	out.InviteTokenPlain = c.InviteTokenPlain
	if c.InviteTokenExpiresAt != nil {
		t := *c.InviteTokenExpiresAt
		out.InviteTokenExpiresAt = &t
	}
	return out, nil
}
