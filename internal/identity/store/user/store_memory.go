// Package user persists platform users for contact lookups.
package user

import (
	"context"
	"fmt"
	"sync"

	"onboard/internal/identity/models"
	id "onboard/pkg/domain"
	"onboard/pkg/platform/sentinel"
)

// InMemory is a thread-safe in-memory user store.
type InMemory struct {
	mu    sync.RWMutex
	users map[id.UserID]models.User
}

func NewInMemory() *InMemory {
	return &InMemory{users: make(map[id.UserID]models.User)}
}

func (s *InMemory) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.ID == u.ID || (u.Email != "" && existing.Email == u.Email) {
			return fmt.Errorf("user %s: %w", u.ID, sentinel.ErrConflict)
		}
	}
	s.users[u.ID] = *u
	return nil
}

func (s *InMemory) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &u, nil
}

func (s *InMemory) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, sentinel.ErrNotFound
	}
	return s.findFirst(func(u models.User) bool { return u.Email == email })
}

func (s *InMemory) FindByPhone(_ context.Context, phone string) (*models.User, error) {
	if phone == "" {
		return nil, sentinel.ErrNotFound
	}
	return s.findFirst(func(u models.User) bool { return u.Phone == phone })
}

func (s *InMemory) findFirst(match func(models.User) bool) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var found *models.User
	for _, u := range s.users {
		if !match(u) {
			continue
		}
		if found == nil || u.CreatedAt.Before(found.CreatedAt) {
			cp := u
			found = &cp
		}
	}
	if found == nil {
		return nil, sentinel.ErrNotFound
	}
	return found, nil
}
