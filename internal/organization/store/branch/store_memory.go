// Package branch persists client branches.
package branch

import (
	"context"
	"fmt"
	"sync"

	"onboard/internal/organization/models"
	id "onboard/pkg/domain"
	"onboard/pkg/platform/sentinel"
)

// InMemory is a thread-safe in-memory branch store.
type InMemory struct {
	mu       sync.RWMutex
	branches map[id.BranchID]models.Branch
}

func NewInMemory() *InMemory {
	return &InMemory{branches: make(map[id.BranchID]models.Branch)}
}

func (s *InMemory) Create(_ context.Context, b *models.Branch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.branches[b.ID]; ok {
		return fmt.Errorf("branch %s: %w", b.ID, sentinel.ErrConflict)
	}
	s.branches[b.ID] = *b
	return nil
}

func (s *InMemory) FindByID(_ context.Context, branchID id.BranchID) (*models.Branch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.branches[branchID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &b, nil
}

// FindByManager returns the oldest branch managed by the user.
func (s *InMemory) FindByManager(_ context.Context, manager id.UserID) (*models.Branch, error) {
	if manager.IsNil() {
		return nil, sentinel.ErrNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var found *models.Branch
	for _, b := range s.branches {
		if b.ManagerUserID != manager {
			continue
		}
		if found == nil || b.CreatedAt.Before(found.CreatedAt) {
			cp := b
			found = &cp
		}
	}
	if found == nil {
		return nil, sentinel.ErrNotFound
	}
	return found, nil
}
