package service

import (
	"context"

	"onboard/internal/organization/models"
	id "onboard/pkg/domain"
)

// SeedBootstrap creates a default client owned by owner and a branch managed by
// manager, for local development without a database.
func (s *Service) SeedBootstrap(ctx context.Context, owner, manager id.UserID) (*models.Client, *models.Branch, error) {
	c, err := s.CreateClient(ctx, "Default Client", "onboarding@example.com", owner)
	if err != nil {
		return nil, nil, err
	}
	b, err := s.CreateBranch(ctx, c.ID, "Head Office", "HO-001", manager)
	if err != nil {
		return nil, nil, err
	}
	return c, b, nil
}
