package service

import (
	"context"

	identitymodels "onboard/internal/identity/models"
	"onboard/internal/onboarding/models"
	dErrors "onboard/pkg/domain-errors"
	"onboard/pkg/requestcontext"
)

// actingUser loads the authenticated user. A token subject missing from the directory
// is forbidden rather than not found.
func (s *Service) actingUser(ctx context.Context) (*identitymodels.User, error) {
	actor := requestcontext.UserID(ctx)
	if actor.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "Authentication required")
	}
	user, err := s.resolver.FindByID(ctx, actor)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, dErrors.New(dErrors.CodeForbidden, "Unknown user")
	}
	return user, nil
}

func isOperator(user *identitymodels.User) bool {
	switch user.UserType {
	case identitymodels.UserTypeAdmin, identitymodels.UserTypeClient, identitymodels.UserTypeBranch:
		return true
	}
	return false
}

// authorizeCustomerRead allows admins, the customer's linked user, and operators whose
// client or branch holds a relation to the customer.
func (s *Service) authorizeCustomerRead(ctx context.Context, user *identitymodels.User, c *models.Customer) error {
	if user.UserType == identitymodels.UserTypeAdmin || c.UserID == user.ID {
		return nil
	}
	if !isOperator(user) {
		return dErrors.New(dErrors.CodeForbidden, "Not allowed to view this customer")
	}
	scope, err := s.org.ScopeForActor(ctx, user.ID)
	if err != nil {
		return err
	}
	for _, rel := range c.Relations {
		if scope.Covers(rel.Client, rel.Branch) {
			return nil
		}
	}
	return dErrors.New(dErrors.CodeForbidden, "Not allowed to view this customer")
}
