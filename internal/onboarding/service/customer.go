package service

import (
	"context"

	"onboard/internal/onboarding/models"
	"onboard/internal/risk"
	id "onboard/pkg/domain"
)

// CustomerView is a customer with its derived onboarding and risk state.
type CustomerView struct {
	Customer       *models.Customer
	State          models.OnboardingState
	IsInviteActive bool
	Risk           risk.Result
}

// GetCustomer loads a customer the caller may see and derives its risk for this request.
func (s *Service) GetCustomer(ctx context.Context, customerID id.CustomerID) (view *CustomerView, err error) {
	ctx, span := s.startSpan(ctx, "GetCustomer")
	defer func() { endSpan(span, err) }()

	c, err := s.readableCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	now := s.clock(ctx)
	memo := risk.NewMemo(now)
	view = &CustomerView{
		Customer:       c,
		State:          c.State(),
		IsInviteActive: c.IsInviteActive(now),
		Risk:           s.assess(memo, c),
	}
	return view, nil
}

// Risk returns only the derived risk of a customer.
func (s *Service) Risk(ctx context.Context, customerID id.CustomerID) (result risk.Result, err error) {
	ctx, span := s.startSpan(ctx, "Risk")
	defer func() { endSpan(span, err) }()

	c, err := s.readableCustomer(ctx, customerID)
	if err != nil {
		return risk.Result{}, err
	}
	return s.assess(risk.NewMemo(s.clock(ctx)), c), nil
}

func (s *Service) readableCustomer(ctx context.Context, customerID id.CustomerID) (*models.Customer, error) {
	user, err := s.actingUser(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.loadCustomer(ctx, customerID, "Customer not found")
	if err != nil {
		return nil, err
	}
	if err := s.authorizeCustomerRead(ctx, user, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) assess(memo *risk.Memo, c *models.Customer) risk.Result {
	r := memo.Assess(c)
	if s.metrics != nil {
		s.metrics.IncrementRiskLabel(string(r.Label))
	}
	return r
}
