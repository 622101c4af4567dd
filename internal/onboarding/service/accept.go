package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"onboard/internal/identity"
	identitymodels "onboard/internal/identity/models"
	"onboard/internal/onboarding/invite"
	"onboard/internal/onboarding/kyc"
	"onboard/internal/onboarding/lock"
	"onboard/internal/onboarding/models"
	id "onboard/pkg/domain"
	dErrors "onboard/pkg/domain-errors"
	audit "onboard/pkg/platform/audit"
	"onboard/pkg/platform/sentinel"
	"onboard/pkg/requestcontext"
)

const (
	notePersonalProvided = "Personal KYC provided by invited user"
	requiredPersonalKyc  = "personalKyc"
)

const (
	outcomeFinalized = "finalized"
	outcomePartial   = "partial"
	outcomeRejected  = "rejected"
)

// AcceptInvite records the KYC an invited user submits and finalizes the invite once
// everything required for the requested type is on file.
//
// Checks run in a fixed order: authentication and role, request shape, customer
// lookup, token, client context, KYC mutation, finalization decision, save. The
// customer is locked from lookup to save, and the save is version-checked.
func (s *Service) AcceptInvite(ctx context.Context, req *models.AcceptInviteRequest) (res *models.AcceptResult, err error) {
	start := time.Now()
	ctx, span := s.startSpan(ctx, "AcceptInvite")
	defer func() {
		endSpan(span, err)
		if s.metrics != nil {
			s.metrics.ObserveAccept(start)
			if err != nil {
				s.metrics.IncrementAcceptance(outcomeRejected)
			}
		}
	}()

	actor := requestcontext.UserID(ctx)
	if actor.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "Authentication required")
	}
	user, err := s.resolver.Resolve(ctx, identity.Contact{}, actor)
	if err != nil {
		return nil, err
	}
	if user.UserType != identitymodels.UserTypeCustomer {
		return nil, dErrors.New(dErrors.CodeForbidden, "Only invited customers can accept an invite")
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	customerID, err := s.lookupAcceptTarget(ctx, req)
	if err != nil {
		return nil, err
	}

	release, err := s.locker.Acquire(ctx, lock.CustomerKey(customerID.String()), s.lockTTL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if relErr := release(context.WithoutCancel(ctx)); relErr != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "failed to release customer lock", "customer_id", customerID, "error", relErr)
		}
	}()

	// reload under the lock so a concurrent finalization is observed
	customer, err := s.loadCustomer(ctx, customerID, "Customer not found")
	if err != nil {
		return nil, err
	}

	now := s.clock(ctx)
	if err := invite.Validate(customer, req.Token, now); err != nil {
		_ = s.logAudit(ctx, audit.EventInviteRejected, customer, "reason", err.Error())
		return nil, err
	}

	clientID, branchID, err := customer.ClientContext()
	if err != nil {
		return nil, err
	}

	customer.LinkUser(user.ID)

	entityType := models.EntityType(req.RequestedType)
	res = &models.AcceptResult{CustomerID: customer.ID, UserID: user.ID}
	if entityType.IsIndividual() {
		if !kyc.UpsertPersonalKyc(customer, req.PersonalKyc) {
			return nil, dErrors.New(dErrors.CodeValidation, "Personal KYC is required")
		}
		customer.RecordKycStatus(models.KycStatusInReview, notePersonalProvided, actor, now)
		finalize(customer, now)
	} else {
		kyc.UpsertPersonalKyc(customer, req.PersonalKyc)
		doc, err := s.kyc.UpsertEntityKyc(ctx, entityType, req.Kyc, customer.ID, clientID, branchID)
		if err != nil {
			return nil, err
		}
		if doc != nil {
			res.EntityKycID = doc.Header().ID
		}
		res.Required = missingPieces(customer, entityType, doc)
		if len(res.Required) > 0 {
			note := fmt.Sprintf("Processed entity KYC input for type %s; missing: %s",
				entityType, strings.Join(res.Required, ", "))
			customer.RecordKycStatus(models.KycStatusPending, note, actor, now)
		} else {
			note := fmt.Sprintf("Entity (%s) KYC provided & representative personal KYC present", entityType)
			customer.RecordKycStatus(models.KycStatusInReview, note, actor, now)
			finalize(customer, now)
		}
	}

	event, outcome := audit.EventOnboardingFinalized, outcomeFinalized
	if len(res.Required) > 0 {
		event, outcome = audit.EventKycPartial, outcomePartial
	}
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.customers.Update(ctx, customer); err != nil {
			return translateSaveError(err)
		}
		// compliance events must persist with the state change
		return s.logAudit(ctx, event, customer,
			"user_id", user.ID.String(),
			"reason", strings.Join(res.Required, ", "),
		)
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementAcceptance(outcome)
	}
	res.KycStatus = customer.KycStatus
	res.State = customer.State()
	return res, nil
}

// lookupAcceptTarget finds the customer by cid when given, otherwise by token hash.
func (s *Service) lookupAcceptTarget(ctx context.Context, req *models.AcceptInviteRequest) (id.CustomerID, error) {
	if req.CustomerID != "" {
		customerID, err := id.ParseCustomerID(req.CustomerID)
		if err != nil {
			return id.CustomerID{}, dErrors.New(dErrors.CodeNotFound, "Customer not found")
		}
		c, err := s.loadCustomer(ctx, customerID, "Customer not found")
		if err != nil {
			return id.CustomerID{}, err
		}
		return c.ID, nil
	}

	c, err := s.customers.FindByInviteTokenHash(ctx, invite.Hash(req.Token))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return id.CustomerID{}, dErrors.New(dErrors.CodeNotFound, "Invite not found")
		}
		return id.CustomerID{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up invite")
	}
	return c.ID, nil
}

func missingPieces(c *models.Customer, entityType models.EntityType, doc models.EntityKyc) []string {
	var missing []string
	if !c.HasPersonalKyc() {
		missing = append(missing, requiredPersonalKyc)
	}
	if doc == nil {
		missing = append(missing, entityType.RequiredPieceName())
	}
	return missing
}

func finalize(c *models.Customer, now time.Time) {
	invite.Clear(c)
	c.ApplyFinalization(now)
}
