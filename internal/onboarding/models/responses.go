package models

import (
	id "onboard/pkg/domain"
)

// InviteResult is returned by invite creation. URL and Token are only exposed by the
// transport in development mode.
type InviteResult struct {
	CustomerID id.CustomerID
	Created    bool
	URL        string
	Token      string
}

// InviteStatus answers the public invite check.
type InviteStatus struct {
	CustomerID       id.CustomerID `json:"customerId"`
	Email            string        `json:"email"`
	Phone            string        `json:"phone"`
	UserExists       bool          `json:"userExists"`
	UserID           id.UserID     `json:"userId"`
	LinkedToCustomer bool          `json:"linkedToCustomer"`
	IsInviteActive   bool          `json:"isInviteActive"`
}

// AcceptResult reports the outcome of one acceptance call.
type AcceptResult struct {
	CustomerID  id.CustomerID
	UserID      id.UserID
	KycStatus   KycStatus
	State       OnboardingState
	EntityKycID id.EntityKycID
	Required    []string
}

// Finalized reports whether the invite was consumed by this call.
func (r *AcceptResult) Finalized() bool {
	return r.State == StateFinalized
}
