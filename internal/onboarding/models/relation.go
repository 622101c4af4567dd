package models

import (
	"time"

	id "onboard/pkg/domain"
)

// DefaultSource is recorded when an invite does not name one.
const DefaultSource = "in-branch"

// Relation links a customer to one client (and optionally one branch of it).
//
// Invariants:
//   - Client is never nil
//   - a customer holds at most one relation per (Client, Branch); a nil Branch is
//     its own bucket
//   - relations are reactivated, never deactivated, by invites
type Relation struct {
	Client            id.ClientID `json:"client"`
	Branch            id.BranchID `json:"branch"`
	Type              EntityType  `json:"type"`
	OnboardingChannel string      `json:"onboardingChannel"`
	RegisteredAt      time.Time   `json:"registeredAt"`
	Source            string      `json:"source"`
	Notes             string      `json:"notes"`
	Active            bool        `json:"active"`
}

// Matches reports whether r is the relation for (client, branch).
func (r Relation) Matches(client id.ClientID, branch id.BranchID) bool {
	return r.Client == client && r.Branch == branch
}
