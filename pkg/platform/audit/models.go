package audit

import (
	"context"
	"time"

	id "onboard/pkg/domain"
)

// EventCategory classifies audit events by purpose so sinks can apply different
// retention.
type EventCategory string

const (
	// CategoryCompliance covers KYC state changes that regulators may ask about.
	CategoryCompliance EventCategory = "compliance"
	// CategorySecurity covers rejected or suspicious invite use.
	CategorySecurity EventCategory = "security"
	// CategoryOperations covers routine activity.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key onboarding actions.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	// ActorID is the authenticated user who triggered the action, if any.
	ActorID id.UserID
	// Subject is the customer the event is about.
	Subject   string
	Action    string
	ClientID  string
	BranchID  string
	Decision  string
	Reason    string
	RequestID string
}

type AuditEvent string

const (
	EventInviteCreated        AuditEvent = "invite_created"
	EventInviteReissued       AuditEvent = "invite_reissued"
	EventInviteValidated      AuditEvent = "invite_validated"
	EventInviteRejected       AuditEvent = "invite_rejected"
	EventInviteDeliveryFailed AuditEvent = "invite_delivery_failed"
	EventKycPartial           AuditEvent = "kyc_partial"
	EventOnboardingFinalized  AuditEvent = "onboarding_finalized"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventKycPartial:          CategoryCompliance,
	EventOnboardingFinalized: CategoryCompliance,

	EventInviteRejected: CategorySecurity,

	EventInviteCreated:        CategoryOperations,
	EventInviteReissued:       CategoryOperations,
	EventInviteValidated:      CategoryOperations,
	EventInviteDeliveryFailed: CategoryOperations,
}

// Category returns the category of e. Unknown events are operations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store appends events and lists them per subject.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListBySubject(ctx context.Context, subject string) ([]Event, error)
}
