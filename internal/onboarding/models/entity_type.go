package models

import (
	"strings"

	dErrors "onboard/pkg/domain-errors"
)

// EntityType is the legal form of the customer for one relation.
type EntityType string

const (
	EntityIndividual     EntityType = "individual"
	EntityCompany        EntityType = "company"
	EntityPartnership    EntityType = "partnership"
	EntityGovernmentBody EntityType = "government_body"
	EntityAssociation    EntityType = "association"
	EntityCooperative    EntityType = "cooperative"
	EntityTrust          EntityType = "trust"
)

func (t EntityType) IsValid() bool {
	switch t {
	case EntityIndividual, EntityCompany, EntityPartnership, EntityGovernmentBody,
		EntityAssociation, EntityCooperative, EntityTrust:
		return true
	}
	return false
}

// IsIndividual reports whether acceptance of this type follows the personal flow.
func (t EntityType) IsIndividual() bool {
	return t == "" || t == EntityIndividual
}

func (t EntityType) String() string { return string(t) }

// ParseEntityType accepts an empty string as individual.
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(strings.ToLower(strings.TrimSpace(s)))
	if t == "" {
		return EntityIndividual, nil
	}
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeUnsupportedEntityType, "Unsupported requestedType")
	}
	return t, nil
}

// EntityKind names the document shape that holds an entity type's KYC.
type EntityKind string

const (
	KindCompany       EntityKind = "company"
	KindTrust         EntityKind = "trust"
	KindNonIndividual EntityKind = "non_individual"
)

// KindFor dispatches an entity type to its document shape. Individuals have no
// entity document.
func KindFor(t EntityType) (EntityKind, error) {
	switch t {
	case EntityCompany:
		return KindCompany, nil
	case EntityTrust:
		return KindTrust, nil
	case EntityPartnership, EntityGovernmentBody, EntityAssociation, EntityCooperative:
		return KindNonIndividual, nil
	default:
		return "", dErrors.New(dErrors.CodeUnsupportedEntityType, "Unsupported requestedType")
	}
}

// RequiredPieceName is the name reported when this type's entity document is missing.
func (t EntityType) RequiredPieceName() string {
	return string(t) + "Kyc"
}
