package domain

import (
	"github.com/google/uuid"

	dErrors "onboard/pkg/domain-errors"
)

// Typed identifiers keep customer, user, client and branch references from being
// swapped at call sites. The zero value is the nil UUID and means "absent".
type (
	UserID      uuid.UUID
	CustomerID  uuid.UUID
	ClientID    uuid.UUID
	BranchID    uuid.UUID
	EntityKycID uuid.UUID
)

func parseUUID(s, kind string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" cannot be nil")
	}
	return u, nil
}

func marshalID(u uuid.UUID) ([]byte, error) {
	if u == uuid.Nil {
		return []byte{}, nil
	}
	return []byte(u.String()), nil
}

func unmarshalID(text []byte) (uuid.UUID, error) {
	if len(text) == 0 {
		return uuid.Nil, nil
	}
	u, err := uuid.ParseBytes(text)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid identifier")
	}
	return u, nil
}

func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user ID")
	return UserID(u), err
}

func ParseCustomerID(s string) (CustomerID, error) {
	u, err := parseUUID(s, "customer ID")
	return CustomerID(u), err
}

func ParseClientID(s string) (ClientID, error) {
	u, err := parseUUID(s, "client ID")
	return ClientID(u), err
}

func ParseBranchID(s string) (BranchID, error) {
	u, err := parseUUID(s, "branch ID")
	return BranchID(u), err
}

func ParseEntityKycID(s string) (EntityKycID, error) {
	u, err := parseUUID(s, "entity KYC ID")
	return EntityKycID(u), err
}

// ParseOptionalBranchID accepts an empty string as "no branch".
func ParseOptionalBranchID(s string) (BranchID, error) {
	if s == "" {
		return BranchID{}, nil
	}
	return ParseBranchID(s)
}

func (id UserID) String() string      { return uuid.UUID(id).String() }
func (id CustomerID) String() string  { return uuid.UUID(id).String() }
func (id ClientID) String() string    { return uuid.UUID(id).String() }
func (id BranchID) String() string    { return uuid.UUID(id).String() }
func (id EntityKycID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id CustomerID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id ClientID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id BranchID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id EntityKycID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func (id UserID) MarshalText() ([]byte, error)      { return marshalID(uuid.UUID(id)) }
func (id CustomerID) MarshalText() ([]byte, error)  { return marshalID(uuid.UUID(id)) }
func (id ClientID) MarshalText() ([]byte, error)    { return marshalID(uuid.UUID(id)) }
func (id BranchID) MarshalText() ([]byte, error)    { return marshalID(uuid.UUID(id)) }
func (id EntityKycID) MarshalText() ([]byte, error) { return marshalID(uuid.UUID(id)) }

func (id *UserID) UnmarshalText(text []byte) error {
	u, err := unmarshalID(text)
	*id = UserID(u)
	return err
}

func (id *CustomerID) UnmarshalText(text []byte) error {
	u, err := unmarshalID(text)
	*id = CustomerID(u)
	return err
}

func (id *ClientID) UnmarshalText(text []byte) error {
	u, err := unmarshalID(text)
	*id = ClientID(u)
	return err
}

func (id *BranchID) UnmarshalText(text []byte) error {
	u, err := unmarshalID(text)
	*id = BranchID(u)
	return err
}

func (id *EntityKycID) UnmarshalText(text []byte) error {
	u, err := unmarshalID(text)
	*id = EntityKycID(u)
	return err
}

// NullableUUID returns nil for absent IDs so drivers store SQL NULL.
func NullableUUID(u uuid.UUID) *uuid.UUID {
	if u == uuid.Nil {
		return nil
	}
	return &u
}

// FromNullable is the inverse of NullableUUID.
func FromNullable(u *uuid.UUID) uuid.UUID {
	if u == nil {
		return uuid.Nil
	}
	return *u
}
