package models

import (
	"time"

	id "onboard/pkg/domain"
	dErrors "onboard/pkg/domain-errors"
	"onboard/pkg/email"
)

type UserType string

const (
	UserTypeAdmin    UserType = "admin"
	UserTypeClient   UserType = "client"
	UserTypeBranch   UserType = "branch"
	UserTypeCustomer UserType = "customer"
)

func (t UserType) IsValid() bool {
	switch t {
	case UserTypeAdmin, UserTypeClient, UserTypeBranch, UserTypeCustomer:
		return true
	}
	return false
}

// User is a platform account. Credentials live elsewhere.
//
// Invariants:
//   - Email is stored lowercase
//   - at least one of Email or Phone is set
type User struct {
	ID        id.UserID `json:"id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	UserType  UserType  `json:"userType"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUser(userID id.UserID, mail, phone, name string, userType UserType, now time.Time) (*User, error) {
	mail = email.Normalize(mail)
	phone = email.NormalizePhone(phone)
	if mail == "" && phone == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "user needs an email or phone")
	}
	if !userType.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invalid user type")
	}
	if name == "" && mail != "" {
		name = email.DeriveNameFromEmail(mail)
	}
	return &User{
		ID:        userID,
		Email:     mail,
		Phone:     phone,
		Name:      name,
		UserType:  userType,
		CreatedAt: now,
	}, nil
}
