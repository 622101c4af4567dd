// Package identity resolves which platform user an invite or acceptance refers to.
package identity

import (
	"context"
	"errors"

	"onboard/internal/identity/models"
	id "onboard/pkg/domain"
	dErrors "onboard/pkg/domain-errors"
	"onboard/pkg/email"
	"onboard/pkg/platform/sentinel"
)

// UserStore looks users up by key. Missing users are sentinel.ErrNotFound.
type UserStore interface {
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
}

type Contact struct {
	Email string
	Phone string
}

// Resolver never creates users.
type Resolver struct {
	users UserStore
}

func NewResolver(users UserStore) *Resolver {
	return &Resolver{users: users}
}

// Resolve returns the acting user when one is given, otherwise the first user matching
// the contact's email and then its phone. A nil user with a nil error means no match.
func (r *Resolver) Resolve(ctx context.Context, contact Contact, acting id.UserID) (*models.User, error) {
	if !acting.IsNil() {
		u, err := r.users.FindByID(ctx, acting)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil, dErrors.New(dErrors.CodeNotFound, "User not found")
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
		}
		return u, nil
	}
	return r.ResolveContact(ctx, contact)
}

// ResolveContact tries email, then phone.
func (r *Resolver) ResolveContact(ctx context.Context, contact Contact) (*models.User, error) {
	if mail := email.Normalize(contact.Email); mail != "" {
		u, err := r.users.FindByEmail(ctx, mail)
		if err == nil {
			return u, nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user by email")
		}
	}
	if phone := email.NormalizePhone(contact.Phone); phone != "" {
		u, err := r.users.FindByPhone(ctx, phone)
		if err == nil {
			return u, nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user by phone")
		}
	}
	return nil, nil
}

// FindByID loads a user, returning nil when it does not exist.
func (r *Resolver) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	if userID.IsNil() {
		return nil, nil
	}
	u, err := r.users.FindByID(ctx, userID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return u, nil
}
