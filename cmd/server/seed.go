package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	identitymodels "onboard/internal/identity/models"
	jwttoken "onboard/internal/jwt_token"
	orgservice "onboard/internal/organization/service"
	id "onboard/pkg/domain"
)

const devTokenTTL = 24 * time.Hour

// seedDevelopment creates one user per user type and the bootstrap client/branch in
// the in-memory stores, then logs a bearer token for each user.
func seedDevelopment(ctx context.Context, users userStore, org *orgservice.Service, jwt *jwttoken.JWTService, log *slog.Logger) error {
	now := time.Now()
	seeds := []struct {
		email string
		typ   identitymodels.UserType
	}{
		{"admin@onboard.local", identitymodels.UserTypeAdmin},
		{"owner@onboard.local", identitymodels.UserTypeClient},
		{"manager@onboard.local", identitymodels.UserTypeBranch},
		{"customer@onboard.local", identitymodels.UserTypeCustomer},
	}
	created := make([]*identitymodels.User, 0, len(seeds))
	for _, seed := range seeds {
		u, err := identitymodels.NewUser(id.UserID(uuid.New()), seed.email, "", "", seed.typ, now)
		if err != nil {
			return err
		}
		if err := users.Create(ctx, u); err != nil {
			return err
		}
		created = append(created, u)
	}

	client, branch, err := org.SeedBootstrap(ctx, created[1].ID, created[2].ID)
	if err != nil {
		return err
	}
	log.Info("seeded bootstrap organization", "client_id", client.ID, "branch_id", branch.ID)

	for _, u := range created {
		token, err := jwt.GenerateAccessToken(u.ID, devTokenTTL)
		if err != nil {
			return err
		}
		log.Info("development token", "email", u.Email, "user_id", u.ID, "token", token)
	}
	return nil
}
