// Package e2e runs the onboarding feature files against the full HTTP stack
// wired over in-memory stores.
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"onboard/internal/identity"
	identitymodels "onboard/internal/identity/models"
	userstore "onboard/internal/identity/store/user"
	jwttoken "onboard/internal/jwt_token"
	"onboard/internal/onboarding/handler"
	"onboard/internal/onboarding/kyc"
	"onboard/internal/onboarding/lock"
	"onboard/internal/onboarding/notify"
	onboardingservice "onboard/internal/onboarding/service"
	customerstore "onboard/internal/onboarding/store/customer"
	"onboard/internal/onboarding/store/entitykyc"
	orgservice "onboard/internal/organization/service"
	branchstore "onboard/internal/organization/store/branch"
	clientstore "onboard/internal/organization/store/client"
	"onboard/internal/platform/metrics"
	id "onboard/pkg/domain"
)

const (
	signingKey  = "e2e-signing-key"
	inviteURL   = "https://onboard.test/accept"
	tokenExpiry = time.Hour
)

var seededUsers = []struct {
	email string
	phone string
	typ   identitymodels.UserType
}{
	{"owner@onboard.local", "", identitymodels.UserTypeClient},
	{"manager@onboard.local", "", identitymodels.UserTypeBranch},
	{"jane@example.com", "+61400000001", identitymodels.UserTypeCustomer},
	{"acme@example.com", "", identitymodels.UserTypeCustomer},
}

// TestContext is the per-scenario state shared by step definitions.
type TestContext struct {
	server *httptest.Server
	tokens map[string]string
	bearer string

	lastStatus int
	lastBody   map[string]any

	customerID      string
	inviteToken     string
	rememberedToken string
}

func newTestContext() *TestContext {
	return &TestContext{tokens: make(map[string]string)}
}

// start wires the service graph the same way cmd/server does for in-memory mode.
func (tc *TestContext) start(ctx context.Context) error {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()

	users := userstore.NewInMemory()
	now := time.Now()
	created := make(map[string]id.UserID, len(seededUsers))
	for _, seed := range seededUsers {
		u, err := identitymodels.NewUser(id.UserID(uuid.New()), seed.email, seed.phone, "", seed.typ, now)
		if err != nil {
			return err
		}
		if err := users.Create(ctx, u); err != nil {
			return err
		}
		created[seed.email] = u.ID
	}

	org := orgservice.New(clientstore.NewInMemory(), branchstore.NewInMemory(), orgservice.WithLogger(logger))
	if _, _, err := org.SeedBootstrap(ctx, created["owner@onboard.local"], created["manager@onboard.local"]); err != nil {
		return fmt.Errorf("seed organization: %w", err)
	}

	onboarding := onboardingservice.New(
		customerstore.NewInMemory(),
		kyc.NewEngine(entitykyc.NewInMemory()),
		identity.NewResolver(users),
		org,
		onboardingservice.WithLogger(logger),
		onboardingservice.WithNotifier(notify.NewLog(logger)),
		onboardingservice.WithLocker(lock.NewMemory(100*time.Millisecond)),
		onboardingservice.WithInviteBaseURL(inviteURL),
	)

	jwtService := jwttoken.NewJWTService(signingKey, "onboard", "onboard-api")
	for email, userID := range created {
		token, err := jwtService.GenerateAccessToken(userID, tokenExpiry)
		if err != nil {
			return err
		}
		tc.tokens[email] = token
	}

	router := chi.NewRouter()
	handler.New(onboarding, logger, metrics.New(reg), jwttoken.NewJWTServiceAdapter(jwtService), true).Register(router)
	tc.server = httptest.NewServer(router)
	return nil
}

func (tc *TestContext) close() {
	if tc.server != nil {
		tc.server.Close()
	}
}

func (tc *TestContext) request(method, path string, body any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, tc.server.URL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if tc.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+tc.bearer)
	}

	resp, err := tc.server.Client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tc.lastStatus = resp.StatusCode
	tc.lastBody = nil
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &tc.lastBody); err != nil {
			return fmt.Errorf("decode response %q: %w", raw, err)
		}
	}
	return nil
}

// field resolves a dotted path ("data.kycStatus") in the last response body.
func (tc *TestContext) field(path string) (any, bool) {
	var cur any = tc.lastBody
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = obj[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}
