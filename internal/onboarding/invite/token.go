// Package invite issues and checks single-use invitation tokens. Only the SHA-256
// hash of a token is stored so that a leaked table cannot be replayed, while the
// hash stays deterministic for lookup by token.
package invite

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"onboard/internal/onboarding/models"
	dErrors "onboard/pkg/domain-errors"
)

// DefaultTTL is seven days.
const DefaultTTL = 10080 * time.Minute

const tokenBytes = 32

// Manager issues tokens onto customers.
type Manager struct {
	ttl       time.Duration
	keepPlain bool
}

type Option func(*Manager)

// WithTTL overrides the default lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithPlaintextDebug stores the plaintext next to the hash. Development only.
func WithPlaintextDebug(enabled bool) Option {
	return func(m *Manager) {
		m.keepPlain = enabled
	}
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{ttl: DefaultTTL}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Generate creates a cryptographically secure random token.
func Generate() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("could not generate invite token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Hash returns the hex SHA-256 of a plaintext token.
func Hash(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// Issue replaces any token on c with a fresh one and returns its plaintext.
// ttl <= 0 uses the manager's lifetime.
func (m *Manager) Issue(c *models.Customer, ttl time.Duration, now time.Time) (string, error) {
	if ttl <= 0 {
		ttl = m.ttl
	}
	plain, err := Generate()
	if err != nil {
		return "", err
	}
	expires := now.Add(ttl)
	c.InviteTokenHash = Hash(plain)
	c.InviteTokenExpiresAt = &expires
	c.InviteTokenPlain = ""
	if m.keepPlain {
		c.InviteTokenPlain = plain
	}
	return plain, nil
}

// Validate checks plain against the token on c. It never mutates c.
func Validate(c *models.Customer, plain string, now time.Time) error {
	if c.InviteTokenHash == "" {
		return dErrors.New(dErrors.CodeInvalidToken, "This invite is not valid")
	}
	if subtle.ConstantTimeCompare([]byte(Hash(plain)), []byte(c.InviteTokenHash)) != 1 {
		return dErrors.New(dErrors.CodeInvalidToken, "Invalid invite token for this customer")
	}
	if c.InviteTokenExpiresAt == nil || now.After(*c.InviteTokenExpiresAt) {
		return dErrors.New(dErrors.CodeInviteExpired, "Invite expired")
	}
	return nil
}

// Clear removes the token from c. Safe to call repeatedly.
func Clear(c *models.Customer) {
	c.InviteTokenHash = ""
	c.InviteTokenExpiresAt = nil
	c.InviteTokenPlain = ""
}
