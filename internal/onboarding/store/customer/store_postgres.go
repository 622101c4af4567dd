package customer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"onboard/internal/onboarding/models"
	id "onboard/pkg/domain"
	"onboard/pkg/platform/sentinel"
	txcontext "onboard/pkg/platform/tx"
)

// PostgresStore keeps the customer document as JSONB. Lookup keys and invite token
// fields live in their own columns since the document never carries the token.
type PostgresStore struct {
	db txcontext.DBTX
}

func NewPostgres(db txcontext.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectCustomer = `
	SELECT document, invite_token_hash, invite_token_expires_at, invite_token_plain, version
	FROM customers
`

func (s *PostgresStore) FindByID(ctx context.Context, customerID id.CustomerID) (*models.Customer, error) {
	return s.findOne(ctx, "find customer by id", selectCustomer+`WHERE id = $1`, uuid.UUID(customerID))
}

func (s *PostgresStore) FindByUserID(ctx context.Context, userID id.UserID) (*models.Customer, error) {
	if userID.IsNil() {
		return nil, sentinel.ErrNotFound
	}
	return s.findOne(ctx, "find customer by user",
		selectCustomer+`WHERE user_id = $1 ORDER BY created_at LIMIT 1`, uuid.UUID(userID))
}

func (s *PostgresStore) FindByContactEmail(ctx context.Context, email string) (*models.Customer, error) {
	if email == "" {
		return nil, sentinel.ErrNotFound
	}
	return s.findOne(ctx, "find customer by contact email",
		selectCustomer+`WHERE contact_email = $1 ORDER BY created_at LIMIT 1`, email)
}

// FindByInviteContact matches a customer not yet linked to a user by the contact its
// latest invite was sent to, trying email before phone.
func (s *PostgresStore) FindByInviteContact(ctx context.Context, email, phone string) (*models.Customer, error) {
	if email != "" {
		c, err := s.findOne(ctx, "find customer by invite email",
			selectCustomer+`WHERE user_id IS NULL AND invite_email = $1 ORDER BY created_at LIMIT 1`, email)
		if !errors.Is(err, sentinel.ErrNotFound) {
			return c, err
		}
	}
	if phone == "" {
		return nil, sentinel.ErrNotFound
	}
	return s.findOne(ctx, "find customer by invite phone",
		selectCustomer+`WHERE user_id IS NULL AND invite_phone = $1 ORDER BY created_at LIMIT 1`, phone)
}

func (s *PostgresStore) FindByInviteTokenHash(ctx context.Context, hash string) (*models.Customer, error) {
	if hash == "" {
		return nil, sentinel.ErrNotFound
	}
	return s.findOne(ctx, "find customer by invite token", selectCustomer+`WHERE invite_token_hash = $1`, hash)
}

func (s *PostgresStore) Create(ctx context.Context, c *models.Customer) error {
	raw, err := json.Marshal(withVersion(c, 1))
	if err != nil {
		return fmt.Errorf("encode customer: %w", err)
	}
	query := `
		INSERT INTO customers (id, user_id, contact_email, invite_email, invite_phone, invite_token_hash,
			invite_token_expires_at, invite_token_plain, document, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1, $10, $11)
	`
	_, err = txcontext.Querier(ctx, s.db).Exec(ctx, query,
		uuid.UUID(c.ID), id.NullableUUID(uuid.UUID(c.UserID)), c.PersonalKyc.ContactEmail(),
		c.Metadata[models.MetaEmail], c.Metadata[models.MetaPhone],
		nullableString(c.InviteTokenHash), c.InviteTokenExpiresAt, nullableString(c.InviteTokenPlain),
		raw, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create customer %s: %w", c.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("create customer: %w", err)
	}
	c.Version = 1
	return nil
}

// Update is a compare-and-set on version; a stale customer yields sentinel.ErrConflict.
func (s *PostgresStore) Update(ctx context.Context, c *models.Customer) error {
	next := c.Version + 1
	raw, err := json.Marshal(withVersion(c, next))
	if err != nil {
		return fmt.Errorf("encode customer: %w", err)
	}
	query := `
		UPDATE customers SET
			user_id = $2,
			contact_email = $3,
			invite_email = $4,
			invite_phone = $5,
			invite_token_hash = $6,
			invite_token_expires_at = $7,
			invite_token_plain = $8,
			document = $9,
			version = $10,
			updated_at = $11
		WHERE id = $1 AND version = $12
	`
	tag, err := txcontext.Querier(ctx, s.db).Exec(ctx, query,
		uuid.UUID(c.ID), id.NullableUUID(uuid.UUID(c.UserID)), c.PersonalKyc.ContactEmail(),
		c.Metadata[models.MetaEmail], c.Metadata[models.MetaPhone],
		nullableString(c.InviteTokenHash), c.InviteTokenExpiresAt, nullableString(c.InviteTokenPlain),
		raw, next, c.UpdatedAt, c.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update customer %s: %w", c.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := s.FindByID(ctx, c.ID); errors.Is(err, sentinel.ErrNotFound) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("customer %s version %d is stale: %w", c.ID, c.Version, sentinel.ErrConflict)
	}
	c.Version = next
	return nil
}

func (s *PostgresStore) findOne(ctx context.Context, op, query string, arg any) (*models.Customer, error) {
	var (
		raw       []byte
		hash      *string
		expiresAt *time.Time
		plain     *string
		version   int64
	)
	err := txcontext.Querier(ctx, s.db).QueryRow(ctx, query, arg).Scan(&raw, &hash, &expiresAt, &plain, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c := &models.Customer{}
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}
	if hash != nil {
		c.InviteTokenHash = *hash
	}
	if plain != nil {
		c.InviteTokenPlain = *plain
	}
	c.InviteTokenExpiresAt = expiresAt
	c.Version = version
	return c, nil
}

func withVersion(c *models.Customer, v int64) models.Customer {
	out := *c
	out.Version = v
	return out
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
