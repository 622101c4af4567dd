package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"onboard/internal/organization/models"
	id "onboard/pkg/domain"
	"onboard/pkg/platform/sentinel"
	txcontext "onboard/pkg/platform/tx"
)

// PostgresStore persists clients in PostgreSQL.
type PostgresStore struct {
	db txcontext.DBTX
}

func NewPostgres(db txcontext.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectClient = `SELECT id, name, email, owner_user_id, status, created_at, updated_at FROM clients `

func (s *PostgresStore) Create(ctx context.Context, c *models.Client) error {
	query := `
		INSERT INTO clients (id, name, email, owner_user_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := txcontext.Querier(ctx, s.db).Exec(ctx, query,
		uuid.UUID(c.ID), c.Name, c.Email, id.NullableUUID(uuid.UUID(c.OwnerUserID)),
		string(c.Status), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("client %s: %w", c.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, clientID id.ClientID) (*models.Client, error) {
	return s.scanOne(ctx, "find client by id", selectClient+`WHERE id = $1`, uuid.UUID(clientID))
}

func (s *PostgresStore) FindByOwner(ctx context.Context, owner id.UserID) (*models.Client, error) {
	if owner.IsNil() {
		return nil, sentinel.ErrNotFound
	}
	return s.scanOne(ctx, "find client by owner",
		selectClient+`WHERE owner_user_id = $1 ORDER BY created_at LIMIT 1`, uuid.UUID(owner))
}

func (s *PostgresStore) scanOne(ctx context.Context, op, query string, arg any) (*models.Client, error) {
	var (
		c      models.Client
		rawID  uuid.UUID
		owner  *uuid.UUID
		status string
	)
	err := txcontext.Querier(ctx, s.db).QueryRow(ctx, query, arg).Scan(
		&rawID, &c.Name, &c.Email, &owner, &status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c.ID = id.ClientID(rawID)
	c.OwnerUserID = id.UserID(id.FromNullable(owner))
	c.Status = models.Status(status)
	return &c, nil
}
