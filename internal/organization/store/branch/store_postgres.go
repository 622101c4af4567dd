package branch

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

// PostgresStore persists branches in PostgreSQL.
type PostgresStore struct {
	db txcontext.DBTX
}

func NewPostgres(db txcontext.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectBranch = `SELECT id, client_id, name, code, manager_user_id, status, created_at, updated_at FROM branches `

func (s *PostgresStore) Create(ctx context.Context, b *models.Branch) error {
	query := `
		INSERT INTO branches (id, client_id, name, code, manager_user_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := txcontext.Querier(ctx, s.db).Exec(ctx, query,
		uuid.UUID(b.ID), uuid.UUID(b.ClientID), b.Name, b.Code,
		id.NullableUUID(uuid.UUID(b.ManagerUserID)), string(b.Status), b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return fmt.Errorf("branch %s: %w", b.ID, sentinel.ErrConflict)
			case pgerrcode.ForeignKeyViolation:
				return fmt.Errorf("branch client %s: %w", b.ClientID, sentinel.ErrNotFound)
			}
		}
		return fmt.Errorf("create branch: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, branchID id.BranchID) (*models.Branch, error) {
	return s.scanOne(ctx, "find branch by id", selectBranch+`WHERE id = $1`, uuid.UUID(branchID))
}

func (s *PostgresStore) FindByManager(ctx context.Context, manager id.UserID) (*models.Branch, error) {
	if manager.IsNil() {
		return nil, sentinel.ErrNotFound
	}
	return s.scanOne(ctx, "find branch by manager",
		selectBranch+`WHERE manager_user_id = $1 ORDER BY created_at LIMIT 1`, uuid.UUID(manager))
}

func (s *PostgresStore) scanOne(ctx context.Context, op, query string, arg any) (*models.Branch, error) {
	var (
		b        models.Branch
		rawID    uuid.UUID
		clientID uuid.UUID
		manager  *uuid.UUID
		status   string
	)
	err := txcontext.Querier(ctx, s.db).QueryRow(ctx, query, arg).Scan(
		&rawID, &clientID, &b.Name, &b.Code, &manager, &status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	b.ID = id.BranchID(rawID)
	b.ClientID = id.ClientID(clientID)
	b.ManagerUserID = id.UserID(id.FromNullable(manager))
	b.Status = models.Status(status)
	return &b, nil
}
