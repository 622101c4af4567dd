package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"onboard/internal/identity/models"
	id "onboard/pkg/domain"
	"onboard/pkg/platform/sentinel"
	txcontext "onboard/pkg/platform/tx"
)

// PostgresStore persists users in PostgreSQL.
type PostgresStore struct {
	db txcontext.DBTX
}

func NewPostgres(db txcontext.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

const selectUser = `SELECT id, email, phone, name, user_type, created_at FROM users `

func (s *PostgresStore) Create(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (id, email, phone, name, user_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := txcontext.Querier(ctx, s.db).Exec(ctx, query,
		uuid.UUID(u.ID), u.Email, u.Phone, u.Name, string(u.UserType), u.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("user %s: %w", u.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	return s.scanOne(ctx, "find user by id", selectUser+`WHERE id = $1`, uuid.UUID(userID))
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, sentinel.ErrNotFound
	}
	return s.scanOne(ctx, "find user by email", selectUser+`WHERE email = $1`, email)
}

func (s *PostgresStore) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	if phone == "" {
		return nil, sentinel.ErrNotFound
	}
	return s.scanOne(ctx, "find user by phone", selectUser+`WHERE phone = $1 ORDER BY created_at LIMIT 1`, phone)
}

func (s *PostgresStore) scanOne(ctx context.Context, op, query string, arg any) (*models.User, error) {
	var (
		u        models.User
		rawID    uuid.UUID
		userType string
	)
	err := txcontext.Querier(ctx, s.db).QueryRow(ctx, query, arg).Scan(
		&rawID, &u.Email, &u.Phone, &u.Name, &userType, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u.ID = id.UserID(rawID)
	u.UserType = models.UserType(userType)
	return &u, nil
}
