package entitykyc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"onboard/internal/onboarding/models"
	id "onboard/pkg/domain"
	"onboard/pkg/platform/sentinel"
	txcontext "onboard/pkg/platform/tx"
)

// PostgresStore keeps each document as JSONB with its scope in columns.
type PostgresStore struct {
	db txcontext.DBTX
}

func NewPostgres(db txcontext.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByScope(ctx context.Context, kind models.EntityKind, customer id.CustomerID, client id.ClientID, branch id.BranchID) (models.EntityKyc, error) {
	query := `
		SELECT document FROM entity_kyc
		WHERE kind = $1 AND customer_id = $2 AND client_id = $3
		  AND branch_id IS NOT DISTINCT FROM $4
	`
	var raw []byte
	err := txcontext.Querier(ctx, s.db).QueryRow(ctx, query,
		string(kind), uuid.UUID(customer), uuid.UUID(client), id.NullableUUID(uuid.UUID(branch)),
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find entity kyc by scope: %w", err)
	}
	return decode(kind, raw)
}

func (s *PostgresStore) FindByCustomerClient(ctx context.Context, kind models.EntityKind, customer id.CustomerID, client id.ClientID) (models.EntityKyc, error) {
	query := `
		SELECT document FROM entity_kyc
		WHERE kind = $1 AND customer_id = $2 AND client_id = $3
		ORDER BY branch_id NULLS FIRST, created_at
		LIMIT 1
	`
	var raw []byte
	err := txcontext.Querier(ctx, s.db).QueryRow(ctx, query,
		string(kind), uuid.UUID(customer), uuid.UUID(client),
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find entity kyc by customer: %w", err)
	}
	return decode(kind, raw)
}

func (s *PostgresStore) Save(ctx context.Context, doc models.EntityKyc) error {
	h := doc.Header()
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode entity kyc: %w", err)
	}
	query := `
		INSERT INTO entity_kyc (id, kind, customer_id, client_id, branch_id, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			document = EXCLUDED.document,
			updated_at = EXCLUDED.updated_at
	`
	_, err = txcontext.Querier(ctx, s.db).Exec(ctx, query,
		uuid.UUID(h.ID), string(doc.Kind()), uuid.UUID(h.Customer), uuid.UUID(h.Client),
		id.NullableUUID(uuid.UUID(h.Branch)), raw, h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("entity kyc for scope already exists: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("save entity kyc: %w", err)
	}
	return nil
}
