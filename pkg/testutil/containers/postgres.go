//go:build integration

package containers

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"onboard/internal/platform/postgres"
)

// PostgresContainer wraps a migrated Postgres instance.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *pgxpool.Pool
}

// NewPostgresContainer starts Postgres and applies the service schema.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("onboard"),
		tcpostgres.WithUsername("onboard"),
		tcpostgres.WithPassword("onboard"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to open postgres pool: %v", err)
	}

	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to migrate postgres: %v", err)
	}

	// Shared across suites by the Manager; Ryuk removes the container.
	return &PostgresContainer{
		Container: container,
		DSN:       dsn,
		DB:        pool,
	}
}

func (p *PostgresContainer) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return p.DB.Exec(ctx, sql, args...)
}

// TruncateTables empties the given tables, cascading to dependents.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	_, err := p.DB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", strings.Join(tables, ", ")))
	return err
}
