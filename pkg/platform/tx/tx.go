package tx

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	dErrors "onboard/pkg/domain-errors"
)

type ctxKey struct{}

var txKey = ctxKey{}

// WithTx stores a pgx transaction in context for downstream store usage.
func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts a pgx transaction from context if present.
func From(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey).(pgx.Tx)
	return tx, ok
}

// Beginner starts transactions; satisfied by *pgxpool.Pool.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Run executes fn inside a transaction carried by ctx, committing on success.
// A transaction already present in ctx is reused.
func Run(ctx context.Context, db Beginner, fn func(ctx context.Context) error) error {
	if _, ok := From(ctx); ok {
		return fn(ctx)
	}
	t, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(WithTx(ctx, t)); err != nil {
		_ = t.Rollback(ctx)
		return err
	}
	return t.Commit(ctx)
}

// DBTX is the query surface shared by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Querier returns the transaction in ctx, or db when there is none.
func Querier(ctx context.Context, db DBTX) DBTX {
	if t, ok := From(ctx); ok {
		return t
	}
	return db
}

const defaultTxTimeout = 5 * time.Second

// Runner adapts Run to the RunInTx shape services depend on. Calls without a
// deadline are bounded by the runner's timeout.
type Runner struct {
	db      Beginner
	timeout time.Duration
}

func NewRunner(db Beginner, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = defaultTxTimeout
	}
	return &Runner{db: db, timeout: timeout}
}

func (r *Runner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return Run(ctx, r.db, fn)
}
