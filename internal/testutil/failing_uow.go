package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/rsoares/grit/internal/db"
)

// FailOnNthExecUoW is a UnitOfWork that fails the Nth write inside the
// transaction. Multi-write use cases (session start writes the session, the
// pointer, a sequence seed, then its exercises) are tested for atomicity by
// failing a late write and asserting nothing was kept.
//
// Only ExecContext calls count, starting at 1; reads via QueryContext and
// QueryRowContext pass through unchanged.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	counting := &execCounter{DBTX: tx, failOn: u.FailOn, err: u.Err}
	if fnErr := fn(ctx, counting); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

// execCounter intercepts writes on the wrapped transaction; everything else
// is promoted from the embedded DBTX.
type execCounter struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (c *execCounter) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if c.count.Add(1) == c.failOn {
		return nil, c.err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
