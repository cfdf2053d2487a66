package repository

import (
	"context"
	"fmt"

	"github.com/rsoares/grit/internal/db"
)

// Sequence scopes. Per-parent scopes append the parent id, e.g.
// ScopeVariant+exerciseID.
const (
	ScopeExercise        = "exercise"
	ScopeProgram         = "program"
	ScopeVariant         = "variant:"
	ScopeSessionExercise = "session_exercise:"
)

// SQLiteSequenceRepo allocates scoped monotonic sequence values atomically
// from the sequences table. Display indexes and session-exercise positions
// come from here instead of row-creation timestamps.
type SQLiteSequenceRepo struct {
	db db.DBTX
}

// NewSQLiteSequenceRepo creates a new SQLiteSequenceRepo.
func NewSQLiteSequenceRepo(conn db.DBTX) *SQLiteSequenceRepo {
	return &SQLiteSequenceRepo{db: conn}
}

// Next returns the next sequence value for the scope, starting at 1.
// Allocation is atomic: the counter row is seeded once and bumped with a
// single UPDATE ... RETURNING.
func (r *SQLiteSequenceRepo) Next(ctx context.Context, scope string) (int, error) {
	seed := `INSERT OR IGNORE INTO sequences (scope, next_seq) VALUES (?, 1)`
	if _, err := r.db.ExecContext(ctx, seed, scope); err != nil {
		return 0, fmt.Errorf("seeding sequence %s: %w", scope, err)
	}

	var next int
	alloc := `UPDATE sequences
		SET next_seq = next_seq + 1
		WHERE scope = ?
		RETURNING next_seq - 1`
	if err := r.db.QueryRowContext(ctx, alloc, scope).Scan(&next); err != nil {
		return 0, fmt.Errorf("allocating next seq for %s: %w", scope, err)
	}

	return next, nil
}
