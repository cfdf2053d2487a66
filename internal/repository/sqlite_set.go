package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rsoares/grit/internal/db"
	"github.com/rsoares/grit/internal/domain"
)

const setColumns = `id, session_exercise_id, slot, weight, reps, rpe,
		rm_percent, notes, timestamp, bodyweight, ignore_for_one_rm`

// SQLiteSetRepo implements SetRepo against SQLite. Sets are keyed by an
// explicit slot column; a slot is written once at insert time and never
// reassigned, so editing one slot cannot renumber its siblings.
type SQLiteSetRepo struct {
	db db.DBTX
}

// NewSQLiteSetRepo creates a new SQLiteSetRepo.
func NewSQLiteSetRepo(conn db.DBTX) *SQLiteSetRepo {
	return &SQLiteSetRepo{db: conn}
}

func (r *SQLiteSetRepo) Insert(ctx context.Context, s *domain.Set) error {
	query := `INSERT INTO exercise_sets (` + setColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.SessionExerciseID,
		s.Slot,
		s.Weight,
		s.Reps,
		nullableFloatToValue(s.RPE),
		nullableFloatToValue(s.Percent),
		s.Notes,
		s.LoggedAt.Format(time.RFC3339),
		boolToInt(s.Bodyweight),
		boolToInt(s.IgnoreForOneRM),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("set slot %d: %w", s.Slot, ErrConflict)
		}
		return fmt.Errorf("inserting set: %w", err)
	}
	return nil
}

// Update rewrites a set row in place. Slot and parent are immutable;
// everything else, including the timestamp, comes from the given set.
func (r *SQLiteSetRepo) Update(ctx context.Context, s *domain.Set) error {
	query := `UPDATE exercise_sets
		SET weight = ?, reps = ?, rpe = ?, rm_percent = ?, notes = ?,
		    timestamp = ?, bodyweight = ?, ignore_for_one_rm = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Weight,
		s.Reps,
		nullableFloatToValue(s.RPE),
		nullableFloatToValue(s.Percent),
		s.Notes,
		s.LoggedAt.Format(time.RFC3339),
		boolToInt(s.Bodyweight),
		boolToInt(s.IgnoreForOneRM),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating set: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating set: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("set %s: %w", s.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteSetRepo) GetBySlot(ctx context.Context, sessionExerciseID string, slot int) (*domain.Set, error) {
	query := `SELECT ` + setColumns + ` FROM exercise_sets
		WHERE session_exercise_id = ? AND slot = ?`
	return r.scanSet(r.db.QueryRowContext(ctx, query, sessionExerciseID, slot))
}

func (r *SQLiteSetRepo) ListBySessionExercise(ctx context.Context, sessionExerciseID string) ([]domain.Set, error) {
	query := `SELECT ` + setColumns + ` FROM exercise_sets
		WHERE session_exercise_id = ? ORDER BY slot`
	return r.querySets(ctx, query, sessionExerciseID)
}

func (r *SQLiteSetRepo) ListBySessionAndExercise(ctx context.Context, sessionID, exerciseID string) ([]domain.Set, error) {
	query := `SELECT es.id, es.session_exercise_id, es.slot, es.weight, es.reps, es.rpe,
			es.rm_percent, es.notes, es.timestamp, es.bodyweight, es.ignore_for_one_rm
		FROM exercise_sets es
		JOIN training_session_exercises se ON se.id = es.session_exercise_id
		WHERE se.training_session_id = ? AND se.exercise_id = ?
		ORDER BY es.slot`
	return r.querySets(ctx, query, sessionID, exerciseID)
}

func (r *SQLiteSetRepo) CountBySessionExercise(ctx context.Context, sessionExerciseID string) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM exercise_sets WHERE session_exercise_id = ?`
	if err := r.db.QueryRowContext(ctx, query, sessionExerciseID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting sets: %w", err)
	}
	return n, nil
}

// PreviousAtSlot returns the most recent set logged at the given slot for
// the exercise, restricted to completed sessions and weighted rows
// (weight > 0). Bodyweight rows are deliberately not surfaced here. The
// session named by excludeSessionID never matches, so a completed session
// can be viewed without its own sets showing up as the reference.
func (r *SQLiteSetRepo) PreviousAtSlot(ctx context.Context, exerciseID string, slot int, excludeSessionID string) (*domain.Set, error) {
	query := `SELECT es.id, es.session_exercise_id, es.slot, es.weight, es.reps, es.rpe,
			es.rm_percent, es.notes, es.timestamp, es.bodyweight, es.ignore_for_one_rm
		FROM exercise_sets es
		JOIN training_session_exercises se ON se.id = es.session_exercise_id
		JOIN training_sessions s ON s.id = se.training_session_id
		WHERE se.exercise_id = ?
		  AND es.slot = ?
		  AND es.weight > 0
		  AND s.end_time IS NOT NULL
		  AND s.id <> ?
		ORDER BY s.start_time DESC
		LIMIT 1`
	return r.scanSet(r.db.QueryRowContext(ctx, query, exerciseID, slot, excludeSessionID))
}

func (r *SQLiteSetRepo) querySets(ctx context.Context, query string, args ...any) ([]domain.Set, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sets: %w", err)
	}
	defer rows.Close()

	var sets []domain.Set
	for rows.Next() {
		var s domain.Set
		var rpe, pct sql.NullFloat64
		var loggedAtStr string
		var bw, ignore int

		if err := rows.Scan(
			&s.ID, &s.SessionExerciseID, &s.Slot, &s.Weight, &s.Reps,
			&rpe, &pct, &s.Notes, &loggedAtStr, &bw, &ignore,
		); err != nil {
			return nil, fmt.Errorf("scanning set row: %w", err)
		}

		populated, err := populateSet(&s, rpe, pct, loggedAtStr, bw, ignore)
		if err != nil {
			return nil, err
		}
		sets = append(sets, *populated)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sets: %w", err)
	}
	return sets, nil
}

func (r *SQLiteSetRepo) scanSet(row *sql.Row) (*domain.Set, error) {
	var s domain.Set
	var rpe, pct sql.NullFloat64
	var loggedAtStr string
	var bw, ignore int

	err := row.Scan(
		&s.ID, &s.SessionExerciseID, &s.Slot, &s.Weight, &s.Reps,
		&rpe, &pct, &s.Notes, &loggedAtStr, &bw, &ignore,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("set: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning set: %w", err)
	}
	return populateSet(&s, rpe, pct, loggedAtStr, bw, ignore)
}

func populateSet(s *domain.Set, rpe, pct sql.NullFloat64, loggedAtStr string, bw, ignore int) (*domain.Set, error) {
	s.RPE = floatFromNullable(rpe)
	s.Percent = floatFromNullable(pct)
	loggedAt, err := time.Parse(time.RFC3339, loggedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing timestamp: %w", err)
	}
	s.LoggedAt = loggedAt
	s.Bodyweight = bw != 0
	s.IgnoreForOneRM = ignore != 0
	return s, nil
}
