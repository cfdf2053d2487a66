package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rsoares/grit/internal/db"
	"github.com/rsoares/grit/internal/domain"
)

const sessionColumns = `id, program_block_id, week, start_time, end_time, notes`

// SQLiteSessionRepo implements SessionRepo against SQLite. The active
// session is tracked through the single-row current_session pointer table;
// a second SetCurrent fails on its primary key, which is what enforces the
// at-most-one-active-session invariant.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	query := `INSERT INTO training_sessions (id, program_block_id, week, start_time, end_time, notes)
		VALUES (?, ?, ?, ?, ?, ?)`
	var week interface{}
	if s.Week > 0 {
		week = s.Week
	}
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.BlockID,
		week,
		s.StartedAt.Format(time.RFC3339),
		nullableTimeToString(s.EndedAt, time.RFC3339),
		s.Notes,
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM training_sessions WHERE id = ?`
	return r.scanSession(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteSessionRepo) Current(ctx context.Context) (*domain.Session, error) {
	query := `SELECT s.id, s.program_block_id, s.week, s.start_time, s.end_time, s.notes
		FROM training_sessions s
		JOIN current_session c ON c.session_id = s.id`
	return r.scanSession(r.db.QueryRowContext(ctx, query))
}

func (r *SQLiteSessionRepo) SetCurrent(ctx context.Context, sessionID string) error {
	query := `INSERT INTO current_session (slot, session_id) VALUES (1, ?)`
	_, err := r.db.ExecContext(ctx, query, sessionID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("a session is already in progress: %w", ErrConflict)
		}
		return fmt.Errorf("setting current session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) ClearCurrent(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM current_session WHERE slot = 1`); err != nil {
		return fmt.Errorf("clearing current session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) MarkEnded(ctx context.Context, id string, endedAt time.Time) error {
	query := `UPDATE training_sessions SET end_time = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, endedAt.Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("ending session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ending session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteSessionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM training_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return nil
}

// LatestCompletedOn compares calendar days in the local zone by bounding
// start_time between the day's start and end rather than string-slicing
// the stored RFC3339 value.
func (r *SQLiteSessionRepo) LatestCompletedOn(ctx context.Context, day time.Time) (*domain.Session, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	query := `SELECT ` + sessionColumns + ` FROM training_sessions
		WHERE end_time IS NOT NULL
		  AND start_time >= ? AND start_time < ?
		ORDER BY start_time DESC
		LIMIT 1`
	return r.scanSession(r.db.QueryRowContext(ctx, query,
		dayStart.UTC().Format(time.RFC3339), dayEnd.UTC().Format(time.RFC3339)))
}

func (r *SQLiteSessionRepo) RecentCompletedForExercise(ctx context.Context, exerciseID string, limit int) ([]*domain.Session, error) {
	query := `SELECT DISTINCT s.id, s.program_block_id, s.week, s.start_time, s.end_time, s.notes
		FROM training_sessions s
		JOIN training_session_exercises se ON se.training_session_id = s.id
		WHERE se.exercise_id = ? AND s.end_time IS NOT NULL
		ORDER BY s.start_time DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, exerciseID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing sessions for exercise: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		s, err := r.scanSessionRow(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLiteSessionRepo) AddExercise(ctx context.Context, se *domain.SessionExercise) error {
	query := `INSERT INTO training_session_exercises (id, training_session_id, exercise_id, position, planned_sets, notes)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, se.ID, se.SessionID, se.ExerciseID, se.Position, se.PlannedSets, se.Note)
	if err != nil {
		return fmt.Errorf("inserting session exercise: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetExercise(ctx context.Context, id string) (*domain.SessionExercise, error) {
	query := `SELECT id, training_session_id, exercise_id, position, planned_sets, notes
		FROM training_session_exercises WHERE id = ?`
	var se domain.SessionExercise
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&se.ID, &se.SessionID, &se.ExerciseID, &se.Position, &se.PlannedSets, &se.Note)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session exercise: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning session exercise: %w", err)
	}
	return &se, nil
}

func (r *SQLiteSessionRepo) ListExercises(ctx context.Context, sessionID string) ([]*domain.SessionExercise, error) {
	query := `SELECT id, training_session_id, exercise_id, position, planned_sets, notes
		FROM training_session_exercises
		WHERE training_session_id = ?
		ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing session exercises: %w", err)
	}
	defer rows.Close()

	var exercises []*domain.SessionExercise
	for rows.Next() {
		var se domain.SessionExercise
		if err := rows.Scan(&se.ID, &se.SessionID, &se.ExerciseID, &se.Position, &se.PlannedSets, &se.Note); err != nil {
			return nil, fmt.Errorf("scanning session exercise row: %w", err)
		}
		exercises = append(exercises, &se)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session exercises: %w", err)
	}
	return exercises, nil
}

func (r *SQLiteSessionRepo) SwapExercise(ctx context.Context, sessionExerciseID, newExerciseID string, plannedSets int) error {
	query := `UPDATE training_session_exercises SET exercise_id = ?, planned_sets = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, newExerciseID, plannedSets, sessionExerciseID)
	if err != nil {
		return fmt.Errorf("swapping session exercise: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("swapping session exercise: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session exercise %s: %w", sessionExerciseID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteSessionRepo) SetExerciseNote(ctx context.Context, sessionExerciseID, note string) error {
	query := `UPDATE training_session_exercises SET notes = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, note, sessionExerciseID)
	if err != nil {
		return fmt.Errorf("setting session exercise note: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("setting session exercise note: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session exercise %s: %w", sessionExerciseID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteSessionRepo) scanSession(row *sql.Row) (*domain.Session, error) {
	var s domain.Session
	var week sql.NullInt64
	var startStr string
	var endStr sql.NullString

	err := row.Scan(&s.ID, &s.BlockID, &week, &startStr, &endStr, &s.Notes)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	return populateSession(&s, week, startStr, endStr)
}

func (r *SQLiteSessionRepo) scanSessionRow(rows *sql.Rows) (*domain.Session, error) {
	var s domain.Session
	var week sql.NullInt64
	var startStr string
	var endStr sql.NullString

	if err := rows.Scan(&s.ID, &s.BlockID, &week, &startStr, &endStr, &s.Notes); err != nil {
		return nil, fmt.Errorf("scanning session row: %w", err)
	}
	return populateSession(&s, week, startStr, endStr)
}

func populateSession(s *domain.Session, week sql.NullInt64, startStr string, endStr sql.NullString) (*domain.Session, error) {
	if week.Valid {
		s.Week = int(week.Int64)
	}
	started, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	s.StartedAt = started
	s.EndedAt = parseNullableTime(endStr, time.RFC3339)
	return s, nil
}
