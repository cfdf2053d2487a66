package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rsoares/grit/internal/db"
	"github.com/rsoares/grit/internal/domain"
)

const exerciseColumns = `id, seq, name, primary_muscle, description,
		best_estimated_1rm, best_date, created_at`

// SQLiteExerciseRepo implements ExerciseRepo against SQLite.
type SQLiteExerciseRepo struct {
	db db.DBTX
}

// NewSQLiteExerciseRepo creates a new SQLiteExerciseRepo.
func NewSQLiteExerciseRepo(conn db.DBTX) *SQLiteExerciseRepo {
	return &SQLiteExerciseRepo{db: conn}
}

func (r *SQLiteExerciseRepo) Create(ctx context.Context, e *domain.Exercise) error {
	query := `INSERT INTO exercises (id, seq, name, primary_muscle, description,
		best_estimated_1rm, best_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Seq,
		e.Name,
		string(e.Muscle),
		e.Description,
		nullableFloatToValue(e.BestEstimated1RM),
		nullableTimeToString(e.BestDate, dateLayout),
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("exercise %q: %w", e.Name, ErrConflict)
		}
		return fmt.Errorf("inserting exercise: %w", err)
	}
	return nil
}

func (r *SQLiteExerciseRepo) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE id = ?`
	return r.scanExercise(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteExerciseRepo) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE name = ? COLLATE NOCASE`
	return r.scanExercise(r.db.QueryRowContext(ctx, query, name))
}

func (r *SQLiteExerciseRepo) GetBySeq(ctx context.Context, seq int) (*domain.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE seq = ?`
	return r.scanExercise(r.db.QueryRowContext(ctx, query, seq))
}

func (r *SQLiteExerciseRepo) List(ctx context.Context, f ExerciseFilter) ([]*domain.Exercise, error) {
	var p Predicates
	if f.Muscle != "" {
		p.Add("primary_muscle = ?", string(f.Muscle))
	}
	query := `SELECT ` + exerciseColumns + ` FROM exercises` + p.Where() + ` ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, p.Args()...)
	if err != nil {
		return nil, fmt.Errorf("listing exercises: %w", err)
	}
	defer rows.Close()

	var exercises []*domain.Exercise
	for rows.Next() {
		e, err := r.scanExerciseRow(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating exercises: %w", err)
	}
	return exercises, nil
}

// UpdateBest refreshes the cached all-time best fields after a PR write.
func (r *SQLiteExerciseRepo) UpdateBest(ctx context.Context, id string, estimated1RM float64, date time.Time) error {
	query := `UPDATE exercises SET best_estimated_1rm = ?, best_date = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, estimated1RM, date.Format(dateLayout), id)
	if err != nil {
		return fmt.Errorf("updating exercise best: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating exercise best: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("exercise %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteExerciseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM exercises WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting exercise: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting exercise: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("exercise %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteExerciseRepo) AddVariant(ctx context.Context, v *domain.Variant) error {
	query := `INSERT INTO exercise_variants (id, exercise_id, seq, name) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, v.ID, v.ExerciseID, v.Seq, v.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("variant %q: %w", v.Name, ErrConflict)
		}
		return fmt.Errorf("inserting variant: %w", err)
	}
	return nil
}

func (r *SQLiteExerciseRepo) ListVariants(ctx context.Context, exerciseID string) ([]domain.Variant, error) {
	query := `SELECT id, exercise_id, seq, name FROM exercise_variants
		WHERE exercise_id = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("listing variants: %w", err)
	}
	defer rows.Close()

	var variants []domain.Variant
	for rows.Next() {
		var v domain.Variant
		if err := rows.Scan(&v.ID, &v.ExerciseID, &v.Seq, &v.Name); err != nil {
			return nil, fmt.Errorf("scanning variant: %w", err)
		}
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating variants: %w", err)
	}
	return variants, nil
}

type exerciseScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteExerciseRepo) scanExercise(row *sql.Row) (*domain.Exercise, error) {
	e, err := r.scanExerciseFrom(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("exercise: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning exercise: %w", err)
	}
	return e, nil
}

func (r *SQLiteExerciseRepo) scanExerciseRow(rows *sql.Rows) (*domain.Exercise, error) {
	e, err := r.scanExerciseFrom(rows)
	if err != nil {
		return nil, fmt.Errorf("scanning exercise row: %w", err)
	}
	return e, nil
}

func (r *SQLiteExerciseRepo) scanExerciseFrom(s exerciseScanner) (*domain.Exercise, error) {
	var e domain.Exercise
	var muscle, createdAtStr string
	var best sql.NullFloat64
	var bestDate sql.NullString

	if err := s.Scan(
		&e.ID, &e.Seq, &e.Name, &muscle, &e.Description,
		&best, &bestDate, &createdAtStr,
	); err != nil {
		return nil, err
	}

	e.Muscle = domain.Muscle(muscle)
	e.BestEstimated1RM = floatFromNullable(best)
	e.BestDate = parseNullableTime(bestDate, dateLayout)
	createdAt, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	e.CreatedAt = createdAt
	return &e, nil
}
