package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rsoares/grit/internal/db"
	"github.com/rsoares/grit/internal/domain"
)

// SQLiteRecordRepo implements RecordRepo against SQLite. One row per
// (exercise, day, track) keeps a dated history of bests; Best picks the
// authoritative record per track.
type SQLiteRecordRepo struct {
	db db.DBTX
}

// NewSQLiteRecordRepo creates a new SQLiteRecordRepo.
func NewSQLiteRecordRepo(conn db.DBTX) *SQLiteRecordRepo {
	return &SQLiteRecordRepo{db: conn}
}

func (r *SQLiteRecordRepo) Best(ctx context.Context, exerciseID string, bodyweight bool) (*domain.PersonalRecord, error) {
	// Weighted records rank by estimated 1RM, bodyweight records by reps.
	order := "estimated_1rm DESC"
	if bodyweight {
		order = "reps DESC"
	}
	query := `SELECT exercise_id, date, weight, reps, estimated_1rm, bodyweight
		FROM personal_records
		WHERE exercise_id = ? AND bodyweight = ?
		ORDER BY ` + order + `, date ASC
		LIMIT 1`
	return r.scanRecord(r.db.QueryRowContext(ctx, query, exerciseID, boolToInt(bodyweight)))
}

func (r *SQLiteRecordRepo) Upsert(ctx context.Context, pr *domain.PersonalRecord) error {
	query := `INSERT OR REPLACE INTO personal_records
		(exercise_id, date, weight, reps, estimated_1rm, bodyweight)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		pr.ExerciseID,
		pr.Date.Format(dateLayout),
		pr.Weight,
		pr.Reps,
		pr.Estimated1RM,
		boolToInt(pr.Bodyweight),
	)
	if err != nil {
		return fmt.Errorf("upserting personal record: %w", err)
	}
	return nil
}

func (r *SQLiteRecordRepo) ListByExercise(ctx context.Context, exerciseID string) ([]domain.PersonalRecord, error) {
	query := `SELECT exercise_id, date, weight, reps, estimated_1rm, bodyweight
		FROM personal_records
		WHERE exercise_id = ?
		ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("listing personal records: %w", err)
	}
	defer rows.Close()

	var prs []domain.PersonalRecord
	for rows.Next() {
		var pr domain.PersonalRecord
		var dateStr string
		var bw int
		if err := rows.Scan(&pr.ExerciseID, &dateStr, &pr.Weight, &pr.Reps, &pr.Estimated1RM, &bw); err != nil {
			return nil, fmt.Errorf("scanning personal record row: %w", err)
		}
		date, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("parsing record date: %w", err)
		}
		pr.Date = date
		pr.Bodyweight = bw != 0
		prs = append(prs, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating personal records: %w", err)
	}
	return prs, nil
}

func (r *SQLiteRecordRepo) scanRecord(row *sql.Row) (*domain.PersonalRecord, error) {
	var pr domain.PersonalRecord
	var dateStr string
	var bw int

	err := row.Scan(&pr.ExerciseID, &dateStr, &pr.Weight, &pr.Reps, &pr.Estimated1RM, &bw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("personal record: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning personal record: %w", err)
	}

	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("parsing record date: %w", err)
	}
	pr.Date = date
	pr.Bodyweight = bw != 0
	return &pr, nil
}
