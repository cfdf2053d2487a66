package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rsoares/grit/internal/db"
	"github.com/rsoares/grit/internal/domain"
)

const prescriptionColumns = `id, program_block_id, exercise_id, sets, reps,
		target_rpe, target_rm_percent, notes, reference_1rm,
		technique, technique_group, order_index`

// SQLiteProgramRepo implements ProgramRepo against SQLite. Programs are
// handled as aggregates: Create inserts the program with all its blocks and
// prescriptions, GetBy* load the full tree, List loads block headers without
// prescriptions. Per-set target arrays are stored as JSON text columns.
type SQLiteProgramRepo struct {
	db db.DBTX
}

// NewSQLiteProgramRepo creates a new SQLiteProgramRepo.
func NewSQLiteProgramRepo(conn db.DBTX) *SQLiteProgramRepo {
	return &SQLiteProgramRepo{db: conn}
}

func (r *SQLiteProgramRepo) Create(ctx context.Context, p *domain.Program) error {
	query := `INSERT INTO programs (id, seq, name, description, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Seq, p.Name, p.Description, p.CreatedAt.Format(time.RFC3339))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("program %q: %w", p.Name, ErrConflict)
		}
		return fmt.Errorf("inserting program: %w", err)
	}

	for _, b := range p.Blocks {
		blockQuery := `INSERT INTO program_blocks (id, program_id, name, description, week, position)
			VALUES (?, ?, ?, ?, ?, ?)`
		var week interface{}
		if b.Week > 0 {
			week = b.Week
		}
		if _, err := r.db.ExecContext(ctx, blockQuery,
			b.ID, p.ID, b.Name, b.Description, week, b.Position); err != nil {
			return fmt.Errorf("inserting block %q: %w", b.Name, err)
		}
		for i := range b.Exercises {
			if err := r.CreatePrescription(ctx, &b.Exercises[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *SQLiteProgramRepo) CreatePrescription(ctx context.Context, p *domain.Prescription) error {
	reps, err := json.Marshal(p.Reps)
	if err != nil {
		return fmt.Errorf("encoding rep targets: %w", err)
	}
	rpe, err := json.Marshal(p.TargetRPE)
	if err != nil {
		return fmt.Errorf("encoding rpe targets: %w", err)
	}
	pct, err := json.Marshal(p.TargetPercent)
	if err != nil {
		return fmt.Errorf("encoding percent targets: %w", err)
	}

	query := `INSERT INTO program_exercises (` + prescriptionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.BlockID,
		p.ExerciseID,
		p.Sets,
		string(reps),
		string(rpe),
		string(pct),
		p.Notes,
		nullableFloatToValue(p.Reference1RM),
		string(p.Technique),
		p.TechniqueGroup,
		p.OrderIndex,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("prescription for exercise %s: %w", p.ExerciseID, ErrConflict)
		}
		return fmt.Errorf("inserting prescription: %w", err)
	}
	return nil
}

func (r *SQLiteProgramRepo) GetByID(ctx context.Context, id string) (*domain.Program, error) {
	query := `SELECT id, seq, name, description, created_at FROM programs WHERE id = ?`
	return r.loadProgram(ctx, r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteProgramRepo) GetByName(ctx context.Context, name string) (*domain.Program, error) {
	query := `SELECT id, seq, name, description, created_at FROM programs WHERE name = ? COLLATE NOCASE`
	return r.loadProgram(ctx, r.db.QueryRowContext(ctx, query, name))
}

func (r *SQLiteProgramRepo) GetBySeq(ctx context.Context, seq int) (*domain.Program, error) {
	query := `SELECT id, seq, name, description, created_at FROM programs WHERE seq = ?`
	return r.loadProgram(ctx, r.db.QueryRowContext(ctx, query, seq))
}

func (r *SQLiteProgramRepo) List(ctx context.Context) ([]*domain.Program, error) {
	query := `SELECT id, seq, name, description, created_at FROM programs ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing programs: %w", err)
	}
	defer rows.Close()

	var programs []*domain.Program
	for rows.Next() {
		p, err := scanProgramHeader(rows)
		if err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating programs: %w", err)
	}

	// Block headers feed the listing's block count and week span.
	for _, p := range programs {
		p.Blocks, err = r.loadBlockHeaders(ctx, p.ID)
		if err != nil {
			return nil, err
		}
	}
	return programs, nil
}

func (r *SQLiteProgramRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM programs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting program: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting program: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("program %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteProgramRepo) GetBlock(ctx context.Context, blockID string) (*domain.Block, error) {
	query := `SELECT id, program_id, name, description, week, position
		FROM program_blocks WHERE id = ?`
	b, err := r.scanBlock(r.db.QueryRowContext(ctx, query, blockID))
	if err != nil {
		return nil, err
	}
	b.Exercises, err = r.Prescriptions(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *SQLiteProgramRepo) Prescriptions(ctx context.Context, blockID string) ([]domain.Prescription, error) {
	query := `SELECT ` + prescriptionColumns + ` FROM program_exercises
		WHERE program_block_id = ? ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, query, blockID)
	if err != nil {
		return nil, fmt.Errorf("listing prescriptions: %w", err)
	}
	defer rows.Close()

	var prescriptions []domain.Prescription
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, err
		}
		prescriptions = append(prescriptions, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (r *SQLiteProgramRepo) GetPrescription(ctx context.Context, blockID, exerciseID string) (*domain.Prescription, error) {
	query := `SELECT ` + prescriptionColumns + ` FROM program_exercises
		WHERE program_block_id = ? AND exercise_id = ?`
	rows, err := r.db.QueryContext(ctx, query, blockID, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("loading prescription: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("loading prescription: %w", err)
		}
		return nil, fmt.Errorf("prescription: %w", ErrNotFound)
	}
	return scanPrescription(rows)
}

func (r *SQLiteProgramRepo) loadProgram(ctx context.Context, row *sql.Row) (*domain.Program, error) {
	p, err := scanProgramHeaderRow(row)
	if err != nil {
		return nil, err
	}

	p.Blocks, err = r.loadBlockHeaders(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	for i := range p.Blocks {
		p.Blocks[i].Exercises, err = r.Prescriptions(ctx, p.Blocks[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (r *SQLiteProgramRepo) loadBlockHeaders(ctx context.Context, programID string) ([]domain.Block, error) {
	query := `SELECT id, program_id, name, description, week, position
		FROM program_blocks WHERE program_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, programID)
	if err != nil {
		return nil, fmt.Errorf("listing blocks: %w", err)
	}
	defer rows.Close()

	var blocks []domain.Block
	for rows.Next() {
		b, err := r.scanBlockRow(rows)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating blocks: %w", err)
	}
	return blocks, nil
}

func scanProgramHeaderRow(row *sql.Row) (*domain.Program, error) {
	var p domain.Program
	var createdAtStr string
	if err := row.Scan(&p.ID, &p.Seq, &p.Name, &p.Description, &createdAtStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("program: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning program: %w", err)
	}
	return finishProgramHeader(&p, createdAtStr)
}

func scanProgramHeader(rows *sql.Rows) (*domain.Program, error) {
	var p domain.Program
	var createdAtStr string
	if err := rows.Scan(&p.ID, &p.Seq, &p.Name, &p.Description, &createdAtStr); err != nil {
		return nil, fmt.Errorf("scanning program row: %w", err)
	}
	return finishProgramHeader(&p, createdAtStr)
}

func finishProgramHeader(p *domain.Program, createdAtStr string) (*domain.Program, error) {
	createdAt, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	p.CreatedAt = createdAt
	return p, nil
}

func (r *SQLiteProgramRepo) scanBlock(row *sql.Row) (*domain.Block, error) {
	var b domain.Block
	var week sql.NullInt64
	if err := row.Scan(&b.ID, &b.ProgramID, &b.Name, &b.Description, &week, &b.Position); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("block: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning block: %w", err)
	}
	if week.Valid {
		b.Week = int(week.Int64)
	}
	return &b, nil
}

func (r *SQLiteProgramRepo) scanBlockRow(rows *sql.Rows) (*domain.Block, error) {
	var b domain.Block
	var week sql.NullInt64
	if err := rows.Scan(&b.ID, &b.ProgramID, &b.Name, &b.Description, &week, &b.Position); err != nil {
		return nil, fmt.Errorf("scanning block row: %w", err)
	}
	if week.Valid {
		b.Week = int(week.Int64)
	}
	return &b, nil
}

func scanPrescription(rows *sql.Rows) (*domain.Prescription, error) {
	var p domain.Prescription
	var repsJSON, rpeJSON, pctJSON, technique string
	var ref sql.NullFloat64

	if err := rows.Scan(
		&p.ID, &p.BlockID, &p.ExerciseID, &p.Sets, &repsJSON,
		&rpeJSON, &pctJSON, &p.Notes, &ref,
		&technique, &p.TechniqueGroup, &p.OrderIndex,
	); err != nil {
		return nil, fmt.Errorf("scanning prescription: %w", err)
	}

	if err := json.Unmarshal([]byte(repsJSON), &p.Reps); err != nil {
		return nil, fmt.Errorf("decoding rep targets: %w", err)
	}
	if err := json.Unmarshal([]byte(rpeJSON), &p.TargetRPE); err != nil {
		return nil, fmt.Errorf("decoding rpe targets: %w", err)
	}
	if err := json.Unmarshal([]byte(pctJSON), &p.TargetPercent); err != nil {
		return nil, fmt.Errorf("decoding percent targets: %w", err)
	}
	p.Reference1RM = floatFromNullable(ref)
	p.Technique = domain.Technique(technique)
	return &p, nil
}
