package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent
// (CREATE ... IF NOT EXISTS) so the full list re-runs on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// migrations is the ordered list of schema statements.
//
// Ordering conventions: training_session_exercises carry an explicit
// position column and exercise_sets an explicit slot column, both allocated
// transactionally from the sequences table. The active session is a
// single-row pointer table (current_session) rather than a scan for a NULL
// end_time, so "at most one active session" is a uniqueness constraint,
// not a check-then-act read.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS exercises (
		id                 TEXT PRIMARY KEY,
		seq                INTEGER NOT NULL UNIQUE,
		name               TEXT NOT NULL UNIQUE COLLATE NOCASE,
		primary_muscle     TEXT NOT NULL,
		description        TEXT NOT NULL DEFAULT '',
		best_estimated_1rm REAL,
		best_date          TEXT,
		created_at         TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS exercise_variants (
		id          TEXT PRIMARY KEY,
		exercise_id TEXT NOT NULL REFERENCES exercises(id) ON DELETE CASCADE,
		seq         INTEGER NOT NULL,
		name        TEXT NOT NULL COLLATE NOCASE,
		UNIQUE(exercise_id, seq),
		UNIQUE(exercise_id, name)
	)`,

	`CREATE TABLE IF NOT EXISTS programs (
		id          TEXT PRIMARY KEY,
		seq         INTEGER NOT NULL UNIQUE,
		name        TEXT NOT NULL UNIQUE COLLATE NOCASE,
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS program_blocks (
		id          TEXT PRIMARY KEY,
		program_id  TEXT NOT NULL REFERENCES programs(id) ON DELETE CASCADE,
		name        TEXT NOT NULL COLLATE NOCASE,
		description TEXT NOT NULL DEFAULT '',
		week        INTEGER,
		position    INTEGER NOT NULL,
		UNIQUE(program_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS program_exercises (
		id                TEXT PRIMARY KEY,
		program_block_id  TEXT NOT NULL REFERENCES program_blocks(id) ON DELETE CASCADE,
		exercise_id       TEXT NOT NULL REFERENCES exercises(id),
		sets              INTEGER NOT NULL,
		reps              TEXT NOT NULL DEFAULT '[]',
		target_rpe        TEXT NOT NULL DEFAULT '[]',
		target_rm_percent TEXT NOT NULL DEFAULT '[]',
		notes             TEXT NOT NULL DEFAULT '',
		reference_1rm     REAL,
		technique         TEXT NOT NULL DEFAULT '',
		technique_group   INTEGER NOT NULL DEFAULT 0,
		order_index       INTEGER NOT NULL,
		UNIQUE(program_block_id, exercise_id)
	)`,

	`CREATE TABLE IF NOT EXISTS training_sessions (
		id               TEXT PRIMARY KEY,
		program_block_id TEXT NOT NULL REFERENCES program_blocks(id),
		week             INTEGER,
		start_time       TEXT NOT NULL,
		end_time         TEXT,
		notes            TEXT NOT NULL DEFAULT ''
	)`,

	// Single-row pointer to the active session. slot is always 1, so a
	// second concurrent Start fails on the primary key instead of racing
	// a NULL end_time scan.
	`CREATE TABLE IF NOT EXISTS current_session (
		slot       INTEGER PRIMARY KEY CHECK (slot = 1),
		session_id TEXT NOT NULL REFERENCES training_sessions(id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS training_session_exercises (
		id                  TEXT PRIMARY KEY,
		training_session_id TEXT NOT NULL REFERENCES training_sessions(id) ON DELETE CASCADE,
		exercise_id         TEXT NOT NULL REFERENCES exercises(id),
		position            INTEGER NOT NULL,
		planned_sets        INTEGER NOT NULL DEFAULT 0,
		notes               TEXT NOT NULL DEFAULT '',
		UNIQUE(training_session_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS exercise_sets (
		id                  TEXT PRIMARY KEY,
		session_exercise_id TEXT NOT NULL REFERENCES training_session_exercises(id) ON DELETE CASCADE,
		slot                INTEGER NOT NULL,
		weight              REAL NOT NULL,
		reps                INTEGER NOT NULL,
		rpe                 REAL,
		rm_percent          REAL,
		notes               TEXT NOT NULL DEFAULT '',
		timestamp           TEXT NOT NULL,
		bodyweight          INTEGER NOT NULL DEFAULT 0,
		ignore_for_one_rm   INTEGER NOT NULL DEFAULT 0,
		UNIQUE(session_exercise_id, slot)
	)`,

	`CREATE TABLE IF NOT EXISTS personal_records (
		exercise_id   TEXT NOT NULL REFERENCES exercises(id) ON DELETE CASCADE,
		date          TEXT NOT NULL,
		weight        REAL NOT NULL,
		reps          INTEGER NOT NULL,
		estimated_1rm REAL NOT NULL,
		bodyweight    INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (exercise_id, date, bodyweight)
	)`,

	// Scoped monotonic counters: exercise display seq, program seq,
	// variant seq per exercise, session-exercise position per session.
	`CREATE TABLE IF NOT EXISTS sequences (
		scope    TEXT PRIMARY KEY,
		next_seq INTEGER NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_blocks_program ON program_blocks(program_id)`,
	`CREATE INDEX IF NOT EXISTS idx_prescriptions_block ON program_exercises(program_block_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_block ON training_sessions(program_block_id)`,
	`CREATE INDEX IF NOT EXISTS idx_session_exercises_session ON training_session_exercises(training_session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_session_exercises_exercise ON training_session_exercises(exercise_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sets_session_exercise ON exercise_sets(session_exercise_id)`,
	`CREATE INDEX IF NOT EXISTS idx_records_exercise ON personal_records(exercise_id)`,
}
