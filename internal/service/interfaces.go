package service

import (
	"context"
	"time"

	"github.com/rsoares/grit/internal/contract"
	"github.com/rsoares/grit/internal/domain"
)

// CatalogService manages the exercise catalog.
type CatalogService interface {
	Add(ctx context.Context, name string, muscle string, description string) (*domain.Exercise, error)
	Get(ctx context.Context, ref string) (*contract.ExerciseDetail, error)
	List(ctx context.Context, muscle string) ([]contract.ExerciseSummary, error)
	Delete(ctx context.Context, ref string) error
	AddVariant(ctx context.Context, exerciseRef string, name string) (*domain.Variant, error)
	// Resolve maps a user-facing reference (display seq or case-insensitive
	// name) to the exercise it names.
	Resolve(ctx context.Context, ref string) (*domain.Exercise, error)
}

// ProgramService reads and removes training programs. Programs are written
// exclusively through the import path.
type ProgramService interface {
	List(ctx context.Context) ([]contract.ProgramSummary, error)
	Get(ctx context.Context, ref string) (*contract.ProgramDetail, error)
	Delete(ctx context.Context, ref string) error
}

// SessionService drives the live training session state machine.
type SessionService interface {
	Start(ctx context.Context, programRef string, blockRef string, week int) (*contract.StartResult, error)
	Show(ctx context.Context) (*contract.SessionView, error)
	Log(ctx context.Context, day time.Time) (*contract.SessionView, error)
	Edit(ctx context.Context, req contract.EditSetRequest) (*contract.EditResult, error)
	Swap(ctx context.Context, exerciseIndex int, newExerciseRef string) (*contract.SwapResult, error)
	AddExercise(ctx context.Context, exerciseRef string, plannedSets int) (*contract.AddExerciseResult, error)
	Note(ctx context.Context, exerciseIndex int, note string) error
	Cancel(ctx context.Context) error
	End(ctx context.Context) (*contract.EndSummary, error)
}

// HistoryService answers read-only questions about completed sessions.
type HistoryService interface {
	// PreviousSet returns the most recent weighted set logged at the given
	// slot for the exercise across completed sessions, or nil when none.
	// The session named by excludeSessionID is skipped so a completed
	// session can be viewed against the one before it, not itself.
	PreviousSet(ctx context.Context, exerciseID string, slot int, excludeSessionID string) (*domain.Set, error)
	RecentHistory(ctx context.Context, exerciseID string, limit int) ([]contract.HistoryEntry, error)
}

// ImportService loads exercises and programs from TOML files.
type ImportService interface {
	ImportExercises(ctx context.Context, path string) (*contract.ImportSummary, error)
	ImportPrograms(ctx context.Context, path string) (*contract.ImportSummary, error)
}
