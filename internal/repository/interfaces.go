package repository

import (
	"context"
	"time"

	"github.com/rsoares/grit/internal/domain"
)

// ExerciseFilter narrows exercise listings. Zero values match everything.
type ExerciseFilter struct {
	Muscle domain.Muscle
}

type ExerciseRepo interface {
	Create(ctx context.Context, e *domain.Exercise) error
	GetByID(ctx context.Context, id string) (*domain.Exercise, error)
	GetByName(ctx context.Context, name string) (*domain.Exercise, error)
	GetBySeq(ctx context.Context, seq int) (*domain.Exercise, error)
	List(ctx context.Context, f ExerciseFilter) ([]*domain.Exercise, error)
	UpdateBest(ctx context.Context, id string, estimated1RM float64, date time.Time) error
	Delete(ctx context.Context, id string) error
	AddVariant(ctx context.Context, v *domain.Variant) error
	ListVariants(ctx context.Context, exerciseID string) ([]domain.Variant, error)
}

type ProgramRepo interface {
	Create(ctx context.Context, p *domain.Program) error
	GetByID(ctx context.Context, id string) (*domain.Program, error)
	GetByName(ctx context.Context, name string) (*domain.Program, error)
	GetBySeq(ctx context.Context, seq int) (*domain.Program, error)
	List(ctx context.Context) ([]*domain.Program, error)
	Delete(ctx context.Context, id string) error
	GetBlock(ctx context.Context, blockID string) (*domain.Block, error)
	Prescriptions(ctx context.Context, blockID string) ([]domain.Prescription, error)
	GetPrescription(ctx context.Context, blockID, exerciseID string) (*domain.Prescription, error)
	CreatePrescription(ctx context.Context, p *domain.Prescription) error
}

type SessionRepo interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	// Current returns the active session via the current_session pointer,
	// or ErrNotFound when none is active.
	Current(ctx context.Context) (*domain.Session, error)
	SetCurrent(ctx context.Context, sessionID string) error
	ClearCurrent(ctx context.Context) error
	MarkEnded(ctx context.Context, id string, endedAt time.Time) error
	Delete(ctx context.Context, id string) error
	// LatestCompletedOn returns the most recent completed session started
	// on the given calendar day (local time).
	LatestCompletedOn(ctx context.Context, day time.Time) (*domain.Session, error)
	RecentCompletedForExercise(ctx context.Context, exerciseID string, limit int) ([]*domain.Session, error)
	AddExercise(ctx context.Context, se *domain.SessionExercise) error
	GetExercise(ctx context.Context, id string) (*domain.SessionExercise, error)
	ListExercises(ctx context.Context, sessionID string) ([]*domain.SessionExercise, error)
	// SwapExercise rewrites the exercise reference in place, preserving
	// the row's identity, position and logged sets. plannedSets becomes
	// the advisory set count for the replacement.
	SwapExercise(ctx context.Context, sessionExerciseID, newExerciseID string, plannedSets int) error
	SetExerciseNote(ctx context.Context, sessionExerciseID, note string) error
}

type SetRepo interface {
	Insert(ctx context.Context, s *domain.Set) error
	Update(ctx context.Context, s *domain.Set) error
	GetBySlot(ctx context.Context, sessionExerciseID string, slot int) (*domain.Set, error)
	ListBySessionExercise(ctx context.Context, sessionExerciseID string) ([]domain.Set, error)
	ListBySessionAndExercise(ctx context.Context, sessionID, exerciseID string) ([]domain.Set, error)
	CountBySessionExercise(ctx context.Context, sessionExerciseID string) (int, error)
	// PreviousAtSlot returns the most recent weighted set logged at the
	// given slot for the exercise across completed sessions, skipping the
	// session named by excludeSessionID so a completed session can be
	// viewed without matching its own sets.
	PreviousAtSlot(ctx context.Context, exerciseID string, slot int, excludeSessionID string) (*domain.Set, error)
}

type RecordRepo interface {
	// Best returns the authoritative record on one track (highest
	// estimated 1RM for weighted, highest reps for bodyweight), or
	// ErrNotFound when the exercise has none on that track.
	Best(ctx context.Context, exerciseID string, bodyweight bool) (*domain.PersonalRecord, error)
	Upsert(ctx context.Context, pr *domain.PersonalRecord) error
	ListByExercise(ctx context.Context, exerciseID string) ([]domain.PersonalRecord, error)
}

type SequenceRepo interface {
	Next(ctx context.Context, scope string) (int, error)
}
