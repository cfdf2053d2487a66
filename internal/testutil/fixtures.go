package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rsoares/grit/internal/domain"
	"github.com/rsoares/grit/internal/repository"
)

// SeedExercise inserts a catalog exercise with an allocated display seq.
func SeedExercise(t *testing.T, database *sql.DB, name string, muscle domain.Muscle) *domain.Exercise {
	t.Helper()
	ctx := context.Background()

	seq, err := repository.NewSQLiteSequenceRepo(database).Next(ctx, repository.ScopeExercise)
	if err != nil {
		t.Fatalf("allocating exercise seq: %v", err)
	}
	ex := &domain.Exercise{
		ID:        uuid.New().String(),
		Seq:       seq,
		Name:      name,
		Muscle:    muscle,
		CreatedAt: time.Now().UTC(),
	}
	if err := repository.NewSQLiteExerciseRepo(database).Create(ctx, ex); err != nil {
		t.Fatalf("seeding exercise %q: %v", name, err)
	}
	return ex
}

// Prescribe builds a prescription for SeedProgram. IDs, block linkage and
// order are filled in at insert time.
func Prescribe(exerciseID string, sets int, reps ...string) domain.Prescription {
	return domain.Prescription{ExerciseID: exerciseID, Sets: sets, Reps: reps}
}

// SeedProgram inserts a program with a single block holding the given
// prescriptions.
func SeedProgram(t *testing.T, database *sql.DB, name, blockName string, week int, prescs ...domain.Prescription) *domain.Program {
	t.Helper()
	ctx := context.Background()

	seq, err := repository.NewSQLiteSequenceRepo(database).Next(ctx, repository.ScopeProgram)
	if err != nil {
		t.Fatalf("allocating program seq: %v", err)
	}

	p := &domain.Program{
		ID:        uuid.New().String(),
		Seq:       seq,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	block := domain.Block{
		ID:        uuid.New().String(),
		ProgramID: p.ID,
		Name:      blockName,
		Week:      week,
		Position:  1,
	}
	for i := range prescs {
		prescs[i].ID = uuid.New().String()
		prescs[i].BlockID = block.ID
		prescs[i].OrderIndex = i + 1
		block.Exercises = append(block.Exercises, prescs[i])
	}
	p.Blocks = []domain.Block{block}

	if err := repository.NewSQLiteProgramRepo(database).Create(ctx, p); err != nil {
		t.Fatalf("seeding program %q: %v", name, err)
	}
	return p
}
