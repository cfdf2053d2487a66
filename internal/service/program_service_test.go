package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsoares/grit/internal/domain"
	"github.com/rsoares/grit/internal/repository"
	"github.com/rsoares/grit/internal/testutil"
)

func TestProgramService_List(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewProgramService(
		repository.NewSQLiteProgramRepo(database),
		repository.NewSQLiteExerciseRepo(database),
	)
	ctx := context.Background()

	ex := testutil.SeedExercise(t, database, "Squat", domain.MuscleQuads)
	testutil.SeedProgram(t, database, "Alpha", "Day 1", 0, testutil.Prescribe(ex.ID, 3, "5"))
	testutil.SeedProgram(t, database, "Beta", "Day 1", 4, testutil.Prescribe(ex.ID, 3, "5"))

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alpha", rows[0].Name)
	assert.Equal(t, 1, rows[0].BlockCount)
	assert.Equal(t, 0, rows[0].Weeks, "untagged blocks report no week span")
	assert.Equal(t, 4, rows[1].Weeks)
}

func TestProgramService_Get(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewProgramService(
		repository.NewSQLiteProgramRepo(database),
		repository.NewSQLiteExerciseRepo(database),
	)
	ctx := context.Background()

	ex := testutil.SeedExercise(t, database, "Squat", domain.MuscleQuads)
	presc := testutil.Prescribe(ex.ID, 3, "5", "5", "5+")
	presc.TargetRPE = []float64{7, 8, 9}
	testutil.SeedProgram(t, database, "Peaking", "Day 1", 0, presc)

	detail, err := svc.Get(ctx, "peaking")
	require.NoError(t, err)
	assert.Equal(t, "Peaking", detail.Name)
	require.Len(t, detail.Blocks, 1)
	require.Len(t, detail.Blocks[0].Exercises, 1)

	pv := detail.Blocks[0].Exercises[0]
	assert.Equal(t, "Squat", pv.Exercise, "prescriptions render the catalog name")
	assert.Equal(t, 3, pv.Sets)
	assert.Equal(t, []string{"5", "5", "5+"}, pv.Reps)
	assert.Equal(t, []float64{7, 8, 9}, pv.TargetRPE)

	_, err = svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProgramService_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewProgramService(
		repository.NewSQLiteProgramRepo(database),
		repository.NewSQLiteExerciseRepo(database),
	)
	ctx := context.Background()

	ex := testutil.SeedExercise(t, database, "Squat", domain.MuscleQuads)
	testutil.SeedProgram(t, database, "Peaking", "Day 1", 0, testutil.Prescribe(ex.ID, 3, "5"))

	require.NoError(t, svc.Delete(ctx, "1"))
	assert.ErrorIs(t, svc.Delete(ctx, "1"), repository.ErrNotFound)
}
