package importer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsoares/grit/internal/domain"
)

func TestConvertPrograms(t *testing.T) {
	ids := map[string]string{"Squat": "sq-1", "Bench Press": "bp-1"}
	resolve := func(name string) (string, error) {
		id, ok := ids[name]
		if !ok {
			return "", fmt.Errorf("unknown %q", name)
		}
		return id, nil
	}

	file := validProgramFile()
	file.Programs[0].Blocks = append(file.Programs[0].Blocks, BlockImport{
		Name: "  Day 2  ",
		Week: 2,
		Exercises: []ExerciseTarget{
			{Name: "Bench Press", Sets: 4, Reps: []string{"8"}},
			{Name: "Squat", Sets: 3, Notes: "  beltless  "},
		},
	})

	programs, err := ConvertPrograms(file, resolve)
	require.NoError(t, err)
	require.Len(t, programs, 1)

	p := programs[0]
	assert.Equal(t, "Strength Base", p.Name)
	assert.Zero(t, p.Seq, "seq allocation is the caller's job")
	assert.NotEmpty(t, p.ID)

	require.Len(t, p.Blocks, 2)
	assert.Equal(t, 1, p.Blocks[0].Position)
	assert.Equal(t, 2, p.Blocks[1].Position)
	assert.Equal(t, "Day 2", p.Blocks[1].Name, "names are trimmed")
	assert.Equal(t, 2, p.Blocks[1].Week)

	first := p.Blocks[0].Exercises[0]
	assert.Equal(t, "sq-1", first.ExerciseID)
	assert.Equal(t, p.Blocks[0].ID, first.BlockID)
	assert.Equal(t, 1, first.OrderIndex)
	assert.Equal(t, domain.TechniqueMyoreps, first.Technique)
	require.NotNil(t, first.Reference1RM)
	assert.Equal(t, 140.0, *first.Reference1RM)

	day2 := p.Blocks[1].Exercises
	assert.Equal(t, "bp-1", day2[0].ExerciseID)
	assert.Equal(t, 2, day2[1].OrderIndex)
	assert.Equal(t, "beltless", day2[1].Notes)
}

func TestConvertPrograms_ResolverFailureNamesTheExercise(t *testing.T) {
	boom := errors.New("not in the catalog")
	resolve := func(string) (string, error) { return "", boom }

	_, err := ConvertPrograms(validProgramFile(), resolve)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `exercise "Squat"`)
	assert.Contains(t, err.Error(), `program "Strength Base"`)
}

func TestConvertExercises(t *testing.T) {
	file := &ExerciseFile{Exercises: []ExerciseImport{{
		Name:          "  Squat  ",
		PrimaryMuscle: "quad",
		Description:   " king of lifts ",
		Variants:      []string{" High bar ", "Low bar"},
	}}}

	exercises := ConvertExercises(file)
	require.Len(t, exercises, 1)

	ex := exercises[0]
	assert.Equal(t, "Squat", ex.Name)
	assert.Equal(t, domain.MuscleQuads, ex.Muscle, "singular spellings fold into the group")
	assert.Equal(t, "king of lifts", ex.Description)
	assert.Zero(t, ex.Seq)

	require.Len(t, ex.Variants, 2)
	assert.Equal(t, "High bar", ex.Variants[0].Name)
	assert.Equal(t, ex.ID, ex.Variants[0].ExerciseID)
}
