package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validProgramFile() *ProgramFile {
	ref := 140.0
	return &ProgramFile{Programs: []ProgramImport{{
		Name: "Strength Base",
		Blocks: []BlockImport{{
			Name: "Day 1",
			Week: 1,
			Exercises: []ExerciseTarget{{
				Name:          "Squat",
				Sets:          3,
				Reps:          []string{"5", "5", "5+"},
				TargetRPE:     []float64{7, 8, 9},
				TargetPercent: []float64{70, 75, 80},
				Reference1RM:  &ref,
				Technique:     "myoreps",
			}},
		}},
	}}}
}

func errorStrings(errs []error) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}

func TestValidateProgramFile_Valid(t *testing.T) {
	assert.Empty(t, ValidateProgramFile(validProgramFile()))
}

func TestValidateProgramFile_EmptyFile(t *testing.T) {
	errs := ValidateProgramFile(&ProgramFile{})
	assert.Contains(t, errorStrings(errs), "file defines no programs")
}

func TestValidateProgramFile_CollectsAllErrors(t *testing.T) {
	bad := -1.0
	file := &ProgramFile{Programs: []ProgramImport{
		{Name: "Dup", Blocks: []BlockImport{{
			Name: "Day 1",
			Exercises: []ExerciseTarget{{
				Name:          "Squat",
				Sets:          2,
				Reps:          []string{"5", "5", "5"},
				TargetRPE:     []float64{11},
				TargetPercent: []float64{120},
				Reference1RM:  &bad,
				Technique:     "waves",
			}, {
				Name: "squat",
				Sets: 3,
			}},
		}}},
		{Name: "dup"},
		{Name: ""},
	}}

	msgs := errorStrings(ValidateProgramFile(file))
	joined := ""
	for _, m := range msgs {
		joined += m + "\n"
	}
	assert.Contains(t, joined, "3 rep targets for 2 sets")
	assert.Contains(t, joined, "RPE 11.0 out of range")
	assert.Contains(t, joined, "%1RM 120.0 out of range")
	assert.Contains(t, joined, "reference_1rm must be positive")
	assert.Contains(t, joined, `unknown technique "waves"`)
	assert.Contains(t, joined, "appears twice in the block")
	assert.Contains(t, joined, `duplicate program name "dup"`)
	assert.Contains(t, joined, "name is required")
	assert.Contains(t, joined, "needs at least one block")
}

func TestValidateProgramFile_SetsAndWeek(t *testing.T) {
	file := &ProgramFile{Programs: []ProgramImport{{
		Name: "P",
		Blocks: []BlockImport{{
			Name:      "Day 1",
			Week:      -1,
			Exercises: []ExerciseTarget{{Name: "Squat", Sets: 0}},
		}},
	}}}

	msgs := errorStrings(ValidateProgramFile(file))
	joined := ""
	for _, m := range msgs {
		joined += m + "\n"
	}
	assert.Contains(t, joined, "week must not be negative")
	assert.Contains(t, joined, "sets must be at least 1")
}

func TestValidateExerciseFile(t *testing.T) {
	assert.Empty(t, ValidateExerciseFile(&ExerciseFile{Exercises: []ExerciseImport{
		{Name: "Squat", PrimaryMuscle: "quads", Variants: []string{"High bar", "Low bar"}},
	}}))

	errs := ValidateExerciseFile(&ExerciseFile{})
	assert.Contains(t, errorStrings(errs), "file defines no exercises")

	file := &ExerciseFile{Exercises: []ExerciseImport{
		{Name: "Squat", PrimaryMuscle: "legs", Variants: []string{"Paused", "paused", ""}},
		{Name: "squat", PrimaryMuscle: "quads"},
	}}
	msgs := errorStrings(ValidateExerciseFile(file))
	joined := ""
	for _, m := range msgs {
		joined += m + "\n"
	}
	assert.Contains(t, joined, `unknown muscle "legs"`)
	assert.Contains(t, joined, `duplicate variant "paused"`)
	assert.Contains(t, joined, "empty variant name")
	assert.Contains(t, joined, `duplicate exercise name "squat"`)
}
