package importer

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ProgramFile is the top-level TOML structure for program import. One file
// can carry several programs.
type ProgramFile struct {
	Programs []ProgramImport `toml:"programs"`
}

// ProgramImport defines one program in the import file.
type ProgramImport struct {
	Name        string        `toml:"name"`
	Description string        `toml:"description"`
	Blocks      []BlockImport `toml:"blocks"`
}

// BlockImport defines one block (training day) of a program.
type BlockImport struct {
	Name        string           `toml:"name"`
	Description string           `toml:"description"`
	Week        int              `toml:"week"`
	Exercises   []ExerciseTarget `toml:"exercises"`
}

// ExerciseTarget defines one prescribed exercise inside a block. The
// exercise is referenced by catalog name; rep, RPE and %1RM targets are
// position-matched per-set lists.
type ExerciseTarget struct {
	Name           string    `toml:"name"`
	Sets           int       `toml:"sets"`
	Reps           []string  `toml:"reps"`
	TargetRPE      []float64 `toml:"target_rpe"`
	TargetPercent  []float64 `toml:"target_rm_percent"`
	Reference1RM   *float64  `toml:"reference_1rm"`
	Technique      string    `toml:"technique"`
	TechniqueGroup int       `toml:"technique_group"`
	Notes          string    `toml:"notes"`
}

// ExerciseFile is the top-level TOML structure for catalog import.
type ExerciseFile struct {
	Exercises []ExerciseImport `toml:"exercises"`
}

// ExerciseImport defines one catalog exercise in the import file.
type ExerciseImport struct {
	Name          string   `toml:"name"`
	PrimaryMuscle string   `toml:"primary_muscle"`
	Description   string   `toml:"description"`
	Variants      []string `toml:"variants"`
}

// LoadProgramFile reads and parses a program import TOML file.
func LoadProgramFile(path string) (*ProgramFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file ProgramFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing program file: %w", err)
	}
	return &file, nil
}

// LoadExerciseFile reads and parses an exercise import TOML file.
func LoadExerciseFile(path string) (*ExerciseFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file ExerciseFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing exercise file: %w", err)
	}
	return &file, nil
}
