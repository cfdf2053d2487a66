package importer

import (
	"fmt"
	"strings"

	"github.com/rsoares/grit/internal/domain"
)

var validTechniques = map[string]bool{
	"":         true,
	"superset": true,
	"myoreps":  true,
	"hell":     true,
	"drop":     true,
}

// ValidateProgramFile checks a program import file before conversion.
// Returns a slice of all validation errors found.
func ValidateProgramFile(file *ProgramFile) []error {
	var errs []error

	if len(file.Programs) == 0 {
		errs = append(errs, fmt.Errorf("file defines no programs"))
	}

	names := make(map[string]bool)
	for i, p := range file.Programs {
		prefix := fmt.Sprintf("programs[%d]", i)
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else if key := strings.ToLower(p.Name); names[key] {
			errs = append(errs, fmt.Errorf("%s: duplicate program name %q", prefix, p.Name))
		} else {
			names[key] = true
		}
		if len(p.Blocks) == 0 {
			errs = append(errs, fmt.Errorf("%s: program needs at least one block", prefix))
		}
		for j, b := range p.Blocks {
			errs = append(errs, validateBlock(fmt.Sprintf("%s.blocks[%d]", prefix, j), &b)...)
		}
	}
	return errs
}

func validateBlock(prefix string, b *BlockImport) []error {
	var errs []error

	if strings.TrimSpace(b.Name) == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	}
	if b.Week < 0 {
		errs = append(errs, fmt.Errorf("%s.week must not be negative", prefix))
	}
	if len(b.Exercises) == 0 {
		errs = append(errs, fmt.Errorf("%s: block needs at least one exercise", prefix))
	}

	seen := make(map[string]bool)
	for k, e := range b.Exercises {
		ePrefix := fmt.Sprintf("%s.exercises[%d]", prefix, k)
		if strings.TrimSpace(e.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", ePrefix))
		} else if key := strings.ToLower(e.Name); seen[key] {
			errs = append(errs, fmt.Errorf("%s: exercise %q appears twice in the block", ePrefix, e.Name))
		} else {
			seen[key] = true
		}
		if e.Sets < 1 {
			errs = append(errs, fmt.Errorf("%s.sets must be at least 1", ePrefix))
		}
		if len(e.Reps) > e.Sets {
			errs = append(errs, fmt.Errorf("%s: %d rep targets for %d sets", ePrefix, len(e.Reps), e.Sets))
		}
		if len(e.TargetRPE) > e.Sets {
			errs = append(errs, fmt.Errorf("%s: %d RPE targets for %d sets", ePrefix, len(e.TargetRPE), e.Sets))
		}
		if len(e.TargetPercent) > e.Sets {
			errs = append(errs, fmt.Errorf("%s: %d %%1RM targets for %d sets", ePrefix, len(e.TargetPercent), e.Sets))
		}
		for _, rpe := range e.TargetRPE {
			if rpe < 1 || rpe > 10 {
				errs = append(errs, fmt.Errorf("%s: RPE %.1f out of range 1-10", ePrefix, rpe))
			}
		}
		for _, pct := range e.TargetPercent {
			if pct <= 0 || pct > 100 {
				errs = append(errs, fmt.Errorf("%s: %%1RM %.1f out of range", ePrefix, pct))
			}
		}
		if e.Reference1RM != nil && *e.Reference1RM <= 0 {
			errs = append(errs, fmt.Errorf("%s.reference_1rm must be positive", ePrefix))
		}
		if !validTechniques[strings.ToLower(e.Technique)] {
			errs = append(errs, fmt.Errorf("%s: unknown technique %q", ePrefix, e.Technique))
		}
	}
	return errs
}

// ValidateExerciseFile checks an exercise import file before conversion.
func ValidateExerciseFile(file *ExerciseFile) []error {
	var errs []error

	if len(file.Exercises) == 0 {
		errs = append(errs, fmt.Errorf("file defines no exercises"))
	}

	names := make(map[string]bool)
	for i, e := range file.Exercises {
		prefix := fmt.Sprintf("exercises[%d]", i)
		if strings.TrimSpace(e.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else if key := strings.ToLower(e.Name); names[key] {
			errs = append(errs, fmt.Errorf("%s: duplicate exercise name %q", prefix, e.Name))
		} else {
			names[key] = true
		}
		if _, ok := domain.ParseMuscle(e.PrimaryMuscle); !ok {
			errs = append(errs, fmt.Errorf("%s: unknown muscle %q", prefix, e.PrimaryMuscle))
		}
		variantNames := make(map[string]bool)
		for _, v := range e.Variants {
			if strings.TrimSpace(v) == "" {
				errs = append(errs, fmt.Errorf("%s: empty variant name", prefix))
				continue
			}
			if key := strings.ToLower(v); variantNames[key] {
				errs = append(errs, fmt.Errorf("%s: duplicate variant %q", prefix, v))
			} else {
				variantNames[key] = true
			}
		}
	}
	return errs
}
