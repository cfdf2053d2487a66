package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rsoares/grit/internal/domain"
)

// ExerciseResolver maps a catalog exercise name to its ID. Conversion fails
// when a prescribed exercise is not in the catalog.
type ExerciseResolver func(name string) (string, error)

// ConvertPrograms transforms a validated program file into domain aggregates
// ready for persistence. Call ValidateProgramFile first; ConvertPrograms
// assumes the file is valid. Seq values are left at zero for the caller to
// allocate.
func ConvertPrograms(file *ProgramFile, resolve ExerciseResolver) ([]*domain.Program, error) {
	now := time.Now().UTC()

	programs := make([]*domain.Program, 0, len(file.Programs))
	for _, p := range file.Programs {
		program := &domain.Program{
			ID:          uuid.New().String(),
			Name:        strings.TrimSpace(p.Name),
			Description: strings.TrimSpace(p.Description),
			CreatedAt:   now,
		}

		for i, b := range p.Blocks {
			block := domain.Block{
				ID:          uuid.New().String(),
				ProgramID:   program.ID,
				Name:        strings.TrimSpace(b.Name),
				Description: strings.TrimSpace(b.Description),
				Week:        b.Week,
				Position:    i + 1,
			}

			for j, e := range b.Exercises {
				exerciseID, err := resolve(strings.TrimSpace(e.Name))
				if err != nil {
					return nil, fmt.Errorf("program %q, block %q: exercise %q: %w", p.Name, b.Name, e.Name, err)
				}
				block.Exercises = append(block.Exercises, domain.Prescription{
					ID:             uuid.New().String(),
					BlockID:        block.ID,
					ExerciseID:     exerciseID,
					Sets:           e.Sets,
					Reps:           e.Reps,
					TargetRPE:      e.TargetRPE,
					TargetPercent:  e.TargetPercent,
					Notes:          strings.TrimSpace(e.Notes),
					Reference1RM:   e.Reference1RM,
					Technique:      domain.Technique(strings.ToLower(e.Technique)),
					TechniqueGroup: e.TechniqueGroup,
					OrderIndex:     j + 1,
				})
			}
			program.Blocks = append(program.Blocks, block)
		}
		programs = append(programs, program)
	}
	return programs, nil
}

// ConvertExercises transforms a validated exercise file into domain objects.
// Seq values are left at zero for the caller to allocate.
func ConvertExercises(file *ExerciseFile) []*domain.Exercise {
	now := time.Now().UTC()

	exercises := make([]*domain.Exercise, 0, len(file.Exercises))
	for _, e := range file.Exercises {
		muscle, _ := domain.ParseMuscle(e.PrimaryMuscle)
		ex := &domain.Exercise{
			ID:          uuid.New().String(),
			Name:        strings.TrimSpace(e.Name),
			Muscle:      muscle,
			Description: strings.TrimSpace(e.Description),
			CreatedAt:   now,
		}
		for _, v := range e.Variants {
			ex.Variants = append(ex.Variants, domain.Variant{
				ID:         uuid.New().String(),
				ExerciseID: ex.ID,
				Name:       strings.TrimSpace(v),
			})
		}
		exercises = append(exercises, ex)
	}
	return exercises
}
