package service

import (
	"context"
	"time"

	"github.com/rsoares/grit/internal/contract"
	"github.com/rsoares/grit/internal/domain"
	"github.com/rsoares/grit/internal/repository"
)

type programService struct {
	programs  repository.ProgramRepo
	exercises repository.ExerciseRepo
	observer  UseCaseObserver
}

// NewProgramService creates the program read/delete service.
func NewProgramService(programs repository.ProgramRepo, exercises repository.ExerciseRepo, observers ...UseCaseObserver) ProgramService {
	return &programService{
		programs:  programs,
		exercises: exercises,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *programService) List(ctx context.Context) (rows []contract.ProgramSummary, err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.observer, "program_list", startedAt, err, nil) }()

	programs, err := s.programs.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range programs {
		rows = append(rows, contract.ProgramSummary{
			Seq:        p.Seq,
			Name:       p.Name,
			BlockCount: len(p.Blocks),
			Weeks:      weekSpan(p.Blocks),
			CreatedAt:  p.CreatedAt,
		})
	}
	return rows, nil
}

func (s *programService) Get(ctx context.Context, ref string) (detail *contract.ProgramDetail, err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.observer, "program_get", startedAt, err, map[string]any{"ref": ref}) }()

	p, err := resolveProgram(ctx, s.programs, ref)
	if err != nil {
		return nil, err
	}

	detail = &contract.ProgramDetail{
		Seq:         p.Seq,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
	for _, b := range p.Blocks {
		bv := contract.BlockView{
			Position: b.Position,
			Name:     b.Name,
			Week:     b.Week,
		}
		for _, presc := range b.Exercises {
			ex, eerr := s.exercises.GetByID(ctx, presc.ExerciseID)
			if eerr != nil {
				return nil, eerr
			}
			bv.Exercises = append(bv.Exercises, contract.PrescriptionView{
				Exercise:      ex.Name,
				Sets:          presc.Sets,
				Reps:          presc.Reps,
				TargetRPE:     presc.TargetRPE,
				TargetPercent: presc.TargetPercent,
				Technique:     string(presc.Technique),
				Notes:         presc.Notes,
			})
		}
		detail.Blocks = append(detail.Blocks, bv)
	}
	return detail, nil
}

func (s *programService) Delete(ctx context.Context, ref string) (err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.observer, "program_delete", startedAt, err, map[string]any{"ref": ref}) }()

	p, err := resolveProgram(ctx, s.programs, ref)
	if err != nil {
		return err
	}
	return s.programs.Delete(ctx, p.ID)
}

// weekSpan returns the highest week tag among the blocks, 0 when untagged.
func weekSpan(blocks []domain.Block) int {
	weeks := 0
	for _, b := range blocks {
		if b.Week > weeks {
			weeks = b.Week
		}
	}
	return weeks
}
