package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rsoares/grit/internal/contract"
	"github.com/rsoares/grit/internal/domain"
	"github.com/rsoares/grit/internal/records"
	"github.com/rsoares/grit/internal/repository"
)

// BodyweightKeywords are the weight-argument spellings that mark a set as
// bodyweight instead of carrying a load.
var BodyweightKeywords = []string{"bw", "bodyweight"}

// ParseWeightArg interprets a weight argument: either a positive number or a
// bodyweight keyword. Bodyweight sets are stored with weight 0 and the
// bodyweight flag raised.
func ParseWeightArg(arg string) (weight float64, bodyweight bool, err error) {
	s := strings.ToLower(strings.TrimSpace(arg))
	for _, kw := range BodyweightKeywords {
		if s == kw {
			return 0, true, nil
		}
	}
	w, perr := strconv.ParseFloat(s, 64)
	if perr != nil {
		return 0, false, fmt.Errorf("weight %q is neither a number nor %q: %w", arg, BodyweightKeywords[0], ErrInvalidInput)
	}
	if w <= 0 {
		return 0, false, fmt.Errorf("weight must be positive: %w", ErrInvalidInput)
	}
	return w, false, nil
}

// resolveExercise maps a display seq or case-insensitive name to an exercise.
func resolveExercise(ctx context.Context, repo repository.ExerciseRepo, ref string) (*domain.Exercise, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("empty exercise reference: %w", ErrInvalidInput)
	}
	if seq, err := strconv.Atoi(ref); err == nil {
		return repo.GetBySeq(ctx, seq)
	}
	return repo.GetByName(ctx, ref)
}

// resolveProgram maps a display seq or case-insensitive name to a program.
func resolveProgram(ctx context.Context, repo repository.ProgramRepo, ref string) (*domain.Program, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("empty program reference: %w", ErrInvalidInput)
	}
	if seq, err := strconv.Atoi(ref); err == nil {
		return repo.GetBySeq(ctx, seq)
	}
	return repo.GetByName(ctx, ref)
}

// resolveBlock picks one block of a program by 1-based index or name. When
// week is positive, only blocks tagged with that week are considered, so the
// same block name can recur across weeks.
func resolveBlock(p *domain.Program, ref string, week int) (*domain.Block, error) {
	candidates := make([]*domain.Block, 0, len(p.Blocks))
	for i := range p.Blocks {
		b := &p.Blocks[i]
		if week > 0 && b.Week != week {
			continue
		}
		candidates = append(candidates, b)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("program %q has no blocks for week %d: %w", p.Name, week, repository.ErrNotFound)
	}

	ref = strings.TrimSpace(ref)
	if idx, err := strconv.Atoi(ref); err == nil {
		if idx < 1 || idx > len(candidates) {
			return nil, fmt.Errorf("block %d of program %q: %w", idx, p.Name, repository.ErrNotFound)
		}
		return candidates[idx-1], nil
	}
	for _, b := range candidates {
		if strings.EqualFold(b.Name, ref) {
			return b, nil
		}
	}
	return nil, fmt.Errorf("block %q of program %q: %w", ref, p.Name, repository.ErrNotFound)
}

// applyCandidate checks one PR candidate against the stored best on its own
// track and persists it when it strictly improves. The weighted-track best is
// also mirrored into the exercise's cached 1RM columns.
func applyCandidate(ctx context.Context, prs repository.RecordRepo, exercises repository.ExerciseRepo, exerciseID string, c records.Candidate, day time.Time) (*domain.PersonalRecord, error) {
	best, err := prs.Best(ctx, exerciseID, c.Bodyweight)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		best = nil
	}
	if !records.IsNewRecord(best, c) {
		return nil, nil
	}

	pr := &domain.PersonalRecord{
		ExerciseID:   exerciseID,
		Date:         day,
		Weight:       c.Weight,
		Reps:         c.Reps,
		Estimated1RM: c.EstimatedOneRM(),
		Bodyweight:   c.Bodyweight,
	}
	if err := prs.Upsert(ctx, pr); err != nil {
		return nil, err
	}
	if !c.Bodyweight {
		if err := exercises.UpdateBest(ctx, exerciseID, pr.Estimated1RM, day); err != nil {
			return nil, err
		}
	}
	return pr, nil
}

// recordView converts a stored record for presentation; nil stays nil.
func recordView(pr *domain.PersonalRecord) *contract.RecordView {
	if pr == nil {
		return nil
	}
	return &contract.RecordView{
		Weight:       pr.Weight,
		Reps:         pr.Reps,
		Estimated1RM: pr.Estimated1RM,
		Bodyweight:   pr.Bodyweight,
		Date:         pr.Date,
	}
}

// bestOrNil folds ErrNotFound into a nil record.
func bestOrNil(ctx context.Context, prs repository.RecordRepo, exerciseID string, bodyweight bool) (*domain.PersonalRecord, error) {
	pr, err := prs.Best(ctx, exerciseID, bodyweight)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return pr, nil
}
