package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rsoares/grit/internal/contract"
	"github.com/rsoares/grit/internal/db"
	"github.com/rsoares/grit/internal/domain"
	"github.com/rsoares/grit/internal/repository"
)

// historyLimit caps the completed sessions shown on an exercise detail view.
const historyLimit = 5

type catalogService struct {
	exercises repository.ExerciseRepo
	prs       repository.RecordRepo
	history   HistoryService
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

// NewCatalogService creates the exercise catalog service.
func NewCatalogService(
	exercises repository.ExerciseRepo,
	prs repository.RecordRepo,
	history HistoryService,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) CatalogService {
	return &catalogService{
		exercises: exercises,
		prs:       prs,
		history:   history,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *catalogService) Add(ctx context.Context, name, muscle, description string) (ex *domain.Exercise, err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "exercise_add", startedAt, err, map[string]any{"name": name, "muscle": muscle})
	}()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("exercise name is required: %w", ErrInvalidInput)
	}
	m, err := parseMuscleArg(muscle)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		exercises := repository.NewSQLiteExerciseRepo(tx)
		seqs := repository.NewSQLiteSequenceRepo(tx)

		seq, serr := seqs.Next(ctx, repository.ScopeExercise)
		if serr != nil {
			return serr
		}
		ex = &domain.Exercise{
			ID:          uuid.New().String(),
			Seq:         seq,
			Name:        name,
			Muscle:      m,
			Description: strings.TrimSpace(description),
			CreatedAt:   time.Now().UTC(),
		}
		if cerr := exercises.Create(ctx, ex); cerr != nil {
			if errors.Is(cerr, repository.ErrConflict) {
				return fmt.Errorf("exercise %q already exists: %w", name, ErrConflict)
			}
			return cerr
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ex, nil
}

func (s *catalogService) Get(ctx context.Context, ref string) (detail *contract.ExerciseDetail, err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.observer, "exercise_get", startedAt, err, map[string]any{"ref": ref}) }()

	ex, err := resolveExercise(ctx, s.exercises, ref)
	if err != nil {
		return nil, err
	}
	variants, err := s.exercises.ListVariants(ctx, ex.ID)
	if err != nil {
		return nil, err
	}
	best, err := bestOrNil(ctx, s.prs, ex.ID, false)
	if err != nil {
		return nil, err
	}
	bwBest, err := bestOrNil(ctx, s.prs, ex.ID, true)
	if err != nil {
		return nil, err
	}
	history, err := s.history.RecentHistory(ctx, ex.ID, historyLimit)
	if err != nil {
		return nil, err
	}

	detail = &contract.ExerciseDetail{
		Seq:              ex.Seq,
		Name:             ex.Name,
		Muscle:           string(ex.Muscle),
		Description:      ex.Description,
		CreatedAt:        ex.CreatedAt,
		Record:           recordView(best),
		BodyweightRecord: recordView(bwBest),
		History:          history,
	}
	for _, v := range variants {
		detail.Variants = append(detail.Variants, v.Name)
	}
	return detail, nil
}

func (s *catalogService) List(ctx context.Context, muscle string) (rows []contract.ExerciseSummary, err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.observer, "exercise_list", startedAt, err, map[string]any{"muscle": muscle}) }()

	var filter repository.ExerciseFilter
	if strings.TrimSpace(muscle) != "" {
		m, merr := parseMuscleArg(muscle)
		if merr != nil {
			return nil, merr
		}
		filter.Muscle = m
	}

	list, err := s.exercises.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, ex := range list {
		variants, verr := s.exercises.ListVariants(ctx, ex.ID)
		if verr != nil {
			return nil, verr
		}
		rows = append(rows, contract.ExerciseSummary{
			Seq:          ex.Seq,
			Name:         ex.Name,
			Muscle:       string(ex.Muscle),
			Best1RM:      ex.BestEstimated1RM,
			BestDate:     ex.BestDate,
			VariantCount: len(variants),
		})
	}
	return rows, nil
}

func (s *catalogService) Delete(ctx context.Context, ref string) (err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.observer, "exercise_delete", startedAt, err, map[string]any{"ref": ref}) }()

	ex, err := resolveExercise(ctx, s.exercises, ref)
	if err != nil {
		return err
	}
	return s.exercises.Delete(ctx, ex.ID)
}

func (s *catalogService) AddVariant(ctx context.Context, exerciseRef, name string) (v *domain.Variant, err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "exercise_add_variant", startedAt, err, map[string]any{"exercise": exerciseRef, "name": name})
	}()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("variant name is required: %w", ErrInvalidInput)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		exercises := repository.NewSQLiteExerciseRepo(tx)
		seqs := repository.NewSQLiteSequenceRepo(tx)

		ex, serr := resolveExercise(ctx, exercises, exerciseRef)
		if serr != nil {
			return serr
		}
		seq, serr := seqs.Next(ctx, repository.ScopeVariant+ex.ID)
		if serr != nil {
			return serr
		}
		v = &domain.Variant{
			ID:         uuid.New().String(),
			ExerciseID: ex.ID,
			Seq:        seq,
			Name:       name,
		}
		if verr := exercises.AddVariant(ctx, v); verr != nil {
			if errors.Is(verr, repository.ErrConflict) {
				return fmt.Errorf("variant %q already exists for %q: %w", name, ex.Name, ErrConflict)
			}
			return verr
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *catalogService) Resolve(ctx context.Context, ref string) (*domain.Exercise, error) {
	return resolveExercise(ctx, s.exercises, ref)
}

// parseMuscleArg validates a muscle argument, suggesting the nearest valid
// group for close misspellings.
func parseMuscleArg(muscle string) (domain.Muscle, error) {
	m, ok := domain.ParseMuscle(muscle)
	if ok {
		return m, nil
	}
	if suggestion, found := domain.SuggestMuscle(muscle); found {
		return "", fmt.Errorf("unknown muscle %q, did you mean %q: %w", muscle, suggestion, ErrInvalidInput)
	}
	return "", fmt.Errorf("unknown muscle %q, valid groups are %s: %w", muscle, muscleList(), ErrInvalidInput)
}

func muscleList() string {
	names := make([]string, len(domain.Muscles))
	for i, m := range domain.Muscles {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
