package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rsoares/grit/internal/contract"
	"github.com/rsoares/grit/internal/db"
	"github.com/rsoares/grit/internal/importer"
	"github.com/rsoares/grit/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewImportService creates the TOML import service. Each import runs as a
// single transaction: one bad entry rolls back the whole file.
func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportExercises(ctx context.Context, path string) (summary *contract.ImportSummary, err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "import_exercises", startedAt, err, map[string]any{"path": path})
	}()

	file, err := importer.LoadExerciseFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading exercise file: %w", err)
	}
	if errs := importer.ValidateExerciseFile(file); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	converted := importer.ConvertExercises(file)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		exercises := repository.NewSQLiteExerciseRepo(tx)
		seqs := repository.NewSQLiteSequenceRepo(tx)

		for _, ex := range converted {
			seq, serr := seqs.Next(ctx, repository.ScopeExercise)
			if serr != nil {
				return serr
			}
			ex.Seq = seq
			if cerr := exercises.Create(ctx, ex); cerr != nil {
				if errors.Is(cerr, repository.ErrConflict) {
					return fmt.Errorf("exercise %q already exists: %w", ex.Name, ErrConflict)
				}
				return fmt.Errorf("creating exercise %q: %w", ex.Name, cerr)
			}
			for i := range ex.Variants {
				vseq, serr := seqs.Next(ctx, repository.ScopeVariant+ex.ID)
				if serr != nil {
					return serr
				}
				ex.Variants[i].Seq = vseq
				if verr := exercises.AddVariant(ctx, &ex.Variants[i]); verr != nil {
					return fmt.Errorf("creating variant %q of %q: %w", ex.Variants[i].Name, ex.Name, verr)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &contract.ImportSummary{Exercises: len(converted)}, nil
}

func (s *importService) ImportPrograms(ctx context.Context, path string) (summary *contract.ImportSummary, err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "import_programs", startedAt, err, map[string]any{"path": path})
	}()

	file, err := importer.LoadProgramFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading program file: %w", err)
	}
	if errs := importer.ValidateProgramFile(file); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	summary = &contract.ImportSummary{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		programs := repository.NewSQLiteProgramRepo(tx)
		exercises := repository.NewSQLiteExerciseRepo(tx)
		seqs := repository.NewSQLiteSequenceRepo(tx)

		// Prescriptions reference catalog exercises by name; unknown names
		// fail the import instead of creating exercises implicitly.
		resolve := func(name string) (string, error) {
			ex, rerr := exercises.GetByName(ctx, name)
			if rerr != nil {
				if errors.Is(rerr, repository.ErrNotFound) {
					return "", fmt.Errorf("not in the catalog, add it first: %w", ErrInvalidInput)
				}
				return "", rerr
			}
			return ex.ID, nil
		}

		converted, cerr := importer.ConvertPrograms(file, resolve)
		if cerr != nil {
			return cerr
		}

		for _, p := range converted {
			seq, serr := seqs.Next(ctx, repository.ScopeProgram)
			if serr != nil {
				return serr
			}
			p.Seq = seq
			if perr := programs.Create(ctx, p); perr != nil {
				if errors.Is(perr, repository.ErrConflict) {
					return fmt.Errorf("program %q already exists: %w", p.Name, ErrConflict)
				}
				return fmt.Errorf("creating program %q: %w", p.Name, perr)
			}
			summary.Programs++
			summary.Blocks += len(p.Blocks)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s: %w", msg, ErrInvalidInput)
}
