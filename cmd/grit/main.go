package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/rsoares/grit/internal/cli"
	"github.com/rsoares/grit/internal/config"
	"github.com/rsoares/grit/internal/db"
	"github.com/rsoares/grit/internal/repository"
	"github.com/rsoares/grit/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	exerciseRepo := repository.NewSQLiteExerciseRepo(database)
	programRepo := repository.NewSQLiteProgramRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	setRepo := repository.NewSQLiteSetRepo(database)
	recordRepo := repository.NewSQLiteRecordRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var logSink io.Writer
	if cfg.LogUseCases {
		logSink = os.Stderr
	}
	observer := service.NewLogUseCaseObserver(logSink)

	historySvc := service.NewHistoryService(sessionRepo, setRepo, programRepo)

	app := &cli.App{
		Catalog:  service.NewCatalogService(exerciseRepo, recordRepo, historySvc, uow, observer),
		Programs: service.NewProgramService(programRepo, exerciseRepo, observer),
		Sessions: service.NewSessionService(sessionRepo, setRepo, programRepo, exerciseRepo, recordRepo, historySvc, uow, cfg.SwapSetCount, observer),
		History:  historySvc,
		Import:   service.NewImportService(uow, observer),
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

// exitCode distinguishes user-fixable failures from state conflicts and
// storage errors so scripts can branch on them.
func exitCode(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return 2
	case errors.Is(err, service.ErrConflict):
		return 3
	case errors.Is(err, repository.ErrNotFound):
		return 4
	default:
		return 1
	}
}
