package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/alexanderramin/poa/internal/cli"
	"github.com/alexanderramin/poa/internal/config"
	"github.com/alexanderramin/poa/internal/db"
	"github.com/alexanderramin/poa/internal/logging"
	"github.com/alexanderramin/poa/internal/repository"
	"github.com/alexanderramin/poa/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		database *sql.DB
		logger   *zap.Logger
	)
	defer func() {
		if database != nil {
			database.Close()
		}
		if logger != nil {
			_ = logger.Sync()
		}
	}()

	app := &cli.App{}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	app.Open = func(cfg *config.Config) error {
		var err error
		logger, err = logging.New(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return err
		}

		database, err = db.OpenDB(cfg.DB)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		logger.Debug("database ready", zap.String("path", cfg.DB))

		// Wire repositories
		planRepo := repository.NewSQLitePlanRepo(database)
		activityRepo := repository.NewSQLiteActivityRepo(database)
		taskRepo := repository.NewSQLiteTaskRepo(database)
		allocationRepo := repository.NewSQLiteAllocationRepo(database)
		catalogRepo := repository.NewSQLiteCatalogRepo(database)
		loadLogRepo := repository.NewSQLiteLoadLogRepo(database)

		uow := db.NewSQLiteUnitOfWork(database)
		observer := service.NewZapUseCaseObserver(logger)

		app.Import = service.NewImportService(planRepo, activityRepo, catalogRepo, uow, observer)
		app.Reports = service.NewReportService(planRepo, activityRepo, taskRepo, allocationRepo, observer)
		app.LoadLogs = service.NewLoadLogService(loadLogRepo, observer)
		app.Catalog = service.NewCatalogService(uow, observer)
		return nil
	}

	return cli.NewRootCmd(app).Execute()
}
