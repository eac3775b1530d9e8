package cli

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/alexanderramin/devsynth/internal/config"
	"github.com/alexanderramin/devsynth/internal/db"
	"github.com/alexanderramin/devsynth/internal/generation"
	"github.com/alexanderramin/devsynth/internal/metrics"
	"github.com/alexanderramin/devsynth/internal/repository"
	"github.com/alexanderramin/devsynth/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
// Runs is nil when no manifest database is configured.
type App struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Datasets  service.DatasetService
	Runs      service.RunService
	Templates service.TemplateService

	manifest *sql.DB
}

// wire builds the services for cfg. It opens the manifest database when one
// is configured.
func (a *App) wire(cfg *config.Config, logger zerolog.Logger) error {
	profile, err := generation.ProfileByName(cfg.Generate.Profile)
	if err != nil {
		return err
	}

	observer := service.NewLogUseCaseObserver(logger)

	var (
		uow  db.UnitOfWork
		runs repository.RunRepo
	)
	if cfg.Manifest.DB != "" {
		conn, err := db.OpenDB(cfg.Manifest.DB)
		if err != nil {
			return fmt.Errorf("opening manifest %s: %w", cfg.Manifest.DB, err)
		}
		a.manifest = conn
		uow = db.NewSQLiteUnitOfWork(conn)
		runs = repository.NewSQLiteRunRepo(conn)
		a.Runs = service.NewRunService(runs, observer)
	}

	a.Config = cfg
	a.Logger = logger
	a.Datasets = service.NewDatasetService(uow, runs, metrics.New(), observer)
	a.Templates = service.NewTemplateService(cfg.Templates.File, profile)
	return nil
}

// Close releases the manifest database, if open.
func (a *App) Close() error {
	if a.manifest == nil {
		return nil
	}
	err := a.manifest.Close()
	a.manifest = nil
	return err
}

func (a *App) runs() (service.RunService, error) {
	if a.Runs == nil {
		return nil, errNoManifest
	}
	return a.Runs, nil
}
