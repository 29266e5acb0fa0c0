// Package cli wires the pageflip command line: configuration, logging,
// the settings store and the window backends.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/pageflip/internal/application/usecase"
	"github.com/bnema/pageflip/internal/cli/styles"
	"github.com/bnema/pageflip/internal/domain/build"
	"github.com/bnema/pageflip/internal/domain/repository"
	"github.com/bnema/pageflip/internal/infrastructure/config"
	"github.com/bnema/pageflip/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/pageflip/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config        *config.Config
	ConfigManager *config.Manager
	// ConfigErr is set when the config file could not be loaded; Config
	// then holds the defaults.
	ConfigErr error
	Theme     *styles.Theme
	BuildInfo build.Info

	db       *sqlite.LazyDB
	Settings repository.OutputSettingsRepository

	SettingsUC *usecase.ManageOutputSettingsUseCase

	ctx       context.Context
	logCloser io.Closer
}

// NewApp loads the configuration and builds the logger and the lazily
// opened settings store.
func NewApp() (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	loadErr := mgr.Load()
	cfg := mgr.Get()
	if err := fillPaths(cfg); err != nil {
		return nil, err
	}

	logging.InitStartupTrace(cfg.Logging.Level)
	logging.Trace().Mark(logging.MilestoneConfigLoaded)

	logger, closer, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}
	logging.Trace().SetLogger(&logger)
	ctx := logging.WithContext(context.Background(), logger)

	if loadErr != nil {
		logger.Warn().Err(loadErr).Msg("config not loaded, using defaults")
	}
	if created := mgr.CreatedDefault(); created != "" {
		logger.Info().Str("path", created).Msg("default config written")
	}

	db := sqlite.NewLazyDB(cfg.Database.Path)
	settings := sqlite.NewLazyOutputSettingsRepository(db)

	return &App{
		Config:        cfg,
		ConfigManager: mgr,
		ConfigErr:     loadErr,
		Theme:         styles.NewTheme(),
		db:            db,
		Settings:      settings,
		SettingsUC:    usecase.NewManageOutputSettingsUseCase(settings, ""),
		ctx:           ctx,
		logCloser:     closer,
	}, nil
}

// fillPaths sets the XDG locations the defaults leave empty.
func fillPaths(cfg *config.Config) error {
	if cfg.Database.Path == "" {
		path, err := config.GetDatabaseFile()
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		cfg.Database.Path = path
	}
	if cfg.Logging.File.Dir == "" {
		dir, err := config.GetLogDir()
		if err != nil {
			return fmt.Errorf("resolve log dir: %w", err)
		}
		cfg.Logging.File.Dir = dir
	}
	return nil
}

func newLogger(cfg config.LoggingConfig) (zerolog.Logger, io.Closer, error) {
	logCfg := logging.Config{
		Level:      logging.ParseLevel(cfg.Level),
		Format:     cfg.Format,
		TimeFormat: time.TimeOnly,
	}
	if !cfg.File.Enabled {
		return logging.New(logCfg), nil, nil
	}
	logger, closer, err := logging.NewWithFile(logCfg, logging.FileConfig{
		Dir:        cfg.File.Dir,
		MaxSizeMB:  cfg.File.MaxSizeMB,
		MaxBackups: cfg.File.MaxBackups,
	})
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	return logger, closer, nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Close releases all resources.
func (a *App) Close() error {
	var errs []error
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	if a.logCloser != nil {
		errs = append(errs, a.logCloser.Close())
	}
	return errors.Join(errs...)
}
