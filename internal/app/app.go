package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/vk/gsaopt/internal/config"
	"github.com/vk/gsaopt/internal/ctxlog"
	"github.com/vk/gsaopt/internal/report"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	logger   *slog.Logger
	config   *Config
	settings *config.Settings
	printer  *report.Printer
	now      func() time.Time
}

// NewApp is the constructor for the main application. Listings go to outW
// and log records to logW. Settings are loaded through loader and then
// overridden by the command-line values in appConfig.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	settings, err := loader.Load(ctx, appConfig.SettingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if appConfig.OutDir != "" {
		settings.Output.BaseDir = appConfig.OutDir
	}
	if appConfig.DeadStores != nil {
		settings.Optimizer.DeadStores = *appConfig.DeadStores
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	logger.Debug("Settings loaded.", "settings", appConfig.SettingsPath, "base_dir", settings.Output.BaseDir, "dead_stores", settings.Optimizer.DeadStores)

	return &App{
		logger:   logger,
		config:   appConfig,
		settings: settings,
		printer:  report.New(outW, report.ColorEnabled(outW, appConfig.NoColor)),
		now:      time.Now,
	}, nil
}

// Settings returns the effective settings. This is primarily for testing.
func (a *App) Settings() *config.Settings {
	return a.settings
}
