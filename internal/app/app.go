package app

import (
	"context"
	"fmt"

	"github.com/five82/shelf/internal/config"
	"github.com/five82/shelf/internal/library"
	"github.com/five82/shelf/internal/prefs"
	"github.com/five82/shelf/internal/ui"
)

// Options configure the shelf application.
type Options struct {
	ConfigPath string
	EnvFile    string // empty loads ./.env when present
	PrefsPath  string // empty uses default ~/.config/shelf/prefs.toml
	Production bool   // forces the production backend
}

// Run boots the shelf TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	if err := config.LoadEnv(opts.EnvFile); err != nil {
		return err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Production {
		cfg.Production = true
	}

	logger, closeLog, err := newLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := library.NewClient(cfg.BaseURL(),
		library.WithTimeout(cfg.RequestTimeout),
		library.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("init library client: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("prefs unreadable, using defaults", "error", err)
	}

	logger.Info("shelf starting",
		"environment", cfg.Environment(),
		"base_url", client.BaseURL(),
		"timeout", cfg.RequestTimeout,
	)
	defer logger.Info("shelf stopped")

	return ui.Run(ui.Options{
		Context:        ctx,
		Store:          client,
		Config:         &cfg,
		RequestTimeout: cfg.RequestTimeout,
		ThemeName:      userPrefs.Theme,
		PrefsPath:      opts.PrefsPath,
		Logger:         logger,
	})
}
