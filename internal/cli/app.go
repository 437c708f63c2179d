// Package cli provides the command-line interface for dimmer.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/bnema/dimmer/internal/config"
	"github.com/bnema/dimmer/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/dimmer/internal/logging"
	"github.com/bnema/dimmer/pkg/darkmode"
)

// App holds CLI dependencies.
type App struct {
	Config *config.Config
	Prefs  *sqlite.PrefsRepository

	db  *sql.DB
	ctx context.Context
}

// NewApp loads configuration, opens the preference database and wires a
// context-bound logger.
func NewApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logLevel := cfg.Logging.Level
	if envLevel := os.Getenv("DIMMER_LOG_LEVEL"); envLevel != "" {
		logLevel = envLevel
	}
	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(logLevel),
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
	})
	ctx := logging.WithContext(context.Background(), logger)

	db, err := sqlite.NewConnection(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return &App{
		Config: cfg,
		Prefs:  sqlite.NewPrefsRepository(db),
		db:     db,
		ctx:    ctx,
	}, nil
}

// Close releases all resources.
func (a *App) Close() error {
	return sqlite.Close(a.db)
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// PersistedKey resolves the storage key for the given scope and id,
// falling back to the configured values and then the defaults.
func (a *App) PersistedKey(scope, id string) string {
	if scope == "" {
		scope = a.Config.DarkMode.Scope
	}
	if scope == "" {
		scope = darkmode.DefaultScope
	}
	if id == "" {
		id = a.Config.DarkMode.ID
	}
	return darkmode.PersistedKey(scope, id)
}
