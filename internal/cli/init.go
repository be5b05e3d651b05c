// Package cli holds the startup plumbing shared by the binaries under
// cmd/.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/charmin006/fintrack/internal/backend"
	"github.com/charmin006/fintrack/internal/config"
	applog "github.com/charmin006/fintrack/internal/log"
	"github.com/charmin006/fintrack/internal/records"
)

// SetupLogger builds the component logger and installs it as the slog
// default.
func SetupLogger(component string) *applog.Logger {
	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: component,
	})
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads .env for local development. Missing files are
// fine; production sets real environment variables.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and exits the process when
// it does not validate.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// OpenStore opens the configured record store backend and wraps it in
// the typed collection store, seeding defaults on first run. Exits the
// process on failure.
func OpenStore(ctx context.Context, cfg *config.Config, logger *applog.Logger) *records.Store {
	kv, err := backend.Open(ctx, backend.Config{
		Type:            backend.BackendType(cfg.DataBackend),
		SQLiteDBPath:    cfg.SQLiteDBPath,
		MongoURI:        cfg.MongoURI,
		MongoDatabase:   cfg.MongoDatabase,
		MongoCollection: cfg.MongoCollection,
	}, logger.Logger)
	if err != nil {
		logger.Error("Failed to open record store",
			applog.FieldBackend, cfg.DataBackend,
			applog.FieldError, err)
		os.Exit(1)
	}

	store := records.NewStore(kv)
	if err := store.SeedDefaults(ctx); err != nil {
		logger.Error("Failed to seed default records", applog.FieldError, err)
		os.Exit(1)
	}
	return store
}

// NotifyShutdown returns a context cancelled on SIGINT/SIGTERM.
func NotifyShutdown() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// ShutdownTimeout is how long shutdown paths get to drain.
const ShutdownTimeout = 10 * time.Second
