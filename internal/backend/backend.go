// Package backend selects and constructs the record store the
// application persists through.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmin006/fintrack/internal/storage"
)

const (
	MemoryBackend BackendType = "memory"
	SQLiteBackend BackendType = "sqlite"
	MongoBackend  BackendType = "mongo"
)

type (
	// BackendType selects a record store implementation.
	BackendType string

	// Config holds what each backend needs to come up.
	Config struct {
		Type BackendType

		// SQLite specific
		SQLiteDBPath string

		// Mongo specific
		MongoURI        string
		MongoDatabase   string
		MongoCollection string
	}
)

// String implements fmt.Stringer.
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid reports whether the backend type is one we can construct.
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend, MongoBackend:
		return true
	default:
		return false
	}
}

// Open constructs the configured record store.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (storage.KV, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}

	switch cfg.Type {
	case SQLiteBackend:
		kv, err := storage.NewSQLiteKV(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return kv, nil

	case MongoBackend:
		kv, err := storage.NewMongoKV(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
		if err != nil {
			return nil, fmt.Errorf("initialize mongo backend: %w", err)
		}
		logger.Info("Initialized Mongo backend",
			"database", cfg.MongoDatabase,
			"collection", cfg.MongoCollection)
		return kv, nil

	default:
		logger.Info("Initialized memory backend")
		return storage.NewMemoryKV(), nil
	}
}
