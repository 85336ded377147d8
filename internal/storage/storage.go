// Package storage selects the persistence backend for habits and logs.
package storage

import (
	"errors"
	"fmt"

	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/keyring"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/storage/memory"
	"github.com/julianstephens/habitual/internal/storage/postgres"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
)

var (
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)
	_ Provider = (*memory.Store)(nil)
	_ Migrator = (*sqlite.Store)(nil)
	_ Migrator = (*postgres.Store)(nil)
)

// ErrNoConnectionString is returned when the postgres backend is selected but
// neither the config nor the keyring holds a connection string.
var ErrNoConnectionString = errors.New("no PostgreSQL connection string: set storage.dsn, HABITUAL_DB_CONNECTION or run 'habitual keyring set'")

// New builds the backend named by cfg.Storage.Backend. The store is not
// opened; callers run Init or Load.
func New(cfg *config.Config) (Provider, error) {
	switch cfg.Storage.Backend {
	case constants.BackendSQLite:
		logger.Debug("Using sqlite backend", "path", cfg.Storage.Path)
		return sqlite.NewStore(cfg.Storage.Path), nil
	case constants.BackendMemory:
		logger.Debug("Using in-memory backend")
		return memory.NewStore(), nil
	case constants.BackendPostgres:
		connStr, source, err := keyring.ResolveConnectionString(cfg.Storage.DSN)
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, ErrNoConnectionString
			}
			return nil, fmt.Errorf("failed to resolve connection string: %w", err)
		}
		if _, err := postgres.ValidateConnString(connStr); err != nil {
			return nil, err
		}
		logger.Debug("Using postgres backend", "source", source)
		return postgres.New(connStr), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
}
