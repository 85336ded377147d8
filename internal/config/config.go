// Package config loads habitual's runtime configuration.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/utils"
)

// Config is the root application configuration.
type Config struct {
	Dir     string        `yaml:"dir" env:"HABITUAL_CONFIG_DIR" env-default:"~/.config/habitual"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
	Backup  BackupConfig  `yaml:"backup"`
}

// StorageConfig selects and locates the storage backend.
type StorageConfig struct {
	Backend string `yaml:"backend" env:"HABITUAL_BACKEND"       env-default:"sqlite"`
	Path    string `yaml:"path"    env:"HABITUAL_DB_PATH"       env-default:"~/.config/habitual/habitual.db"`
	DSN     string `yaml:"dsn"     env:"HABITUAL_DB_CONNECTION"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Debug bool `yaml:"debug" env:"HABITUAL_DEBUG" env-default:"false"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"HABITUAL_HTTP_ADDR"        env-default:"127.0.0.1:8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"HABITUAL_HTTP_READ_TIMEOUT"  env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"HABITUAL_HTTP_WRITE_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HABITUAL_HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// BackupConfig holds SQLite backup settings.
type BackupConfig struct {
	Max  int  `yaml:"max"  env:"HABITUAL_MAX_BACKUPS" env-default:"14"`
	Auto bool `yaml:"auto" env:"HABITUAL_AUTO_BACKUP" env-default:"true"`
}

// Validate checks field values and expands "~" in paths.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case constants.BackendSQLite, constants.BackendPostgres, constants.BackendMemory:
	default:
		return fmt.Errorf("storage.backend: unsupported backend %q (want sqlite, postgres or memory)", c.Storage.Backend)
	}

	var err error
	if c.Dir, err = utils.ExpandHome(c.Dir); err != nil {
		return fmt.Errorf("dir: %w", err)
	}
	if c.Storage.Backend == constants.BackendSQLite {
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path: required for the sqlite backend")
		}
		if c.Storage.Path, err = utils.ExpandHome(c.Storage.Path); err != nil {
			return fmt.Errorf("storage.path: %w", err)
		}
	}

	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server: timeouts must be positive")
	}
	if c.Backup.Max < 1 {
		return fmt.Errorf("backup.max: must be at least 1, got %d", c.Backup.Max)
	}
	return nil
}

// BackupDir is where SQLite backups are written, next to the database file.
func (c *Config) BackupDir() string {
	return filepath.Join(filepath.Dir(c.Storage.Path), constants.BackupDirName)
}
