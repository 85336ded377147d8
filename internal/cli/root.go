package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/storage"
)

type Context struct {
	Store  storage.Provider
	Config *config.Config
	// Now is the clock used for "today". Defaults to time.Now.
	Now func() time.Time
	// Out receives command output. Defaults to stdout.
	Out io.Writer
}

func (c *Context) Today() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// UsesSQLite reports whether the configured backend is the SQLite file store.
func (c *Context) UsesSQLite() bool {
	return c.Config != nil && c.Config.Storage.Backend == constants.BackendSQLite
}

// BackupManager returns the manager for the SQLite database.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if !c.UsesSQLite() {
		return nil, fmt.Errorf("backups are only supported for the sqlite backend")
	}
	return backup.NewManager(c.Config.Storage.Path, c.Config.BackupDir(), c.Config.Backup.Max), nil
}

// BackupBeforeDelete snapshots the SQLite database ahead of a destructive
// change. It is a no-op for other backends or when automatic backups are off.
func (c *Context) BackupBeforeDelete() error {
	if !c.UsesSQLite() || !c.Config.Backup.Auto {
		return nil
	}
	mgr, err := c.BackupManager()
	if err != nil {
		return err
	}
	path, err := mgr.CreateBackup()
	if err != nil {
		logger.Warn("Automatic backup failed", "error", err)
		return fmt.Errorf("automatic backup failed: %w", err)
	}
	logger.Debug("Automatic backup created", "path", path)
	return nil
}
