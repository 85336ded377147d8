package backups

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage/memory"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
)

func newSQLiteContext(t *testing.T) (*cli.Context, *sqlite.Store, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "habitual.db")
	store := sqlite.NewStore(dbPath)
	require.NoError(t, store.Init())
	t.Cleanup(func() { _ = store.Close() })

	out := &bytes.Buffer{}
	return &cli.Context{
		Store: store,
		Config: &config.Config{
			Dir:     dir,
			Storage: config.StorageConfig{Backend: "sqlite", Path: dbPath},
			Backup:  config.BackupConfig{Max: 5, Auto: true},
		},
		Now: time.Now,
		Out: out,
	}, store, out
}

func TestBackupRequiresSQLite(t *testing.T) {
	ctx := &cli.Context{
		Store:  memory.NewStore(),
		Config: &config.Config{Storage: config.StorageConfig{Backend: "memory"}},
		Out:    &bytes.Buffer{},
	}
	assert.Error(t, (&BackupCreateCmd{}).Run(ctx))
	assert.Error(t, (&BackupListCmd{}).Run(ctx))
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, _, out := newSQLiteContext(t)

	require.NoError(t, (&BackupListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "No backups found.")

	out.Reset()
	require.NoError(t, (&BackupCreateCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "✓ Backup created: habitual-")

	out.Reset()
	require.NoError(t, (&BackupListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "Available backups (1 total, keeping most recent 5)")
}

func TestBackupRestore(t *testing.T) {
	ctx, store, out := newSQLiteContext(t)

	_, err := store.AddHabit("Run", models.KindExercise, 30)
	require.NoError(t, err)
	require.NoError(t, (&BackupCreateCmd{}).Run(ctx))
	name := strings.TrimSpace(strings.TrimPrefix(out.String(), "✓ Backup created: "))

	_, err = store.AddHabit("Read", models.KindStudy, 20)
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, (&BackupRestoreCmd{BackupFile: name, Yes: true}).Run(ctx))
	assert.Contains(t, out.String(), "✓ Database restored successfully!")

	reopened := sqlite.NewStore(ctx.Config.Storage.Path)
	require.NoError(t, reopened.Load())
	defer reopened.Close()
	habits, err := reopened.ListHabits()
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, "Run", habits[0].Name)
}

func TestBackupRestoreCancelled(t *testing.T) {
	ctx, _, out := newSQLiteContext(t)
	require.NoError(t, (&BackupCreateCmd{}).Run(ctx))
	name := strings.TrimSpace(strings.TrimPrefix(out.String(), "✓ Backup created: "))

	out.Reset()
	cmd := &BackupRestoreCmd{BackupFile: name, in: strings.NewReader("n\n")}
	require.NoError(t, cmd.Run(ctx))
	assert.Contains(t, out.String(), "Restore cancelled.")
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _, _ := newSQLiteContext(t)

	err := (&BackupRestoreCmd{BackupFile: "habitual-20000101-000000.db", Yes: true}).Run(ctx)
	assert.ErrorContains(t, err, "backup file not found")
}
