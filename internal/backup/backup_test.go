package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habitual.db")

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE habits (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO habits (name) VALUES ('Run'), ('Read')`)
	require.NoError(t, err)
	return dbPath
}

func countHabits(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM habits").Scan(&count))
	return count
}

func newTestManager(dbPath string, max int) *Manager {
	m := NewManager(dbPath, filepath.Join(filepath.Dir(dbPath), "backups"), max)
	clock := time.Date(2024, 5, 1, 8, 0, 0, 0, time.Local)
	m.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return m
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := newTestManager(dbPath, 5)

	backupPath, err := mgr.CreateBackup()
	require.NoError(t, err)
	assert.FileExists(t, backupPath)
	assert.Equal(t, "habitual-20240501-080100.db", filepath.Base(backupPath))
	assert.Equal(t, 2, countHabits(t, backupPath))
}

func TestCreateBackupMissingDatabase(t *testing.T) {
	mgr := newTestManager(filepath.Join(t.TempDir(), "missing.db"), 5)
	_, err := mgr.CreateBackup()
	assert.Error(t, err)
}

func TestCreateBackupSameSecond(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := newTestManager(dbPath, 5)
	fixed := time.Date(2024, 5, 1, 8, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	first, err := mgr.CreateBackup()
	require.NoError(t, err)
	second, err := mgr.CreateBackup()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Equal(t, "habitual-20240501-080000-1.db", filepath.Base(second))

	backups, err := mgr.ListBackups()
	require.NoError(t, err)
	require.Len(t, backups, 2)
	assert.Equal(t, second, backups[0].Path)
}

func TestListBackupsIgnoresForeignFiles(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := newTestManager(dbPath, 5)

	backups, err := mgr.ListBackups()
	require.NoError(t, err)
	assert.Empty(t, backups)

	_, err = mgr.CreateBackup()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(mgr.GetBackupDir(), "notes.txt"), []byte("x"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(mgr.GetBackupDir(), "habitual-garbage.db"), []byte("x"), 0600))

	backups, err = mgr.ListBackups()
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestRotateBackups(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := newTestManager(dbPath, 3)

	var created []string
	for i := 0; i < 5; i++ {
		path, err := mgr.CreateBackup()
		require.NoError(t, err)
		created = append(created, path)
	}

	backups, err := mgr.ListBackups()
	require.NoError(t, err)
	require.Len(t, backups, 3)
	assert.Equal(t, created[4], backups[0].Path)
	assert.Equal(t, created[2], backups[2].Path)
	assert.NoFileExists(t, created[0])
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := newTestManager(dbPath, 5)

	backupPath, err := mgr.CreateBackup()
	require.NoError(t, err)

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = db.Exec("DELETE FROM habits")
	require.NoError(t, err)
	db.Close()
	require.Equal(t, 0, countHabits(t, dbPath))

	previous, err := mgr.RestoreBackup(backupPath)
	require.NoError(t, err)
	assert.FileExists(t, previous)
	assert.Equal(t, 0, countHabits(t, previous))
	assert.Equal(t, 2, countHabits(t, dbPath))
}

func TestRestoreBackupRejectsInvalidFile(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := newTestManager(dbPath, 5)

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	require.NoError(t, os.WriteFile(bogus, []byte("this is not a database, just some text padding it out"), 0600))

	_, err := mgr.RestoreBackup(bogus)
	assert.Error(t, err)

	_, err = mgr.RestoreBackup(filepath.Join(t.TempDir(), "nope.db"))
	assert.Error(t, err)
	assert.Equal(t, 2, countHabits(t, dbPath))
}

func TestResolvePath(t *testing.T) {
	mgr := NewManager("/data/habitual.db", "/data/backups", 5)
	assert.Equal(t, filepath.Join("/data/backups", "habitual-20240501-080000.db"), mgr.ResolvePath("habitual-20240501-080000.db"))
	assert.Equal(t, "/elsewhere/x.db", mgr.ResolvePath("/elsewhere/x.db"))
}
