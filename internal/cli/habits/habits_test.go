package habits

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/config"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage/memory"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
)

var fixedNow = time.Date(2024, 5, 10, 9, 0, 0, 0, time.Local)

func newMemoryContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	return &cli.Context{
		Store:  memory.NewStore(),
		Config: &config.Config{Dir: t.TempDir(), Storage: config.StorageConfig{Backend: "memory"}},
		Now:    func() time.Time { return fixedNow },
		Out:    out,
	}, out
}

// counterTotal sums every series of the named counter in the default registry.
func counterTotal(t *testing.T, name string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestCommandsLeaveServerMetricsUntouched(t *testing.T) {
	ctx, _ := newMemoryContext(t)
	created := counterTotal(t, "habitual_habits_created_total")
	deleted := counterTotal(t, "habitual_habits_deleted_total")
	logged := counterTotal(t, "habitual_logs_recorded_total")

	require.NoError(t, (&HabitAddCmd{Name: "Read", Kind: "study", Target: 20}).Run(ctx))
	require.NoError(t, (&LogAddCmd{HabitID: 1, Amount: 25}).Run(ctx))
	require.NoError(t, (&HabitDeleteCmd{ID: 1}).Run(ctx))

	assert.Equal(t, created, counterTotal(t, "habitual_habits_created_total"))
	assert.Equal(t, deleted, counterTotal(t, "habitual_habits_deleted_total"))
	assert.Equal(t, logged, counterTotal(t, "habitual_logs_recorded_total"))
}

func TestHabitAddAndList(t *testing.T) {
	ctx, out := newMemoryContext(t)

	require.NoError(t, (&HabitAddCmd{Name: "Run", Kind: "exercise", Target: 30}).Run(ctx))
	require.NoError(t, (&HabitAddCmd{Name: "Sleep", Kind: "Sleep (hours)", Target: 8}).Run(ctx))
	assert.Contains(t, out.String(), "Added habit #1: Run (exercise, target 30 minutes/day)")

	out.Reset()
	require.NoError(t, (&HabitListCmd{}).Run(ctx))
	listing := out.String()
	assert.Contains(t, listing, "Sleep")
	assert.Contains(t, listing, "hours/day")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("Sleep")), bytes.Index(out.Bytes(), []byte("Run")), "newest first")
}

func TestHabitAddRejectsUnknownKind(t *testing.T) {
	ctx, _ := newMemoryContext(t)

	err := (&HabitAddCmd{Name: "Yoga", Kind: "meditation", Target: 10}).Run(ctx)
	assert.True(t, apperrors.IsValidation(err))

	err = (&HabitAddCmd{Name: "Yoga", Kind: "exercise", Target: -1}).Run(ctx)
	assert.True(t, apperrors.IsValidation(err))
}

func TestHabitListEmpty(t *testing.T) {
	ctx, out := newMemoryContext(t)

	require.NoError(t, (&HabitListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "No habits found")
}

func TestHabitDeleteUnknownIsNoop(t *testing.T) {
	ctx, out := newMemoryContext(t)

	require.NoError(t, (&HabitDeleteCmd{ID: 42}).Run(ctx))
	assert.Contains(t, out.String(), "nothing to delete")
}

func TestHabitDeleteBacksUpSQLite(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "habitual.db")
	store := sqlite.NewStore(dbPath)
	require.NoError(t, store.Init())
	t.Cleanup(func() { _ = store.Close() })

	cfg := &config.Config{
		Dir:     dir,
		Storage: config.StorageConfig{Backend: "sqlite", Path: dbPath},
		Backup:  config.BackupConfig{Max: 3, Auto: true},
	}
	ctx := &cli.Context{Store: store, Config: cfg, Now: func() time.Time { return fixedNow }, Out: &bytes.Buffer{}}

	id, err := store.AddHabit("Run", models.KindExercise, 30)
	require.NoError(t, err)
	require.NoError(t, store.AddLog(id, "2024-05-09", 20))

	require.NoError(t, (&HabitDeleteCmd{ID: id}).Run(ctx))

	_, found, err := store.GetHabit(id)
	require.NoError(t, err)
	assert.False(t, found)

	backups, err := backup.NewManager(dbPath, cfg.BackupDir(), cfg.Backup.Max).ListBackups()
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestLogAddDefaultsToToday(t *testing.T) {
	ctx, out := newMemoryContext(t)
	id, err := ctx.Store.AddHabit("Read", models.KindStudy, 20)
	require.NoError(t, err)

	require.NoError(t, (&LogAddCmd{HabitID: id, Amount: 25}).Run(ctx))
	assert.Contains(t, out.String(), "Logged 25 minutes for Read on 2024-05-10")

	logs, err := ctx.Store.GetLogs(id)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "2024-05-10", logs[0].Day)
}

func TestLogAddErrors(t *testing.T) {
	ctx, _ := newMemoryContext(t)
	id, err := ctx.Store.AddHabit("Read", models.KindStudy, 20)
	require.NoError(t, err)

	err = (&LogAddCmd{HabitID: 99, Amount: 10}).Run(ctx)
	assert.True(t, apperrors.IsReference(err))

	err = (&LogAddCmd{HabitID: id, Date: "05/10/2024", Amount: 10}).Run(ctx)
	assert.True(t, apperrors.IsValidation(err))

	err = (&LogAddCmd{HabitID: 99, Date: "2023-02-29", Amount: 10}).Run(ctx)
	assert.True(t, apperrors.IsValidation(err), "date is checked before the habit lookup")

	err = (&LogAddCmd{HabitID: id, Amount: -5}).Run(ctx)
	assert.True(t, apperrors.IsValidation(err))
}

func TestLogList(t *testing.T) {
	ctx, out := newMemoryContext(t)
	id, err := ctx.Store.AddHabit("Sleep", models.KindSleep, 8)
	require.NoError(t, err)

	require.NoError(t, (&LogListCmd{HabitID: id}).Run(ctx))
	assert.Contains(t, out.String(), "No logs for Sleep")

	require.NoError(t, ctx.Store.AddLog(id, "2024-05-09", 7.5))
	require.NoError(t, ctx.Store.AddLog(id, "2024-05-08", 8))
	out.Reset()
	require.NoError(t, (&LogListCmd{HabitID: id}).Run(ctx))
	text := out.String()
	assert.Less(t, bytes.Index([]byte(text), []byte("2024-05-08")), bytes.Index([]byte(text), []byte("2024-05-09")))
	assert.Contains(t, text, "7.5")
}

func TestInsights(t *testing.T) {
	ctx, out := newMemoryContext(t)
	id, err := ctx.Store.AddHabit("Run", models.KindExercise, 30)
	require.NoError(t, err)
	for _, day := range []string{"2024-05-08", "2024-05-09", "2024-05-10"} {
		require.NoError(t, ctx.Store.AddLog(id, day, 35))
	}

	require.NoError(t, (&InsightsCmd{HabitID: id, Chart: true, Days: 7}).Run(ctx))
	text := out.String()
	assert.Contains(t, text, "Streak:  3 day(s)")
	assert.Contains(t, text, "Today:   35 minutes")
	assert.Contains(t, text, "avg 35.0 min/day")
	assert.Contains(t, text, "05-10")
	assert.Contains(t, text, "▲ target 30 minutes")
}

func TestInsightsErrors(t *testing.T) {
	ctx, _ := newMemoryContext(t)

	err := (&InsightsCmd{HabitID: 1, Days: 14}).Run(ctx)
	assert.True(t, apperrors.IsReference(err))

	err = (&InsightsCmd{HabitID: 1, Days: 0}).Run(ctx)
	assert.True(t, apperrors.IsValidation(err))
}
