package system

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/session"
	"github.com/julianstephens/habitual/internal/storage"
)

// DoctorCmd runs health checks. It opens the store itself so that a broken
// backend is reported instead of aborting the command.
type DoctorCmd struct{}

type checkResult int

const (
	checkOK checkResult = iota
	checkWarn
	checkFail
	checkSkip
)

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	report := func(name string, res checkResult, detail string) {
		switch res {
		case checkOK:
			ctx.Printf("✓ %s: OK\n", name)
		case checkWarn:
			ctx.Printf("⚠ %s: WARNING\n", name)
		case checkFail:
			ctx.Printf("❌ %s: FAIL\n", name)
			hasError = true
		case checkSkip:
			ctx.Printf("⊘ %s: SKIPPED\n", name)
		}
		if detail != "" {
			ctx.Printf("   %s\n", detail)
		}
	}

	report("Configuration", checkOK, fmt.Sprintf("backend %s, config dir %s", ctx.Config.Storage.Backend, ctx.Config.Dir))

	store, closeStore, err := openForDoctor(ctx)
	if err != nil {
		report("Storage reachable", checkFail, err.Error())
	} else {
		defer closeStore()
		report("Storage reachable", checkOK, store.GetConfigPath())
	}

	if store != nil {
		res, detail := checkSchema(store)
		report("Schema version", res, detail)
	} else {
		report("Schema version", checkSkip, "storage not reachable")
	}

	if ctx.UsesSQLite() {
		res, detail := checkBackups(ctx)
		report("Backups present", res, detail)
	}

	res, detail := checkSession(ctx.Config.Dir)
	report("Session lock", res, detail)

	if store != nil {
		res, detail := checkData(ctx, store)
		report("Data validation", res, detail)
	} else {
		report("Data validation", checkSkip, "storage not reachable")
	}

	res, detail = checkClock(ctx.Today())
	report("Clock/timezone", res, detail)

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func openForDoctor(ctx *cli.Context) (storage.Provider, func(), error) {
	if ctx.Store != nil {
		if err := ctx.Store.Load(); err != nil {
			return nil, nil, err
		}
		return ctx.Store, func() {}, nil
	}

	store, err := storage.New(ctx.Config)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Load(); err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

func checkSchema(store storage.Provider) (checkResult, string) {
	migrator, ok := store.(storage.Migrator)
	if !ok {
		return checkSkip, "backend has no versioned schema"
	}
	current, latest, err := migrator.SchemaVersion()
	if err != nil {
		return checkFail, err.Error()
	}
	switch {
	case current > latest:
		return checkFail, fmt.Sprintf("database schema version %d is newer than supported version %d", current, latest)
	case current < latest:
		return checkFail, fmt.Sprintf("migrations incomplete: version %d of %d, run 'habitual migrate'", current, latest)
	}
	return checkOK, fmt.Sprintf("version %d", current)
}

func checkBackups(ctx *cli.Context) (checkResult, string) {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return checkWarn, err.Error()
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return checkWarn, fmt.Sprintf("failed to list backups: %v", err)
	}
	if len(backups) == 0 {
		return checkWarn, "no backups found, consider creating one with 'habitual backup create'"
	}
	return checkOK, fmt.Sprintf("%d backup(s), newest %s", len(backups), backups[0].Timestamp.Format("2006-01-02 15:04"))
}

func checkSession(dir string) (checkResult, string) {
	holder, live, err := session.Inspect(dir)
	if err != nil {
		if errors.Is(err, session.ErrMalformed) {
			return checkWarn, "malformed lockfile, it will be replaced by the next session"
		}
		return checkFail, err.Error()
	}
	switch {
	case holder.PID == 0:
		return checkOK, "no active session"
	case live && holder.PID == os.Getpid():
		return checkOK, "held by this process"
	case live:
		return checkOK, fmt.Sprintf("held by pid %d (port %d)", holder.PID, holder.Port)
	}
	return checkWarn, fmt.Sprintf("stale lock from pid %d, it will be replaced", holder.PID)
}

func checkData(ctx *cli.Context, store storage.Provider) (checkResult, string) {
	result, err := validateStore(&cli.Context{Store: store, Config: ctx.Config, Now: ctx.Now})
	if err != nil {
		return checkFail, err.Error()
	}
	if result.HasConflicts() {
		return checkWarn, fmt.Sprintf("%d problem(s) found, run 'habitual validate' for details", len(result.Conflicts))
	}
	return checkOK, ""
}

func checkClock(now time.Time) (checkResult, string) {
	if now.Year() < 2020 || now.Year() > 2100 {
		return checkFail, fmt.Sprintf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	name, _ := now.Zone()
	return checkOK, "timezone " + name
}
