package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/cli/backups"
	"github.com/julianstephens/habitual/internal/cli/habits"
	"github.com/julianstephens/habitual/internal/cli/system"
	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/storage"
)

var CLI struct {
	Version    kong.VersionFlag
	ConfigFile string `help:"Config file path (default ~/.config/habitual/config.yaml)." type:"path" env:"HABITUAL_CONFIG"`
	Backend    string `help:"Storage backend: sqlite, postgres or memory."`
	DB         string `name:"db" help:"SQLite database path, or PostgreSQL connection string for the postgres backend. Credentials must NOT be embedded in PostgreSQL connection strings."`
	Debug      bool   `help:"Enable debug logging."`

	Init     system.InitCmd     `cmd:"" help:"Initialize habitual storage."`
	Habit    habits.HabitCmd    `cmd:"" help:"Manage habits."`
	Log      habits.LogCmd      `cmd:"" help:"Record and list daily amounts."`
	Insights habits.InsightsCmd `cmd:"" help:"Show streak, recommendation and trend for a habit."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Serve    system.ServeCmd    `cmd:"" help:"Serve the HTTP JSON API."`
	Validate system.ValidateCmd `cmd:"" help:"Check stored habits and logs for integrity problems."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Backup   backups.BackupCmd  `cmd:"" help:"Manage SQLite database backups."`
	Keyring  system.KeyringCmd  `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with streaks, recommendations and trend charts"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := loadConfig()
	if err != nil {
		errors.Fatal(err)
	}

	command := strings.Fields(ctx.Command())[0]
	if err := logger.Init(logger.Config{
		Debug:     cfg.Log.Debug,
		ConfigDir: cfg.Dir,
		Stderr:    command == "serve",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	appCtx := &cli.Context{
		Config: cfg,
		Now:    time.Now,
	}

	// keyring manages credentials without a store; doctor opens its own so it
	// can report a broken backend.
	if command != "keyring" && command != "doctor" {
		store, err := storage.New(cfg)
		if err != nil {
			errors.Fatal(err)
		}
		defer store.Close()

		if command != "init" {
			if err := store.Load(); err != nil {
				store.Close()
				errors.Fatal(err)
			}
		}
		appCtx.Store = store
	}

	if err := ctx.Run(appCtx); err != nil {
		if appCtx.Store != nil {
			appCtx.Store.Close()
		}
		errors.Fatal(err)
	}
}

// loadConfig reads the config file and environment, then applies flag
// overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(CLI.ConfigFile)
	if err != nil {
		return nil, err
	}

	if CLI.Backend != "" {
		cfg.Storage.Backend = CLI.Backend
	}
	if CLI.DB != "" {
		if cfg.Storage.Backend == constants.BackendPostgres {
			cfg.Storage.DSN = CLI.DB
		} else {
			cfg.Storage.Path = CLI.DB
		}
	}
	if CLI.Debug {
		cfg.Log.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
