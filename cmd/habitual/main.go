package main

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/cli/backups"
	"github.com/julianstephens/habitual/internal/cli/habits"
	"github.com/julianstephens/habitual/internal/cli/logs"
	"github.com/julianstephens/habitual/internal/cli/reports"
	"github.com/julianstephens/habitual/internal/cli/system"
	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/storage/driver"
)

type CLI struct {
	Version    kong.VersionFlag
	ConfigFile string `help:"YAML config file (overrides HABITUAL_CONFIG_PATH)." type:"path"`
	DB         string `help:"SQLite file path, PostgreSQL URL without a password, or 'keyring'." placeholder:"PATH|URL"`
	User       string `help:"User whose habits to act on."`
	Debug      bool   `help:"Log debug output to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize habitual storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks on the database and configuration."`
	Habit   habits.HabitCmd   `cmd:"" help:"Manage habits."`
	Track   logs.TrackCmd     `cmd:"" help:"Record a completion of a habit."`
	Log     logs.LogCmd       `cmd:"" help:"Inspect and delete completions."`
	Stats   reports.StatsCmd  `cmd:"" help:"Show streaks and completion rates."`
	Today   reports.TodayCmd  `cmd:"" help:"Show which habits are done or due today." default:"1"`
	Backup  backups.BackupCmd `cmd:"" help:"Manage SQLite database backups."`
	Keyring system.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

func main() {
	if err := run(os.Args[1:], os.Stdout, time.Now); err != nil {
		errors.Fatal(err)
	}
}

func run(args []string, out io.Writer, now func() time.Time) error {
	var flags CLI
	parser, err := kong.New(&flags,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with streaks, completion rates and due-today scheduling"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
		kong.Writers(out, os.Stderr),
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(flags.ConfigFile)
	if err != nil {
		return err
	}
	if flags.DB != "" {
		cfg.DB = flags.DB
	}
	if flags.User != "" {
		cfg.UserID = flags.User
	}
	if flags.Debug {
		cfg.Debug = true
	}

	dataDir, err := cfg.DataDir()
	if err != nil {
		return err
	}
	if err := logger.Init(logger.Config{Debug: cfg.Debug, DataDir: dataDir}); err != nil {
		return err
	}

	command := ctx.Command()
	logger.Debug("Running command", "command", command, "user", cfg.UserID, "postgres", cfg.IsPostgres())

	appCtx := &cli.Context{Config: cfg, Now: now, Out: out}

	// Keyring commands must work before any database is reachable.
	if !strings.HasPrefix(command, "keyring") {
		store, err := driver.New(cfg.DB)
		if err != nil {
			return err
		}
		defer store.Close()
		appCtx.Store = store

		// init creates the database and doctor reports on loading it.
		if !strings.HasPrefix(command, "init") && command != "doctor" {
			if err := store.Load(); err != nil {
				return err
			}
		}
	}

	return ctx.Run(appCtx)
}
