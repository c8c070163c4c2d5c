package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/jstrand/planwise/internal/cli"
	"github.com/jstrand/planwise/internal/config"
	"github.com/jstrand/planwise/internal/constants"
	"github.com/jstrand/planwise/internal/daycontext"
	"github.com/jstrand/planwise/internal/engine"
	"github.com/jstrand/planwise/internal/errors"
	"github.com/jstrand/planwise/internal/keyring"
	"github.com/jstrand/planwise/internal/logger"
	"github.com/jstrand/planwise/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Debug   bool `help:"Enable debug logging."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize planwise storage and the local user."`
	Day      cli.DayCmd      `cmd:"" help:"Show the resolved day context for a date or range."`
	Validate cli.ValidateCmd `cmd:"" help:"Validate a proposed task placement."`
	Suggest  cli.SuggestCmd  `cmd:"" help:"Suggest scored slots for a task."`
	Schedule cli.ScheduleCmd `cmd:"" help:"Auto-schedule a batch of tasks."`
	Task     struct {
		Add  cli.TaskAddCmd  `cmd:"" help:"Add a new task."`
		List cli.TaskListCmd `cmd:"" help:"List tasks."`
	} `cmd:"" help:"Manage tasks."`
	Rule struct {
		Add  cli.RuleAddCmd  `cmd:"" help:"Add a scheduling rule."`
		List cli.RuleListCmd `cmd:"" help:"List scheduling rules."`
	} `cmd:"" help:"Manage scheduling rules."`
	Override struct {
		Set cli.OverrideSetCmd `cmd:"" help:"Set a one-off override for a date."`
	} `cmd:"" help:"Manage daily overrides."`
	Setting struct {
		Add cli.SettingAddCmd `cmd:"" help:"Add a recurring day setting."`
	} `cmd:"" help:"Manage recurring day settings."`
	Config struct {
		SetConnection    cli.ConfigSetConnectionCmd    `cmd:"" name:"set-connection" help:"Store the PostgreSQL connection string in the OS keyring."`
		DeleteConnection cli.ConfigDeleteConnectionCmd `cmd:"" name:"delete-connection" help:"Remove the stored connection string."`
	} `cmd:"" help:"Manage configuration."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal task scheduling assistant"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configDir, err := config.Dir()
	if err != nil {
		errors.Fatal(err)
	}
	cfg, err := config.Load(configDir)
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug || CLI.Debug, ConfigDir: configDir}); err != nil {
		errors.Fatal(err)
	}

	store, err := openStore(cfg)
	if err != nil {
		errors.Fatal(err)
	}
	if err := store.Init(); err != nil {
		errors.Fatal(err)
	}
	defer store.Close()

	resolver := daycontext.NewResolver(store, cfg.DayDefaults())
	appCtx := &cli.Context{
		Store:     store,
		Engine:    engine.New(store, resolver),
		Config:    cfg,
		ConfigDir: configDir,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.Format(err))
		os.Exit(1)
	}
}

// openStore builds the configured store. Postgres credentials come from
// the OS keyring only; the config file never holds a connection string.
func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Database.Driver {
	case "postgres":
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			return nil, fmt.Errorf("postgres configured but no connection string available, run 'planwise config set-connection': %w", err)
		}
		return storage.NewPostgresStore(connStr), nil
	case "", "sqlite":
		return storage.NewSQLiteStore(cfg.Database.Path), nil
	default:
		return nil, fmt.Errorf("unknown database driver: %q", cfg.Database.Driver)
	}
}
