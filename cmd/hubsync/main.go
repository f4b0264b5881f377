package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/hubsync/hubsync/internal/cli"
	"github.com/hubsync/hubsync/internal/config"
	"github.com/hubsync/hubsync/internal/logger"
	"github.com/hubsync/hubsync/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `help:"Database file path." type:"path"`
	Debug   bool   `short:"d" help:"Enable debug logging."`

	Install cli.InstallCmd `cmd:"" help:"Create the database file and tables."`
	Sync    cli.SyncCmd    `cmd:"" help:"Fetch daily activities and projects for an organization."`
	Report  cli.ReportCmd  `cmd:"" help:"Show tracked time by user and project."`
	Login   cli.LoginCmd   `cmd:"" help:"Store Hubstaff credentials in the OS keyring."`
	Backup  cli.BackupCmd  `cmd:"" help:"Create, list or restore database backups."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Run environment diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("hubsync"),
		kong.Description("Sync Hubstaff daily activities into a local database and report tracked time"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	cfg := config.Load(CLI.DB, CLI.Debug)

	lg, err := logger.New(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.ConfigDir()})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	store := storage.NewStore(cfg.DBPath, lg)
	defer store.Close()

	appCtx := &cli.Context{
		Config: cfg,
		Store:  store,
		Logger: lg,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
