package main

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/trackdown/internal/cli"
	"github.com/julianstephens/trackdown/internal/constants"
	apperrors "github.com/julianstephens/trackdown/internal/errors"
	"github.com/julianstephens/trackdown/internal/logger"
	"github.com/julianstephens/trackdown/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path (.json for a plain JSON file, anything else is SQLite)." type:"path" default:"~/.config/trackdown/trackdown.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize trackdown storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Browse entries interactively." default:"1"`
	Track    cli.TrackCmd    `cmd:"" help:"Record (or edit) a daily entry."`
	Question cli.QuestionCmd `cmd:"" help:"Manage the questions on the daily form."`
	Entries  cli.EntriesCmd  `cmd:"" help:"List and delete recorded entries."`
	Summary  cli.SummaryCmd  `cmd:"" help:"Show entry counts and completion rates."`
	Compare  cli.CompareCmd  `cmd:"" help:"Compare two questions over time."`
	Export   cli.ExportCmd   `cmd:"" help:"Export data as JSON or CSV."`
	Import   cli.ImportCmd   `cmd:"" help:"Import a backup or an entries list."`
	Pin      cli.PinCmd      `cmd:"" help:"Manage the PIN that locks the app."`
	Reset    cli.ResetCmd    `cmd:"" help:"Delete recorded data."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal daily self-tracking: your questions, your data."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.1.0"},
	)

	logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	})

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}
	defer store.Close()

	if ctx.Command() != "init" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
		if err := cli.RequireUnlock(store); err != nil {
			apperrors.Fatal(err)
		}
	}

	appCtx := &cli.Context{
		Store: store,
		Debug: CLI.Debug,
	}

	apperrors.Fatal(ctx.Run(appCtx))
}
