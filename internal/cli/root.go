package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/giveaway/internal/catalog"
	"github.com/Makepad-fr/giveaway/internal/config"
	"github.com/Makepad-fr/giveaway/internal/debug"
	"github.com/Makepad-fr/giveaway/internal/model"
	"github.com/Makepad-fr/giveaway/internal/store/jsonstore"
	"github.com/Makepad-fr/giveaway/internal/ui"
)

// App carries root flags and the resolved configuration into subcommands.
type App struct {
	ConfigPath    string
	Data          string
	Theme         string
	UnknownStatus string
	Watch         bool
	LogFile       string
	Color         bool
	NoColor       bool

	cfg     config.Config
	logFile *os.File
}

// Command annotations read by resolve.
const (
	// annotSkipConfig marks commands that must run even when the config file is invalid.
	annotSkipConfig = "giveaway/skip-config"
	// annotTUILog marks commands whose log file is opened by tui.Run.
	annotTUILog = "giveaway/tui-log"
)

// UsageError marks failures caused by how the command was invoked.
type UsageError struct{ Err error }

func (e UsageError) Error() string { return e.Err.Error() }
func (e UsageError) Unwrap() error { return e.Err }

func usagef(format string, args ...any) error {
	return UsageError{Err: fmt.Errorf(format, args...)}
}

// exactArgs is cobra.ExactArgs reporting a UsageError.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return UsageError{Err: err}
		}
		return nil
	}
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "giveaway",
		Short:         "Browse a catalog of items being given away",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          exactArgs(0),
		Annotations:   map[string]string{annotTUILog: "true"},
		Example: strings.TrimSpace(`
  # Start the interactive browser
  giveaway

  # Print what is still available in the kitchen
  giveaway ls --status available --search kitchen

  # Serve the catalog over HTTP, reloading when items.json changes
  giveaway serve --addr :8080 --watch
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.resolve(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.closeLog()
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return UsageError{Err: err}
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&app.ConfigPath, "config", "", "config file (default "+config.Path()+")")
	pf.StringVarP(&app.Data, "data", "d", "", "path or http(s) URL of items.json")
	pf.StringVar(&app.Theme, "theme", "", "color theme: classic, neon or mono")
	pf.StringVar(&app.UnknownStatus, "unknown-status", "", "where unrecognized statuses sort: taken or available")
	pf.BoolVarP(&app.Watch, "watch", "w", false, "reload when the data file changes")
	pf.StringVar(&app.LogFile, "log-file", "", "write diagnostics to this file")
	pf.BoolVar(&app.Color, "color", false, "force colored output")
	pf.BoolVar(&app.NoColor, "no-color", false, "disable colored output")

	cmd.AddCommand(newBrowseCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newCategoriesCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	return cmd
}

// resolve loads the config file, then lets explicitly set flags win. Invalid
// values are usage errors whether they came from the file, env or flags.
func (app *App) resolve(cmd *cobra.Command) error {
	if cmd.Annotations[annotSkipConfig] != "" {
		return nil
	}
	cfg, err := config.Read(app.ConfigPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.Data = app.Data
	}
	if flags.Changed("theme") {
		cfg.Theme = app.Theme
	}
	if flags.Changed("unknown-status") {
		cfg.UnknownStatus = app.UnknownStatus
	}
	if flags.Changed("watch") {
		cfg.Watch = app.Watch
	}
	if flags.Changed("log-file") {
		cfg.LogFile = app.LogFile
	}
	if err := cfg.Validate(); err != nil {
		return UsageError{Err: err}
	}
	app.cfg = cfg

	if cfg.LogFile != "" && cmd.Annotations[annotTUILog] == "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		app.logFile = f
		debug.SetOutput(f)
	}

	ui.SetTheme(cfg.Theme)
	if app.Color || app.NoColor {
		ui.SetColorForcing(app.Color, app.NoColor)
	}
	debug.Log("config: data=%s theme=%s unknown_status=%s watch=%v", cfg.Data, cfg.Theme, cfg.UnknownStatus, cfg.Watch)
	return nil
}

// closeLog detaches diagnostics from the log file opened by resolve.
func (app *App) closeLog() error {
	if app.logFile == nil {
		return nil
	}
	debug.SetOutput(nil)
	err := app.logFile.Close()
	app.logFile = nil
	return err
}

// Config is the resolved configuration; valid once a command has started.
func (app *App) Config() config.Config { return app.cfg }

func (app *App) catalogOptions() catalog.Options {
	return catalog.Options{Policy: app.cfg.Policy()}
}

// load reads the data source. Failures yield an empty catalog.
func (app *App) load(ctx context.Context) []model.Item {
	return jsonstore.LoadOrEmpty(ctx, app.cfg.Data)
}

// Execute runs the command tree and maps the outcome to an exit code:
// 0 ok, 1 error, 2 usage.
func Execute(ctx context.Context, args []string) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	ui.Fail(err.Error())
	var ue UsageError
	if errors.As(err, &ue) || isCobraUsage(err) {
		return 2
	}
	return 1
}

// isCobraUsage recognizes the plain errors cobra returns for unknown commands.
func isCobraUsage(err error) bool {
	return strings.HasPrefix(err.Error(), "unknown command") ||
		strings.HasPrefix(err.Error(), "unknown shorthand flag") ||
		strings.HasPrefix(err.Error(), "unknown flag")
}
