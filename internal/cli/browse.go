package cli

import (
	"context"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/giveaway/internal/debug"
	"github.com/Makepad-fr/giveaway/internal/store/jsonstore"
	"github.com/Makepad-fr/giveaway/internal/store/watch"
	"github.com/Makepad-fr/giveaway/internal/tui"
)

func newBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:         "browse",
		Short:       "Open the interactive browser (default)",
		Args:        exactArgs(0),
		Annotations: map[string]string{annotTUILog: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, app)
		},
	}
}

func runBrowse(cmd *cobra.Command, app *App) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	changes, err := app.watchChanges(ctx)
	if err != nil {
		return err
	}
	opts := tui.Options{
		Load:          app.load,
		Catalog:       app.catalogOptions(),
		Placeholder:   app.cfg.PlaceholderImage,
		Changes:       changes,
		MarkdownStyle: markdownStyle(app.cfg.Theme, termenv.HasDarkBackground()),
	}
	return tui.Run(opts, app.cfg.LogFile)
}

// watchChanges starts a file watcher when live reload is on and the source is
// local. It stops with ctx. A nil channel means no reloads.
func (app *App) watchChanges(ctx context.Context) (<-chan struct{}, error) {
	if !app.cfg.Watch {
		return nil, nil
	}
	if jsonstore.IsRemote(app.cfg.Data) {
		debug.Log("watch: %s is remote, live reload disabled", app.cfg.Data)
		return nil, nil
	}
	w, err := watch.New(app.cfg.Data)
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	go func() {
		<-ctx.Done()
		w.Stop()
	}()
	return w.Changed(), nil
}

// markdownStyle maps a color theme to a glamour standard style. The
// background is detected before the alt screen takes over the terminal.
func markdownStyle(theme string, dark bool) string {
	switch strings.ToLower(theme) {
	case "neon":
		return "dracula"
	case "mono":
		return "notty"
	}
	if !dark {
		return "light"
	}
	return "dark"
}
