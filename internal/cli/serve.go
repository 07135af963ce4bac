package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Makepad-fr/giveaway/internal/debug"
	"github.com/Makepad-fr/giveaway/internal/ui"
	"github.com/Makepad-fr/giveaway/internal/web"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog as HTML",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				app.cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", app.cfg.Addr)
			if err != nil {
				return fmt.Errorf("listen: %w", err)
			}
			ui.OK("serving on http://" + ln.Addr().String())
			return app.serve(ctx, ln)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

// serve runs the HTML adapter on ln until ctx is done.
func (app *App) serve(ctx context.Context, ln net.Listener) error {
	srv, err := web.NewServer(web.Config{
		Catalog:     app.catalogOptions(),
		Placeholder: app.cfg.PlaceholderImage,
		MediaDir:    app.cfg.Images(),
	}, app.load(ctx))
	if err != nil {
		return err
	}

	hs := &http.Server{
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	changes, err := app.watchChanges(ctx)
	if err != nil {
		return err
	}
	if changes != nil {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-changes:
					debug.Log("serve: source changed, reloading")
					srv.Replace(app.load(ctx))
				}
			}
		})
	}
	g.Go(func() error {
		if err := hs.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}
