package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/fiberarts/fiberfind/internal/server"
)

// serveCommand creates the HTTP facade command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		maxPages int
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the aggregate computations over HTTP",
		Long: `Serve the central-shops and designer-yarns computations as a JSON API.

Endpoints:
  GET /api/central-shops?city=Portland&measure=degree&radius=50&top=3
  GET /api/designer-yarns?designer=Jane+Doe&top=5
  GET /healthz

Configure a redis address to share the response cache across instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newRavelry(cmd.Context(), false, noCache)
			if err != nil {
				return err
			}
			srv := server.New(server.Config{
				Shops:    client,
				Patterns: client,
				Geocoder: c.newGeocoder(),
				Logger:   c.Logger,
				MaxPages: maxPages,
			})
			return c.runServe(cmd.Context(), addr, srv.Handler())
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "listen address")
	cmd.Flags().IntVar(&maxPages, "max-pages", 10, "limit API pagination per request (0 = all pages)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe runs the HTTP server until the context is cancelled, then shuts
// down gracefully.
func (c *CLI) runServe(ctx context.Context, addr string, handler http.Handler) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		c.Logger.Info("server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
