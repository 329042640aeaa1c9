package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mki/isnad/internal/server"
	"github.com/mki/isnad/pkg/repository"
)

// serveCommand starts the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve hadiths, narrators and chain graphs over HTTP",
		Long: `Serve hadiths, narrators and chain graphs over HTTP.

Routes:
  GET /healthz
  GET /version
  GET /api/hadiths?page=&size=&source=
  GET /api/hadiths/{id}
  GET /api/hadiths/{id}/graph?locale=&pivot=
  GET /api/hadiths/{id}/graph.{json,dot,svg,png,pdf,mermaid}
  GET /api/narrators?q=&limit=
  GET /api/narrators/{index}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	e, err := c.newEnv(ctx, false)
	if err != nil {
		return err
	}
	defer e.Close()

	cfg := e.cfg.Server
	if addr != "" {
		cfg.Addr = addr
	}
	srv := server.New(e.runner, server.Options{
		Locale:      e.cfg.Render.Locale,
		PivotMarker: e.cfg.Render.PivotMarker,
		Logger:      c.Logger,
	})
	c.Logger.Info("serving", "store", repository.BackendName(e.store), "cache", e.cfg.Cache.Kind)
	return srv.ListenAndServe(ctx, cfg)
}
