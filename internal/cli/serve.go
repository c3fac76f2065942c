package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/assetmap/internal/server"
	"github.com/matzehuels/assetmap/pkg/config"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		maxBody int64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the projection API over HTTP",
		Long: `Serve the projection API over HTTP.

Routes:
  GET  /healthz                 build info
  POST /api/v1/project          element list for a posted graph
  POST /api/v1/hulls            hull regions for posted bounds
  POST /api/v1/render?format=f  svg, dot or json artifact

The server shares the CLI cache and stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, maxBody, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBodyBytes, "maximum request body size in bytes")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, maxBody int64, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := server.New(server.Config{
		Addr:         addr,
		Logger:       c.Logger,
		Runner:       runner,
		MaxBodyBytes: maxBody,
		Defaults:     c.pipelineOptions(),
	})

	printSuccess("Serving on %s", StyleLink.Render("http://"+displayAddr(addr)))
	backend := c.Config.Cache.Backend
	if noCache {
		backend = config.BackendNone
	}
	printKeyValue("cache", backend)
	printDetail("Press Ctrl+C to stop")
	return srv.ListenAndServe(ctx)
}

// displayAddr turns a bare ":port" into a clickable host.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
