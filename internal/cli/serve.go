package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/statviz/internal/server"
	"github.com/matzehuels/statviz/pkg/observability"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		chartsDir   string
		cacheTarget string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the charts of a directory over HTTP",
		Long: `Serve renders the chart specs of a directory on request. The width query
parameter is the measured container width:

  GET  /charts/einwohner.svg?width=320
  POST /render  {"spec": "...", "width": 640, "formats": ["html"]}

Prometheus metrics are exposed under /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			runner, err := c.newRunner(ctx, cacheTarget)
			if err != nil {
				return err
			}
			defer runner.Close()

			s := server.New(server.Config{
				Addr:        addr,
				ChartsDir:   chartsDir,
				Interactive: interactive,
				Runner:      runner,
				Logger:      logger,
			})
			observability.SetPipelineHooks(s.Metrics())
			observability.SetCacheHooks(s.Metrics())
			defer observability.Reset()

			printInfo(cmd.OutOrStdout(), "Serving %s on %s", StyleHighlight.Render(chartsDir), StyleLink.Render("http://"+displayAddr(addr)))
			return s.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVarP(&chartsDir, "charts", "d", ".", "directory of chart specs")
	cmd.Flags().StringVar(&cacheTarget, "cache", "", "cache: directory, redis:// or mongodb:// URL, or \"none\" (default: ~/.cache/statviz)")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "add hover highlighting to svg and html output by default")
	return cmd
}

// displayAddr turns a listen address into something a browser can open.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
