package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tikzgrid/internal/server"
	"github.com/matzehuels/tikzgrid/pkg/palette"
	"github.com/matzehuels/tikzgrid/pkg/preview"
)

type serveOpts struct {
	host      string
	port      int
	noBrowser bool
	noCache   bool
	noMetrics bool
}

// serveCommand creates the serve command that runs the web editor.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web editor and JSON API",
		Long: `Run the web editor and JSON API.

The server exposes /get_colors, /save_colors, /generate_grid and /preview
next to the editor page. Palette changes are written to the configured
backend. Prometheus metrics are served on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("host") {
				c.cfg.Server.Host = opts.host
			}
			if flags.Changed("port") {
				c.cfg.Server.Port = opts.port
			}
			if opts.noBrowser {
				c.cfg.Server.OpenBrowser = false
			}
			if err := c.cfg.Validate(); err != nil {
				return err
			}
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.host, "host", "", "listen host (default 127.0.0.1)")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "listen port (default 5000)")
	cmd.Flags().BoolVar(&opts.noBrowser, "no-browser", false, "do not open the editor in a browser")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the preview cache")
	cmd.Flags().BoolVar(&opts.noMetrics, "no-metrics", false, "disable the /metrics endpoint")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	store, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	srvOpts := []server.Option{server.WithLogger(c.Logger)}
	if !opts.noMetrics {
		m := server.NewMetrics()
		m.Install()
		srvOpts = append(srvOpts, server.WithMetrics(m))
	}

	renderer := preview.NewRenderer(c.newCache(opts.noCache), c.Logger)
	srv := server.New(c.cfg, store, renderer, srvOpts...)

	printKeyValue("Palette", describeBackend(c.cfg.Palette))
	if dir := c.cfg.Preview.CacheDir; dir != "" && !opts.noCache && !c.cfg.Preview.NoCache {
		printKeyValue("Previews", dir)
	}
	printNewline()
	return srv.Run(ctx, func(url string) {
		printSuccess("Editor ready at %s", StyleLink.Render(url))
		printDetail("Press Ctrl+C to stop")
		if !c.cfg.Server.OpenBrowser {
			return
		}
		if err := server.OpenBrowser(url); err != nil {
			c.Logger.Warn("could not open browser", "err", err)
			printNextStep("Open", url)
		}
	})
}

// describeBackend formats a backend name with its location.
func describeBackend(cfg palette.Config) string {
	backend := cfg.Backend
	if backend == "" {
		backend = palette.BackendFile
	}
	return fmt.Sprintf("%s %s", backend, StyleDim.Render(palette.Location(cfg)))
}
