package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/biblio/internal/server"
	"github.com/matzehuels/biblio/pkg/observability"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the book lookup HTTP API",
		Long: `Run the book lookup HTTP API.

Endpoints:
  GET /api/books/{isbn}   resolve a book by ISBN
  GET /healthz            liveness probe
  GET /metrics            Prometheus metrics (unless disabled)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			resolver, store, err := c.newResolver(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			trusted, err := cfg.Server.TrustedProxyPrefixes()
			if err != nil {
				return err
			}
			opts := server.Options{
				RateLimit:      cfg.Server.RateLimit,
				RateBurst:      cfg.Server.RateBurst,
				TrustedProxies: trusted,
			}
			if cfg.Server.Metrics {
				reg := prometheus.NewRegistry()
				reg.MustRegister(
					collectors.NewGoCollector(),
					collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
				)
				hooks := observability.NewPrometheusHooks(reg)
				observability.SetLookupHooks(hooks)
				observability.SetCacheHooks(hooks)
				observability.SetHTTPHooks(hooks)
				defer observability.Reset()

				opts.Metrics = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
			}

			c.Logger.Info("starting server",
				"addr", cfg.Server.Addr,
				"upstream", cfg.Upstream.BaseURL,
				"cache", cfg.Cache.Backend,
				"metrics", cfg.Server.Metrics)

			srv := server.New(resolver, c.Logger, opts)
			return srv.Run(ctx, cfg.Server.Addr, cfg.Server.ShutdownTimeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
