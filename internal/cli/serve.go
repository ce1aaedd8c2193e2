package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nagyist/rover-android/pkg/observability"
	"github.com/nagyist/rover-android/pkg/server"
)

// serveCommand creates the command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API",
		Long: `Run the layout HTTP API until interrupted.

The cache and run store backends come from the config file:

  [cache]
  backend = "redis"
  redis_addr = "localhost:6379"

  [store]
  backend = "mongo"
  uri = "mongodb://localhost:27017"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	st, err := c.cfg.Store.OpenStore(ctx)
	if err != nil {
		return fmt.Errorf("open run store: %w", err)
	}
	defer st.Close()

	cfg := server.Config{
		Addr:         c.cfg.Server.Addr,
		ReadTimeout:  c.cfg.Server.ReadTimeout,
		WriteTimeout: c.cfg.Server.WriteTimeout,
		MaxBodyBytes: c.cfg.Server.MaxBodyBytes,
		Defaults:     c.cfg.PipelineOptions(),
	}
	if addr != "" {
		cfg.Addr = addr
	}
	cfg.Defaults.Logger = c.Logger

	cfg.Stats = observability.NewCounters()
	cfg.Stats.Register()
	defer observability.Reset()

	c.Logger.Debug("backends", "cache", c.cfg.Cache.Backend, "store", c.cfg.Store.Backend)
	return server.New(cfg, runner, st, c.Logger).ListenAndServe(ctx)
}
