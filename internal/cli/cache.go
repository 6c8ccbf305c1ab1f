package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/biblio/pkg/cache"
	"github.com/matzehuels/biblio/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the book record cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// readCacheConfig loads the configuration without requiring an upstream URL.
func (c *CLI) readCacheConfig() (*config.Config, error) {
	cfg, err := config.Read(c.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Cache.Validate(); err != nil {
		return nil, err
	}
	c.applyLogLevel(cfg)
	return cfg, nil
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached book records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.readCacheConfig()
			if err != nil {
				return err
			}
			out := printer{w: cmd.OutOrStdout()}

			switch cfg.Cache.Backend {
			case config.BackendMemory, config.BackendNone:
				out.info("The %s cache backend keeps nothing between runs", cfg.Cache.Backend)
				return nil
			}

			store, err := newCache(cmd.Context(), cfg.Cache)
			if err != nil {
				return err
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				return fmt.Errorf("cache backend %q cannot be cleared", cfg.Cache.Backend)
			}
			n, err := clearer.Clear(cmd.Context())
			if err != nil {
				return err
			}

			out.success("Cleared %d cached entries", n)
			out.detail("Backend: %s", describeBackend(cfg.Cache))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached records are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.readCacheConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), describeBackend(cfg.Cache))
			return nil
		},
	}
}

// describeBackend returns the storage location for the configured backend.
func describeBackend(cfg config.CacheConfig) string {
	switch cfg.Backend {
	case config.BackendFile:
		return cfg.Dir
	case config.BackendRedis:
		return "redis " + cfg.RedisAddr
	case config.BackendMongo:
		return "mongo " + cfg.MongoDatabase
	default:
		return cfg.Backend
	}
}
