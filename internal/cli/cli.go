package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/biblio/pkg/cache"
	"github.com/matzehuels/biblio/pkg/config"
	"github.com/matzehuels/biblio/pkg/errors"
	"github.com/matzehuels/biblio/pkg/integrations/googlebooks"
	"github.com/matzehuels/biblio/pkg/lookup"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display and cache key prefixes.
const appName = "biblio"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Config & Resolver Factory
// =============================================================================

// loadConfig reads and validates the configuration. Unless --verbose was
// given, the configured log level is applied to the CLI logger.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.applyLogLevel(cfg)
	return cfg, nil
}

func (c *CLI) applyLogLevel(cfg *config.Config) {
	if !c.verbose {
		c.SetLogLevel(cfg.LogLevel())
	}
}

// newResolver builds the catalog client, cache backend and resolver from cfg.
// The caller must Close the returned cache.
func (c *CLI) newResolver(ctx context.Context, cfg *config.Config) (*lookup.Resolver, cache.Cache, error) {
	client, err := googlebooks.NewClient(googlebooks.Options{
		BaseURL: cfg.Upstream.BaseURL,
		APIKey:  cfg.Upstream.APIKey,
		Timeout: cfg.Upstream.Timeout,
	})
	if err != nil {
		return nil, nil, err
	}

	store, err := newCache(ctx, cfg.Cache)
	if err != nil {
		return nil, nil, err
	}
	c.Logger.Debug("cache ready", "backend", cfg.Cache.Backend, "ttl", cfg.Cache.TTL)

	r := lookup.New(client, store, lookup.WithLogger(c.Logger), lookup.WithTTL(cfg.Cache.TTL))
	return r, store, nil
}

// newCache opens the cache backend selected by cfg.
func newCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendMemory, "":
		return cache.NewMemoryCache(), nil
	case config.BackendFile:
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfig, err, "create cache dir %s", cfg.Dir)
		}
		c, err := cache.NewFileCache(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.BackendRedis:
		c, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: appName + ":",
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfig, err, "connect to redis at %s", cfg.RedisAddr)
		}
		return c, nil
	case config.BackendMongo:
		c, err := cache.NewMongoCache(ctx, cache.MongoConfig{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDatabase,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfig, err, "connect to mongo")
		}
		return c, nil
	default:
		return nil, errors.New(errors.ErrCodeConfig, "unknown cache backend %q", cfg.Backend)
	}
}
