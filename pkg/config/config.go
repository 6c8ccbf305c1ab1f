// Package config loads biblio's runtime configuration.
//
// Values are resolved with the following precedence (highest first):
//
//  1. BIBLIO_* environment variables
//  2. A TOML file, when a path is given
//  3. Built-in defaults
//
// The upstream base URL has no default. [Load] returns a CONFIG_ERROR when
// it is missing so that commands fail before serving any request.
//
// # File Format
//
//	[upstream]
//	base_url = "https://www.googleapis.com/books/v1/volumes"
//	api_key  = ""
//	timeout  = "10s"
//
//	[cache]
//	backend    = "redis"          # memory, file, redis, mongo or none
//	ttl        = "1h"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr       = ":8080"
//	rate_limit = 10.0
//	rate_burst = 20
//	metrics    = true
//	trusted_proxies = ["10.0.0.0/8"]  # peers whose X-Forwarded-For is honoured
//
//	[log]
//	level = "info"
package config

import (
	"net/netip"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/biblio/pkg/errors"
)

const appName = "biblio"

// Cache backends accepted by CacheConfig.Backend.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendNone   = "none"
)

// Config is the complete runtime configuration.
type Config struct {
	Upstream UpstreamConfig `toml:"upstream"`
	Cache    CacheConfig    `toml:"cache"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// UpstreamConfig configures the book catalog client.
type UpstreamConfig struct {
	BaseURL string        `toml:"base_url"` // Volumes endpoint; required
	APIKey  string        `toml:"api_key"`
	Timeout time.Duration `toml:"timeout"`
}

// CacheConfig selects and configures the record cache backend.
type CacheConfig struct {
	Backend       string        `toml:"backend"`
	TTL           time.Duration `toml:"ttl"`
	Dir           string        `toml:"dir"` // file backend
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	MongoURI      string        `toml:"mongo_uri"`
	MongoDatabase string        `toml:"mongo_database"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `toml:"addr"`
	RateLimit       float64       `toml:"rate_limit"` // Requests per second per client IP; 0 disables
	RateBurst       int           `toml:"rate_burst"`
	Metrics         bool          `toml:"metrics"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`

	// TrustedProxies lists the peers (addresses or CIDR prefixes) whose
	// X-Forwarded-For, X-Real-IP and True-Client-IP headers are used as the
	// client address. Headers from any other peer are ignored.
	TrustedProxies []string `toml:"trusted_proxies"`
}

// TrustedProxyPrefixes parses TrustedProxies. A bare address is treated as
// a single-host prefix.
func (c ServerConfig) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(c.TrustedProxies))
	for _, s := range c.TrustedProxies {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if strings.Contains(s, "/") {
			p, err := netip.ParsePrefix(s)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeConfig, err, "invalid trusted proxy %q", s)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfig, err, "invalid trusted proxy %q", s)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in defaults. Upstream.BaseURL is left empty.
func Default() *Config {
	return &Config{
		Upstream: UpstreamConfig{
			Timeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Backend:       BackendMemory,
			TTL:           time.Hour,
			Dir:           DefaultCacheDir(),
			RedisAddr:     "localhost:6379",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: appName,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			RateLimit:       10,
			RateBurst:       20,
			Metrics:         true,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds a Config from defaults, the TOML file at path (skipped when
// path is empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read is like Load but skips validation. Commands that only touch part of
// the configuration (such as cache maintenance) validate that part themselves.
func Read(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfig, err, "read config file %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.New(errors.ErrCodeConfig, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
// Every failure is a CONFIG_ERROR.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Upstream.BaseURL) == "" {
		return errors.New(errors.ErrCodeConfig,
			"upstream base URL is required (set upstream.base_url or BIBLIO_UPSTREAM_URL)")
	}
	if err := errors.ValidateURL(c.Upstream.BaseURL); err != nil {
		return errors.Wrap(errors.ErrCodeConfig, err, "invalid upstream base URL")
	}
	if c.Upstream.Timeout <= 0 {
		return errors.New(errors.ErrCodeConfig, "upstream timeout must be positive")
	}

	if err := c.Cache.Validate(); err != nil {
		return err
	}

	if c.Server.RateLimit < 0 {
		return errors.New(errors.ErrCodeConfig, "server rate limit cannot be negative")
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst < 1 {
		return errors.New(errors.ErrCodeConfig, "server rate burst must be at least 1")
	}
	if _, err := c.Server.TrustedProxyPrefixes(); err != nil {
		return err
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.ErrCodeConfig, err, "invalid log level %q", c.Log.Level)
	}
	return nil
}

// Validate checks the cache section on its own.
func (c CacheConfig) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendNone:
	case BackendFile:
		if c.Dir == "" {
			return errors.New(errors.ErrCodeConfig, "cache dir is required for the file backend")
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return errors.New(errors.ErrCodeConfig, "redis address is required for the redis backend")
		}
	case BackendMongo:
		if c.MongoURI == "" {
			return errors.New(errors.ErrCodeConfig, "mongo URI is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeConfig, "unknown cache backend %q", c.Backend)
	}
	if c.TTL <= 0 {
		return errors.New(errors.ErrCodeConfig, "cache ttl must be positive")
	}
	return nil
}

// LogLevel returns the parsed log level, falling back to info.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(key)
		if !ok {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeConfig, err, "invalid %s %q", key, v)
		}
		*dst = d
		return nil
	}

	str("BIBLIO_UPSTREAM_URL", &c.Upstream.BaseURL)
	str("BIBLIO_UPSTREAM_API_KEY", &c.Upstream.APIKey)
	if err := dur("BIBLIO_UPSTREAM_TIMEOUT", &c.Upstream.Timeout); err != nil {
		return err
	}

	str("BIBLIO_CACHE_BACKEND", &c.Cache.Backend)
	if err := dur("BIBLIO_CACHE_TTL", &c.Cache.TTL); err != nil {
		return err
	}
	str("BIBLIO_CACHE_DIR", &c.Cache.Dir)
	str("BIBLIO_REDIS_ADDR", &c.Cache.RedisAddr)
	str("BIBLIO_REDIS_PASSWORD", &c.Cache.RedisPassword)
	str("BIBLIO_MONGO_URI", &c.Cache.MongoURI)

	str("BIBLIO_ADDR", &c.Server.Addr)
	if v, ok := lookup("BIBLIO_RATE_LIMIT"); ok {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeConfig, err, "invalid BIBLIO_RATE_LIMIT %q", v)
		}
		c.Server.RateLimit = rps
	}
	if v, ok := lookup("BIBLIO_TRUSTED_PROXIES"); ok {
		c.Server.TrustedProxies = strings.Split(v, ",")
	}
	if v, ok := lookup("BIBLIO_METRICS"); ok {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeConfig, err, "invalid BIBLIO_METRICS %q", v)
		}
		c.Server.Metrics = on
	}

	str("BIBLIO_LOG_LEVEL", &c.Log.Level)
	return nil
}

// DefaultCacheDir returns the file cache directory using the XDG standard
// (~/.cache/biblio/). It returns "" when no home directory is known.
func DefaultCacheDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", appName)
}
