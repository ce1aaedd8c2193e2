// Package config loads rover.toml.
//
// Every section is optional; missing keys keep the values from [Default].
// Command-line flags override the loaded values.
//
//	[layout]
//	width = 360
//	height = "inf"
//	char_width = 8
//	line_height = 16
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "12h"
//
//	[store]
//	backend = "mongo"
//	uri = "mongodb://localhost:27017"
//
//	[server]
//	addr = ":8080"
//
//	[log]
//	level = "debug"
package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/nagyist/rover-android/pkg/cache"
	"github.com/nagyist/rover-android/pkg/document"
	rerrors "github.com/nagyist/rover-android/pkg/errors"
	"github.com/nagyist/rover-android/pkg/layout"
	"github.com/nagyist/rover-android/pkg/pipeline"
	"github.com/nagyist/rover-android/pkg/store"
)

// FileName is the config file looked up in the working directory.
const FileName = "rover.toml"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Config is the whole configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// LayoutConfig sets the screen and measurement defaults.
type LayoutConfig struct {
	Width           document.Dimension `toml:"width"`
	Height          document.Dimension `toml:"height"`
	CharWidth       int                `toml:"char_width"`
	LineHeight      int                `toml:"line_height"`
	InfinityDefault int                `toml:"infinity_default"`
	PackedTransport bool               `toml:"packed_transport"`
}

// CacheConfig selects and configures the layout cache.
type CacheConfig struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	RedisPrefix   string        `toml:"redis_prefix"`
	TTL           time.Duration `toml:"ttl"`

	// Namespace prefixes every cache key, so several deployments can
	// share one backend.
	Namespace string `toml:"namespace"`
}

// StoreConfig selects and configures the run store.
type StoreConfig struct {
	Backend    string        `toml:"backend"`
	URI        string        `toml:"uri"`
	Database   string        `toml:"database"`
	Collection string        `toml:"collection"`
	Timeout    time.Duration `toml:"timeout"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string        `toml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	MaxBodyBytes int64         `toml:"max_body_bytes"`
}

// LogConfig sets the log level: debug, info, warn or error.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			Width:      pipeline.DefaultWidth,
			Height:     pipeline.DefaultHeight,
			CharWidth:  layout.DefaultTextMetrics.CharWidth,
			LineHeight: layout.DefaultTextMetrics.LineHeight,
		},
		Cache: CacheConfig{
			Backend:     CacheFile,
			RedisAddr:   "localhost:6379",
			RedisPrefix: cache.DefaultRedisPrefix,
		},
		Store: StoreConfig{
			Backend:    StoreMemory,
			Database:   store.DefaultMongoDatabase,
			Collection: store.DefaultMongoCollection,
			Timeout:    store.DefaultMongoTimeout,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			MaxBodyBytes: 1 << 20,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path loads FileName from the
// working directory if it exists, and the defaults otherwise.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat(FileName); err != nil {
			return cfg, nil
		}
		path = FileName
	}

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, rerrors.Wrap(rerrors.ErrCodeFileNotFound, err, "config %s not found", path)
	}
	if err != nil {
		return Config{}, rerrors.Wrap(rerrors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, rerrors.New(rerrors.ErrCodeInvalidFormat, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and backend names.
func (c *Config) Validate() error {
	l := c.Layout
	if l.Width < 0 || l.Height < 0 {
		return rerrors.New(rerrors.ErrCodeInvalidInput, "layout width and height cannot be negative")
	}
	if l.CharWidth <= 0 || l.LineHeight <= 0 {
		return rerrors.New(rerrors.ErrCodeInvalidInput, "layout char_width and line_height must be positive")
	}
	if l.InfinityDefault < 0 {
		return rerrors.New(rerrors.ErrCodeInvalidInput, "layout infinity_default cannot be negative")
	}

	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return rerrors.New(rerrors.ErrCodeInvalidInput, "cache redis_addr is required for the redis backend")
		}
	default:
		return rerrors.New(rerrors.ErrCodeInvalidInput, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return rerrors.New(rerrors.ErrCodeInvalidInput, "cache ttl cannot be negative")
	}

	switch c.Store.Backend {
	case StoreMemory:
	case StoreMongo:
		if c.Store.URI == "" {
			return rerrors.New(rerrors.ErrCodeInvalidInput, "store uri is required for the mongo backend")
		}
	default:
		return rerrors.New(rerrors.ErrCodeInvalidInput, "unknown store backend %q (want memory or mongo)", c.Store.Backend)
	}

	if c.Server.MaxBodyBytes <= 0 {
		return rerrors.New(rerrors.ErrCodeInvalidInput, "server max_body_bytes must be positive")
	}
	if _, err := c.Log.ParseLevel(); err != nil {
		return err
	}
	return nil
}

// ParseLevel returns the charmbracelet/log level.
func (l LogConfig) ParseLevel() (log.Level, error) {
	if l.Level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(l.Level)
	if err != nil {
		return log.InfoLevel, rerrors.New(rerrors.ErrCodeInvalidInput, "unknown log level %q", l.Level)
	}
	return lvl, nil
}

// Metrics returns the configured text metrics.
func (l LayoutConfig) Metrics() layout.TextMetrics {
	return layout.TextMetrics{CharWidth: l.CharWidth, LineHeight: l.LineHeight}
}

// PipelineOptions returns pipeline options seeded from the layout section.
func (c *Config) PipelineOptions() pipeline.Options {
	m := c.Layout.Metrics()
	return pipeline.Options{
		Width:           c.Layout.Width,
		Height:          c.Layout.Height,
		Metrics:         &m,
		InfinityDefault: c.Layout.InfinityDefault,
		PackedTransport: c.Layout.PackedTransport,
	}
}

// DefaultCacheDir returns $XDG_CACHE_HOME/rover, falling back to
// ~/.cache/rover.
func DefaultCacheDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "rover"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "rover"), nil
}

// OpenCache opens the configured cache backend, wrapped with the configured
// TTL.
func (c CacheConfig) OpenCache(ctx context.Context) (cache.Cache, error) {
	var (
		cc  cache.Cache
		err error
	)
	switch c.Backend {
	case CacheNone:
		return cache.NewNullCache(), nil
	case CacheRedis:
		cc, err = cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
			Prefix:   c.RedisPrefix,
		})
	default:
		dir := c.Dir
		if dir == "" {
			if dir, err = DefaultCacheDir(); err != nil {
				return nil, err
			}
		}
		cc, err = cache.NewFileCache(dir)
	}
	if err != nil {
		return nil, err
	}
	return cache.WithTTL(cc, c.TTL), nil
}

// Keyer returns the cache keyer for the configured namespace, or nil for
// the default keyer.
func (c CacheConfig) Keyer() cache.Keyer {
	if c.Namespace == "" {
		return nil
	}
	return cache.NewScopedKeyer(nil, c.Namespace+":")
}

// OpenStore opens the configured run store.
func (c StoreConfig) OpenStore(ctx context.Context) (store.Store, error) {
	if c.Backend != StoreMongo {
		return store.NewMemoryStore(), nil
	}
	return store.NewMongoStore(ctx, store.MongoConfig{
		URI:        c.URI,
		Database:   c.Database,
		Collection: c.Collection,
		Timeout:    c.Timeout,
	})
}
