// Package config loads assetmap settings from a TOML file.
//
// Config file locations (priority order):
//  1. $ASSETMAP_CONFIG
//  2. ./assetmap.toml
//  3. $XDG_CONFIG_HOME/assetmap/config.toml
//  4. ~/.config/assetmap/config.toml
//
// A missing file is not an error; [Load] returns [Default]. Command-line flags
// override file values.
//
//	[hull]
//	padding = 60.0
//	min_size = 120.0
//	palette = ["#FF6B6B", "#4ECDC4"]
//
//	[render]
//	formats = ["svg"]
//	detailed = false
//	engine = "dot"
//
//	[server]
//	addr = ":8080"
//
//	[cache]
//	backend = "file"   # file, redis or none
//	ttl = "24h"
package config

import (
	"os"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/assetmap/pkg/errors"
	"github.com/matzehuels/assetmap/pkg/hull"
	"github.com/matzehuels/assetmap/pkg/projection"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the complete settings file.
type Config struct {
	Projection ProjectionConfig `toml:"projection"`
	Hull       HullConfig       `toml:"hull"`
	Render     RenderConfig     `toml:"render"`
	Server     ServerConfig     `toml:"server"`
	Cache      CacheConfig      `toml:"cache"`
}

// ProjectionConfig tunes the projector.
type ProjectionConfig struct {
	ConnectorRelation string `toml:"connector_relation"`
}

// HullConfig tunes hull geometry and colors.
type HullConfig struct {
	Padding float64  `toml:"padding"`
	MinSize float64  `toml:"min_size"`
	Palette []string `toml:"palette"`
	// NodeWidth and NodeHeight size instances that only have a position hint.
	NodeWidth  float64 `toml:"node_width"`
	NodeHeight float64 `toml:"node_height"`
}

// RenderConfig sets default render options.
type RenderConfig struct {
	Formats  []string `toml:"formats"`
	Detailed bool     `toml:"detailed"`
	Engine   string   `toml:"engine"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	RedisDB   int    `toml:"redis_db"`
	Prefix    string `toml:"prefix"`
	TTL       string `toml:"ttl"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Projection: ProjectionConfig{ConnectorRelation: projection.RelationSameAsset},
		Hull: HullConfig{
			Padding:    hull.DefaultPadding,
			MinSize:    hull.DefaultMinSize,
			Palette:    append([]string(nil), hull.DefaultPalette...),
			NodeWidth:  160,
			NodeHeight: 60,
		},
		Render: RenderConfig{Formats: []string{"svg"}, Engine: "dot"},
		Server: ServerConfig{Addr: ":8080"},
		Cache: CacheConfig{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
			Prefix:    "assetmap:",
			TTL:       "24h",
		},
	}
}

// Load finds and loads the config file, or returns defaults if none is found.
// The second return value is the path that was read, or "".
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := LoadFromPath(path)
	return cfg, path, err
}

// LoadFromPath loads config from a specific path. Unset keys keep defaults.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	return Parse(data)
}

// Parse decodes TOML on top of the defaults and validates the result.
// Unknown keys are rejected so typos do not pass silently.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Hull.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "hull.padding must not be negative")
	}
	if c.Hull.MinSize < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "hull.min_size must not be negative")
	}
	if c.Hull.NodeWidth <= 0 || c.Hull.NodeHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "hull.node_width and hull.node_height must be positive")
	}
	for _, p := range c.Hull.Palette {
		if !hexColor.MatchString(p) {
			return errors.New(errors.ErrCodeInvalidConfig, "hull.palette entry %q is not a #RRGGBB color", p)
		}
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	return nil
}

// CacheTTL parses cache.ttl. An empty value means no expiry.
func (c *Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d < 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "cache.ttl %q is not a valid duration", c.Cache.TTL)
	}
	return d, nil
}

// HullOptions converts the hull section into engine options.
func (c *Config) HullOptions() hull.Options {
	padding := c.Hull.Padding
	if padding == 0 {
		// Options treats zero as "use default"; negative disables padding.
		padding = -1
	}
	return hull.Options{Padding: padding, MinSize: c.Hull.MinSize, Palette: c.Hull.Palette}
}
