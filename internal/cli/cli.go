// Package cli implements the assetmap command-line interface.
//
// This package provides commands for projecting asset graphs into display
// graphs, computing group hulls, rendering diagrams, browsing group overlays
// interactively and serving the HTTP API. The CLI is built using cobra and
// logs through charmbracelet/log.
//
// # Commands
//
//   - project: Write the projected element list of a graph file
//   - hulls: Compute group hull regions
//   - render: Generate DOT, SVG, PDF, PNG or JSON output
//   - groups: Toggle group hulls interactively
//   - convert: Re-encode a graph file as JSON, YAML or TOML
//   - serve: Run the HTTP API
//   - cache: Manage the artifact cache
//
// # Configuration
//
// Defaults come from the config file found by [config.FindConfigPath] or
// given with --config. Flags override file values.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/assetmap/pkg/buildinfo"
	"github.com/matzehuels/assetmap/pkg/cache"
	"github.com/matzehuels/assetmap/pkg/config"
	"github.com/matzehuels/assetmap/pkg/pipeline"
	"github.com/matzehuels/assetmap/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "assetmap"

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

	// Config is loaded before any subcommand runs.
	Config     *config.Config
	configPath string
}

// New creates a new CLI instance with a default logger and default settings.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Assetmap projects IT asset graphs into renderable diagrams",
		Long: `Assetmap turns an inventory of IT assets and their relationships into a
diagram. Assets that belong to several systems are drawn once per system and
linked with dashed connectors; groups are drawn as padded hulls around their
members.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: search standard locations)")

	// Register all subcommands
	root.AddCommand(c.projectCommand())
	root.AddCommand(c.hullsCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.groupsCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file given with --config, or the first one
// found in the standard locations.
func (c *CLI) loadConfig() error {
	if c.configPath != "" {
		cfg, err := config.LoadFromPath(c.configPath)
		if err != nil {
			return err
		}
		c.Config = cfg
		c.Logger.Debug("loaded config", "path", c.configPath)
		return nil
	}

	cfg, path, err := config.Load()
	if err != nil {
		return err
	}
	c.Config = cfg
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	ttl, err := c.Config.CacheTTL()
	if err != nil {
		return nil, err
	}
	// Keys are scoped by version so an upgrade never serves stale renderings.
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	runner.TTL = ttl
	return runner, nil
}

// newCache opens the configured backend. An unreachable Redis degrades to no
// caching with a warning.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}

	switch c.Config.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := c.newRedisCache(ctx)
		if errors.Is(err, cache.ErrUnavailable) {
			c.Logger.Warn("redis unavailable, caching disabled", "addr", c.Config.Cache.RedisAddr)
			return cache.NewNullCache(), nil
		}
		if err != nil {
			return nil, err
		}
		return rc, nil
	default:
		dir, err := c.cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

func (c *CLI) newRedisCache(ctx context.Context) (*cache.RedisCache, error) {
	return cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:     c.Config.Cache.RedisAddr,
		Password: os.Getenv("ASSETMAP_REDIS_PASSWORD"),
		DB:       c.Config.Cache.RedisDB,
		Prefix:   c.Config.Cache.Prefix,
	})
}

// cacheDir returns the configured file cache directory, or the per-user
// default.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions returns pipeline options seeded from the config file.
func (c *CLI) pipelineOptions() pipeline.Options {
	cfg := c.Config
	return pipeline.Options{
		ConnectorRelation: cfg.Projection.ConnectorRelation,
		Hull:              cfg.HullOptions(),
		NodeWidth:         cfg.Hull.NodeWidth,
		NodeHeight:        cfg.Hull.NodeHeight,
		Formats:           append([]string(nil), cfg.Render.Formats...),
		Detailed:          cfg.Render.Detailed,
		Engine:            cfg.Render.Engine,
		Logger:            c.Logger,
	}
}

// parseFormats parses a comma-separated format string, defaulting to svg.
func parseFormats(s string) ([]string, error) {
	formats, err := render.ParseFormats(s)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(formats))
	for i, f := range formats {
		out[i] = string(f)
	}
	return out, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .dot, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns where a single-file command writes its result.
func outputPath(output, input, suffix string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}

// writeFile writes data to path, or to stdout when path is "-".
func writeFile(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
