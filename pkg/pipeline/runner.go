package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/assetmap/pkg/cache"
	"github.com/matzehuels/assetmap/pkg/graph"
	pkgio "github.com/matzehuels/assetmap/pkg/io"
	"github.com/matzehuels/assetmap/pkg/observability"
	"github.com/matzehuels/assetmap/pkg/projection"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options; every call creates its own Projector.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-entry-type default TTLs when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → project → hulls → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	loadStart := time.Now()
	g, err := r.Load(ctx, opts.Input)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	loadTime := time.Since(loadStart)

	r.Logger.Info("loaded graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", loadTime)

	result, err := r.ExecuteGraph(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = loadTime
	return result, nil
}

// ExecuteGraph runs the project → hulls → render stages on a graph that is
// already in memory.
func (r *Runner) ExecuteGraph(ctx context.Context, g graph.Graph, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Graph:     g,
		Artifacts: make(map[string][]byte),
	}
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	if graphData, err := graph.MarshalGraph(g); err == nil {
		result.GraphHash = cache.Hash(graphData)
	}

	// Stage 1: Project
	projectStart := time.Now()
	res := r.Project(ctx, g, opts)
	result.Projection = res
	result.Elements = res.Elements()
	result.Stats.ProjectTime = time.Since(projectStart)
	result.Stats.InstanceCount = len(res.Instances)
	result.Stats.WarningCount = len(res.Warnings)

	r.Logger.Info("projected graph",
		"compounds", len(res.Compounds),
		"instances", len(res.Instances),
		"connectors", len(res.Connectors),
		"edges", len(res.Edges),
		"duration", result.Stats.ProjectTime)

	// Stage 2: Hulls
	hullStart := time.Now()
	regions, _ := r.Hulls(ctx, res, opts)
	result.Regions = regions
	result.Stats.HullTime = time.Since(hullStart)
	result.Stats.RegionCount = len(regions)

	// Stage 3: Render
	renderStart := time.Now()
	doc := NewDocument(result.Elements, regions, res.Warnings)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads and validates a business graph file.
func (r *Runner) Load(ctx context.Context, path string) (graph.Graph, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()
	g, err := pkgio.ImportFile(path)
	hooks.OnLoadComplete(ctx, path, g.NodeCount(), time.Since(start), err)
	return g, err
}

// Project projects g with a fresh Projector.
func (r *Runner) Project(ctx context.Context, g graph.Graph, opts Options) *projection.Result {
	r.applyLogger(&opts)
	hooks := observability.Pipeline()
	hooks.OnProjectStart(ctx, g.NodeCount(), g.EdgeCount())
	start := time.Now()
	res := projection.New(opts.ProjectorOptions()...).Project(g)
	hooks.OnProjectComplete(ctx, len(res.Instances), len(res.Edges), len(res.Warnings), time.Since(start))
	return res
}

// ProjectWithCacheInfo returns the element document of g without hulls,
// using the projection cache, and reports whether it was a cache hit.
func (r *Runner) ProjectWithCacheInfo(ctx context.Context, g graph.Graph, opts Options) (Document, bool, error) {
	r.applyLogger(&opts)

	graphData, err := graph.MarshalGraph(g)
	if err != nil {
		return Document{}, false, fmt.Errorf("serialize graph for cache key: %w", err)
	}
	cacheKey := r.Keyer.ProjectionKey(cache.Hash(graphData), cache.ProjectionKeyOpts{
		ConnectorRelation: opts.ConnectorRelation,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var doc Document
			if err := json.Unmarshal(data, &doc); err == nil {
				observability.Cache().OnCacheHit(ctx, "projection")
				return doc, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "projection")
	}

	res := r.Project(ctx, g, opts)
	doc := NewDocument(res.Elements(), nil, res.Warnings)

	if data, err := json.Marshal(doc); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.ProjectionTTL)); err == nil {
			observability.Cache().OnCacheSet(ctx, "projection", len(data))
		} else {
			r.Logger.Debug("cache write failed", "key", cacheKey, "error", err)
		}
	}

	return doc, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc Document, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	docHash, err := cache.HashJSON(doc)
	if err != nil {
		return nil, false, fmt.Errorf("hash document for cache key: %w", err)
	}

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(docHash, opts.artifactKeyOpts(format)))
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := RenderArtifacts(ctx, doc, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(docHash, opts.artifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.ArtifactTTL)); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, doc Document, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// artifactKeyOpts returns the options that change the artifact of format.
func (o *Options) artifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Detailed: o.Detailed, Pinned: o.Pinned}
	switch format {
	case FormatSVG, FormatPDF, FormatPNG:
		k.Engine = o.Engine
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
