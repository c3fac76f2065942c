// Package pipeline provides the load → project → hulls → render pipeline for
// assetmap.
//
// The CLI and the HTTP server both go through this package, so a graph
// produces the same element list and the same artifacts no matter which entry
// point asked for it.
//
// # Stages
//
//  1. Load: read a business graph from a JSON, YAML or TOML file
//  2. Project: fan out multi-system assets and route edges ([projection])
//  3. Hulls: compute group regions from a bounds source ([hull])
//  4. Render: produce DOT, SVG, PDF, PNG or a JSON element document
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "inventory.yaml",
//	    Formats: []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Stages can also be run on their own:
//
//	g, err := runner.Load(ctx, "inventory.yaml")
//	res := runner.Project(ctx, g, opts)
//	regions, engine := runner.Hulls(ctx, res, opts)
//	doc := pipeline.NewDocument(res.Elements(), regions, res.Warnings)
//	artifacts, err := runner.Render(ctx, doc, opts)
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/assetmap/pkg/graph"
	"github.com/matzehuels/assetmap/pkg/hull"
	"github.com/matzehuels/assetmap/pkg/projection"
	"github.com/matzehuels/assetmap/pkg/render"
	"github.com/matzehuels/assetmap/pkg/render/nodelink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultNodeWidth is the assumed rendered width of an instance that only
	// has a position hint.
	DefaultNodeWidth = 160.0

	// DefaultNodeHeight is the assumed rendered height of an instance that
	// only has a position hint.
	DefaultNodeHeight = 60.0

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// DefaultEngine is the Graphviz layout engine.
	DefaultEngine = string(nodelink.EngineDot)
)

// Format constants for output formats.
const (
	FormatSVG  = string(render.FormatSVG)
	FormatDOT  = string(render.FormatDOT)
	FormatPNG  = string(render.FormatPNG)
	FormatPDF  = string(render.FormatPDF)
	FormatJSON = string(render.FormatJSON)
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Input string `json:"input,omitempty"`

	// Projection options
	ConnectorRelation string `json:"connector_relation,omitempty"`

	// Hull options
	Hull       hull.Options  `json:"-"`
	Bounds     *graph.Layout `json:"bounds,omitempty"` // explicit live boxes by display id
	NodeWidth  float64       `json:"node_width,omitempty"`
	NodeHeight float64       `json:"node_height,omitempty"`
	Hidden     []string      `json:"hidden,omitempty"` // groups whose hulls are hidden

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	Pinned   bool     `json:"pinned,omitempty"`
	Engine   string   `json:"engine,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Refresh  bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the loaded business graph.
	Graph graph.Graph

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Projection is the projected display graph.
	Projection *projection.Result

	// Elements is the flat element list of the projection, without hulls.
	Elements []projection.Element

	// Regions are the hull regions computed from the bounds source.
	Regions []hull.Region

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount     int
	EdgeCount     int
	InstanceCount int
	RegionCount   int
	WarningCount  int
	LoadTime      time.Duration
	ProjectTime   time.Duration
	HullTime      time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !slices.Contains(render.AllFormats, render.Format(format)) {
		return fmt.Errorf("invalid format: %q (must be one of: svg, dot, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEngine checks that a Graphviz engine is supported.
func ValidateEngine(engine string) error {
	if _, err := nodelink.ParseEngine(engine); err != nil {
		return fmt.Errorf("invalid engine: %q (must be one of: dot, neato, fdp)", engine)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return fmt.Errorf("input is required")
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetHullDefaults sets default values for hull computation.
func (o *Options) SetHullDefaults() {
	if o.NodeWidth <= 0 {
		o.NodeWidth = DefaultNodeWidth
	}
	if o.NodeHeight <= 0 {
		o.NodeHeight = DefaultNodeHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for hulls and rendering.
func (o *Options) ValidateForRender() error {
	o.SetHullDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateEngine(o.Engine)
}

// ProjectorOptions returns the projector options for o.
func (o *Options) ProjectorOptions() []projection.Option {
	opts := []projection.Option{projection.WithConnectorRelation(o.ConnectorRelation)}
	if o.Logger != nil {
		opts = append(opts, projection.WithLogger(o.Logger))
	}
	return opts
}
