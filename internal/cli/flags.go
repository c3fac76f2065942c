package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/assetmap/pkg/io"
	"github.com/matzehuels/assetmap/pkg/pipeline"
)

// pipelineFlags collects the flags shared by project, hulls, render and
// groups. Values only override the config file when set on the command line.
type pipelineFlags struct {
	connector string
	bounds    string
	hide      []string
	formats   string
	detailed  bool
	pinned    bool
	engine    string
	scale     float64
	refresh   bool
}

func (f *pipelineFlags) registerProjection(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.connector, "connector-relation", "", "relation type tag of connector edges (default: SAME_ASSET)")
}

func (f *pipelineFlags) registerHull(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.bounds, "bounds", "", "rendered boxes by display id (json, yaml or toml)")
	cmd.Flags().StringSliceVar(&f.hide, "hide", nil, "groups whose hulls are hidden (repeatable or comma-separated)")
}

func (f *pipelineFlags) registerRender(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), dot, png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "show asset type and groups in node labels")
	cmd.Flags().BoolVar(&f.pinned, "pinned", false, "pin nodes at their position hints (neato and fdp)")
	cmd.Flags().StringVar(&f.engine, "engine", "", "graphviz engine: dot (default), neato, fdp")
	cmd.Flags().Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-render even when artifacts are cached")
}

// apply layers changed flags on top of opts.
func (f *pipelineFlags) apply(cmd *cobra.Command, opts *pipeline.Options) error {
	flags := cmd.Flags()
	if flags.Changed("connector-relation") {
		opts.ConnectorRelation = f.connector
	}
	if flags.Changed("bounds") {
		layout, err := pkgio.ImportBounds(f.bounds)
		if err != nil {
			return fmt.Errorf("load bounds %s: %w", f.bounds, err)
		}
		opts.Bounds = &layout
	}
	if flags.Changed("hide") {
		opts.Hidden = f.hide
	}
	if flags.Changed("format") {
		formats, err := parseFormats(f.formats)
		if err != nil {
			return err
		}
		opts.Formats = formats
	}
	if flags.Changed("detailed") {
		opts.Detailed = f.detailed
	}
	if flags.Changed("pinned") {
		opts.Pinned = f.pinned
	}
	if flags.Changed("engine") {
		if err := pipeline.ValidateEngine(f.engine); err != nil {
			return err
		}
		opts.Engine = f.engine
	}
	if flags.Changed("scale") {
		opts.Scale = f.scale
	}
	if flags.Changed("refresh") {
		opts.Refresh = f.refresh
	}
	return nil
}

// options returns the config-seeded pipeline options with flags applied.
func (c *CLI) options(cmd *cobra.Command, f *pipelineFlags) (pipeline.Options, error) {
	opts := c.pipelineOptions()
	if err := f.apply(cmd, &opts); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}
