package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/assetmap/pkg/pipeline"
	"github.com/matzehuels/assetmap/pkg/render"
)

// renderCommand creates the render command: load, project, compute hulls and
// write one artifact per requested format.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags   pipelineFlags
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "render [graph]",
		Short: "Render an asset graph to SVG, DOT, PNG, PDF or JSON",
		Long: `Render an asset graph to one or more output formats.

The graph is projected into per-system instances, cross-system connectors are
added and group hulls are computed from --bounds or from node position hints.
DOT, SVG, PNG and PDF draw the display graph through Graphviz; JSON writes the
element list including hull regions for a browser surface.

Results are cached, keyed by the projected document and render options.`,
		Example: `  assetmap render inventory.yaml
  assetmap render inventory.json -f svg,json -o out/diagram
  assetmap render inventory.toml --engine neato --pinned --hide pci`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			opts.Input = args[0]
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.registerProjection(cmd)
	flags.registerHull(cmd)
	flags.registerRender(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", filepath.Base(opts.Input)))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	printWarnings(result.Projection.Warnings)
	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     opts.Input,
		output:    output,
	}); err != nil {
		return err
	}
	printStats(result.Stats, result.CacheInfo.RenderHit)
	return nil
}

// =============================================================================
// Artifact Output
// =============================================================================

const elementsExt = ".elements.json"

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// artifactExt returns the file suffix of a format. JSON gets a distinct suffix
// so it never overwrites a JSON input graph.
func artifactExt(format string) string {
	if f := render.Format(format); f != render.FormatJSON {
		return f.Ext()
	}
	return elementsExt
}

// writeArtifacts writes rendered artifacts. A single format goes to output as
// given ("-" for stdout); several formats share a base path and get their
// format extension.
func writeArtifacts(p artifactWriteParams) error {
	if len(p.formats) == 1 && p.output != "" {
		data := p.artifacts[p.formats[0]]
		if err := writeFile(p.output, data); err != nil {
			return err
		}
		if p.output != "-" {
			printSuccess("Rendered %s", p.formats[0])
			printFile(p.output)
		}
		return nil
	}

	base := basePath(p.output, p.input)
	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		path := base + artifactExt(format)
		if err := writeFile(path, p.artifacts[format]); err != nil {
			return err
		}
		paths = append(paths, path)
	}

	printSuccess("Rendered %d artifact(s)", len(paths))
	for _, path := range paths {
		printFile(path)
	}
	return nil
}
