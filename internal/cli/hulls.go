package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/assetmap/pkg/graph"
	"github.com/matzehuels/assetmap/pkg/hull"
	"github.com/matzehuels/assetmap/pkg/pipeline"
	"github.com/matzehuels/assetmap/pkg/projection"
)

// hullsFile is the JSON written by the hulls command.
type hullsFile struct {
	Regions  []hull.Region        `json:"regions"`
	Elements []projection.Element `json:"elements"`
}

// hullsCommand creates the hulls command.
func (c *CLI) hullsCommand() *cobra.Command {
	var (
		flags        pipelineFlags
		output       string
		exportBounds string
	)

	cmd := &cobra.Command{
		Use:   "hulls [graph]",
		Short: "Compute group hull regions",
		Long: `Compute one padded region per visible group.

Each region covers the rendered boxes of every instance whose asset belongs to
the group. Boxes come from --bounds (a file keyed by display id, as reported by
a drawing surface) or default to a fixed-size box around node position hints.
Instances without either are skipped.

Regions are printed as a table; -o also writes them as JSON together with the
hull elements a surface would draw. --export-bounds writes the boxes that were
used as a bounds file, ready to edit and pass back with --bounds.`,
		Example: `  assetmap hulls inventory.yaml
  assetmap hulls inventory.yaml --bounds boxes.json --hide dmz -o hulls.json
  assetmap hulls inventory.yaml --export-bounds boxes.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runHulls(cmd.Context(), args[0], opts, output, exportBounds)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write regions as JSON (\"-\" for stdout)")
	cmd.Flags().StringVar(&exportBounds, "export-bounds", "", "write the instance boxes used as a JSON bounds file")
	flags.registerProjection(cmd)
	flags.registerHull(cmd)

	return cmd
}

func (c *CLI) runHulls(ctx context.Context, input string, opts pipeline.Options, output, exportBounds string) error {
	runner := pipeline.NewRunner(nil, nil, c.Logger)

	g, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}
	res := runner.Project(ctx, g, opts)
	regions, _ := runner.Hulls(ctx, res, opts)

	if exportBounds != "" {
		if err := graph.WriteLayoutFile(pipeline.LayoutFor(res, opts), exportBounds); err != nil {
			return fmt.Errorf("write bounds %s: %w", exportBounds, err)
		}
	}

	if output != "" {
		out := hullsFile{Regions: regions, Elements: make([]projection.Element, 0, len(regions))}
		if out.Regions == nil {
			out.Regions = []hull.Region{}
		}
		for _, r := range regions {
			out.Elements = append(out.Elements, r.Element())
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("encode regions: %w", err)
		}
		if err := writeFile(output, append(data, '\n')); err != nil {
			return err
		}
		if output == "-" {
			return nil
		}
	}

	printWarnings(res.Warnings)
	printRegions(regions)
	if output != "" {
		printFile(output)
	}
	if exportBounds != "" {
		printFile(exportBounds)
	}
	return nil
}
