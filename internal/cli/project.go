package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/assetmap/pkg/pipeline"
	"github.com/matzehuels/assetmap/pkg/projection"
)

// projectCommand creates the project command, which writes the flat element
// list a node-link surface draws.
func (c *CLI) projectCommand() *cobra.Command {
	var (
		flags   pipelineFlags
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "project [graph]",
		Short: "Project an asset graph into display elements",
		Long: `Project an asset graph into display elements.

Every system becomes a compound container. Assets listed in one system are
placed inside it; assets listed in several systems get one instance per system
linked by connector edges. Business edges are routed between instances, and
elements the projector had to skip are reported as warnings.

The result is written as JSON (default: <graph>.elements.json, "-" for stdout).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runProject(cmd.Context(), args[0], opts, outputPath(output, args[0], elementsExt), noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (\"-\" for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.registerProjection(cmd)

	return cmd
}

func (c *CLI) runProject(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	g, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}

	doc, cached, err := runner.ProjectWithCacheInfo(ctx, g, opts)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode elements: %w", err)
	}
	if err := writeFile(output, append(data, '\n')); err != nil {
		return err
	}
	if output == "-" {
		return nil
	}

	stats := pipeline.Stats{NodeCount: g.NodeCount()}
	for _, el := range doc.Elements {
		if el.Role == projection.RoleInstance || el.Role == projection.RoleMultiSystem {
			stats.InstanceCount++
		}
	}
	prog.done(fmt.Sprintf("Projected %s", input))

	printWarnings(doc.Warnings)
	printSuccess("Projected %d elements", len(doc.Elements))
	printFile(output)
	printStats(stats, cached)
	printNewline()
	printNextStep("Render it", fmt.Sprintf("%s render %s", appName, input))
	return nil
}
