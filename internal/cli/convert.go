package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/assetmap/pkg/io"
	"github.com/matzehuels/assetmap/pkg/pipeline"
)

// convertCommand creates the convert command, which re-encodes a graph file.
func (c *CLI) convertCommand() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "convert [graph] [output]",
		Short: "Convert a graph file between JSON, YAML and TOML",
		Long: `Convert a graph file between JSON, YAML and TOML.

The output encoding follows the output file extension. Use "-" as output with
--to to write to stdout. Edges without an id get a generated one, so converted
files are stable across runs.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd.Context(), args[0], args[1], to)
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "output encoding when writing to stdout (json, yaml, toml)")

	return cmd
}

func (c *CLI) runConvert(ctx context.Context, input, output, to string) error {
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	defer runner.Close()

	g, err := runner.Load(ctx, input)
	if err != nil {
		return err
	}

	if output == "-" {
		format, err := pkgio.ParseFormat(to)
		if err != nil {
			return err
		}
		return pkgio.Write(g, os.Stdout, format)
	}

	if err := pkgio.ExportFile(g, output); err != nil {
		return err
	}
	printSuccess("Converted %d node(s), %d edge(s)", g.NodeCount(), g.EdgeCount())
	printFile(output)
	return nil
}
