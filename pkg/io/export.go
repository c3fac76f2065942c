package io

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/assetmap/pkg/errors"
	"github.com/matzehuels/assetmap/pkg/graph"
)

// Write encodes a graph in the given format.
func Write(g graph.Graph, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return graph.WriteGraph(g, w)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&g); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode yaml")
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(g); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode toml")
		}
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported graph format %q", format)
}

// ExportFile writes a graph to path, inferring the format from its extension.
// The file is created with 0644 permissions.
func ExportFile(g graph.Graph, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := Write(g, f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
