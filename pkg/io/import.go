package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/assetmap/pkg/errors"
	"github.com/matzehuels/assetmap/pkg/graph"
)

// edgeNamespace scopes generated edge ids.
var edgeNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/assetmap/edge"))

// Read decodes a graph in the given format, assigns missing edge ids and
// validates identities. Read does not close r.
func Read(r io.Reader, format Format) (graph.Graph, error) {
	var g graph.Graph
	if err := decode(r, format, &g); err != nil {
		return graph.Graph{}, err
	}
	AssignEdgeIDs(&g)
	if err := g.Validate(); err != nil {
		return graph.Graph{}, err
	}
	return g, nil
}

// ImportFile reads a graph file, inferring the format from its extension.
func ImportFile(path string) (graph.Graph, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return graph.Graph{}, err
	}
	f, err := open(path)
	if err != nil {
		return graph.Graph{}, err
	}
	defer f.Close()

	g, err := Read(f, format)
	if err != nil {
		code := errors.GetCode(err)
		if code == "" {
			code = errors.ErrCodeInvalidFormat
		}
		return graph.Graph{}, errors.Wrap(code, err, "import %s", path)
	}
	return g, nil
}

// ImportBounds reads a bounds file, inferring the format from its extension.
func ImportBounds(path string) (graph.Layout, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return graph.Layout{}, err
	}
	if format == FormatJSON {
		return graph.ReadLayoutFile(path)
	}
	f, err := open(path)
	if err != nil {
		return graph.Layout{}, err
	}
	defer f.Close()

	var l graph.Layout
	if err := decode(f, format, &l); err != nil {
		return graph.Layout{}, err
	}
	for id, r := range l.Boxes {
		if r.MaxX < r.MinX || r.MaxY < r.MinY {
			return graph.Layout{}, errors.New(errors.ErrCodeInvalidInput, "box %q has inverted extents", id)
		}
	}
	return l, nil
}

// AssignEdgeIDs gives every edge without an id a name-based UUID. Repeated
// identical edges are numbered so their ids stay distinct.
func AssignEdgeIDs(g *graph.Graph) {
	seen := make(map[string]int)
	for i := range g.Edges {
		e := &g.Edges[i]
		if e.ID != "" {
			continue
		}
		key := fmt.Sprintf("%s\x00%s\x00%s", e.SourceID, e.TargetID, e.RelationType)
		n := seen[key]
		seen[key] = n + 1
		name := fmt.Sprintf("%s\x00%d", key, n)
		e.ID = uuid.NewSHA1(edgeNamespace, []byte(name)).String()
	}
}

func decode(r io.Reader, format Format, v any) error {
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(v)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(v)
		if err == io.EOF {
			err = nil
		}
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(v)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported graph format %q", format)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", format)
	}
	return nil
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	return f, nil
}
