package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/assetmap/pkg/hull"
	"github.com/matzehuels/assetmap/pkg/projection"
	"github.com/matzehuels/assetmap/pkg/render/nodelink"
)

// Document is the JSON artifact: the element list a browser surface loads,
// with hull overlays appended as leaf nodes.
type Document struct {
	Elements []projection.Element `json:"elements"`
	Warnings []projection.Warning `json:"warnings,omitempty"`
}

// NewDocument combines projected elements and hull regions.
func NewDocument(elements []projection.Element, regions []hull.Region, warnings []projection.Warning) Document {
	out := make([]projection.Element, 0, len(elements)+len(regions))
	out = append(out, elements...)
	for _, r := range regions {
		out = append(out, r.Element())
	}
	return Document{Elements: out, Warnings: warnings}
}

// RenderArtifacts generates output artifacts in the requested formats.
//
// Every Graphviz format starts from the same DOT source. Hull regions only
// appear in the JSON document; Graphviz cannot draw overlapping clusters, so
// the diagram marks group membership with class attributes instead.
func RenderArtifacts(ctx context.Context, doc Document, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	engine, _ := nodelink.ParseEngine(opts.Engine)
	dot := nodelink.ToDOT(doc.Elements, nodelink.Options{Detailed: opts.Detailed, Pinned: opts.Pinned})

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot, engine)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, engine, opts.Scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot, engine)
		case FormatJSON:
			data, err = json.MarshalIndent(doc, "", "  ")
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
