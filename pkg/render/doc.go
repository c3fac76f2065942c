// Package render turns projected asset maps into files.
//
// The [nodelink] subpackage builds Graphviz DOT from a projection element
// list and renders it to SVG in-process. This package holds the pieces shared
// by every renderer: the output [Format] list and SVG conversion to PDF and
// PNG through the external rsvg-convert tool (from librsvg).
//
//	dot := nodelink.ToDOT(res.Elements(), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.EngineDot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [nodelink]: github.com/matzehuels/assetmap/pkg/render/nodelink
package render
