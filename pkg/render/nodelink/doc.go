// Package nodelink renders projected asset maps as Graphviz node-link diagrams.
//
// # Overview
//
// [ToDOT] translates a projection element list into DOT: every system
// compound becomes a cluster subgraph holding its display instances, routed
// edges become arrows and same-asset connectors become dashed undirected
// lines. The declarative style descriptor on each element is mapped onto
// Graphviz attributes here and nowhere else.
//
// Hull regions are overlays over live geometry; Graphviz clusters cannot
// overlap, so hull elements are not drawn. Their groups are written to each
// instance's class attribute instead, which lets an SVG consumer highlight a
// group.
//
// # Usage
//
//	dot := nodelink.ToDOT(res.Elements(), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.EngineDot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot, nodelink.EngineDot)
//	png, err := nodelink.RenderPNG(ctx, dot, nodelink.EngineDot, 2.0)
//
// # Options
//
//   - Detailed: node labels include asset type, system and properties
//   - Pinned: instances with a position hint get a fixed pos attribute,
//     honored by the neato and fdp engines
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
// PDF conversion requires librsvg (rsvg-convert); PNG falls back to Graphviz
// when librsvg is missing.
package nodelink
