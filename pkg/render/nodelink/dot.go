package nodelink

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/assetmap/pkg/projection"
)

// Options configures node-link diagram generation.
type Options struct {
	// Detailed adds asset type, system context and properties to labels.
	Detailed bool
	// Pinned writes position hints as fixed pos attributes.
	Pinned bool
}

// ToDOT converts a projection element list to Graphviz DOT.
// Elements must be ordered parents first, as [projection.Result.Elements]
// returns them. Hull elements are skipped.
func ToDOT(elements []projection.Element, opts Options) string {
	var (
		clusters []projection.Element
		children = make(map[string][]projection.Element)
		topLevel []projection.Element
		edges    []projection.Element
	)
	for _, el := range elements {
		switch {
		case el.Data.Hull:
		case el.Kind == projection.KindCompound:
			clusters = append(clusters, el)
		case el.Kind == projection.KindEdge:
			edges = append(edges, el)
		case el.Parent != "":
			children[el.Parent] = append(children[el.Parent], el)
		default:
			topLevel = append(topLevel, el)
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")

	for _, c := range clusters {
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "  subgraph %q {\n", "cluster_"+c.ID)
		fmt.Fprintf(&buf, "    label=%q;\n", c.Label)
		for _, a := range clusterAttrs(c.Style) {
			fmt.Fprintf(&buf, "    %s;\n", a)
		}
		for _, n := range children[c.ID] {
			fmt.Fprintf(&buf, "    %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts), ", "))
		}
		buf.WriteString("  }\n")
		delete(children, c.ID)
	}

	// Children of unknown parents are drawn at top level.
	for _, parent := range slices.Sorted(maps.Keys(children)) {
		topLevel = append(topLevel, children[parent]...)
	}
	if len(topLevel) > 0 {
		buf.WriteString("\n")
	}
	for _, n := range topLevel {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts), ", "))
	}

	if len(edges) > 0 {
		buf.WriteString("\n")
	}
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(edgeAttrs(e), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(el projection.Element, detailed bool) string {
	if !detailed {
		return el.Label
	}
	var parts []string
	if el.Data.AssetType != "" {
		parts = append(parts, "type: "+el.Data.AssetType)
	}
	if el.Data.SystemContext != "" {
		parts = append(parts, "system: "+el.Data.SystemContext)
	}
	if len(el.Data.Groups) > 0 {
		parts = append(parts, "groups: "+strings.Join(el.Data.Groups, ", "))
	}
	for _, k := range slices.Sorted(maps.Keys(el.Data.Properties)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, el.Data.Properties[k]))
	}
	if len(parts) == 0 {
		return el.Label
	}
	return el.Label + "\n" + strings.Join(parts, "\n")
}

func nodeAttrs(el projection.Element, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(el, opts.Detailed))}
	attrs = append(attrs, styleAttrs(el.Style)...)
	if len(el.Data.Groups) > 0 {
		attrs = append(attrs, fmt.Sprintf("class=%q", groupClasses(el.Data.Groups)))
	}
	if el.Data.OriginalNodeID != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", el.Data.OriginalNodeID))
	}
	if opts.Pinned && el.Position != nil {
		// Graphviz y grows upwards.
		attrs = append(attrs, fmt.Sprintf("pos=\"%g,%g!\"", el.Position.X, -el.Position.Y))
	}
	return attrs
}

func edgeAttrs(el projection.Element) []string {
	var attrs []string
	if el.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", el.Label))
	}
	if el.Style.Line != "" {
		attrs = append(attrs, fmt.Sprintf("style=%s", lineStyle(el.Style.Line)))
	}
	if el.Style.Stroke != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", el.Style.Stroke))
	}
	if !el.Style.Directed {
		attrs = append(attrs, "dir=none")
	}
	if el.Role == projection.RoleConnector {
		attrs = append(attrs, "constraint=false")
	}
	return attrs
}

func clusterAttrs(s projection.Style) []string {
	attrs := []string{"style=\"rounded,filled\""}
	if s.Fill != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", s.Fill))
	}
	if s.Stroke != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", s.Stroke))
	}
	return attrs
}

// styleAttrs maps a node style descriptor onto Graphviz attributes.
func styleAttrs(s projection.Style) []string {
	var attrs []string
	styles := []string{"filled"}
	if s.Shape == projection.ShapeRoundRect {
		styles = append(styles, "rounded")
	}
	switch s.Line {
	case projection.LineDashed, projection.LineDotted:
		styles = append(styles, string(s.Line))
	case projection.LineDouble:
		attrs = append(attrs, "peripheries=2")
	}
	attrs = append(attrs, fmt.Sprintf("style=%q", strings.Join(styles, ",")))
	if s.Fill != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", s.Fill))
	}
	if s.Stroke != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", s.Stroke))
	}
	return attrs
}

func lineStyle(l projection.LineStyle) string {
	switch l {
	case projection.LineDashed, projection.LineDotted:
		return string(l)
	}
	return "solid"
}

// groupClasses turns group names into SVG class tokens.
func groupClasses(groups []string) string {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		out = append(out, "group-"+projection.Sanitize(g))
	}
	return strings.Join(out, " ")
}
