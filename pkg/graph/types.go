package graph

import (
	"slices"
	"strings"

	"github.com/matzehuels/assetmap/pkg/errors"
)

// =============================================================================
// Graph - Business Graph
// =============================================================================

// Graph is the business graph handed over by the query layer.
// Node and edge identities are caller-assigned and stable across calls.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes" toml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges" toml:"edges"`
}

// =============================================================================
// Node - Asset
// =============================================================================

// Position is an optional manual placement hint.
type Position struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
}

// Node is a business asset.
type Node struct {
	ID         string         `json:"id" yaml:"id" toml:"id"`
	Title      string         `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	AssetType  string         `json:"asset_type,omitempty" yaml:"asset_type,omitempty" toml:"asset_type,omitempty"`
	Systems    []string       `json:"systems,omitempty" yaml:"systems,omitempty" toml:"systems,omitempty"`
	Groups     []string       `json:"groups,omitempty" yaml:"groups,omitempty" toml:"groups,omitempty"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty" toml:"properties,omitempty"`
	Position   *Position      `json:"position,omitempty" yaml:"position,omitempty" toml:"position,omitempty"`
}

// DisplayLabel returns the title if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if t := strings.TrimSpace(n.Title); t != "" {
		return t
	}
	return n.ID
}

// SystemSet returns the node's systems as an ordered set.
func (n *Node) SystemSet() []string { return OrderedSet(n.Systems) }

// GroupSet returns the node's groups as an ordered set.
func (n *Node) GroupSet() []string { return OrderedSet(n.Groups) }

// IsMultiSystem reports whether the node belongs to more than one system.
func (n *Node) IsMultiSystem() bool { return len(n.SystemSet()) > 1 }

// Validate checks the node identity and its system and group names.
func (n *Node) Validate() error {
	if err := errors.ValidateNodeID(n.ID); err != nil {
		return err
	}
	for _, name := range append(n.SystemSet(), n.GroupSet()...) {
		if err := errors.ValidateName(name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidGraph, err, "node %s", n.ID)
		}
	}
	return nil
}

// =============================================================================
// Edge - Relationship
// =============================================================================

// Edge is a typed relationship between two business nodes.
// SourceID and TargetID always reference business ids, never display ids.
type Edge struct {
	ID           string         `json:"id" yaml:"id" toml:"id"`
	SourceID     string         `json:"source" yaml:"source" toml:"source"`
	TargetID     string         `json:"target" yaml:"target" toml:"target"`
	RelationType string         `json:"relation_type,omitempty" yaml:"relation_type,omitempty" toml:"relation_type,omitempty"`
	Properties   map[string]any `json:"properties,omitempty" yaml:"properties,omitempty" toml:"properties,omitempty"`
}

// Validate checks the edge identity and endpoints.
// It does not check that the endpoints exist; projection tolerates dangling edges.
func (e *Edge) Validate() error {
	if err := errors.ValidateNodeID(e.ID); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGraph, err, "edge id")
	}
	if err := errors.ValidateNodeID(e.SourceID); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGraph, err, "edge %s source", e.ID)
	}
	if err := errors.ValidateNodeID(e.TargetID); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGraph, err, "edge %s target", e.ID)
	}
	return nil
}

// =============================================================================
// Graph Helpers
// =============================================================================

// Validate checks every node and edge identity and rejects duplicate node ids.
func (g *Graph) Validate() error {
	seen := make(map[string]bool, len(g.Nodes))
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if err := n.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidGraph, err, "node %d", i)
		}
		if seen[n.ID] {
			return errors.New(errors.ErrCodeDuplicateNode, "duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
	}
	for i := range g.Edges {
		if err := g.Edges[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Node returns the first node with the given id.
func (g *Graph) Node(id string) (*Node, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// Systems returns every distinct system name in first-seen order.
func (g *Graph) Systems() []string {
	var all []string
	for i := range g.Nodes {
		all = append(all, g.Nodes[i].Systems...)
	}
	return OrderedSet(all)
}

// Groups returns every distinct group name in first-seen order.
func (g *Graph) Groups() []string {
	var all []string
	for i := range g.Nodes {
		all = append(all, g.Nodes[i].Groups...)
	}
	return OrderedSet(all)
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.Edges) }

// OrderedSet trims values, drops blanks and keeps the first occurrence of each.
// The result is never aliased with the input.
func OrderedSet(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// copyProperties creates a shallow copy of a property map to avoid mutation.
func copyProperties(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	result := make(map[string]any, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}

// Clone returns a deep-enough copy: slices, property maps and positions are copied.
func (g *Graph) Clone() Graph {
	out := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: make([]Edge, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		n.Systems = slices.Clone(n.Systems)
		n.Groups = slices.Clone(n.Groups)
		n.Properties = copyProperties(n.Properties)
		if n.Position != nil {
			p := *n.Position
			n.Position = &p
		}
		out.Nodes[i] = n
	}
	for i, e := range g.Edges {
		e.Properties = copyProperties(e.Properties)
		out.Edges[i] = e
	}
	return out
}
