package projection

import (
	"slices"

	"github.com/matzehuels/assetmap/pkg/graph"
)

// Kind is the element category understood by a node-link surface.
type Kind string

const (
	KindCompound Kind = "compound"
	KindNode     Kind = "node"
	KindEdge     Kind = "edge"
)

// Data is the element payload. OriginalNodeID and OriginalEdgeID trace an
// element back to the business graph.
type Data struct {
	OriginalNodeID      string         `json:"originalNodeId,omitempty"`
	OriginalEdgeID      string         `json:"originalEdgeId,omitempty"`
	SystemName          string         `json:"systemName,omitempty"`
	SystemContext       string         `json:"systemContext,omitempty"`
	AssetType           string         `json:"assetType,omitempty"`
	Groups              []string       `json:"groups,omitempty"`
	IsMultiSystemAsset  bool           `json:"isMultiSystemAsset,omitempty"`
	MultiSystemGroupKey string         `json:"multiSystemGroupKey,omitempty"`
	RelationType        string         `json:"relationType,omitempty"`
	Strategy            Strategy       `json:"strategy,omitempty"`
	Properties          map[string]any `json:"properties,omitempty"`

	// Hull overlay fields.
	Hull        bool        `json:"isHull,omitempty"`
	GroupName   string      `json:"groupName,omitempty"`
	MemberCount int         `json:"memberCount,omitempty"`
	Box         *graph.Rect `json:"box,omitempty"`
}

// Element is one entry of the flat list handed to the drawing surface.
type Element struct {
	Kind     Kind            `json:"kind"`
	Role     Role            `json:"role"`
	ID       string          `json:"id"`
	Label    string          `json:"label,omitempty"`
	Parent   string          `json:"parent,omitempty"`
	Source   string          `json:"source,omitempty"`
	Target   string          `json:"target,omitempty"`
	Position *graph.Position `json:"position,omitempty"`
	Data     Data            `json:"data"`
	Style    Style           `json:"style"`
}

// IsEdge reports whether the element connects two nodes.
func (e *Element) IsEdge() bool { return e.Kind == KindEdge }

// Elements flattens the result: compounds first, then instances, connectors
// and routed edges. Parents always precede their children.
func (r *Result) Elements() []Element {
	out := make([]Element, 0, len(r.Compounds)+len(r.Instances)+len(r.Connectors)+len(r.Edges))
	for _, c := range r.Compounds {
		out = append(out, c.Element())
	}
	for _, inst := range r.Instances {
		out = append(out, inst.Element())
	}
	for _, c := range r.Connectors {
		out = append(out, c.Element())
	}
	for _, e := range r.Edges {
		out = append(out, e.Element())
	}
	return out
}

// Element converts the compound into a containment element.
func (c Compound) Element() Element {
	return Element{
		Kind:  KindCompound,
		Role:  RoleCompound,
		ID:    c.ID,
		Label: c.SystemName,
		Data:  Data{SystemName: c.SystemName},
		Style: StyleFor(RoleCompound),
	}
}

// Element converts the instance into a leaf node element.
func (i *Instance) Element() Element {
	role := RoleInstance
	if i.MultiSystem {
		role = RoleMultiSystem
	}
	var pos *graph.Position
	if i.Position != nil {
		p := *i.Position
		pos = &p
	}
	return Element{
		Kind:     KindNode,
		Role:     role,
		ID:       i.ID,
		Label:    i.Label,
		Parent:   i.ParentID,
		Position: pos,
		Data: Data{
			OriginalNodeID:      i.BusinessID,
			SystemContext:       i.SystemContext,
			AssetType:           i.AssetType,
			Groups:              slices.Clone(i.Groups),
			IsMultiSystemAsset:  i.MultiSystem,
			MultiSystemGroupKey: i.GroupKey,
			Properties:          i.Properties,
		},
		Style: StyleFor(role),
	}
}

// Element converts the connector into an undirected dashed edge element.
func (c *Connector) Element() Element {
	return Element{
		Kind:   KindEdge,
		Role:   RoleConnector,
		ID:     c.ID,
		Source: c.SourceID,
		Target: c.TargetID,
		Data: Data{
			OriginalNodeID:      c.GroupKey,
			MultiSystemGroupKey: c.GroupKey,
			RelationType:        c.RelationType,
		},
		Style: StyleFor(RoleConnector),
	}
}

// Element converts the routed edge into an edge element.
func (e *RoutedEdge) Element() Element {
	role := RoleEdge
	if e.Strategy == StrategyFallback {
		role = RoleCrossSystem
	}
	return Element{
		Kind:   KindEdge,
		Role:   role,
		ID:     e.ID,
		Label:  e.RelationType,
		Source: e.SourceID,
		Target: e.TargetID,
		Data: Data{
			OriginalEdgeID: e.EdgeID,
			SystemContext:  e.SystemContext,
			RelationType:   e.RelationType,
			Strategy:       e.Strategy,
			Properties:     e.Properties,
		},
		Style: StyleFor(role),
	}
}
