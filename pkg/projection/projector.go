package projection

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/assetmap/pkg/errors"
	"github.com/matzehuels/assetmap/pkg/graph"
)

// =============================================================================
// Result
// =============================================================================

// Warning describes an input element that was skipped.
type Warning struct {
	Code    errors.Code `json:"code"`
	EdgeID  string      `json:"edge_id,omitempty"`
	NodeID  string      `json:"node_id,omitempty"`
	Message string      `json:"message"`
}

// Result is the output of one projection call.
// Slices are in creation order, which is deterministic for a given input.
type Result struct {
	Compounds  []Compound    `json:"compounds"`
	Instances  []*Instance   `json:"instances"`
	Connectors []*Connector  `json:"connectors"`
	Edges      []*RoutedEdge `json:"edges"`
	Warnings   []Warning     `json:"warnings,omitempty"`

	index *instanceTable
}

// InstancesOf returns every instance of a business node.
func (r *Result) InstancesOf(businessID string) []*Instance {
	if r.index == nil {
		return nil
	}
	return r.index.candidates(businessID)
}

// Instance returns the instance of a business node in a system context.
// Use "" for nodes without systems.
func (r *Result) Instance(businessID, system string) (*Instance, bool) {
	if r.index == nil {
		return nil, false
	}
	return r.index.get(businessID, system)
}

// ConnectorsOf returns the connectors of a multi-system business node.
func (r *Result) ConnectorsOf(businessID string) []*Connector {
	var out []*Connector
	for _, c := range r.Connectors {
		if c.GroupKey == businessID {
			out = append(out, c)
		}
	}
	return out
}

// =============================================================================
// Projector
// =============================================================================

// Option configures a Projector.
type Option func(*Projector)

// WithLogger sets the logger used for dropped-element warnings.
func WithLogger(l *log.Logger) Option {
	return func(p *Projector) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithConnectorRelation overrides the relation type tag of connector edges.
func WithConnectorRelation(tag string) Option {
	return func(p *Projector) {
		if tag != "" {
			p.connectorRelation = tag
		}
	}
}

// Projector converts business graphs into display elements.
// It owns the id counter and mapping tables of the call in progress, so a
// Projector is not safe for concurrent use.
type Projector struct {
	logger            *log.Logger
	connectorRelation string

	seq       int
	issued    map[string]bool
	instances *instanceTable
}

// New creates a Projector.
func New(opts ...Option) *Projector {
	p := &Projector{
		logger:            log.NewWithOptions(io.Discard, log.Options{}),
		connectorRelation: RelationSameAsset,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Project runs the compound, instance and routing stages over g.
// An empty graph yields an empty result.
func (p *Projector) Project(g graph.Graph) *Result {
	p.seq = 0
	p.issued = make(map[string]bool)
	p.instances = newInstanceTable()
	defer func() { p.instances, p.issued = nil, nil }()

	res := &Result{}

	// Duplicate ids keep their first occurrence.
	nodes := make([]*graph.Node, 0, len(g.Nodes))
	systems := make([][]string, 0, len(g.Nodes))
	seen := make(map[string]bool, len(g.Nodes))
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if seen[n.ID] {
			p.logger.Warn("skipping duplicate node", "node", n.ID)
			res.Warnings = append(res.Warnings, Warning{
				Code:    errors.ErrCodeDuplicateNode,
				NodeID:  n.ID,
				Message: fmt.Sprintf("duplicate node id %s", n.ID),
			})
			continue
		}
		seen[n.ID] = true
		nodes = append(nodes, n)
		systems = append(systems, n.SystemSet())
	}

	compounds := newCompoundTable()
	for _, sys := range systems {
		for _, s := range sys {
			compounds.add(s)
		}
	}
	res.Compounds = compounds.order
	for _, c := range res.Compounds {
		p.issued[c.ID] = true
	}

	for i, n := range nodes {
		p.projectNode(n, systems[i], compounds, res)
	}

	for i := range g.Edges {
		res.Edges = append(res.Edges, p.routeEdge(&g.Edges[i], res)...)
	}

	res.index = p.instances
	p.logger.Debug("projected graph",
		"compounds", len(res.Compounds),
		"instances", len(res.Instances),
		"connectors", len(res.Connectors),
		"edges", len(res.Edges),
		"warnings", len(res.Warnings))
	return res
}

// Project is a convenience wrapper around a fresh Projector.
func Project(g graph.Graph, opts ...Option) *Result {
	return New(opts...).Project(g)
}

func (p *Projector) nextID(prefix string) string {
	p.seq++
	return p.claim(fmt.Sprintf("%s_%d", prefix, p.seq))
}

// claim reserves id for one element of the current call. An id that is
// already taken gets the first free "_<n>" suffix.
func (p *Projector) claim(id string) string {
	out := id
	for n := 1; p.issued[out]; n++ {
		out = fmt.Sprintf("%s_%d", id, n)
	}
	p.issued[out] = true
	return out
}
