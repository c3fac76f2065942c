package projection

import (
	"fmt"
	"maps"

	"github.com/matzehuels/assetmap/pkg/errors"
	"github.com/matzehuels/assetmap/pkg/graph"
)

// ContextCrossSystem tags edges resolved by the fallback strategy.
const ContextCrossSystem = "cross_system"

// Strategy records which routing rule produced a routed edge.
type Strategy string

const (
	// StrategyDirect connects the only candidate on each side.
	StrategyDirect Strategy = "direct"
	// StrategyShared connects every candidate pair sharing a system.
	StrategyShared Strategy = "shared"
	// StrategyFallback connects the first candidate on each side.
	StrategyFallback Strategy = "fallback"
)

// RoutedEdge is a business edge bound to a concrete pair of instances.
type RoutedEdge struct {
	ID            string         `json:"id"`
	EdgeID        string         `json:"edge_id"`
	SourceID      string         `json:"source"`
	TargetID      string         `json:"target"`
	SystemContext string         `json:"system_context,omitempty"`
	Strategy      Strategy       `json:"strategy"`
	RelationType  string         `json:"relation_type,omitempty"`
	Properties    map[string]any `json:"properties,omitempty"`
}

// routeEdge resolves one business edge. It returns nil when either endpoint
// has no instance.
func (p *Projector) routeEdge(e *graph.Edge, res *Result) []*RoutedEdge {
	sources := p.instances.candidates(e.SourceID)
	targets := p.instances.candidates(e.TargetID)

	if len(sources) == 0 || len(targets) == 0 {
		missing := e.SourceID
		if len(sources) > 0 {
			missing = e.TargetID
		}
		p.logger.Warn("dropping edge with unknown endpoint", "edge", e.ID, "node", missing)
		res.Warnings = append(res.Warnings, Warning{
			Code:    errors.ErrCodeDanglingReference,
			EdgeID:  e.ID,
			NodeID:  missing,
			Message: fmt.Sprintf("edge %s references unknown node %s", e.ID, missing),
		})
		return nil
	}

	routed := func(id string, src, dst *Instance, ctx string, s Strategy) *RoutedEdge {
		if claimed := p.claim(id); claimed != id {
			p.logger.Debug("renamed colliding edge id", "edge", e.ID, "id", claimed)
			id = claimed
		}
		return &RoutedEdge{
			ID:            id,
			EdgeID:        e.ID,
			SourceID:      src.ID,
			TargetID:      dst.ID,
			SystemContext: ctx,
			Strategy:      s,
			RelationType:  e.RelationType,
			Properties:    maps.Clone(e.Properties),
		}
	}

	if len(sources) == 1 && len(targets) == 1 {
		ctx := sources[0].SystemContext
		if ctx == "" {
			ctx = targets[0].SystemContext
		}
		return []*RoutedEdge{routed(e.ID, sources[0], targets[0], ctx, StrategyDirect)}
	}

	type pair struct{ src, dst *Instance }
	var shared []pair
	for _, src := range sources {
		if src.SystemContext == "" {
			continue
		}
		for _, dst := range targets {
			if dst.SystemContext == src.SystemContext {
				shared = append(shared, pair{src, dst})
			}
		}
	}

	switch len(shared) {
	case 0:
		return []*RoutedEdge{routed(e.ID, sources[0], targets[0], ContextCrossSystem, StrategyFallback)}
	case 1:
		pr := shared[0]
		return []*RoutedEdge{routed(e.ID, pr.src, pr.dst, pr.src.SystemContext, StrategyShared)}
	}

	out := make([]*RoutedEdge, 0, len(shared))
	for i, pr := range shared {
		id := fmt.Sprintf("%s_%d", e.ID, i)
		out = append(out, routed(id, pr.src, pr.dst, pr.src.SystemContext, StrategyShared))
	}
	return out
}
