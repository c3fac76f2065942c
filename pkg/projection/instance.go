package projection

import (
	"maps"
	"slices"

	"github.com/matzehuels/assetmap/pkg/graph"
)

// RelationSameAsset is the relation type carried by connector edges.
const RelationSameAsset = "SAME_ASSET_MULTI_SYSTEM"

// Instance is one visual occurrence of a business node, scoped to at most
// one system.
type Instance struct {
	ID         string `json:"id"`
	BusinessID string `json:"business_id"`
	Label      string `json:"label"`
	AssetType  string `json:"asset_type,omitempty"`

	// SystemContext is empty for nodes without systems.
	SystemContext string `json:"system_context,omitempty"`
	// ParentID is the compound id, or empty when the instance is top-level.
	ParentID string `json:"parent_id,omitempty"`

	MultiSystem bool `json:"multi_system"`
	// GroupKey is the business id for multi-system instances, otherwise empty.
	GroupKey string `json:"group_key,omitempty"`

	Groups     []string        `json:"groups,omitempty"`
	Properties map[string]any  `json:"properties,omitempty"`
	Position   *graph.Position `json:"position,omitempty"`
}

// Connector links two instances of the same multi-system asset.
type Connector struct {
	ID           string `json:"id"`
	SourceID     string `json:"source"`
	TargetID     string `json:"target"`
	GroupKey     string `json:"group_key"`
	RelationType string `json:"relation_type"`
}

// instanceKey identifies an instance by business id and system context.
type instanceKey struct {
	businessID string
	system     string
}

// instanceTable is the per-call businessId <-> instance mapping.
type instanceTable struct {
	byKey      map[instanceKey]*Instance
	byBusiness map[string][]*Instance
}

func newInstanceTable() *instanceTable {
	return &instanceTable{
		byKey:      make(map[instanceKey]*Instance),
		byBusiness: make(map[string][]*Instance),
	}
}

func (t *instanceTable) add(inst *Instance) {
	t.byKey[instanceKey{inst.BusinessID, inst.SystemContext}] = inst
	t.byBusiness[inst.BusinessID] = append(t.byBusiness[inst.BusinessID], inst)
}

// candidates returns the instances of a business node in projection order.
func (t *instanceTable) candidates(businessID string) []*Instance {
	return t.byBusiness[businessID]
}

func (t *instanceTable) get(businessID, system string) (*Instance, bool) {
	inst, ok := t.byKey[instanceKey{businessID, system}]
	return inst, ok
}

// projectNode creates the instances for one business node and, for
// multi-system nodes, the connectors between them.
func (p *Projector) projectNode(n *graph.Node, systems []string, compounds *compoundTable, res *Result) {
	groups := n.GroupSet()

	newInstance := func(system string, multi bool) *Instance {
		inst := &Instance{
			ID:            p.nextID("node"),
			BusinessID:    n.ID,
			Label:         n.DisplayLabel(),
			AssetType:     n.AssetType,
			SystemContext: system,
			ParentID:      compounds.lookup(system),
			MultiSystem:   multi,
			Groups:        slices.Clone(groups),
			Properties:    maps.Clone(n.Properties),
		}
		if multi {
			inst.GroupKey = n.ID
		}
		if n.Position != nil {
			pos := *n.Position
			inst.Position = &pos
		}
		return inst
	}

	if len(systems) <= 1 {
		var system string
		if len(systems) == 1 {
			system = systems[0]
		}
		inst := newInstance(system, false)
		p.instances.add(inst)
		res.Instances = append(res.Instances, inst)
		return
	}

	siblings := make([]*Instance, 0, len(systems))
	for _, system := range systems {
		inst := newInstance(system, true)
		p.instances.add(inst)
		res.Instances = append(res.Instances, inst)
		siblings = append(siblings, inst)
	}

	for i := 0; i < len(siblings); i++ {
		for j := i + 1; j < len(siblings); j++ {
			res.Connectors = append(res.Connectors, &Connector{
				ID:           p.nextID("connector"),
				SourceID:     siblings[i].ID,
				TargetID:     siblings[j].ID,
				GroupKey:     n.ID,
				RelationType: p.connectorRelation,
			})
		}
	}
}
