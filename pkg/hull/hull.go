package hull

import (
	"hash/fnv"
	"strings"

	"github.com/matzehuels/assetmap/pkg/graph"
	"github.com/matzehuels/assetmap/pkg/projection"
)

const (
	// DefaultPadding is added on every side of the member union.
	DefaultPadding = 60.0
	// DefaultMinSize is the minimum width and height of a region.
	DefaultMinSize = 120.0

	idPrefix = "hull_"
)

// DefaultPalette is the fixed color list hulls are hashed into.
var DefaultPalette = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4",
	"#FFEAA7", "#DDA0DD", "#98D8C8", "#F7DC6F",
}

// Options tunes region geometry and coloring.
type Options struct {
	Padding float64
	MinSize float64
	Palette []string
}

// DefaultOptions returns the stock tunables.
func DefaultOptions() Options {
	return Options{Padding: DefaultPadding, MinSize: DefaultMinSize, Palette: DefaultPalette}
}

// withDefaults fills zero fields. A negative padding disables padding.
func (o Options) withDefaults() Options {
	if o.Padding < 0 {
		o.Padding = 0
	} else if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	if o.MinSize <= 0 {
		o.MinSize = DefaultMinSize
	}
	if len(o.Palette) == 0 {
		o.Palette = DefaultPalette
	}
	return o
}

// Member is a display instance and the groups it belongs to.
type Member struct {
	ID     string
	Groups []string
}

// BoundsFunc returns the current rendered box of a display instance.
// It reports false for instances the surface has not placed.
type BoundsFunc func(id string) (graph.Rect, bool)

// Region is the overlay for one group.
type Region struct {
	ID          string     `json:"id"`
	GroupName   string     `json:"group_name"`
	Box         graph.Rect `json:"box"`
	MemberCount int        `json:"member_count"`
	MemberIDs   []string   `json:"member_ids"`
	Color       string     `json:"color"`
}

// ID returns the display id of the hull for a group name.
func ID(group string) string {
	return idPrefix + projection.Sanitize(group)
}

// MembersFrom collects hull members from a projection result. Compounds and
// edges never carry groups, so only instances are returned.
func MembersFrom(res *projection.Result) []Member {
	out := make([]Member, 0, len(res.Instances))
	for _, inst := range res.Instances {
		out = append(out, Member{ID: inst.ID, Groups: inst.Groups})
	}
	return out
}

// Compute returns one region per visible group with at least one placed
// member, ordered by first appearance of the group among members.
//
// Groups whose sanitized ids collide share one region named after the first
// group seen. Members without a box are skipped, as are hull ids. visible may be nil; groups
// absent from it are visible.
func Compute(members []Member, bounds BoundsFunc, visible map[string]bool, opts Options) []Region {
	opts = opts.withDefaults()

	type acc struct {
		region *Region
		seen   map[string]bool
	}
	var order []*acc
	byID := make(map[string]*acc)

	for _, m := range members {
		if strings.HasPrefix(m.ID, idPrefix) {
			continue
		}
		box, ok := bounds(m.ID)
		if !ok {
			continue
		}
		for _, g := range graph.OrderedSet(m.Groups) {
			if v, set := visible[g]; set && !v {
				continue
			}
			id := ID(g)
			a, ok := byID[id]
			if !ok {
				a = &acc{
					region: &Region{ID: id, GroupName: g, Box: box, Color: ColorFor(g, opts.Palette)},
					seen:   make(map[string]bool),
				}
				byID[id] = a
				order = append(order, a)
			}
			if a.seen[m.ID] {
				continue
			}
			a.seen[m.ID] = true
			a.region.Box = a.region.Box.Union(box)
			a.region.MemberIDs = append(a.region.MemberIDs, m.ID)
		}
	}

	out := make([]Region, 0, len(order))
	for _, a := range order {
		r := *a.region
		r.MemberCount = len(r.MemberIDs)
		r.Box = r.Box.Expand(opts.Padding).EnsureMin(opts.MinSize, opts.MinSize)
		out = append(out, r)
	}
	return out
}

// ColorFor hashes a group name into the palette.
func ColorFor(group string, palette []string) string {
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	h := fnv.New32a()
	h.Write([]byte(group))
	return palette[h.Sum32()%uint32(len(palette))]
}

// Element converts the region into a non-interactive leaf node element.
func (r Region) Element() projection.Element {
	box := r.Box
	center := box.Center()
	style := projection.StyleFor(projection.RoleHull)
	style.Fill = r.Color
	style.Stroke = r.Color
	return projection.Element{
		Kind:     projection.KindNode,
		Role:     projection.RoleHull,
		ID:       r.ID,
		Label:    r.GroupName,
		Position: &center,
		Data: projection.Data{
			Hull:        true,
			GroupName:   r.GroupName,
			MemberCount: r.MemberCount,
			Box:         &box,
		},
		Style: style,
	}
}
