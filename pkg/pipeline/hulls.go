package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/assetmap/pkg/graph"
	"github.com/matzehuels/assetmap/pkg/hull"
	"github.com/matzehuels/assetmap/pkg/observability"
	"github.com/matzehuels/assetmap/pkg/projection"
)

// BoundsFor returns the bounds source for the instances of res.
//
// An explicit box from opts.Bounds wins. Otherwise an instance with a position
// hint is assumed to be a NodeWidth x NodeHeight box centered on the hint.
// Instances with neither are unplaced and contribute to no hull.
func BoundsFor(res *projection.Result, opts Options) hull.BoundsFunc {
	opts.SetHullDefaults()
	hints := make(map[string]graph.Position, len(res.Instances))
	for _, inst := range res.Instances {
		if inst.Position != nil {
			hints[inst.ID] = *inst.Position
		}
	}
	explicit := opts.Bounds
	w, h := opts.NodeWidth, opts.NodeHeight
	return func(id string) (graph.Rect, bool) {
		if explicit != nil {
			if r, ok := explicit.Bounds(id); ok {
				return r, true
			}
		}
		if p, ok := hints[id]; ok {
			return graph.RectAround(p, w, h), true
		}
		return graph.Rect{}, false
	}
}

// LayoutFor resolves BoundsFor for every instance of res into a bounds file
// layout. Unplaced instances are left out.
func LayoutFor(res *projection.Result, opts Options) graph.Layout {
	bounds := BoundsFor(res, opts)
	var l graph.Layout
	for _, inst := range res.Instances {
		if r, ok := bounds(inst.ID); ok {
			l.Set(inst.ID, r)
		}
	}
	return l
}

// NewHullEngine builds a hull engine over the instances of res, with the
// groups in opts.Hidden switched off. The engine has not rendered yet.
func NewHullEngine(res *projection.Result, opts Options) *hull.Engine {
	e := hull.NewEngine(BoundsFor(res, opts), opts.Hull)
	for _, g := range opts.Hidden {
		e.SetVisible(g, false)
	}
	e.SetMembers(hull.MembersFrom(res))
	return e
}

// Hulls computes the initial hull regions for res and returns the engine so
// callers can keep reacting to visibility and move events.
func (r *Runner) Hulls(ctx context.Context, res *projection.Result, opts Options) ([]hull.Region, *hull.Engine) {
	r.applyLogger(&opts)
	start := time.Now()
	e := NewHullEngine(res, opts)
	regions := e.Render()
	observability.Pipeline().OnHullsComplete(ctx, len(regions), time.Since(start))
	opts.Logger.Debug("computed hulls", "regions", len(regions))
	return regions, e
}
