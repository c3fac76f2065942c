package hull

import (
	"maps"
	"slices"
	"sync"
)

// Trigger names the event that caused a recomputation.
type Trigger string

const (
	TriggerInitial    Trigger = "initial"
	TriggerVisibility Trigger = "visibility"
	TriggerMove       Trigger = "move"
	TriggerMembers    Trigger = "members"
)

// Update is delivered to observers after every recomputation. Regions is the
// complete replacement set; observers drop whatever they drew before.
type Update struct {
	Trigger Trigger
	Regions []Region
}

// Observer receives hull updates.
type Observer func(Update)

// Engine keeps hull regions in sync with a rendered scene.
//
// The engine never debounces. Each trigger method recomputes synchronously
// and notifies observers in registration order before returning.
type Engine struct {
	mu        sync.Mutex
	opts      Options
	bounds    BoundsFunc
	members   []Member
	visible   map[string]bool
	regions   []Region
	observers map[int]Observer
	nextObs   int
}

// NewEngine creates an engine reading live boxes through bounds.
// bounds is called with the engine locked and must not call back into it.
func NewEngine(bounds BoundsFunc, opts Options) *Engine {
	return &Engine{
		opts:      opts.withDefaults(),
		bounds:    bounds,
		visible:   make(map[string]bool),
		observers: make(map[int]Observer),
	}
}

// Subscribe registers an observer and returns a function that removes it.
func (e *Engine) Subscribe(o Observer) (unsubscribe func()) {
	e.mu.Lock()
	id := e.nextObs
	e.nextObs++
	e.observers[id] = o
	e.mu.Unlock()
	return func() {
		e.mu.Lock()
		delete(e.observers, id)
		e.mu.Unlock()
	}
}

// SetMembers replaces the membership table and recomputes.
func (e *Engine) SetMembers(members []Member) []Region {
	e.mu.Lock()
	e.members = slices.Clone(members)
	e.mu.Unlock()
	return e.recompute(TriggerMembers)
}

// Render performs the initial computation after the surface placed elements.
func (e *Engine) Render() []Region {
	return e.recompute(TriggerInitial)
}

// SetVisible toggles a group and recomputes.
func (e *Engine) SetVisible(group string, visible bool) []Region {
	e.mu.Lock()
	e.visible[group] = visible
	e.mu.Unlock()
	return e.recompute(TriggerVisibility)
}

// Visible reports whether a group is shown. Groups default to visible.
func (e *Engine) Visible(group string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.visible[group]
	return !ok || v
}

// MoveSettled recomputes after a node move completed.
func (e *Engine) MoveSettled() []Region {
	return e.recompute(TriggerMove)
}

// Regions returns the regions from the last recomputation.
func (e *Engine) Regions() []Region {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.regions)
}

func (e *Engine) recompute(t Trigger) []Region {
	e.mu.Lock()
	regions := Compute(e.members, e.bounds, e.visible, e.opts)
	e.regions = regions
	ids := slices.Sorted(maps.Keys(e.observers))
	observers := make([]Observer, 0, len(ids))
	for _, id := range ids {
		observers = append(observers, e.observers[id])
	}
	e.mu.Unlock()

	for _, o := range observers {
		o(Update{Trigger: t, Regions: slices.Clone(regions)})
	}
	return slices.Clone(regions)
}
