// Package projection turns a business graph into a renderable element list.
//
// A node-link surface only supports single-parent containment, while a
// business node may belong to several systems at once. The projector resolves
// that mismatch in three forward stages:
//
//  1. Compound builder: one containment node per distinct system name, in
//     order of first encounter ([Compound]).
//  2. Instance projector: one display instance per (node, system) pair for
//     multi-system nodes, a single instance otherwise ([Instance]), plus one
//     same-asset connector per unordered pair of sibling instances
//     ([Connector]).
//  3. Edge router: each business edge is mapped onto concrete instance pairs
//     ([RoutedEdge]) using the direct, shared-context and cross-system
//     fallback strategies, in that order.
//
// # Usage
//
//	p := projection.New(projection.WithLogger(logger))
//	res := p.Project(g)
//	for _, el := range res.Elements() {
//	    // hand el to the drawing surface
//	}
//
// # Determinism
//
// Display ids are drawn from a counter owned by the [Projector] and reset at
// the start of every [Projector.Project] call, so projecting the same input
// twice yields identical ids. A Projector must not be shared between
// goroutines; create one per caller or use the package-level [Project].
//
// # Failure Model
//
// Nothing here fails. Edges that reference unknown nodes are dropped and
// duplicate node ids keep their first occurrence; both are reported as
// [Warning] values on the [Result] and logged at warn level.
package projection
