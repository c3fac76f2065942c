// Package hull computes group overlay regions over rendered display instances.
//
// Groups are cross-cutting tags that do not map onto containment. A hull is
// an axis-aligned box drawn behind the members of one group: the union of the
// members' rendered boxes, padded, then grown symmetrically to a minimum size
// so that single-member groups remain visible.
//
// [Compute] is the pure function. [Engine] wraps it with the state a drawing
// surface needs: the membership table, per-group visibility and registered
// observers. Every recomputation replaces the full region set; there is no
// incremental diffing, so callers must debounce drag events and only signal
// [Engine.MoveSettled] when a move completes.
//
// Colors are derived from the group name alone ([ColorFor]), so a group keeps
// its color across recomputations and sessions.
package hull
