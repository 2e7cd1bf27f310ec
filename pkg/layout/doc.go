// Package layout implements the dashboard layout engine: default layout
// generation, candidate normalization, corruption detection, and
// reconciliation of persisted layouts against changed item sets.
//
// # Data Model
//
// An Item is one positioned chart on the board, identified by a stable
// string id of the form "<categoryFolder>-<fileName>". A Layout is the
// ordered item list for one breakpoint tier; a Responsive maps every tier
// name to its Layout. Valid layouts satisfy two invariants:
//
//   - no two item rectangles intersect
//   - every item satisfies 0 ≤ x, x+w ≤ cols, y ≥ 0, w ≥ minW, h ≥ minH
//
// # Operations
//
//   - Generate / GenerateAll: default arrangements, either from a curated
//     template (widest tier) or from the hero-first auto heuristic
//   - Normalize: clamps and repacks an arbitrary candidate into a valid
//     layout, preserving identities and approximate visual order
//   - IsDegenerate: heuristic check for visually broken but geometrically
//     valid layouts (e.g. a wide viewport collapsed into one column)
//   - Patch: reconciles a persisted layout with the current item set,
//     falling back to full regeneration when the result is degenerate
//
// Every operation is a pure function: same inputs, same output. Callers own
// concurrency and persistence (see pkg/board).
package layout
