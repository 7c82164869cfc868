// Package graph is the Graph Store: it owns the blocks of the control-flow
// graph read from a ".gsa" resource.
//
// # Why Graph Package Exists
//
// The text resource conflates identity (position in a list of lines) with
// value (the id field), so every lookup is a linear scan of the lines. The
// Graph type separates the two:
//   - **Identity:** blocks are kept in an arena keyed by id for O(1) lookup
//   - **Order:** a separate slice of ids preserves text order for output
//     and for the canonical renaming pass
//   - **Kind:** each block is tagged Decision, Assignment, Terminal or Marker
//     once, at parse time, instead of inspecting its name repeatedly
//
// # Mutation
//
// Every structural change goes through a small set of operations that keep
// edges consistent with ids:
//
//	Splice(id)            remove a straight-line block, predecessors skip it
//	Redirect(from, to)    rewrite every edge pointing at from
//	RenumberFrom(id, k)   shift every id >= id upward by k, edges included
//	InsertBefore(id, b)   place a new block in text order
//	Compact()             renumber ids densely in text order
//
// RenumberFrom is atomic: ids and edges are rewritten through one mapping, so
// no id can be shifted twice.
//
// # Lifecycle
//
//  1. **Parsed** once from the resource lines (Parse)
//  2. **Mutated** in place by the optimizer
//  3. **Serialized** back to lines (Lines)
//
// A Graph is not safe for concurrent use. It is owned by one optimization run.
package graph
