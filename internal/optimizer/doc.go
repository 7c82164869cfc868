// Package optimizer rewrites a block graph and its operation table until a
// fixed point is reached, then renames assignment blocks canonically.
//
// The driver walks the graph depth-first from the entry block, collecting
// straight-line paths. At every decision, terminal or join it runs
// block merging on the collected path; at every two-way decision it hoists
// operations shared by both arms into new blocks placed before the decision.
// Any structural change invalidates the walk, so the driver starts over from
// the entry block. A walk that changes nothing is the fixed point.
package optimizer
