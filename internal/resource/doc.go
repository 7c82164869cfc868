// Package resource locates, reads and packages the text resources of a run.
//
// A run takes a graph resource (.gsa), an operation table (.txt) and an
// optional micro-code listing (.mic). The first two are required. The
// micro-code listing is carried through to the output unchanged.
package resource
