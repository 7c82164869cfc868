// Package grammar holds the fixed-format line grammars of the two text
// resources: the block graph (".gsa") and the operation table (".txt").
//
// Parsing is pure. A line either yields a record or fails with
// ErrMalformedGraphLine / ErrMalformedTableLine; there is no recovery mode.
package grammar
