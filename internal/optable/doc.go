// Package optable is the Operation Table Store. It owns the two kinds of
// entries read from a ".txt" resource:
//
//	Y3 = y3 y4        block-level: block name -> operation labels
//	y3 : x := y + 2   label-level: label -> computation
//
// Entries keep their resource order so that serialization is stable: all
// block-level lines, one blank line, then all label-level lines.
package optable
