package optimizer

import (
	"github.com/vk/gsaopt/internal/graph"
)

// PathFrom returns the maximal straight-line chain starting at b. The chain
// follows primary exits while the next block has exactly one predecessor, is
// not a decision and is not terminal. A chain starting at a decision or a
// terminal block is that block alone.
func (o *Optimizer) PathFrom(b *graph.Block) []*graph.Block {
	path := []*graph.Block{b}
	if !b.IsStraightLine() {
		return path
	}

	seen := map[int]bool{b.ID: true}
	for cur := b; ; {
		next, ok := o.g.Block(cur.Exit1)
		if !ok || seen[next.ID] || !next.IsStraightLine() || len(o.g.Predecessors(next.ID)) != 1 {
			return path
		}
		path = append(path, next)
		seen[next.ID] = true
		cur = next
	}
}

// ChildrenOf returns the live successors of b, primary exit first.
func (o *Optimizer) ChildrenOf(b *graph.Block) []*graph.Block {
	return o.g.Children(b)
}

// PredecessorsOf returns every block with an exit pointing at b.
func (o *Optimizer) PredecessorsOf(b *graph.Block) []*graph.Block {
	return o.g.Predecessors(b.ID)
}

// pathLabels returns the operation labels along a path, in path order.
func (o *Optimizer) pathLabels(path []*graph.Block) []string {
	var labels []string
	for _, b := range path {
		labels = append(labels, o.labelsOf(b)...)
	}
	return labels
}
