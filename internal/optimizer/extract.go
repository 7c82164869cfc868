package optimizer

import (
	"context"
	"fmt"
	"slices"

	"github.com/vk/gsaopt/internal/ctxlog"
	"github.com/vk/gsaopt/internal/graph"
)

// ExtractCommon hoists the operation labels shared by both arms of a two-way
// decision into new blocks placed directly before the decision. Labels are
// matched by identity, not by computation. It reports whether the graph
// changed.
func (o *Optimizer) ExtractCommon(ctx context.Context, decision *graph.Block) (bool, error) {
	logger := ctxlog.FromContext(ctx)

	children := o.ChildrenOf(decision)
	if len(children) != 2 {
		return false, nil
	}
	for _, c := range children {
		if c.ID == decision.ID || len(o.PredecessorsOf(c)) != 1 {
			// An arm that is also reached from elsewhere does not belong
			// to this decision alone.
			return false, nil
		}
	}

	path1 := o.PathFrom(children[0])
	path2 := o.PathFrom(children[1])
	shared := intersect(o.pathLabels(path1), o.pathLabels(path2))
	if len(shared) == 0 {
		return false, nil
	}

	preds := o.PredecessorsOf(decision)
	if len(preds) > 1 {
		logger.Debug("Decision has several predecessors, not extracting.", "decision", decision.Name, "predecessors", len(preds))
		return false, nil
	}
	if len(preds) == 0 && o.g.Entry().ID != decision.ID {
		return false, nil
	}

	// Free ids decision.ID .. decision.ID+k-1 for the hoisted blocks.
	k := len(shared)
	first := decision.ID
	o.g.RenumberFrom(first, k)
	o.g.Redirect(decision.ID, first)

	for i, label := range shared {
		exit := first + i + 1
		if i == k-1 {
			exit = decision.ID
		}
		b := &graph.Block{ID: first + i, Name: o.nextName(), Exit1: exit}
		if err := o.g.InsertBefore(decision.ID, b); err != nil {
			return true, fmt.Errorf("hoisting %s: %w", label, err)
		}
		if err := o.t.AddBlock(b.Name, []string{label}); err != nil {
			return true, fmt.Errorf("hoisting %s: %w", label, err)
		}
		logger.Debug("Hoisted shared operation.", "label", label, "block", b.Name, "id", b.ID, "decision", decision.Name)
	}

	if err := o.stripLabels(ctx, slices.Concat(path1, path2), shared); err != nil {
		return true, err
	}

	o.stats.Extractions++
	return true, nil
}

// stripLabels removes the hoisted labels from every block of the arms and
// drops blocks left without operations.
func (o *Optimizer) stripLabels(ctx context.Context, blocks []*graph.Block, hoisted []string) error {
	done := make(map[int]bool, len(blocks))
	for _, b := range blocks {
		if done[b.ID] || !o.hasOperations(b) {
			continue
		}
		done[b.ID] = true

		labels, _ := o.t.Labels(b.Name)
		kept := slices.DeleteFunc(slices.Clone(labels), func(l string) bool {
			return slices.Contains(hoisted, l)
		})
		if len(kept) == len(labels) {
			continue
		}
		if len(kept) == 0 {
			if err := o.dropBlock(ctx, b); err != nil {
				return err
			}
			continue
		}
		if err := o.t.SetLabels(b.Name, kept); err != nil {
			return err
		}
	}
	return nil
}

// intersect returns the distinct labels of a that also occur in b, in the
// order they first appear in a.
func intersect(a, b []string) []string {
	var out []string
	for _, l := range a {
		if slices.Contains(b, l) && !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	return out
}
