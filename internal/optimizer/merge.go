package optimizer

import (
	"context"
	"fmt"
	"slices"

	"github.com/vk/gsaopt/internal/ctxlog"
	"github.com/vk/gsaopt/internal/graph"
)

// MergePath splices mergeable neighbours of a straight-line path, scanning
// from the last pair to the first. It returns the shortened path and whether
// any merge happened.
func (o *Optimizer) MergePath(ctx context.Context, path []*graph.Block) ([]*graph.Block, bool, error) {
	logger := ctxlog.FromContext(ctx)
	merged := false

	for i := len(path) - 1; i > 0; i-- {
		prev, curr := path[i-1], path[i]
		if !o.hasOperations(prev) || !o.hasOperations(curr) {
			continue
		}

		conflict, err := o.interference(prev, curr)
		if err != nil {
			return path, merged, err
		}
		if conflict != "" {
			logger.Debug("Blocks interfere, not merging.", "previous", prev.Name, "current", curr.Name, "variable", conflict)
			continue
		}

		if err := o.mergeInto(prev, curr); err != nil {
			return path, merged, err
		}
		logger.Debug("Merged blocks.", "into", prev.Name, "removed", curr.Name, "removed_id", curr.ID)
		path = slices.Delete(path, i, i+1)
		merged = true
		o.stats.Merges++
	}

	return path, merged, nil
}

// interference returns a variable that curr writes and prev reads or writes,
// or "" if the two blocks can be merged.
func (o *Optimizer) interference(prev, curr *graph.Block) (string, error) {
	prevOps, err := o.t.Operations(prev.Name)
	if err != nil {
		return "", err
	}
	currOps, err := o.t.Operations(curr.Name)
	if err != nil {
		return "", err
	}

	touched := make(map[string]struct{})
	for _, op := range prevOps {
		touched[op.Produced] = struct{}{}
		for _, v := range op.Referenced {
			touched[v] = struct{}{}
		}
	}
	for _, op := range currOps {
		if _, ok := touched[op.Produced]; ok {
			return op.Produced, nil
		}
	}
	return "", nil
}

// mergeInto moves curr's labels into prev and splices curr out of the graph.
// curr's only predecessor is prev, so prev inherits curr's exit.
func (o *Optimizer) mergeInto(prev, curr *graph.Block) error {
	prevLabels, _ := o.t.Labels(prev.Name)
	currLabels, _ := o.t.Labels(curr.Name)

	labels := append(prevLabels, currLabels...)
	slices.Sort(labels)
	if err := o.t.SetLabels(prev.Name, labels); err != nil {
		return err
	}
	o.t.DeleteBlock(curr.Name)

	if _, err := o.g.Splice(curr.ID); err != nil {
		return fmt.Errorf("merging %s into %s: %w", curr.Name, prev.Name, err)
	}
	return nil
}
