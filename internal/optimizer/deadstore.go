package optimizer

import (
	"context"
	"slices"

	"github.com/vk/gsaopt/internal/ctxlog"
	"github.com/vk/gsaopt/internal/graph"
)

// EliminateDeadStores removes writes that a later block of the same path
// overwrites before any block of the path reads them. Operations within a
// block happen together: they read the values left by earlier blocks. It
// returns the path without dropped blocks and whether anything was removed.
func (o *Optimizer) EliminateDeadStores(ctx context.Context, path []*graph.Block) ([]*graph.Block, bool, error) {
	logger := ctxlog.FromContext(ctx)
	removed := false

	// Variables written later on the path and not read in between.
	overwritten := make(map[string]struct{})

	for i := len(path) - 1; i >= 0; i-- {
		b := path[i]
		if !o.hasOperations(b) {
			continue
		}
		ops, err := o.t.Operations(b.Name)
		if err != nil {
			return path, removed, err
		}

		var kept, dead []string
		for _, op := range ops {
			if _, ok := overwritten[op.Produced]; ok {
				dead = append(dead, op.Label)
				continue
			}
			kept = append(kept, op.Label)
		}
		for _, op := range ops {
			if !slices.Contains(dead, op.Label) {
				overwritten[op.Produced] = struct{}{}
			}
		}
		for _, op := range ops {
			if slices.Contains(dead, op.Label) {
				continue
			}
			for _, v := range op.Referenced {
				delete(overwritten, v)
			}
		}

		if len(dead) == 0 {
			continue
		}
		logger.Debug("Removing dead stores.", "block", b.Name, "labels", dead)
		removed = true
		o.stats.DeadStores += len(dead)

		if len(kept) == 0 {
			if err := o.dropBlock(ctx, b); err != nil {
				return path, removed, err
			}
			if _, ok := o.g.Block(b.ID); !ok {
				path = slices.Delete(path, i, i+1)
			}
		} else if err := o.t.SetLabels(b.Name, kept); err != nil {
			return path, removed, err
		}

		for _, label := range dead {
			if !o.t.IsReferenced(label) {
				o.t.DeleteOperation(label)
			}
		}
	}

	return path, removed, nil
}
