package optimizer

import (
	"context"
	"fmt"

	"github.com/vk/gsaopt/internal/ctxlog"
	"github.com/vk/gsaopt/internal/graph"
)

// walk is the state of one pass from the entry block.
type walk struct {
	path    []*graph.Block
	visited map[int]bool
}

// Run walks the graph from the entry block, restarting after every change,
// until a whole walk changes nothing.
func (o *Optimizer) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	for {
		if o.opts.MaxRestarts > 0 && o.stats.Walks >= o.opts.MaxRestarts {
			return fmt.Errorf("%w after %d walks", ErrNoFixedPoint, o.stats.Walks)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		entry := o.g.Entry()
		if entry == nil {
			logger.Debug("Graph is empty, nothing to optimize.")
			return nil
		}

		o.stats.Walks++
		changed, err := o.stepInto(ctx, &walk{visited: make(map[int]bool)}, entry)
		if err != nil {
			return fmt.Errorf("walk %d: %w", o.stats.Walks, err)
		}
		if !changed {
			break
		}
		logger.Debug("Graph changed, restarting walk.", "walk", o.stats.Walks)
	}

	logger.Debug("Fixed point reached.",
		"walks", o.stats.Walks,
		"merges", o.stats.Merges,
		"extractions", o.stats.Extractions,
		"dead_stores", o.stats.DeadStores,
	)
	if err := o.validate(); err != nil {
		return fmt.Errorf("inconsistent stores after optimization: %w", err)
	}
	return nil
}

// stepInto visits b and its descendants. It returns true as soon as an
// optimizer changed the graph; the caller must then abandon the walk.
func (o *Optimizer) stepInto(ctx context.Context, w *walk, b *graph.Block) (bool, error) {
	boundary := b.Kind == graph.Decision ||
		b.Kind == graph.Terminal ||
		w.visited[b.ID] ||
		len(o.PredecessorsOf(b)) != 1
	if boundary {
		if changed, err := o.flush(ctx, w); changed || err != nil {
			return changed, err
		}
	}
	if w.visited[b.ID] {
		return false, nil
	}
	w.visited[b.ID] = true

	if b.IsStraightLine() {
		w.path = append(w.path, b)
	}

	children := o.ChildrenOf(b)
	if len(children) == 2 && o.opts.ExtractCommon {
		if changed, err := o.ExtractCommon(ctx, b); changed || err != nil {
			return changed, err
		}
	}

	for _, c := range children {
		if changed, err := o.stepInto(ctx, w, c); changed || err != nil {
			return changed, err
		}
	}
	return false, nil
}

// flush runs the path optimizers on the collected path and clears it.
func (o *Optimizer) flush(ctx context.Context, w *walk) (bool, error) {
	path := w.path
	w.path = nil
	if len(path) == 0 {
		return false, nil
	}

	if o.opts.MergeBlocks {
		var merged bool
		var err error
		if path, merged, err = o.MergePath(ctx, path); merged || err != nil {
			return merged, err
		}
	}
	if o.opts.DeadStores {
		if _, removed, err := o.EliminateDeadStores(ctx, path); removed || err != nil {
			return removed, err
		}
	}
	return false, nil
}
