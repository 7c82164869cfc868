package optimizer

import (
	"context"
	"strconv"

	"github.com/vk/gsaopt/internal/ctxlog"
	"github.com/vk/gsaopt/internal/graph"
)

// Canonicalize renames assignment blocks, in text order, to prefix+1 ..
// prefix+K in both stores, sorts every entry's labels and orders the table's
// block section like the graph. With CompactIDs it also renumbers ids to
// 1..N in text order. Topology is unchanged.
func (o *Optimizer) Canonicalize(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	prefix := o.g.Options().AssignmentPrefix

	renames := make(map[string]string)
	var order []string
	counter := 0
	for _, b := range o.g.Blocks() {
		if b.Kind != graph.Assignment {
			continue
		}
		counter++
		expected := prefix + strconv.Itoa(counter)
		order = append(order, expected)
		if b.Name == expected {
			continue
		}
		if o.t.HasBlock(b.Name) {
			renames[b.Name] = expected
		}
		logger.Debug("Renaming block.", "id", b.ID, "from", b.Name, "to", expected)
		if err := o.g.Rename(b.ID, expected); err != nil {
			return err
		}
		o.stats.Renames++
	}

	if err := o.t.RenameBlocks(renames); err != nil {
		return err
	}
	o.t.ReorderBlocks(order)
	o.t.SortLabels()

	if o.opts.CompactIDs {
		mapping := o.g.Compact()
		logger.Debug("Compacted block ids.", "blocks", len(mapping))
	}
	return nil
}
