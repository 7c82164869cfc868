package optimizer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/gsaopt/internal/ctxlog"
	"github.com/vk/gsaopt/internal/graph"
	"github.com/vk/gsaopt/internal/optable"
)

// ErrNoFixedPoint is returned when the walk restarts more often than allowed.
var ErrNoFixedPoint = errors.New("optimizer did not reach a fixed point")

// Options selects the passes of a run.
type Options struct {
	MergeBlocks   bool
	ExtractCommon bool
	// DeadStores enables last-write-wins elimination within a path.
	DeadStores bool
	// CompactIDs renumbers ids densely during Canonicalize.
	CompactIDs bool
	// MaxRestarts bounds the number of walks. 0 means unlimited.
	MaxRestarts int
}

// DefaultOptions returns the passes enabled by default.
func DefaultOptions() Options {
	return Options{
		MergeBlocks:   true,
		ExtractCommon: true,
		CompactIDs:    true,
		MaxRestarts:   10000,
	}
}

// Stats counts what a run did.
type Stats struct {
	Walks       int
	Merges      int
	Extractions int
	DeadStores  int
	Renames     int
}

// Optimizer owns the two stores for the duration of one run.
type Optimizer struct {
	g     *graph.Graph
	t     *optable.Table
	opts  Options
	stats Stats
}

// New creates an optimizer over an already validated graph and table.
func New(g *graph.Graph, t *optable.Table, opts Options) *Optimizer {
	return &Optimizer{g: g, t: t, opts: opts}
}

// Stats returns the counters accumulated so far.
func (o *Optimizer) Stats() Stats {
	return o.stats
}

// Optimize runs the fixed-point loop on g and t in place.
func Optimize(ctx context.Context, g *graph.Graph, t *optable.Table, opts Options) (Stats, error) {
	o := New(g, t, opts)
	err := o.Run(ctx)
	return o.stats, err
}

// Canonicalize renames assignment blocks of g and t in place.
func Canonicalize(ctx context.Context, g *graph.Graph, t *optable.Table, opts Options) (Stats, error) {
	o := New(g, t, opts)
	err := o.Canonicalize(ctx)
	return o.stats, err
}

// labelsOf returns the operation labels of a straight-line block. Other
// kinds carry no operations.
func (o *Optimizer) labelsOf(b *graph.Block) []string {
	if !b.IsStraightLine() {
		return nil
	}
	labels, _ := o.t.Labels(b.Name)
	return labels
}

// hasOperations reports whether b is a straight-line block with a table entry.
func (o *Optimizer) hasOperations(b *graph.Block) bool {
	return b.IsStraightLine() && o.t.HasBlock(b.Name)
}

// dropBlock removes an emptied block from both stores. The entry block is
// kept with an empty entry, since removing it would change where the
// program starts.
func (o *Optimizer) dropBlock(ctx context.Context, b *graph.Block) error {
	if entry := o.g.Entry(); entry != nil && entry.ID == b.ID {
		ctxlog.FromContext(ctx).Debug("Keeping emptied entry block.", "id", b.ID, "name", b.Name)
		return o.t.SetLabels(b.Name, nil)
	}
	if _, err := o.g.Splice(b.ID); err != nil {
		return fmt.Errorf("removing block %d: %w", b.ID, err)
	}
	o.t.DeleteBlock(b.Name)
	return nil
}

// ordinal returns the numeric suffix of an assignment name, or -1.
func (o *Optimizer) ordinal(name string) int {
	prefix := o.g.Options().AssignmentPrefix
	if prefix == "" || !strings.HasPrefix(name, prefix) {
		return -1
	}
	n, err := strconv.Atoi(name[len(prefix):])
	if err != nil {
		return -1
	}
	return n
}

// nextName returns an assignment name unused in both stores, with an
// ordinal above every existing one.
func (o *Optimizer) nextName() string {
	highest := 0
	for _, b := range o.g.Blocks() {
		highest = max(highest, o.ordinal(b.Name))
	}
	for _, name := range o.t.BlockNames() {
		highest = max(highest, o.ordinal(name))
	}
	return o.g.Options().AssignmentPrefix + strconv.Itoa(highest+1)
}

// validate re-checks both stores. It runs once after convergence.
func (o *Optimizer) validate() error {
	if err := o.g.Validate(); err != nil {
		return err
	}
	return o.t.Validate(o.g)
}
