package graph

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/vk/gsaopt/internal/grammar"
)

var (
	// ErrMissingHeader is returned when the resource has no header line.
	ErrMissingHeader = errors.New("graph resource has no header line")
	// ErrDuplicateID is returned when two live blocks share an id.
	ErrDuplicateID = errors.New("duplicate block id")
	// ErrDanglingReference is returned when an edge resolves to no live block.
	ErrDanglingReference = errors.New("dangling block reference")
	// ErrUnknownBlock is returned when an operation names an id that is not live.
	ErrUnknownBlock = errors.New("unknown block")
)

// Graph is the arena of blocks plus their text order.
type Graph struct {
	opts   Options
	blocks map[int]*Block
	order  []int
}

// New creates an empty graph.
func New(opts Options) *Graph {
	return &Graph{
		opts:   opts,
		blocks: make(map[int]*Block),
	}
}

// Parse builds a graph from resource lines. Line 0 is the header; trailing
// blank lines are ignored. Edges are validated before returning.
func Parse(lines []string, opts Options) (*Graph, error) {
	if len(lines) == 0 {
		return nil, ErrMissingHeader
	}

	g := New(opts)
	for i, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := grammar.ParseGraphLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		if rec.ID == 0 {
			return nil, fmt.Errorf("line %d: %w: id 0 is reserved", i+2, grammar.ErrMalformedGraphLine)
		}
		if err := g.Append(&Block{ID: rec.ID, Name: rec.Name, Exit1: rec.Exit1, Exit2: rec.Exit2}); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Lines serializes the graph. The header is rewritten to the live block count.
func (g *Graph) Lines() []string {
	lines := make([]string, 0, len(g.order)+1)
	lines = append(lines, strconv.Itoa(len(g.order)))
	for _, id := range g.order {
		b := g.blocks[id]
		lines = append(lines, grammar.FormatGraphLine(grammar.BlockRecord{
			ID: b.ID, Name: b.Name, Exit1: b.Exit1, Exit2: b.Exit2,
		}))
	}
	return lines
}

// Options returns the classification options the graph was built with.
func (g *Graph) Options() Options {
	return g.opts
}

// Len returns the number of live blocks.
func (g *Graph) Len() int {
	return len(g.order)
}

// Block returns the live block with the given id.
func (g *Graph) Block(id int) (*Block, bool) {
	b, ok := g.blocks[id]
	return b, ok
}

// Blocks returns the live blocks in text order.
func (g *Graph) Blocks() []*Block {
	out := make([]*Block, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.blocks[id])
	}
	return out
}

// Entry returns the first block in text order, or nil for an empty graph.
func (g *Graph) Entry() *Block {
	if len(g.order) == 0 {
		return nil
	}
	return g.blocks[g.order[0]]
}

// MaxID returns the highest live id, or 0 for an empty graph.
func (g *Graph) MaxID() int {
	maxID := 0
	for id := range g.blocks {
		maxID = max(maxID, id)
	}
	return maxID
}

// Append adds a block at the end of the text order and classifies it.
func (g *Graph) Append(b *Block) error {
	return g.insertAt(len(g.order), b)
}

// InsertBefore adds a block to the text order directly before the block
// with id before.
func (g *Graph) InsertBefore(before int, b *Block) error {
	pos := slices.Index(g.order, before)
	if pos < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownBlock, before)
	}
	return g.insertAt(pos, b)
}

func (g *Graph) insertAt(pos int, b *Block) error {
	if _, exists := g.blocks[b.ID]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicateID, b.ID)
	}
	b.Kind = g.opts.Classify(b.Name, b.Exit1, b.Exit2)
	g.blocks[b.ID] = b
	g.order = slices.Insert(g.order, pos, b.ID)
	return nil
}

// Predecessors returns every block with an exit pointing at id, in text order.
func (g *Graph) Predecessors(id int) []*Block {
	var preds []*Block
	for _, pid := range g.order {
		if b := g.blocks[pid]; b.PointsAt(id) {
			preds = append(preds, b)
		}
	}
	return preds
}

// Children returns the 0, 1 or 2 live blocks referenced by b's exits, primary
// exit first. Two exits to the same block yield one child.
func (g *Graph) Children(b *Block) []*Block {
	var children []*Block
	if c, ok := g.blocks[b.Exit1]; ok && b.Exit1 != 0 {
		children = append(children, c)
	}
	if c, ok := g.blocks[b.Exit2]; ok && b.Exit2 != 0 && b.Exit2 != b.Exit1 {
		children = append(children, c)
	}
	return children
}

// Rename changes the name of a live block. The kind is left untouched.
func (g *Graph) Rename(id int, name string) error {
	b, ok := g.blocks[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBlock, id)
	}
	b.Name = name
	return nil
}

// Redirect rewrites every edge pointing at from so that it points at to.
func (g *Graph) Redirect(from, to int) {
	if from == 0 {
		return
	}
	for _, b := range g.blocks {
		if b.Exit1 == from {
			b.Exit1 = to
		}
		if b.Exit2 == from {
			b.Exit2 = to
		}
	}
}

// Splice removes a straight-line block. Every edge that pointed at it is
// rewritten to its primary exit.
func (g *Graph) Splice(id int) (*Block, error) {
	b, ok := g.blocks[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBlock, id)
	}
	if !b.IsStraightLine() {
		return nil, fmt.Errorf("cannot splice %s block %d", b.Kind, id)
	}

	g.Redirect(id, b.Exit1)
	delete(g.blocks, id)
	g.order = slices.DeleteFunc(g.order, func(x int) bool { return x == id })
	return b, nil
}

// RenumberFrom shifts every id >= start upward by k and rewrites every edge
// that referenced a shifted id. Exits of 0 are never shifted.
func (g *Graph) RenumberFrom(start, k int) {
	if k == 0 {
		return
	}
	shift := func(id int) int {
		if id != 0 && id >= start {
			return id + k
		}
		return id
	}
	g.remap(shift)
}

// Compact renumbers ids densely to 1..N in text order and returns the
// old-to-new mapping.
func (g *Graph) Compact() map[int]int {
	mapping := make(map[int]int, len(g.order))
	for i, id := range g.order {
		mapping[id] = i + 1
	}
	g.remap(func(id int) int {
		if id == 0 {
			return 0
		}
		return mapping[id]
	})
	return mapping
}

// remap applies fn to every id and edge through a rebuilt arena, so each id
// is rewritten exactly once.
func (g *Graph) remap(fn func(int) int) {
	blocks := make(map[int]*Block, len(g.blocks))
	for _, b := range g.blocks {
		b.ID = fn(b.ID)
		b.Exit1 = fn(b.Exit1)
		b.Exit2 = fn(b.Exit2)
		blocks[b.ID] = b
	}
	for i, id := range g.order {
		g.order[i] = fn(id)
	}
	g.blocks = blocks
}

// Validate checks that ids are unique and that every non-zero exit resolves
// to a live block.
func (g *Graph) Validate() error {
	if len(g.blocks) != len(g.order) {
		return fmt.Errorf("%w: arena holds %d blocks, order holds %d", ErrDuplicateID, len(g.blocks), len(g.order))
	}
	var errs []error
	for _, id := range g.order {
		b := g.blocks[id]
		for _, exit := range []int{b.Exit1, b.Exit2} {
			if exit == 0 {
				continue
			}
			if _, ok := g.blocks[exit]; !ok {
				errs = append(errs, fmt.Errorf("%w: block %d exits to %d", ErrDanglingReference, b.ID, exit))
			}
		}
	}
	return errors.Join(errs...)
}
