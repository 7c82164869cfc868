package optable

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vk/gsaopt/internal/grammar"
	"github.com/vk/gsaopt/internal/graph"
)

var (
	// ErrDuplicateEntry is returned when a block name or label is defined twice.
	ErrDuplicateEntry = errors.New("duplicate table entry")
	// ErrDanglingReference is returned when a name or label resolves to no entry.
	ErrDanglingReference = errors.New("dangling table reference")
)

// Operation is a label-level entry with its variables extracted.
type Operation struct {
	Label       string
	Computation string
	Produced    string
	Referenced  []string
}

// Table holds block-level and label-level entries in resource order.
type Table struct {
	blockOrder []string
	blocks     map[string][]string
	labelOrder []string
	ops        map[string]*Operation
}

// New creates an empty table.
func New() *Table {
	return &Table{
		blocks: make(map[string][]string),
		ops:    make(map[string]*Operation),
	}
}

// Parse builds a table from resource lines.
func Parse(lines []string) (*Table, error) {
	t := New()
	for i, line := range lines {
		rec, err := grammar.ParseTableLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		switch rec.Kind {
		case grammar.BlockLine:
			err = t.AddBlock(rec.Name, rec.Labels)
		case grammar.LabelLine:
			err = t.AddOperation(rec.Label, rec.Computation)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return t, nil
}

// Lines serializes the table: block-level lines, a blank line, label-level lines.
func (t *Table) Lines() []string {
	lines := make([]string, 0, len(t.blockOrder)+len(t.labelOrder)+1)
	for _, name := range t.blockOrder {
		lines = append(lines, grammar.FormatBlockLine(name, t.blocks[name]))
	}
	lines = append(lines, "")
	for _, label := range t.labelOrder {
		lines = append(lines, grammar.FormatLabelLine(label, t.ops[label].Computation))
	}
	return lines
}

// BlockNames returns block-level entry names in resource order.
func (t *Table) BlockNames() []string {
	return slices.Clone(t.blockOrder)
}

// HasBlock reports whether a block-level entry exists for name.
func (t *Table) HasBlock(name string) bool {
	_, ok := t.blocks[name]
	return ok
}

// Labels returns a copy of the labels of a block-level entry.
func (t *Table) Labels(name string) ([]string, bool) {
	labels, ok := t.blocks[name]
	return slices.Clone(labels), ok
}

// AddBlock appends a block-level entry.
func (t *Table) AddBlock(name string, labels []string) error {
	if _, exists := t.blocks[name]; exists {
		return fmt.Errorf("%w: block %q", ErrDuplicateEntry, name)
	}
	t.blocks[name] = slices.Clone(labels)
	t.blockOrder = append(t.blockOrder, name)
	return nil
}

// SetLabels replaces the labels of an existing block-level entry.
func (t *Table) SetLabels(name string, labels []string) error {
	if _, ok := t.blocks[name]; !ok {
		return fmt.Errorf("%w: block %q", ErrDanglingReference, name)
	}
	t.blocks[name] = slices.Clone(labels)
	return nil
}

// DeleteBlock removes a block-level entry. Missing entries are ignored.
func (t *Table) DeleteBlock(name string) {
	if _, ok := t.blocks[name]; !ok {
		return
	}
	delete(t.blocks, name)
	t.blockOrder = slices.DeleteFunc(t.blockOrder, func(n string) bool { return n == name })
}

// RenameBlock moves a block-level entry to a new key, keeping its position.
func (t *Table) RenameBlock(oldName, newName string) error {
	if oldName == newName {
		return nil
	}
	labels, ok := t.blocks[oldName]
	if !ok {
		return fmt.Errorf("%w: block %q", ErrDanglingReference, oldName)
	}
	if _, exists := t.blocks[newName]; exists {
		return fmt.Errorf("%w: block %q", ErrDuplicateEntry, newName)
	}
	delete(t.blocks, oldName)
	t.blocks[newName] = labels
	t.blockOrder[slices.Index(t.blockOrder, oldName)] = newName
	return nil
}

// RenameBlocks renames several block-level entries at once. Every key of
// mapping must exist; the resulting names must be unique.
func (t *Table) RenameBlocks(mapping map[string]string) error {
	renamed := make(map[string][]string, len(t.blocks))
	order := make([]string, 0, len(t.blockOrder))
	for _, name := range t.blockOrder {
		newName, ok := mapping[name]
		if !ok {
			newName = name
		}
		if _, dup := renamed[newName]; dup {
			return fmt.Errorf("%w: block %q", ErrDuplicateEntry, newName)
		}
		renamed[newName] = t.blocks[name]
		order = append(order, newName)
	}
	for oldName := range mapping {
		if _, ok := t.blocks[oldName]; !ok {
			return fmt.Errorf("%w: block %q", ErrDanglingReference, oldName)
		}
	}
	t.blocks = renamed
	t.blockOrder = order
	return nil
}

// ReorderBlocks moves the named entries to the front of the block section in
// the given order. Entries not named keep their relative order after them.
func (t *Table) ReorderBlocks(names []string) {
	order := make([]string, 0, len(t.blockOrder))
	placed := make(map[string]bool, len(names))
	for _, name := range names {
		if _, ok := t.blocks[name]; ok && !placed[name] {
			order = append(order, name)
			placed[name] = true
		}
	}
	for _, name := range t.blockOrder {
		if !placed[name] {
			order = append(order, name)
		}
	}
	t.blockOrder = order
}

// SortLabels sorts the labels of every block-level entry.
func (t *Table) SortLabels() {
	for _, labels := range t.blocks {
		slices.Sort(labels)
	}
}

// AddOperation appends a label-level entry, extracting its variables.
func (t *Table) AddOperation(label, computation string) error {
	if _, exists := t.ops[label]; exists {
		return fmt.Errorf("%w: label %q", ErrDuplicateEntry, label)
	}
	produced, referenced, err := grammar.Variables(computation)
	if err != nil {
		return fmt.Errorf("label %q: %w", label, err)
	}
	t.ops[label] = &Operation{
		Label:       label,
		Computation: computation,
		Produced:    produced,
		Referenced:  referenced,
	}
	t.labelOrder = append(t.labelOrder, label)
	return nil
}

// Operation returns the label-level entry for label.
func (t *Table) Operation(label string) (*Operation, bool) {
	op, ok := t.ops[label]
	return op, ok
}

// DeleteOperation removes a label-level entry. Missing entries are ignored.
func (t *Table) DeleteOperation(label string) {
	if _, ok := t.ops[label]; !ok {
		return
	}
	delete(t.ops, label)
	t.labelOrder = slices.DeleteFunc(t.labelOrder, func(l string) bool { return l == label })
}

// IsReferenced reports whether any block-level entry lists label.
func (t *Table) IsReferenced(label string) bool {
	for _, labels := range t.blocks {
		if slices.Contains(labels, label) {
			return true
		}
	}
	return false
}

// Operations resolves the labels of a block-level entry. A name without an
// entry has no operations.
func (t *Table) Operations(name string) ([]*Operation, error) {
	labels, ok := t.blocks[name]
	if !ok {
		return nil, nil
	}
	ops := make([]*Operation, 0, len(labels))
	for _, label := range labels {
		op, ok := t.ops[label]
		if !ok {
			return nil, fmt.Errorf("%w: block %q lists label %q", ErrDanglingReference, name, label)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// Validate checks the table against the graph: every assignment block has its
// own block-level entry and every listed label has a label-level entry.
func (t *Table) Validate(g *graph.Graph) error {
	var errs []error
	owners := make(map[string]int)
	for _, b := range g.Blocks() {
		if b.Kind != graph.Assignment {
			continue
		}
		if !t.HasBlock(b.Name) {
			errs = append(errs, fmt.Errorf("%w: assignment block %d %q has no entry", ErrDanglingReference, b.ID, b.Name))
		}
		if owner, dup := owners[b.Name]; dup {
			errs = append(errs, fmt.Errorf("%w: blocks %d and %d are both named %q", ErrDuplicateEntry, owner, b.ID, b.Name))
		}
		owners[b.Name] = b.ID
	}
	for _, name := range t.blockOrder {
		if _, err := t.Operations(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
