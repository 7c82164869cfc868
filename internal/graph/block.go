package graph

import (
	"fmt"
	"strings"
)

// Kind is the tagged variant of a block, assigned at parse time.
type Kind int

const (
	// Assignment is a straight-line block whose name carries the assignment
	// prefix and which owns a block-level table entry.
	Assignment Kind = iota
	// Decision is a block with a non-zero alternate exit.
	Decision
	// Terminal is a block with no primary exit or the reserved end name.
	Terminal
	// Marker is any other straight-line block, e.g. "Begin". It has no
	// operations.
	Marker
)

func (k Kind) String() string {
	switch k {
	case Assignment:
		return "assignment"
	case Decision:
		return "decision"
	case Terminal:
		return "terminal"
	case Marker:
		return "marker"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Options holds the reserved names used to classify blocks.
type Options struct {
	// AssignmentPrefix marks assignment-block names, e.g. "Y".
	AssignmentPrefix string
	// TerminalName is the reserved end name, compared case-insensitively.
	TerminalName string
}

// DefaultOptions returns the conventional reserved names.
func DefaultOptions() Options {
	return Options{AssignmentPrefix: "Y", TerminalName: "end"}
}

// Classify returns the Kind of a block with the given name and exits.
func (o Options) Classify(name string, exit1, exit2 int) Kind {
	switch {
	case exit2 != 0:
		return Decision
	case exit1 == 0 || strings.EqualFold(name, o.TerminalName):
		return Terminal
	case o.AssignmentPrefix != "" && strings.HasPrefix(name, o.AssignmentPrefix):
		return Assignment
	default:
		return Marker
	}
}

// Block is a node of the control-flow graph. An exit of 0 means "none".
type Block struct {
	ID    int
	Name  string
	Exit1 int
	Exit2 int
	Kind  Kind
}

// IsStraightLine reports whether the block has exactly one successor.
func (b *Block) IsStraightLine() bool {
	return b.Kind == Assignment || b.Kind == Marker
}

// PointsAt reports whether either exit of b targets id.
func (b *Block) PointsAt(id int) bool {
	return id != 0 && (b.Exit1 == id || b.Exit2 == id)
}

func (b *Block) String() string {
	return fmt.Sprintf("%d %s %d %d", b.ID, b.Name, b.Exit1, b.Exit2)
}
