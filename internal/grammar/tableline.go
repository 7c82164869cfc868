package grammar

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedTableLine is returned when an operation-table line is neither
// a block-level nor a label-level entry.
var ErrMalformedTableLine = errors.New("malformed table line")

// TableLineKind classifies a line of the operation table.
type TableLineKind int

const (
	// BlankLine is an empty separator line.
	BlankLine TableLineKind = iota
	// BlockLine is "NAME = label1 label2 ...".
	BlockLine
	// LabelLine is "label : variable := expression".
	LabelLine
)

func (k TableLineKind) String() string {
	switch k {
	case BlankLine:
		return "blank"
	case BlockLine:
		return "block"
	case LabelLine:
		return "label"
	default:
		return fmt.Sprintf("TableLineKind(%d)", int(k))
	}
}

var (
	nameRegex       = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	identifierRegex = regexp.MustCompile(`[a-z][a-z0-9]*`)
)

// TableRecord is the structured form of one operation-table line. Only the
// fields relevant to Kind are populated.
type TableRecord struct {
	Kind TableLineKind

	// BlockLine
	Name   string
	Labels []string

	// LabelLine
	Label       string
	Computation string
}

// ParseTableLine classifies and parses an operation-table line. A ':' marks a
// label-level line, otherwise a '=' marks a block-level line.
func ParseTableLine(line string) (TableRecord, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return TableRecord{Kind: BlankLine}, nil
	}

	if colon := strings.IndexByte(trimmed, ':'); colon >= 0 && !strings.HasPrefix(trimmed[colon:], ":=") {
		label := strings.TrimSpace(trimmed[:colon])
		computation := strings.TrimSpace(trimmed[colon+1:])
		if !nameRegex.MatchString(label) || computation == "" {
			return TableRecord{}, fmt.Errorf("%w: %q", ErrMalformedTableLine, line)
		}
		return TableRecord{Kind: LabelLine, Label: label, Computation: computation}, nil
	}

	if eq := strings.IndexByte(trimmed, '='); eq >= 0 {
		name := strings.TrimSpace(trimmed[:eq])
		if !nameRegex.MatchString(name) {
			return TableRecord{}, fmt.Errorf("%w: %q", ErrMalformedTableLine, line)
		}
		labels := strings.Fields(trimmed[eq+1:])
		for _, l := range labels {
			if !nameRegex.MatchString(l) {
				return TableRecord{}, fmt.Errorf("%w: bad label %q in %q", ErrMalformedTableLine, l, line)
			}
		}
		return TableRecord{Kind: BlockLine, Name: name, Labels: labels}, nil
	}

	return TableRecord{}, fmt.Errorf("%w: %q", ErrMalformedTableLine, line)
}

// FormatBlockLine renders "NAME = l1 l2 ...".
func FormatBlockLine(name string, labels []string) string {
	if len(labels) == 0 {
		return name + " ="
	}
	return name + " = " + strings.Join(labels, " ")
}

// FormatLabelLine renders "label : computation".
func FormatLabelLine(label, computation string) string {
	return label + " : " + computation
}

// Variables splits a computation "x := y + 2" into the variable it produces
// and the variables its expression references. Identifiers are lowercase
// letters followed by lowercase letters or digits. When no ":=" is present
// the first identifier is taken as produced and the rest as referenced.
func Variables(computation string) (produced string, referenced []string, err error) {
	lhs, rhs, found := strings.Cut(computation, ":=")
	if !found {
		all := identifierRegex.FindAllString(computation, -1)
		if len(all) == 0 {
			return "", nil, fmt.Errorf("%w: no variable in computation %q", ErrMalformedTableLine, computation)
		}
		return all[0], all[1:], nil
	}

	targets := identifierRegex.FindAllString(lhs, -1)
	if len(targets) != 1 {
		return "", nil, fmt.Errorf("%w: computation %q must produce exactly one variable", ErrMalformedTableLine, computation)
	}
	return targets[0], identifierRegex.FindAllString(rhs, -1), nil
}
