package grammar

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedGraphLine is returned when a graph line does not match
// "<id> <name> <exit1> <exit2>".
var ErrMalformedGraphLine = errors.New("malformed graph line")

// graphLineRegex matches a whole graph line, fields separated by spaces or tabs.
var graphLineRegex = regexp.MustCompile(`^[\t ]*(\d+)[\t ]+([A-Za-z0-9]+)[\t ]+(\d+)[\t ]+(\d+)[\t ]*$`)

// BlockRecord is the structured form of one graph line.
type BlockRecord struct {
	ID    int
	Name  string
	Exit1 int
	Exit2 int
}

// ParseGraphLine parses a single graph line into a BlockRecord.
func ParseGraphLine(line string) (BlockRecord, error) {
	matches := graphLineRegex.FindStringSubmatch(strings.TrimRight(line, "\r"))
	if matches == nil {
		return BlockRecord{}, fmt.Errorf("%w: %q", ErrMalformedGraphLine, line)
	}

	var nums [3]int
	for i, raw := range []string{matches[1], matches[3], matches[4]} {
		n, err := strconv.Atoi(raw)
		if err != nil {
			// Only reachable on overflow, the regex guarantees digits.
			return BlockRecord{}, fmt.Errorf("%w: %q: %v", ErrMalformedGraphLine, line, err)
		}
		nums[i] = n
	}

	return BlockRecord{ID: nums[0], Name: matches[2], Exit1: nums[1], Exit2: nums[2]}, nil
}

// FormatGraphLine renders a record back into graph line form.
func FormatGraphLine(r BlockRecord) string {
	return fmt.Sprintf("  %d %s %d %d", r.ID, r.Name, r.Exit1, r.Exit2)
}
