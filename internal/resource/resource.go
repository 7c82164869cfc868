package resource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/gsaopt/internal/ctxlog"
	"github.com/vk/gsaopt/internal/fsutil"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrMissingRequiredResource is returned when the graph or the table
	// resource cannot be found among the inputs.
	ErrMissingRequiredResource = errors.New("missing required resource")
	// ErrAmbiguousResource is returned when more than one input claims the
	// same resource kind.
	ErrAmbiguousResource = errors.New("ambiguous resource")
)

// Kind identifies one of the three resources.
type Kind int

const (
	// Graph is the control-flow graph resource.
	Graph Kind = iota
	// Table is the operation table resource.
	Table
	// Microcode is the optional micro-code listing.
	Microcode
)

var kinds = []Kind{Graph, Table, Microcode}

// Extension returns the file extension that selects the kind.
func (k Kind) Extension() string {
	switch k {
	case Graph:
		return ".gsa"
	case Table:
		return ".txt"
	case Microcode:
		return ".mic"
	default:
		return ""
	}
}

func (k Kind) String() string {
	switch k {
	case Graph:
		return "graph"
	case Table:
		return "table"
	case Microcode:
		return "microcode"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func kindOf(path string) (Kind, bool) {
	ext := filepath.Ext(path)
	for _, k := range kinds {
		if strings.EqualFold(ext, k.Extension()) {
			return k, true
		}
	}
	return 0, false
}

// Set holds the resolved input paths. Microcode is empty when absent.
type Set struct {
	Graph     string
	Table     string
	Microcode string
}

func (s *Set) path(k Kind) *string {
	switch k {
	case Graph:
		return &s.Graph
	case Table:
		return &s.Table
	default:
		return &s.Microcode
	}
}

// Resolve matches the arguments to resources by extension. An argument may
// be a file or a directory; a directory contributes its direct children.
// Files with an unknown extension are ignored.
func Resolve(ctx context.Context, args []string) (*Set, error) {
	logger := ctxlog.FromContext(ctx)

	var candidates []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", arg, err)
		}
		if !info.IsDir() {
			candidates = append(candidates, arg)
			continue
		}
		for _, k := range kinds {
			found, err := fsutil.FindFilesByExtension(arg, k.Extension())
			if err != nil {
				return nil, fmt.Errorf("error scanning directory %s: %w", arg, err)
			}
			candidates = append(candidates, found...)
		}
	}

	set := &Set{}
	for _, c := range candidates {
		k, ok := kindOf(c)
		if !ok {
			logger.Debug("Ignoring input with unknown extension.", "path", c)
			continue
		}
		dst := set.path(k)
		if *dst != "" && *dst != c {
			return nil, fmt.Errorf("%w: %s given by both %s and %s", ErrAmbiguousResource, k, *dst, c)
		}
		*dst = c
	}

	var errs []error
	if set.Graph == "" {
		errs = append(errs, fmt.Errorf("%w: no %s file (%s)", ErrMissingRequiredResource, Graph, Graph.Extension()))
	}
	if set.Table == "" {
		errs = append(errs, fmt.Errorf("%w: no %s file (%s)", ErrMissingRequiredResource, Table, Table.Extension()))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	logger.Debug("Resolved resources.", "graph", set.Graph, "table", set.Table, "microcode", set.Microcode)
	return set, nil
}

// Contents holds the lines of every resource in a Set.
type Contents struct {
	Graph     []string
	Table     []string
	Microcode []string
}

// Read loads all resources of the set concurrently.
func Read(ctx context.Context, set *Set) (*Contents, error) {
	c := &Contents{}
	g, ctx := errgroup.WithContext(ctx)

	read := func(path string, dst *[]string) {
		if path == "" {
			return
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			lines, err := fsutil.ReadLines(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			*dst = lines
			return nil
		})
	}
	read(set.Graph, &c.Graph)
	read(set.Table, &c.Table)
	read(set.Microcode, &c.Microcode)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return c, nil
}
