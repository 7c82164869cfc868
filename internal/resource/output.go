package resource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vk/gsaopt/internal/ctxlog"
	"github.com/vk/gsaopt/internal/fsutil"
)

// TimestampLayout is the time format appended to the output directory
// prefix.
const TimestampLayout = "2006-01-02_15-04-05"

// OutputDir returns the directory a run started at now writes into.
func OutputDir(baseDir, prefix string, now time.Time) string {
	return filepath.Join(baseDir, prefix+now.Format(TimestampLayout))
}

// writeLines is swapped in tests to simulate a failing disk.
var writeLines = fsutil.WriteLines

// Write creates dir and stores each resource under the base name of its
// input file. It refuses to write into an existing directory. It returns the
// paths written, in graph, table, micro-code order.
//
// Files are first written into a hidden sibling directory that is renamed
// to dir only after every file succeeded, so a failed write leaves nothing
// behind.
func Write(ctx context.Context, dir string, set *Set, c *Contents) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("output directory %s already exists", dir)
	}
	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", parent, err)
	}
	staging, err := os.MkdirTemp(parent, "."+filepath.Base(dir)+"-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory in %s: %w", parent, err)
	}
	committed := false
	defer func() {
		if !committed {
			os.RemoveAll(staging)
		}
	}()

	type item struct {
		src   string
		lines []string
	}
	items := []item{{set.Graph, c.Graph}, {set.Table, c.Table}}
	if set.Microcode != "" {
		items = append(items, item{set.Microcode, c.Microcode})
	}

	var written []string
	for _, it := range items {
		name := filepath.Base(it.src)
		if err := writeLines(filepath.Join(staging, name), it.lines, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", filepath.Join(dir, name), err)
		}
		logger.Debug("Wrote resource.", "path", filepath.Join(dir, name), "lines", len(it.lines))
		written = append(written, filepath.Join(dir, name))
	}

	if err := os.Chmod(staging, 0o755); err != nil {
		return nil, fmt.Errorf("failed to prepare output directory %s: %w", dir, err)
	}
	if err := os.Rename(staging, dir); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	committed = true
	return written, nil
}
