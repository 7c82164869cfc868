package app

import (
	"context"
	"fmt"

	"github.com/vk/gsaopt/internal/ctxlog"
	"github.com/vk/gsaopt/internal/graph"
	"github.com/vk/gsaopt/internal/optable"
	"github.com/vk/gsaopt/internal/optimizer"
	"github.com/vk/gsaopt/internal/resource"
)

// Result describes a finished run.
type Result struct {
	Stats     optimizer.Stats
	Graph     []string
	Table     []string
	OutputDir string   // empty on a dry run
	Written   []string // files created in OutputDir
}

// Run executes one optimize and emit cycle. Nothing is written unless every
// step before writing succeeded.
func (a *App) Run(ctx context.Context) (*Result, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	set, err := resource.Resolve(ctx, a.config.Paths)
	if err != nil {
		return nil, err
	}
	contents, err := resource.Read(ctx, set)
	if err != nil {
		return nil, err
	}

	g, t, err := Load(contents.Graph, contents.Table, a.settings.GraphOptions())
	if err != nil {
		return nil, err
	}
	a.logger.Info("Resources loaded.", "graph", set.Graph, "table", set.Table, "blocks", g.Len())

	if err := a.printer.Listing("Graph before", contents.Graph); err != nil {
		return nil, err
	}
	if err := a.printer.Listing("Table before", contents.Table); err != nil {
		return nil, err
	}

	opts := a.settings.OptimizerOptions()
	stats, err := optimizer.Optimize(ctx, g, t, opts)
	if err != nil {
		return nil, fmt.Errorf("optimization failed: %w", err)
	}
	canon, err := optimizer.Canonicalize(ctx, g, t, opts)
	if err != nil {
		return nil, fmt.Errorf("canonicalization failed: %w", err)
	}
	stats.Renames = canon.Renames
	a.logger.Info("Optimization finished.", "walks", stats.Walks, "merges", stats.Merges, "extractions", stats.Extractions, "dead_stores", stats.DeadStores, "renames", stats.Renames, "blocks", g.Len())

	res := &Result{Stats: stats, Graph: g.Lines(), Table: t.Lines()}
	if err := a.printer.Listing("Graph after", res.Graph); err != nil {
		return nil, err
	}
	if err := a.printer.Listing("Table after", res.Table); err != nil {
		return nil, err
	}
	if err := a.printer.Stats(stats); err != nil {
		return nil, err
	}

	if a.config.DryRun {
		a.logger.Info("Dry run, nothing written.")
		return res, nil
	}

	dir := resource.OutputDir(a.settings.Output.BaseDir, a.settings.Output.DirPrefix, a.now())
	out := &resource.Contents{Graph: res.Graph, Table: res.Table, Microcode: contents.Microcode}
	written, err := resource.Write(ctx, dir, set, out)
	if err != nil {
		return nil, err
	}
	res.OutputDir = dir
	res.Written = written
	a.logger.Info("Results written.", "dir", dir, "files", len(written))

	if err := a.printer.Written(dir, written); err != nil {
		return nil, err
	}
	a.logger.Debug("App.Run method finished.")
	return res, nil
}

// Load parses both resources and checks that they agree with each other.
func Load(graphLines, tableLines []string, opts graph.Options) (*graph.Graph, *optable.Table, error) {
	g, err := graph.Parse(graphLines, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load graph: %w", err)
	}
	t, err := optable.Parse(tableLines)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load table: %w", err)
	}
	if err := t.Validate(g); err != nil {
		return nil, nil, fmt.Errorf("graph and table disagree: %w", err)
	}
	return g, t, nil
}
