package config

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/vk/gsaopt/internal/graph"
	"github.com/vk/gsaopt/internal/optimizer"
)

var prefixRegex = regexp.MustCompile(`^[A-Za-z]+$`)

// Settings holds every tunable of a run.
type Settings struct {
	Optimizer Optimizer
	Output    Output
}

// Optimizer holds the reserved names and the pass switches.
type Optimizer struct {
	AssignmentPrefix string
	TerminalName     string
	MergeBlocks      bool
	ExtractCommon    bool
	DeadStores       bool
	CompactIDs       bool
	MaxRestarts      int
}

// Output controls where results are packaged.
type Output struct {
	BaseDir   string
	DirPrefix string
}

// Default returns the settings used when no file is given.
func Default() *Settings {
	gopts := graph.DefaultOptions()
	oopts := optimizer.DefaultOptions()
	return &Settings{
		Optimizer: Optimizer{
			AssignmentPrefix: gopts.AssignmentPrefix,
			TerminalName:     gopts.TerminalName,
			MergeBlocks:      oopts.MergeBlocks,
			ExtractCommon:    oopts.ExtractCommon,
			DeadStores:       oopts.DeadStores,
			CompactIDs:       oopts.CompactIDs,
			MaxRestarts:      oopts.MaxRestarts,
		},
		Output: Output{
			BaseDir:   ".",
			DirPrefix: "Optimized_",
		},
	}
}

// Validate rejects settings the optimizer cannot work with.
func (s *Settings) Validate() error {
	var errs []error
	if !prefixRegex.MatchString(s.Optimizer.AssignmentPrefix) {
		errs = append(errs, fmt.Errorf("assignment_prefix must be letters only, got %q", s.Optimizer.AssignmentPrefix))
	}
	if s.Optimizer.TerminalName == "" {
		errs = append(errs, errors.New("terminal_name cannot be empty"))
	}
	if s.Optimizer.MaxRestarts < 0 {
		errs = append(errs, fmt.Errorf("max_restarts cannot be negative, got %d", s.Optimizer.MaxRestarts))
	}
	if s.Output.BaseDir == "" {
		errs = append(errs, errors.New("output base_dir cannot be empty"))
	}
	return errors.Join(errs...)
}

// GraphOptions returns the block classification options.
func (s *Settings) GraphOptions() graph.Options {
	return graph.Options{
		AssignmentPrefix: s.Optimizer.AssignmentPrefix,
		TerminalName:     s.Optimizer.TerminalName,
	}
}

// OptimizerOptions returns the pass switches.
func (s *Settings) OptimizerOptions() optimizer.Options {
	return optimizer.Options{
		MergeBlocks:   s.Optimizer.MergeBlocks,
		ExtractCommon: s.Optimizer.ExtractCommon,
		DeadStores:    s.Optimizer.DeadStores,
		CompactIDs:    s.Optimizer.CompactIDs,
		MaxRestarts:   s.Optimizer.MaxRestarts,
	}
}
