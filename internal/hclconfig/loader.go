package hclconfig

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/gsaopt/internal/config"
	"github.com/vk/gsaopt/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	environ func() []string
}

// NewLoader creates a new HCL settings loader backed by the process
// environment.
func NewLoader() *Loader {
	return &Loader{environ: os.Environ}
}

// Load parses path and overlays its attributes on config.Default.
func (l *Loader) Load(ctx context.Context, path string) (*config.Settings, error) {
	logger := ctxlog.FromContext(ctx)
	settings := config.Default()
	if path == "" {
		logger.Debug("No settings file given, using defaults.")
		return settings, nil
	}
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, l.evalContext(), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}
	if diags := checkRemain(root.Remain); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	applyOptimizer(&settings.Optimizer, root.Optimizer)
	applyOutput(&settings.Output, root.Output)

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	logger.Debug("HCL loading complete.", "dead_stores", settings.Optimizer.DeadStores, "base_dir", settings.Output.BaseDir)
	return settings, nil
}

// evalContext exposes the environment as the env object.
func (l *Loader) evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

// checkRemain reports unknown top-level attributes and blocks.
func checkRemain(body hcl.Body) hcl.Diagnostics {
	if body == nil {
		return nil
	}
	_, diags := body.Content(&hcl.BodySchema{})
	return diags
}

func applyOptimizer(dst *config.Optimizer, b *optimizerBlock) {
	if b == nil {
		return
	}
	setIf(&dst.AssignmentPrefix, b.AssignmentPrefix)
	setIf(&dst.TerminalName, b.TerminalName)
	setIf(&dst.MergeBlocks, b.MergeBlocks)
	setIf(&dst.ExtractCommon, b.ExtractCommon)
	setIf(&dst.DeadStores, b.DeadStores)
	setIf(&dst.CompactIDs, b.CompactIDs)
	setIf(&dst.MaxRestarts, b.MaxRestarts)
}

func applyOutput(dst *config.Output, b *outputBlock) {
	if b == nil {
		return
	}
	setIf(&dst.BaseDir, b.BaseDir)
	setIf(&dst.DirPrefix, b.DirPrefix)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
