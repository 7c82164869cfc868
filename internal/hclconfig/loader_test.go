package hclconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/gsaopt/internal/config"
	"github.com/vk/gsaopt/internal/ctxlog"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gsaopt.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testLoader(env ...string) *Loader {
	return &Loader{environ: func() []string { return env }}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.Discard())
	settings, err := testLoader().Load(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), settings)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.Discard())
	path := writeFile(t, `
optimizer {
  assignment_prefix = "A"
  dead_stores       = true
  max_restarts      = 50
}

output {
  base_dir = "${env.GSAOPT_HOME}/Desktop"
}
`)
	settings, err := testLoader("GSAOPT_HOME=/home/u", "EMPTY=").Load(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, "A", settings.Optimizer.AssignmentPrefix)
	assert.Equal(t, "end", settings.Optimizer.TerminalName)
	assert.True(t, settings.Optimizer.DeadStores)
	assert.True(t, settings.Optimizer.MergeBlocks)
	assert.Equal(t, 50, settings.Optimizer.MaxRestarts)
	assert.Equal(t, "/home/u/Desktop", settings.Output.BaseDir)
	assert.Equal(t, "Optimized_", settings.Output.DirPrefix)
}

func TestLoad_Errors(t *testing.T) {
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.Discard())
	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "syntax error",
			content: "optimizer {",
			wantErr: "failed to parse",
		},
		{
			name:    "wrong type",
			content: "optimizer {\n  dead_stores = \"maybe\"\n}\n",
			wantErr: "failed to decode",
		},
		{
			name:    "unknown attribute",
			content: "optimizer {\n  speed = 3\n}\n",
			wantErr: "failed to decode",
		},
		{
			name:    "unknown top-level block",
			content: "runner {\n}\n",
			wantErr: "failed to decode",
		},
		{
			name:    "missing env variable",
			content: "output {\n  base_dir = env.NOPE\n}\n",
			wantErr: "failed to decode",
		},
		{
			name:    "invalid value",
			content: "optimizer {\n  terminal_name = \"\"\n}\n",
			wantErr: "terminal_name cannot be empty",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := testLoader().Load(ctx, writeFile(t, tc.content))
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.Discard())
	_, err := testLoader().Load(ctx, filepath.Join(t.TempDir(), "absent.hcl"))
	assert.Error(t, err)
}
