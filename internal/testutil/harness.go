// Package testutil runs the whole application against resource files
// written to a temporary directory.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/gsaopt/internal/app"
	"github.com/vk/gsaopt/internal/cli"
	"github.com/vk/gsaopt/internal/hclconfig"
)

// SettingsFile is the name under which a settings file in the files map is
// passed to the run with --config.
const SettingsFile = "gsaopt.hcl"

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Listing   string
	LogOutput string
	Result    *app.Result
	Err       error
	// OutBase is the directory handed to --out-dir.
	OutBase string
}

// RunIntegrationTest writes files into a fresh input directory and runs the
// application on it with the extra command-line args. Output goes to a
// separate temporary directory.
func RunIntegrationTest(t *testing.T, files map[string]string, args ...string) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	inDir := filepath.Join(tmpDir, "input")
	outDir := filepath.Join(tmpDir, "output")
	require.NoError(t, os.Mkdir(inDir, 0o755))
	require.NoError(t, os.Mkdir(outDir, 0o755))

	var settings string
	for name, content := range files {
		dir := inDir
		if name == SettingsFile {
			dir = tmpDir
			settings = filepath.Join(tmpDir, name)
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	argv := []string{"--no-color", "--log-level", "debug", "--out-dir", outDir}
	if settings != "" {
		argv = append(argv, "--config", settings)
	}
	argv = append(argv, args...)
	argv = append(argv, inDir)

	listing := &bytes.Buffer{}
	logBuffer := &app.SafeBuffer{}
	res := &HarnessResult{OutBase: outDir}

	cfg, shouldExit, err := cli.Parse(argv, listing)
	require.False(t, shouldExit, "harness arguments must not request help")
	if err == nil {
		var a *app.App
		a, err = app.NewApp(listing, logBuffer, cfg, hclconfig.NewLoader())
		if err == nil {
			res.Result, err = a.Run(context.Background())
		}
	}
	res.Err = err
	res.Listing = listing.String()
	res.LogOutput = logBuffer.String()

	if os.Getenv("GSAOPT_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), res.LogOutput)
	}
	return res
}

// OutputLines reads a file the run wrote into its output directory.
func (r *HarnessResult) OutputLines(t *testing.T, name string) []string {
	t.Helper()
	require.NotNil(t, r.Result, "run produced no result")
	require.NotEmpty(t, r.Result.OutputDir, "run wrote no output directory")

	data, err := os.ReadFile(filepath.Join(r.Result.OutputDir, name))
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSuffix(data, []byte("\n")), []byte("\n"))
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = string(l)
	}
	return out
}
