package testutil

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// RequireLines fails the test with a line diff when got differs from want.
func RequireLines(t *testing.T, want, got []string) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		require.FailNow(t, "lines mismatch (-want +got)", diff)
	}
}

// AssertNothingWritten checks that the run left its output directory empty.
func AssertNothingWritten(t *testing.T, r *HarnessResult) {
	t.Helper()
	entries, err := os.ReadDir(r.OutBase)
	require.NoError(t, err)
	require.Empty(t, entries, "expected no output to be written")
}
