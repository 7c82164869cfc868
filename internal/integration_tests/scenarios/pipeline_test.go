package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/gsaopt/internal/testutil"
)

const programGSA = `9
1 Begin 2 0
2 Y1 3 0
3 Y2 4 0
4 X1 5 7
5 Y3 6 0
6 Y4 9 0
7 Y5 8 0
8 Y6 9 0
9 End 0 0
`

const programTXT = `Y1 = y1
Y2 = y2
Y3 = y3 y5
Y4 = y4
Y5 = y3
Y6 = y6

y1 : a:=1
y2 : b:=a+1
y3 : c:=2
y4 : d:=c
y5 : e:=1
y6 : f:=b
`

var optimizedGSA = []string{
	"6",
	"  1 Begin 2 0",
	"  2 Y1 3 0",
	"  3 X1 4 5",
	"  4 Y2 6 0",
	"  5 Y3 6 0",
	"  6 End 0 0",
}

var optimizedTXT = []string{
	"Y1 = y1 y2 y3",
	"Y2 = y4 y5",
	"Y3 = y6",
	"",
	"y1 : a:=1",
	"y2 : b:=a+1",
	"y3 : c:=2",
	"y4 : d:=c",
	"y5 : e:=1",
	"y6 : f:=b",
}

func TestPipeline_MergeExtractCanonicalize(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"prog.gsa": programGSA,
		"prog.txt": programTXT,
		"prog.mic": "LOAD R1\nSTORE R2\n",
	}

	// --- Act ---
	res := testutil.RunIntegrationTest(t, files)

	// --- Assert ---
	require.NoError(t, res.Err)
	testutil.RequireLines(t, optimizedGSA, res.OutputLines(t, "prog.gsa"))
	testutil.RequireLines(t, optimizedTXT, res.OutputLines(t, "prog.txt"))
	testutil.RequireLines(t, []string{"LOAD R1", "STORE R2"}, res.OutputLines(t, "prog.mic"))
	require.Contains(t, res.LogOutput, "Optimization finished.")
}

// TestPipeline_SecondRunIsIdempotent feeds the output of one run into
// another and expects nothing to change.
func TestPipeline_SecondRunIsIdempotent(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	first := testutil.RunIntegrationTest(t, map[string]string{"prog.gsa": programGSA, "prog.txt": programTXT})
	require.NoError(t, first.Err)

	files := map[string]string{
		"prog.gsa": joinLines(first.OutputLines(t, "prog.gsa")),
		"prog.txt": joinLines(first.OutputLines(t, "prog.txt")),
	}

	// --- Act ---
	second := testutil.RunIntegrationTest(t, files)

	// --- Assert ---
	require.NoError(t, second.Err)
	require.Equal(t, 0, second.Result.Stats.Merges)
	require.Equal(t, 0, second.Result.Stats.Extractions)
	require.Equal(t, 0, second.Result.Stats.Renames)
	testutil.RequireLines(t, optimizedGSA, second.OutputLines(t, "prog.gsa"))
	testutil.RequireLines(t, optimizedTXT, second.OutputLines(t, "prog.txt"))
}

func joinLines(lines []string) string {
	var s string
	for _, l := range lines {
		s += l + "\n"
	}
	return s
}
