package optimizer

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/gsaopt/internal/ctxlog"
	"github.com/vk/gsaopt/internal/graph"
	"github.com/vk/gsaopt/internal/optable"
)

// testCtx returns a context carrying a silent logger.
func testCtx() context.Context {
	return ctxlog.WithLogger(context.Background(), ctxlog.Discard())
}

// load parses both resources and validates them against each other.
func load(t *testing.T, graphLines, tableLines []string) (*graph.Graph, *optable.Table) {
	t.Helper()
	g, err := graph.Parse(graphLines, graph.DefaultOptions())
	require.NoError(t, err)
	tbl, err := optable.Parse(tableLines)
	require.NoError(t, err)
	require.NoError(t, tbl.Validate(g))
	return g, tbl
}

// newTestOptimizer builds an optimizer with the default options.
func newTestOptimizer(t *testing.T, graphLines, tableLines []string) *Optimizer {
	t.Helper()
	g, tbl := load(t, graphLines, tableLines)
	return New(g, tbl, DefaultOptions())
}

// blockByName finds a live block by name.
func blockByName(t *testing.T, g *graph.Graph, name string) *graph.Block {
	t.Helper()
	for _, b := range g.Blocks() {
		if b.Name == name {
			return b
		}
	}
	require.FailNow(t, "block not found", name)
	return nil
}

// allLabels returns the sorted multiset of labels listed by every block entry.
func allLabels(tbl *optable.Table) []string {
	var labels []string
	for _, name := range tbl.BlockNames() {
		l, _ := tbl.Labels(name)
		labels = append(labels, l...)
	}
	slices.Sort(labels)
	return labels
}

// sampleGraph is a program with a straight-line prologue, one decision with
// two arms sharing label y3, and a common end.
var sampleGraph = []string{
	"9",
	"1 Begin 2 0",
	"2 Y1 3 0",
	"3 Y2 4 0",
	"4 X1 5 7",
	"5 Y3 6 0",
	"6 Y4 9 0",
	"7 Y5 8 0",
	"8 Y6 9 0",
	"9 End 0 0",
}

var sampleTable = []string{
	"Y1 = y1",
	"Y2 = y2",
	"Y3 = y3 y5",
	"Y4 = y4",
	"Y5 = y3",
	"Y6 = y6",
	"",
	"y1 : a:=1",
	"y2 : b:=a+1",
	"y3 : c:=2",
	"y4 : d:=c",
	"y5 : e:=1",
	"y6 : f:=b",
}
