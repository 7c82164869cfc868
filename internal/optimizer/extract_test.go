package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var diamondGraph = []string{
	"4",
	"1 D 2 3",
	"2 A 4 0",
	"3 B 4 0",
	"4 end 0 0",
}

func TestExtractCommon_MatchesByLabelNotComputation(t *testing.T) {
	o := newTestOptimizer(t, diamondGraph,
		[]string{"A = p", "B = q", "", "p : x:=1", "q : x:=1"},
	)
	linesBefore := o.g.Lines()

	changed, err := o.ExtractCommon(testCtx(), blockByName(t, o.g, "D"))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, linesBefore, o.g.Lines())
	assert.Zero(t, o.Stats().Extractions)
}

func TestExtractCommon_HoistsSharedLabel(t *testing.T) {
	o := newTestOptimizer(t, diamondGraph,
		[]string{"A = p r", "B = q r", "", "p : x:=1", "q : y:=2", "r : z:=3"},
	)
	maxBefore := o.g.MaxID()

	changed, err := o.ExtractCommon(testCtx(), blockByName(t, o.g, "D"))
	require.NoError(t, err)
	require.True(t, changed)

	assert.Equal(t, []string{
		"5",
		"  1 Y1 2 0",
		"  2 D 3 4",
		"  3 A 5 0",
		"  4 B 5 0",
		"  5 end 0 0",
	}, o.g.Lines())
	assert.Equal(t, maxBefore+1, o.g.MaxID())

	a, _ := o.t.Labels("A")
	b, _ := o.t.Labels("B")
	hoisted, _ := o.t.Labels("Y1")
	assert.Equal(t, []string{"p"}, a)
	assert.Equal(t, []string{"q"}, b)
	assert.Equal(t, []string{"r"}, hoisted)

	assert.Equal(t, 1, o.Stats().Extractions)
	assert.NoError(t, o.validate())
}

func TestExtractCommon_SeveralLabelsWithPredecessor(t *testing.T) {
	o := newTestOptimizer(t,
		[]string{"6", "1 Y1 2 0", "2 X1 3 5", "3 Y2 4 0", "4 Y3 6 0", "5 Y4 6 0", "6 End 0 0"},
		[]string{
			"Y1 = y1", "Y2 = y2 y5", "Y3 = y3", "Y4 = y3 y4 y2",
			"",
			"y1 : a:=1", "y2 : b:=2", "y3 : c:=3", "y4 : d:=4", "y5 : e:=5",
		},
	)

	changed, err := o.ExtractCommon(testCtx(), blockByName(t, o.g, "X1"))
	require.NoError(t, err)
	require.True(t, changed)

	// Hoisted in path1 order: y2 then y3. Y3 lost its only label.
	assert.Equal(t, []string{
		"7",
		"  1 Y1 2 0",
		"  2 Y5 3 0",
		"  3 Y6 4 0",
		"  4 X1 5 7",
		"  5 Y2 8 0",
		"  7 Y4 8 0",
		"  8 End 0 0",
	}, o.g.Lines())

	for name, expected := range map[string][]string{
		"Y5": {"y2"},
		"Y6": {"y3"},
		"Y2": {"y5"},
		"Y4": {"y4"},
	} {
		labels, ok := o.t.Labels(name)
		require.True(t, ok, name)
		assert.Equal(t, expected, labels, name)
	}
	assert.False(t, o.t.HasBlock("Y3"))
	assert.NoError(t, o.validate())

	// Every hoisted label occurs once, in the new blocks only.
	assert.Equal(t, []string{"y1", "y2", "y3", "y4", "y5"}, allLabels(o.t))
}

func TestExtractCommon_Preconditions(t *testing.T) {
	t.Run("decision with several predecessors", func(t *testing.T) {
		o := newTestOptimizer(t,
			[]string{"7", "1 X0 2 3", "2 Y1 4 0", "3 Y2 4 0", "4 X1 5 6", "5 Y3 7 0", "6 Y4 7 0", "7 End 0 0"},
			[]string{
				"Y1 = y1", "Y2 = y2", "Y3 = y3", "Y4 = y3",
				"", "y1 : a:=1", "y2 : b:=1", "y3 : c:=1",
			},
		)
		changed, err := o.ExtractCommon(testCtx(), blockByName(t, o.g, "X1"))
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("arm reached from elsewhere", func(t *testing.T) {
		o := newTestOptimizer(t,
			[]string{"4", "1 X1 2 3", "2 Y1 3 0", "3 Y2 4 0", "4 End 0 0"},
			[]string{"Y1 = y1", "Y2 = y1", "", "y1 : a:=1"},
		)
		changed, err := o.ExtractCommon(testCtx(), blockByName(t, o.g, "X1"))
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("not a two-way decision", func(t *testing.T) {
		o := newTestOptimizer(t,
			[]string{"2", "1 X1 2 2", "2 End 0 0"},
			nil,
		)
		changed, err := o.ExtractCommon(testCtx(), blockByName(t, o.g, "X1"))
		require.NoError(t, err)
		assert.False(t, changed)
	})
}
