package optable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/gsaopt/internal/grammar"
	"github.com/vk/gsaopt/internal/graph"
)

var sampleLines = []string{
	"Y1 = y1 y2",
	"Y2 = y3",
	"",
	"y1 : x:=1",
	"y2 : y:=x+2",
	"y3 : z:=y",
}

func TestParse(t *testing.T) {
	tbl, err := Parse(sampleLines)
	require.NoError(t, err)

	assert.Equal(t, []string{"Y1", "Y2"}, tbl.BlockNames())
	labels, ok := tbl.Labels("Y1")
	require.True(t, ok)
	assert.Equal(t, []string{"y1", "y2"}, labels)

	op, ok := tbl.Operation("y2")
	require.True(t, ok)
	assert.Equal(t, "y", op.Produced)
	assert.Equal(t, []string{"x"}, op.Referenced)

	assert.Equal(t, sampleLines, tbl.Lines())
}

func TestParse_Errors(t *testing.T) {
	t.Run("malformed", func(t *testing.T) {
		_, err := Parse([]string{"Y1 = y1", "nonsense"})
		assert.ErrorIs(t, err, grammar.ErrMalformedTableLine)
		assert.ErrorContains(t, err, "line 2")
	})
	t.Run("duplicate block", func(t *testing.T) {
		_, err := Parse([]string{"Y1 = y1", "Y1 = y2"})
		assert.ErrorIs(t, err, ErrDuplicateEntry)
	})
	t.Run("duplicate label", func(t *testing.T) {
		_, err := Parse([]string{"y1 : x:=1", "y1 : x:=2"})
		assert.ErrorIs(t, err, ErrDuplicateEntry)
	})
	t.Run("computation without variable", func(t *testing.T) {
		_, err := Parse([]string{"y1 : 1:=2"})
		assert.ErrorIs(t, err, grammar.ErrMalformedTableLine)
	})
}

func TestMutations(t *testing.T) {
	tbl, err := Parse(sampleLines)
	require.NoError(t, err)

	require.NoError(t, tbl.RenameBlock("Y2", "Y5"))
	assert.Equal(t, []string{"Y1", "Y5"}, tbl.BlockNames())
	assert.ErrorIs(t, tbl.RenameBlock("Y5", "Y1"), ErrDuplicateEntry)
	assert.ErrorIs(t, tbl.RenameBlock("Y9", "Y8"), ErrDanglingReference)

	require.NoError(t, tbl.SetLabels("Y1", []string{"y2"}))
	assert.False(t, tbl.IsReferenced("y1"))
	assert.True(t, tbl.IsReferenced("y2"))

	tbl.DeleteOperation("y1")
	_, ok := tbl.Operation("y1")
	assert.False(t, ok)

	require.NoError(t, tbl.AddBlock("Y6", []string{"y3"}))
	tbl.DeleteBlock("Y5")
	assert.Equal(t, []string{"Y1 = y2", "Y6 = y3", "", "y2 : y:=x+2", "y3 : z:=y"}, tbl.Lines())
}

func TestOperations(t *testing.T) {
	tbl, err := Parse([]string{"Y1 = y1 y9", "y1 : x:=1"})
	require.NoError(t, err)

	_, err = tbl.Operations("Y1")
	assert.ErrorIs(t, err, ErrDanglingReference)

	ops, err := tbl.Operations("Begin")
	require.NoError(t, err)
	assert.Empty(t, ops)
}

func TestValidate(t *testing.T) {
	g, err := graph.Parse([]string{"3", "1 Begin 2 0", "2 Y1 3 0", "3 End 0 0"}, graph.DefaultOptions())
	require.NoError(t, err)

	good, err := Parse([]string{"Y1 = y1", "", "y1 : x:=1"})
	require.NoError(t, err)
	assert.NoError(t, good.Validate(g))

	missingEntry, err := Parse([]string{"Y2 = y1", "", "y1 : x:=1"})
	require.NoError(t, err)
	assert.ErrorIs(t, missingEntry.Validate(g), ErrDanglingReference)

	missingLabel, err := Parse([]string{"Y1 = y1 y2", "", "y1 : x:=1"})
	require.NoError(t, err)
	assert.ErrorIs(t, missingLabel.Validate(g), ErrDanglingReference)
}

func TestRenameBlocks(t *testing.T) {
	tbl, err := Parse([]string{"Y2 = y1", "Y1 = y2", "", "y1 : a:=1", "y2 : b:=2"})
	require.NoError(t, err)

	// A swap would collide with one-at-a-time renames.
	require.NoError(t, tbl.RenameBlocks(map[string]string{"Y2": "Y1", "Y1": "Y2"}))
	assert.Equal(t, []string{"Y1 = y1", "Y2 = y2", "", "y1 : a:=1", "y2 : b:=2"}, tbl.Lines())

	assert.ErrorIs(t, tbl.RenameBlocks(map[string]string{"Y1": "Y2"}), ErrDuplicateEntry)
	assert.ErrorIs(t, tbl.RenameBlocks(map[string]string{"Y7": "Y8"}), ErrDanglingReference)
}

func TestReorderAndSort(t *testing.T) {
	tbl, err := Parse([]string{"Y3 = y9 y1", "Y1 = y2", "Y2 = y3"})
	require.NoError(t, err)

	tbl.ReorderBlocks([]string{"Y1", "Y2", "missing"})
	tbl.SortLabels()
	assert.Equal(t, []string{"Y1", "Y2", "Y3"}, tbl.BlockNames())
	labels, _ := tbl.Labels("Y3")
	assert.Equal(t, []string{"y1", "y9"}, labels)
}

func TestValidate_SharedName(t *testing.T) {
	g, err := graph.Parse([]string{"3", "1 Y1 2 0", "2 Y1 3 0", "3 End 0 0"}, graph.DefaultOptions())
	require.NoError(t, err)
	tbl, err := Parse([]string{"Y1 = y1", "", "y1 : x:=1"})
	require.NoError(t, err)
	assert.ErrorIs(t, tbl.Validate(g), ErrDuplicateEntry)
}
