package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/gsaopt/internal/optimizer"
)

func TestPrinter_Plain(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, false)

	require.NoError(t, p.Listing("Graph before", []string{"2", "  1 Y1 2 0", "  2 End 0 0"}))
	require.NoError(t, p.Stats(optimizer.Stats{Walks: 2, Merges: 1}))
	require.NoError(t, p.Written("out", []string{"out/p.gsa"}))

	want := "Graph before\n" +
		"2\n" +
		"  1 Y1 2 0\n" +
		"  2 End 0 0\n" +
		"\n" +
		"walks 2, merges 1, extractions 0, dead stores 0, renames 0\n" +
		"Written to out\n" +
		"  out/p.gsa\n"
	assert.Equal(t, want, buf.String())
}

func TestPrinter_ColorKeepsText(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true)
	require.NoError(t, p.Listing("Table after", []string{"Y1 = y1"}))
	assert.Contains(t, buf.String(), "Table after")
	assert.Contains(t, buf.String(), "Y1 = y1")
}

func TestColorEnabled(t *testing.T) {
	assert.False(t, ColorEnabled(&bytes.Buffer{}, false))
	assert.False(t, ColorEnabled(&bytes.Buffer{}, true))
}
