package graph

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteAdjacency(t *testing.T) {
	g, err := New(3, 3)
	require.NoError(t, err)
	_, err = g.AddEdge(0, 1, 2.5)
	require.NoError(t, err)
	_, err = g.AddEdge(1, 2, 4)
	require.NoError(t, err)
	_, err = g.AddEdge(0, 2, 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteAdjacency(&buf, g))

	want := "3 3\n" +
		"0\t0-1 2.5\t\n" +
		"1\t1-0 2.5\t1-2 4\t\n" +
		"2\t2-1 4\t\n"
	require.Equal(t, want, buf.String())
}
