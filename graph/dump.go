package graph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteAdjacency writes a human-readable adjacency dump of g.
//
// The first line holds "vertexCount edgeCount". Each following line starts
// with the vertex id and lists its positively weighted neighbors as
// "i-j weight", all fields tab separated. The dump is diagnostic only.
func WriteAdjacency(w io.Writer, g *WeightedGraph) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%d %d\n", g.vCount, g.eCount)
	for i := range g.vCount {
		bw.WriteString(strconv.Itoa(i))
		bw.WriteByte('\t')
		for j, wt := range g.weight[i] {
			if wt > 0 {
				fmt.Fprintf(bw, "%d-%d %s\t", i, j, strconv.FormatFloat(wt, 'f', -1, 64))
			}
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}
