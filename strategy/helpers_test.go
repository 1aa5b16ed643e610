package strategy

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/topoplace/graph"
	"github.com/arloliu/topoplace/internal/metrics"
	"github.com/arloliu/topoplace/types"
)

func mustGraph(t *testing.T, vCount int, edges ...types.Edge) *graph.WeightedGraph {
	t.Helper()

	g, err := graph.New(vCount, len(edges))
	require.NoError(t, err)
	for _, e := range edges {
		_, err := g.AddEdge(e.V, e.W, e.Weight)
		require.NoError(t, err)
	}

	return g
}

func edge(v, w types.Vertex, weight float64) types.Edge {
	return types.Edge{V: v, W: w, Weight: weight}
}

// countingMetrics records the partition metrics a test asserts on.
type countingMetrics struct {
	*metrics.NopMetrics

	mu        sync.Mutex
	advances  []int
	crossings int
	merges    int
	attempts  map[bool]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{NopMetrics: metrics.NewNop(), attempts: map[bool]int{}}
}

func (m *countingMetrics) RecordFrontierAdvance(device int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advances = append(m.advances, device)
}

func (m *countingMetrics) RecordUnmergedCrossing() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.crossings++
}

func (m *countingMetrics) RecordGroupMerge() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.merges++
}

func (m *countingMetrics) RecordPartitionAttempt(_ string, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts[success]++
}
