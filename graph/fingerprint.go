package graph

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xxh3"

	"github.com/arloliu/topoplace/types"
)

// Fingerprint hashes a graph together with a capacity schedule.
//
// Two inputs that a deterministic partitioner would treat identically hash to
// the same value: vertex count, the edge sequence in list order (endpoints and
// weight bits) and every capacity. The declared edge count is not hashed.
//
// Parameters:
//   - g: Graph to fingerprint
//   - capacities: Device capacities in fill order
//
// Returns:
//   - uint64: XXH3 64-bit fingerprint
func Fingerprint(g types.Graph, capacities types.CapacitySchedule) uint64 {
	edges := g.SortedEdges()
	buf := make([]byte, 0, 8*(2+3*len(edges)+len(capacities)))

	buf = binary.LittleEndian.AppendUint64(buf, uint64(g.VertexCount())) //nolint:gosec // counts are non-negative
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(edges)))
	for _, e := range edges {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(e.V)) //nolint:gosec
		buf = binary.LittleEndian.AppendUint64(buf, uint64(e.W)) //nolint:gosec
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(e.Weight))
	}

	h := xxh3.Hash(buf)
	for _, c := range capacities {
		var cb [8]byte
		binary.LittleEndian.PutUint64(cb[:], uint64(c)) //nolint:gosec
		h = xxh3.HashSeed(cb[:], h)
	}

	return h
}
