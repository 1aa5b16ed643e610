// Package hash implements the consistent hash ring used to place vertices
// on devices.
package hash

import (
	"encoding/binary"
	"iter"
	"slices"
	"strconv"

	"github.com/zeebo/xxh3"

	"github.com/arloliu/topoplace/types"
)

// Ring implements a consistent hash ring over device indexes with virtual nodes.
//
// Vertices map to devices with stable assignments: adding a device at the end
// of the schedule moves only the vertices that land on its virtual nodes.
type Ring struct {
	// nodes contains all virtual nodes on the ring, sorted by hash
	nodes []virtualNode

	devices int

	// seed for hash function (0 means unseeded)
	seed uint64
}

type virtualNode struct {
	hash   uint64 // Position on the ring
	device int    // Device owning this virtual node
}

// NewRing creates a ring holding virtualNodesPerDevice nodes for each of
// devices devices.
//
// Parameters:
//   - devices: Number of devices (device ids 0..devices-1)
//   - virtualNodesPerDevice: Virtual nodes per device (higher = smoother distribution)
//   - seed: Seed for the hash function (0 for unseeded)
//
// Returns:
//   - *Ring: Initialized hash ring
//
// Example:
//
//	ring := hash.NewRing(len(capacities), 150, 0)
//	device := ring.Locate(vertex)
func NewRing(devices, virtualNodesPerDevice int, seed uint64) *Ring {
	if devices < 0 {
		devices = 0
	}
	if virtualNodesPerDevice < 1 {
		virtualNodesPerDevice = 1
	}

	ring := &Ring{
		nodes:   make([]virtualNode, 0, devices*virtualNodesPerDevice),
		devices: devices,
		seed:    seed,
	}

	for d := range devices {
		ring.addDevice(d, virtualNodesPerDevice)
	}

	slices.SortFunc(ring.nodes, func(a, b virtualNode) int {
		if a.hash < b.hash {
			return -1
		}
		if a.hash > b.hash {
			return 1
		}

		return a.device - b.device
	})

	return ring
}

// Locate returns the device owning vertex v, or -1 for an empty ring.
func (r *Ring) Locate(v types.Vertex) int {
	if len(r.nodes) == 0 {
		return -1
	}

	return r.nodes[r.search(r.hashVertex(v))].device
}

// Successors yields every device once, in clockwise ring order starting at
// the node owning v. Callers stop early by breaking out of the loop.
func (r *Ring) Successors(v types.Vertex) iter.Seq[int] {
	return func(yield func(int) bool) {
		if len(r.nodes) == 0 {
			return
		}

		seen := make([]bool, r.devices)
		remaining := r.devices
		start := r.search(r.hashVertex(v))
		for i := range r.nodes {
			d := r.nodes[(start+i)%len(r.nodes)].device
			if seen[d] {
				continue
			}
			seen[d] = true
			if !yield(d) {
				return
			}
			remaining--
			if remaining == 0 {
				return
			}
		}
	}
}

// Devices returns the number of devices on the ring.
func (r *Ring) Devices() int {
	return r.devices
}

// Size returns the total number of virtual nodes on the ring.
func (r *Ring) Size() int {
	return len(r.nodes)
}

// DeviceKey returns the ring identity of device d.
func DeviceKey(d int) string {
	return "device-" + strconv.Itoa(d)
}

func (r *Ring) addDevice(device, virtualNodes int) {
	key := DeviceKey(device)
	for i := range virtualNodes {
		// Fold the device key, then the vnode index with the previous hash as seed.
		var h uint64
		if r.seed != 0 {
			h = xxh3.HashStringSeed(key, r.seed)
		} else {
			h = xxh3.HashString(key)
		}

		var ib [8]byte
		binary.LittleEndian.PutUint64(ib[:], uint64(i)) //nolint:gosec
		h = xxh3.HashSeed(ib[:], h)

		r.nodes = append(r.nodes, virtualNode{hash: h, device: device})
	}
}

func (r *Ring) hashVertex(v types.Vertex) uint64 {
	var vb [8]byte
	binary.LittleEndian.PutUint64(vb[:], uint64(v)) //nolint:gosec
	if r.seed != 0 {
		return xxh3.HashSeed(vb[:], r.seed)
	}

	return xxh3.Hash(vb[:])
}

// search returns the index of the first node >= target, wrapping to 0.
func (r *Ring) search(target uint64) int {
	idx, _ := slices.BinarySearchFunc(r.nodes, target, func(node virtualNode, t uint64) int {
		if node.hash < t {
			return -1
		}
		if node.hash > t {
			return 1
		}

		return 0
	})
	if idx >= len(r.nodes) {
		idx = 0
	}

	return idx
}
