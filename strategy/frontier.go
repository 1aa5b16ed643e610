package strategy

import (
	"fmt"
	"slices"

	"github.com/arloliu/topoplace/types"
)

// frontier is the state of one GreedyEdge run.
//
// Group i is bound to device i. groups[:allocated] are closed and
// groups[allocated:] are open; allocated only grows, except that a merge may
// remove an open group and shift later groups to lower devices.
type frontier struct {
	groups    []types.Group
	allocated int
	caps      types.CapacitySchedule

	// owner maps a vertex to its group index, -1 while unplaced.
	owner []int

	onAdvance func(device int)
}

func newFrontier(vCount int, caps types.CapacitySchedule, onAdvance func(device int)) *frontier {
	owner := make([]int, vCount)
	for i := range owner {
		owner[i] = -1
	}
	if onAdvance == nil {
		onAdvance = func(int) {}
	}

	return &frontier{
		caps:      caps,
		owner:     owner,
		onAdvance: onAdvance,
	}
}

// capacity returns the capacity of device i, or ErrDeviceExhausted when the
// schedule has no such device.
func (f *frontier) capacity(i int) (int, error) {
	c, ok := f.caps.At(i)
	if !ok {
		return 0, fmt.Errorf("%w: device %d needed, schedule has %d devices",
			types.ErrDeviceExhausted, i, len(f.caps))
	}

	return c, nil
}

func (f *frontier) state(i int) types.GroupState {
	if i < f.allocated {
		return types.GroupClosed
	}

	return types.GroupOpen
}

func (f *frontier) checkVertex(v types.Vertex) error {
	if v < 0 || v >= len(f.owner) {
		return fmt.Errorf("%w: vertex %d outside [0, %d)", types.ErrInvalidInput, v, len(f.owner))
	}

	return nil
}

// closed reports whether v sits in a closed group.
func (f *frontier) closed(v types.Vertex) bool {
	g := f.owner[v]
	return g >= 0 && f.state(g) == types.GroupClosed
}

// openGroupOf returns the open group holding v, or -1.
func (f *frontier) openGroupOf(v types.Vertex) int {
	g := f.owner[v]
	if g >= 0 && f.state(g) == types.GroupOpen {
		return g
	}

	return -1
}

func (f *frontier) full(i int) bool {
	c, ok := f.caps.At(i)
	return ok && len(f.groups[i]) >= c
}

// seed opens group 0 with both endpoints of the heaviest edge.
func (f *frontier) seed(e types.Edge) error {
	c, err := f.capacity(0)
	if err != nil {
		return err
	}
	if c < 2 {
		return fmt.Errorf("%w: device 0 holds %d vertices", types.ErrSeedCapacity, c)
	}
	if _, err := f.newGroup(e.V, e.W); err != nil {
		return err
	}
	f.settle()

	return nil
}

// newGroup appends a group bound to the next unused device.
func (f *frontier) newGroup(vs ...types.Vertex) (int, error) {
	idx := len(f.groups)
	if _, err := f.capacity(idx); err != nil {
		return -1, err
	}

	g := make(types.Group, 0, len(vs))
	for _, v := range vs {
		g = append(g, v)
		f.owner[v] = idx
	}
	f.groups = append(f.groups, g)

	return idx, nil
}

// placeOne places a vertex whose edge partner is already settled.
func (f *frontier) placeOne(v types.Vertex) error {
	if f.openGroupOf(v) >= 0 {
		return nil
	}
	if _, err := f.newGroup(v); err != nil {
		return err
	}
	f.settle()

	return nil
}

// placePair places two unplaced vertices together when the next device can
// hold both, otherwise in two singleton groups.
func (f *frontier) placePair(v, w types.Vertex) error {
	c, err := f.capacity(len(f.groups))
	if err != nil {
		return err
	}

	if c >= 2 {
		_, err = f.newGroup(v, w)
	} else if _, err = f.newGroup(v); err == nil {
		_, err = f.newGroup(w)
	}
	if err != nil {
		return err
	}
	f.settle()

	return nil
}

// join appends v to open group idx, or opens a new group for v when idx is
// already at capacity.
func (f *frontier) join(idx int, v types.Vertex) error {
	if f.full(idx) {
		return f.placeOne(v)
	}

	f.groups[idx] = append(f.groups[idx], v)
	f.owner[v] = idx
	f.settle()

	return nil
}

// merge moves open group b into open group a (a < b) when the result fits
// device a and every group after b still fits the device it shifts onto.
// It reports whether the merge happened.
func (f *frontier) merge(a, b int) bool {
	if a > b {
		a, b = b, a
	}

	c, err := f.capacity(a)
	if err != nil || len(f.groups[a])+len(f.groups[b]) > c {
		return false
	}
	for i := b + 1; i < len(f.groups); i++ {
		if c, ok := f.caps.At(i - 1); !ok || len(f.groups[i]) > c {
			return false
		}
	}

	f.groups[a] = append(f.groups[a], f.groups[b]...)
	f.groups = slices.Delete(f.groups, b, b+1)
	for i := a; i < len(f.groups); i++ {
		for _, v := range f.groups[i] {
			f.owner[v] = i
		}
	}
	f.settle()

	return true
}

// settle advances the frontier past every leading full open group.
func (f *frontier) settle() {
	for f.allocated < len(f.groups) && f.full(f.allocated) {
		f.onAdvance(f.allocated)
		f.allocated++
	}
}

// placeRemaining puts every unplaced vertex into the earliest open group
// with room, opening new groups as needed.
func (f *frontier) placeRemaining() error {
	next := f.allocated
	for v, g := range f.owner {
		if g >= 0 {
			continue
		}

		for next < len(f.groups) && f.full(next) {
			next++
		}
		if next < len(f.groups) {
			f.groups[next] = append(f.groups[next], v)
			f.owner[v] = next
			f.settle()

			continue
		}

		if _, err := f.newGroup(v); err != nil {
			return err
		}
		f.settle()
	}

	return nil
}

// allocation returns a copy of the groups built so far.
func (f *frontier) allocation() types.AllocationMap {
	return types.AllocationMap(f.groups).Clone()
}
