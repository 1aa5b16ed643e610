package types

// GroupState represents whether a device group still accepts vertices.
//
// Groups progress in one direction only:
//
//	GroupOpen → GroupClosed
//
// A group closes when its size reaches the capacity of the frontier device.
type GroupState int

const (
	// GroupOpen indicates the group is still accepting vertices.
	GroupOpen GroupState = iota

	// GroupClosed indicates the group is full and frozen.
	GroupClosed
)

// String returns the string representation of the group state.
func (s GroupState) String() string {
	switch s {
	case GroupOpen:
		return "Open"
	case GroupClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}
