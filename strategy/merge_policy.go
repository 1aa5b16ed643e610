package strategy

import (
	"fmt"
	"strings"
)

// MergePolicy decides what GreedyEdge does with an edge whose endpoints sit
// in two different open groups.
type MergePolicy int

const (
	// MergeNever leaves both groups as they are. The edge becomes a
	// cross-device edge and is reported through the logger and metrics.
	MergeNever MergePolicy = iota

	// MergeWhenFits moves the later group into the earlier one when the
	// combined size fits the earlier group's device. Otherwise it behaves
	// like MergeNever.
	MergeWhenFits
)

// String returns the configuration name of the policy.
func (p MergePolicy) String() string {
	switch p {
	case MergeNever:
		return "never"
	case MergeWhenFits:
		return "when-fits"
	default:
		return "unknown"
	}
}

// ParseMergePolicy parses "never" or "when-fits" (case-insensitive). An
// empty string selects MergeNever.
func ParseMergePolicy(s string) (MergePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "never":
		return MergeNever, nil
	case "when-fits":
		return MergeWhenFits, nil
	default:
		return MergeNever, fmt.Errorf("%w %q", ErrUnknownMergePolicy, s)
	}
}
