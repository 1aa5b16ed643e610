package publisher

import (
	"time"

	"github.com/arloliu/topoplace/types"
)

// DeviceAssignment is the record stored for one device.
type DeviceAssignment struct {
	Version     int64          `json:"version"`
	PlanID      string         `json:"planId"`
	Device      int            `json:"device"`
	Capacity    int            `json:"capacity"`
	Vertices    []types.Vertex `json:"vertices"`
	PublishedAt time.Time      `json:"publishedAt"`
}

// Summary is the record stored under "<prefix>.summary".
type Summary struct {
	Version     int64                  `json:"version"`
	PlanID      string                 `json:"planId"`
	Strategy    string                 `json:"strategy"`
	Devices     int                    `json:"devices"`
	Capacities  types.CapacitySchedule `json:"capacities"`
	Unplaced    []types.Vertex         `json:"unplaced,omitempty"`
	CutWeight   float64                `json:"cutWeight"`
	PublishedAt time.Time              `json:"publishedAt"`
}

// versioned decodes just the version of any record.
type versioned struct {
	Version int64 `json:"version"`
}
