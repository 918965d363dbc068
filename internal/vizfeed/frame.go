package vizfeed

import (
	"github.com/zeusync/collision/internal/core/collision"
	"github.com/zeusync/collision/internal/core/geometry"
	"github.com/zeusync/collision/internal/sim"
	"github.com/zeusync/collision/pkg/sequence"
)

// Frame is one debug-feed message: the world after a sweep and the
// contacts it produced.
type Frame struct {
	Frame       uint64      `json:"frame"`
	PairsTested int         `json:"pairs_tested"`
	Contacts    int         `json:"contacts"`
	SweepMicros int64       `json:"sweep_us"`
	Shapes      []sim.Shape `json:"shapes"`
	Events      []Contact   `json:"events,omitempty"`
}

// Contact is the wire form of a collision event.
type Contact struct {
	Self      uint64            `json:"self"`
	OtherType int32             `json:"other_type"`
	Static    bool              `json:"static"`
	Normal    geometry.Vector2d `json:"normal"`
	Magnitude float32           `json:"magnitude"`
}

// NewFrame builds a frame from a sweep report and a scene snapshot.
func NewFrame(r collision.Report, shapes []sim.Shape) Frame {
	return Frame{
		Frame:       r.Frame,
		PairsTested: r.PairsTested,
		Contacts:    r.Contacts,
		SweepMicros: r.Duration.Microseconds(),
		Shapes:      shapes,
		Events:      sequence.ToArray(sequence.From(r.Events), newContact),
	}
}

func newContact(ev collision.Event) Contact {
	return Contact{
		Self:      uint64(ev.Self.ID()),
		OtherType: int32(ev.Other.Type()),
		Static:    ev.Other.Static(),
		Normal:    ev.Normal,
		Magnitude: ev.Magnitude,
	}
}
