package collision

import (
	"fmt"
	"strconv"

	"github.com/zeusync/collision/internal/core/events/bus"
)

// Sink receives every event the handler dispatches, after the object's
// own callback. A failing sink is logged and never aborts the sweep.
type Sink interface {
	Publish(Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event) error

func (f SinkFunc) Publish(ev Event) error { return f(ev) }

// BusSource is the Source of collision events put on the bus.
const BusSource = "collision"

// EventType is the bus event type used for events received by objects of
// type t.
func EventType(t Type) string {
	return "collision." + strconv.Itoa(int(t))
}

// BusSink routes events onto an event bus topic keyed by the receiving
// object's type tag, so interested systems subscribe by tag rather than
// holding callbacks on every object.
type BusSink struct {
	bus   bus.EventBus
	topic string
}

var _ Sink = (*BusSink)(nil)

func NewBusSink(b bus.EventBus, topic string) *BusSink {
	return &BusSink{bus: b, topic: topic}
}

func (s *BusSink) Publish(ev Event) error {
	return s.bus.PublishToTopic(s.topic, bus.NewEvent(EventType(ev.Self.Type()), BusSource, ev))
}

// Subscribe registers fn for events received by objects of type t on the
// given bus topic.
func Subscribe(b bus.EventBus, topic string, t Type, fn Callback) (bus.Subscription, error) {
	return b.SubscribeTopic(topic, EventType(t), func(e bus.Event) error {
		ev, ok := e.Data().(Event)
		if !ok {
			return fmt.Errorf("unexpected payload %T on %s", e.Data(), e.Type())
		}
		fn(ev)
		return nil
	})
}
