package sim

import (
	"sort"
	"sync"

	"github.com/zeusync/collision/internal/core/collision"
	"github.com/zeusync/collision/internal/core/events/bus"
)

// ContactTally counts contacts received by bodies, keyed by the type of
// whatever they hit. It listens on the bus, not on body callbacks.
type ContactTally struct {
	mu     sync.Mutex
	counts map[collision.Type]uint64
	sub    bus.Subscription
}

// NewContactTally subscribes to body events published on topic.
func NewContactTally(b bus.EventBus, topic string) (*ContactTally, error) {
	t := &ContactTally{counts: make(map[collision.Type]uint64)}
	sub, err := collision.Subscribe(b, topic, BodyType, t.record)
	if err != nil {
		return nil, err
	}
	t.sub = sub
	return t, nil
}

func (t *ContactTally) record(ev collision.Event) {
	t.mu.Lock()
	t.counts[ev.Other.Type()]++
	t.mu.Unlock()
}

// TypeCount is one row of a tally.
type TypeCount struct {
	Type  collision.Type
	Count uint64
}

// Counts returns the tally ordered by type.
func (t *ContactTally) Counts() []TypeCount {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]TypeCount, 0, len(t.counts))
	for typ, n := range t.counts {
		out = append(out, TypeCount{Type: typ, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// Close stops counting.
func (t *ContactTally) Close() error { return t.sub.Cancel() }
