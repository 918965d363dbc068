package collision

import (
	"fmt"
	"time"

	"github.com/zeusync/collision/internal/core/geometry"
	"github.com/zeusync/collision/internal/core/observability/log"
)

// Handler is the polygon collision registry. It borrows Objects, owns its
// static geometry and runs the per-frame sweep.
//
// Handler is not safe for concurrent use. Registry calls made from inside
// a callback during TestCollisions are queued and applied once the
// outermost sweep returns; a callback may run a nested sweep.
type Handler struct {
	arena   *Arena
	objects []*Object
	static  []StaticGeometry

	sweepDepth int
	pending    []pendingOp

	logger  log.Log
	sinks   []Sink
	frame   uint64
	metrics Metrics
}

type pendingKind uint8

const (
	pendingAddObject pendingKind = iota
	pendingRemoveObject
	pendingAddStatic
	pendingRemoveStatic
	pendingClearStatic
)

type pendingOp struct {
	kind   pendingKind
	object *Object
	static StaticGeometry
}

// Option configures a Handler.
type Option func(*Handler)

func WithLogger(logger log.Log) Option {
	return func(h *Handler) { h.logger = logger }
}

// WithSink attaches a sink that receives every dispatched event.
func WithSink(sink Sink) Option {
	return func(h *Handler) { h.sinks = append(h.sinks, sink) }
}

// NewHandler returns an empty handler resolving polygons through arena.
func NewHandler(arena *Arena, opts ...Option) *Handler {
	h := &Handler{
		arena:  arena,
		logger: log.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Arena() *Arena { return h.arena }

// AddObject registers o for collision testing. During a sweep the call is
// queued; a duplicate is still reported right away.
func (h *Handler) AddObject(o *Object) error {
	if o == nil {
		return ErrNilObject
	}
	if h.sweepDepth > 0 {
		if h.registeredAfterPending(o) {
			return fmt.Errorf("%w: %s", ErrObjectRegistered, o)
		}
		h.pending = append(h.pending, pendingOp{kind: pendingAddObject, object: o})
		return nil
	}
	if h.indexOf(o) >= 0 {
		return fmt.Errorf("%w: %s", ErrObjectRegistered, o)
	}
	h.objects = append(h.objects, o)
	h.logger.Debug("object registered", log.Uint64("id", uint64(o.id)), log.Int("type", int(o.typ)))
	return nil
}

// RemoveObject deregisters o. The object's polygon stays in the arena.
func (h *Handler) RemoveObject(o *Object) error {
	if o == nil {
		return ErrNilObject
	}
	if h.sweepDepth > 0 {
		if !h.registeredAfterPending(o) {
			return fmt.Errorf("%w: %s", ErrObjectNotFound, o)
		}
		h.pending = append(h.pending, pendingOp{kind: pendingRemoveObject, object: o})
		return nil
	}
	i := h.indexOf(o)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, o)
	}
	h.objects = append(h.objects[:i], h.objects[i+1:]...)
	h.logger.Debug("object removed", log.Uint64("id", uint64(o.id)))
	return nil
}

func (h *Handler) indexOf(o *Object) int {
	for i, registered := range h.objects {
		if registered == o {
			return i
		}
	}
	return -1
}

// registeredAfterPending reports whether o is registered once the queued
// calls are applied.
func (h *Handler) registeredAfterPending(o *Object) bool {
	registered := h.indexOf(o) >= 0
	for _, op := range h.pending {
		if op.object != o {
			continue
		}
		switch op.kind {
		case pendingAddObject:
			registered = true
		case pendingRemoveObject:
			registered = false
		}
	}
	return registered
}

// Objects returns the registered objects in registration order.
func (h *Handler) Objects() []*Object {
	out := make([]*Object, len(h.objects))
	copy(out, h.objects)
	return out
}

// AddStaticGeometry stores a copy of p tagged with typ.
func (h *Handler) AddStaticGeometry(p *geometry.Polygon, typ Type) error {
	if p == nil {
		return ErrNilPolygon
	}
	g := StaticGeometry{Polygon: p.Clone(), Type: typ}
	if h.sweepDepth > 0 {
		h.pending = append(h.pending, pendingOp{kind: pendingAddStatic, static: g})
		return nil
	}
	h.static = append(h.static, g)
	return nil
}

// RemoveStaticGeometry removes the first entry structurally equal to
// (p, typ). It reports whether an entry matched; during a sweep it reports
// whether the removal was queued.
func (h *Handler) RemoveStaticGeometry(p *geometry.Polygon, typ Type) bool {
	if p == nil {
		return false
	}
	g := StaticGeometry{Polygon: p.Clone(), Type: typ}
	if h.sweepDepth > 0 {
		h.pending = append(h.pending, pendingOp{kind: pendingRemoveStatic, static: g})
		return true
	}
	return h.removeStatic(g)
}

func (h *Handler) removeStatic(g StaticGeometry) bool {
	fp := g.Polygon.Fingerprint()
	for i, s := range h.static {
		if s.Type != g.Type || s.Polygon.Fingerprint() != fp {
			continue
		}
		if s.Equal(g) {
			h.static = append(h.static[:i], h.static[i+1:]...)
			return true
		}
	}
	return false
}

// ClearStaticGeometry drops every static entry.
func (h *Handler) ClearStaticGeometry() {
	if h.sweepDepth > 0 {
		h.pending = append(h.pending, pendingOp{kind: pendingClearStatic})
		return
	}
	h.static = nil
}

// StaticGeometry returns copies of the static entries in insertion order.
func (h *Handler) StaticGeometry() []StaticGeometry {
	out := make([]StaticGeometry, len(h.static))
	for i, g := range h.static {
		out[i] = StaticGeometry{Polygon: g.Polygon.Clone(), Type: g.Type}
	}
	return out
}

// TestPolygons is the registry-free narrow phase.
func (h *Handler) TestPolygons(a, b *geometry.Polygon) (Contact, bool) {
	return TestPolygons(a, b)
}

// Report summarizes one TestCollisions sweep. Events holds every event
// handed to a callback, in dispatch order, so callers that prefer to
// dispatch themselves can drain it instead of installing callbacks.
type Report struct {
	Frame              uint64
	Objects            int
	StaticGeometry     int
	PairsTested        int
	BroadPhaseRejected int
	StaleHandles       int
	Contacts           int
	Events             []Event
	Duration           time.Duration
}

// TestCollisions runs the per-frame sweep: every object pair (i < j), then
// every object against every static entry. Callbacks run inline.
func (h *Handler) TestCollisions() Report {
	start := time.Now()
	h.frame++
	h.sweepDepth++

	objects := make([]*Object, len(h.objects))
	copy(objects, h.objects)
	static := make([]StaticGeometry, len(h.static))
	copy(static, h.static)

	report := Report{Frame: h.frame, Objects: len(objects), StaticGeometry: len(static)}

	// Resolve handles once; a stale handle drops the object from this sweep.
	shapes := make([]*geometry.Polygon, len(objects))
	for i, o := range objects {
		p, ok := h.arena.Lookup(o.polygon)
		if !ok {
			report.StaleHandles++
			h.logger.Debug("stale polygon handle", log.Uint64("id", uint64(o.id)), log.Uint64("handle", uint64(o.polygon)))
			continue
		}
		shapes[i] = p
	}

	func() {
		defer h.finishSweep()

		for i := 0; i < len(objects); i++ {
			if shapes[i] == nil {
				continue
			}
			for j := i + 1; j < len(objects); j++ {
				if shapes[j] == nil {
					continue
				}
				report.PairsTested++
				c, hit, rejected := testPolygons(shapes[i], shapes[j])
				if rejected {
					report.BroadPhaseRejected++
				}
				if !hit {
					continue
				}
				report.Contacts++
				h.dispatch(&report, Event{
					Collided: true, Self: objects[i], Other: objects[j], Shape: shapes[i],
					Normal: c.Normal, Magnitude: c.Depth,
				})
				flipped := c.Flip()
				h.dispatch(&report, Event{
					Collided: true, Self: objects[j], Other: objects[i], Shape: shapes[j],
					Normal: flipped.Normal, Magnitude: flipped.Depth,
				})
			}
		}

		for i, o := range objects {
			if shapes[i] == nil {
				continue
			}
			for _, g := range static {
				report.PairsTested++
				c, hit, rejected := testPolygons(shapes[i], g.Polygon)
				if rejected {
					report.BroadPhaseRejected++
				}
				if !hit {
					continue
				}
				report.Contacts++
				h.dispatch(&report, Event{
					Collided: true, Self: o, Other: StaticRef{polygon: g.Polygon, typ: g.Type}, Shape: shapes[i],
					Normal: c.Normal, Magnitude: c.Depth,
				})
			}
		}
	}()

	report.Duration = time.Since(start)
	h.metrics.record(report)
	return report
}

func (h *Handler) dispatch(report *Report, ev Event) {
	report.Events = append(report.Events, ev)
	ev.Self.notify(ev)
	for _, s := range h.sinks {
		if err := s.Publish(ev); err != nil {
			h.logger.Warn("collision sink failed",
				log.Uint64("frame", h.frame),
				log.Uint64("id", uint64(ev.Self.id)),
				log.Error(err),
			)
		}
	}
}

// finishSweep leaves one sweep level. Leaving the outermost one applies the
// queued registry calls in the order they were made. It runs even when a
// callback panics.
func (h *Handler) finishSweep() {
	h.sweepDepth--
	if h.sweepDepth > 0 {
		return
	}
	pending := h.pending
	h.pending = nil
	for _, op := range pending {
		switch op.kind {
		case pendingAddObject:
			if err := h.AddObject(op.object); err != nil {
				h.logger.Warn("deferred add failed", log.Error(err))
			}
		case pendingRemoveObject:
			if err := h.RemoveObject(op.object); err != nil {
				h.logger.Warn("deferred remove failed", log.Error(err))
			}
		case pendingAddStatic:
			h.static = append(h.static, op.static)
		case pendingRemoveStatic:
			if !h.removeStatic(op.static) {
				h.logger.Debug("deferred static removal matched nothing", log.Int("type", int(op.static.Type)))
			}
		case pendingClearStatic:
			h.static = nil
		}
	}
}

// Frame returns the number of sweeps run so far.
func (h *Handler) Frame() uint64 { return h.frame }

// Metrics returns the cumulative sweep counters.
func (h *Handler) Metrics() Metrics { return h.metrics }
