package sim

import (
	"fmt"
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/zeusync/collision/internal/core/collision"
	"github.com/zeusync/collision/internal/core/geometry"
	"github.com/zeusync/collision/internal/core/observability/log"
	"github.com/zeusync/collision/internal/core/systems"
)

// Options sizes a randomly spawned scene.
type Options struct {
	Bodies   int
	Seed     int64
	Width    float32
	Height   float32
	MaxSpeed float32
}

// Scene owns the moving bodies of the demo and keeps them registered with
// a collision handler. It is driven from the runner goroutine only.
type Scene struct {
	handler *collision.Handler
	bodies  []*Body
	logger  log.Log
}

func NewScene(h *collision.Handler, logger log.Log) *Scene {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Scene{handler: h, logger: logger}
}

// AddBody puts shape in the handler's arena and registers a body for it.
func (s *Scene) AddBody(shape *geometry.Polygon, velocity geometry.Vector2d, spin float32) (*Body, error) {
	if shape == nil {
		return nil, collision.ErrNilPolygon
	}
	b := &Body{shape: shape, Velocity: velocity, Spin: spin}
	handle := s.handler.Arena().Insert(shape)
	b.object = collision.NewObject(handle, BodyType,
		collision.WithCallback(b.resolve),
		collision.WithUserData(b),
	)
	if err := s.handler.AddObject(b.object); err != nil {
		s.handler.Arena().Remove(handle)
		return nil, fmt.Errorf("register body: %w", err)
	}
	s.bodies = append(s.bodies, b)
	return b, nil
}

// RemoveBody deregisters b and frees its arena slot.
func (s *Scene) RemoveBody(b *Body) error {
	if err := s.handler.RemoveObject(b.object); err != nil {
		return err
	}
	s.handler.Arena().Remove(b.object.PolygonHandle())
	for i, other := range s.bodies {
		if other == b {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
			break
		}
	}
	return nil
}

// Spawn adds opts.Bodies random squares and triangles inside the
// opts.Width x opts.Height area centered on the origin.
func (s *Scene) Spawn(opts Options) error {
	rng := rand.New(rand.NewSource(opts.Seed))
	between := func(lo, hi float32) float32 { return lo + rng.Float32()*(hi-lo) }

	for i := 0; i < opts.Bodies; i++ {
		size := between(12, 32)
		x := between(-opts.Width/2+size, opts.Width/2-size)
		y := between(-opts.Height/2+size, opts.Height/2-size)

		var shape *geometry.Polygon
		if i%2 == 0 {
			shape = geometry.NewRectangle(geometry.Vec(x, y), size, size)
		} else {
			shape = geometry.NewPolygonFromVertices(geometry.Vec(x, y),
				geometry.Vec(-size/2, -size/2),
				geometry.Vec(size/2, -size/2),
				geometry.Vec(0, size/2),
			)
		}
		shape.Rotate(between(0, 2*math32.Pi))

		heading := between(0, 2*math32.Pi)
		speed := between(0.3, 1) * opts.MaxSpeed
		velocity := geometry.Vec(speed, 0).Rotate(heading)

		if _, err := s.AddBody(shape, velocity, between(-1, 1)); err != nil {
			return err
		}
	}
	s.logger.Info("scene spawned", log.Int("bodies", opts.Bodies), log.Int64("seed", opts.Seed))
	return nil
}

// Bodies returns the bodies in spawn order.
func (s *Scene) Bodies() []*Body {
	out := make([]*Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

// Install registers the movement system and the collision sweep on r.
func (s *Scene) Install(r *systems.Runner, onReport func(collision.Report)) error {
	if err := r.RegisterSystem(&MovementSystem{scene: s}); err != nil {
		return err
	}
	return r.RegisterSystem(collision.NewSystem(s.handler, onReport))
}

// Shape is a world-space polygon as drawn by the debug feed.
type Shape struct {
	ID       uint64              `json:"id,omitempty"`
	Type     int32               `json:"type"`
	Static   bool                `json:"static"`
	Vertices []geometry.Vector2d `json:"vertices"`
}

// Snapshot returns every static entry followed by every body in world
// space.
func (s *Scene) Snapshot() []Shape {
	static := s.handler.StaticGeometry()
	out := make([]Shape, 0, len(static)+len(s.bodies))
	for _, g := range static {
		out = append(out, Shape{Type: int32(g.Type), Static: true, Vertices: g.Polygon.WorldVertices()})
	}
	for _, b := range s.bodies {
		out = append(out, Shape{
			ID:       uint64(b.ID()),
			Type:     int32(BodyType),
			Vertices: b.shape.WorldVertices(),
		})
	}
	return out
}

// MovementSystem integrates body velocity and spin before the sweep.
type MovementSystem struct {
	scene *Scene
}

var _ systems.System = (*MovementSystem)(nil)

func (m *MovementSystem) Name() string                           { return "movement" }
func (m *MovementSystem) Priority() systems.Priority             { return systems.PriorityNormal }
func (m *MovementSystem) ExecutionPhase() systems.ExecutionPhase { return systems.PhaseUpdate }

func (m *MovementSystem) Update(deltaTime float64) error {
	dt := float32(deltaTime)
	for _, b := range m.scene.bodies {
		b.integrate(dt)
	}
	return nil
}
