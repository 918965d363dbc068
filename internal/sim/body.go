package sim

import (
	"github.com/zeusync/collision/internal/core/collision"
	"github.com/zeusync/collision/internal/core/geometry"
)

// BodyType tags every moving body the scene spawns.
const BodyType collision.Type = 100

// Body is a moving polygon. Its shape lives in the scene's arena and is
// moved both by the movement system and by its own collision callback.
type Body struct {
	object   *collision.Object
	shape    *geometry.Polygon
	Velocity geometry.Vector2d
	// Spin in radians per second.
	Spin     float32
	Contacts uint64
}

func (b *Body) ID() collision.ObjectID      { return b.object.ID() }
func (b *Body) Object() *collision.Object   { return b.object }
func (b *Body) Position() geometry.Vector2d { return b.shape.Position() }

func (b *Body) integrate(dt float32) {
	b.shape.Translate(b.Velocity.Scale(dt))
	if b.Spin != 0 {
		b.shape.Rotate(b.Spin * dt)
	}
}

// resolve pushes the body out of whatever it hit and reflects the
// velocity component heading into the contact. Against another body each
// side takes half of the correction.
func (b *Body) resolve(ev collision.Event) {
	b.Contacts++
	push := ev.Magnitude
	if !ev.Other.Static() {
		push /= 2
	}
	ev.Shape.Translate(ev.Normal.Scale(push))

	if vn := b.Velocity.Dot(ev.Normal); vn < 0 {
		b.Velocity = b.Velocity.Sub(ev.Normal.Scale(2 * vn))
	}
}
