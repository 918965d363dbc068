package collision

import "github.com/zeusync/collision/internal/core/geometry"

// Contact is the narrow-phase result: a unit normal pointing away from the
// second polygon and the penetration depth along it.
type Contact struct {
	Normal geometry.Vector2d
	Depth  float32
}

// Flip returns the contact as seen from the other polygon.
func (c Contact) Flip() Contact {
	return Contact{Normal: c.Normal.Neg(), Depth: c.Depth}
}

// MTV returns the translation that separates the first polygon.
func (c Contact) MTV() geometry.Vector2d { return c.Normal.Scale(c.Depth) }

// Event is delivered to the callback of Self. Translating Self by
// Normal*Magnitude pushes it out of Other. Shape is Self's borrowed
// polygon so the callback can resolve the penetration in place.
type Event struct {
	Collided  bool
	Self      *Object
	Other     Collider
	Shape     *geometry.Polygon
	Normal    geometry.Vector2d
	Magnitude float32
}
