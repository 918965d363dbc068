package collision

import "github.com/zeusync/collision/internal/core/geometry"

// StaticGeometry is immovable level geometry. The handler owns a copy of
// the polygon; static entries never carry callbacks or user data.
type StaticGeometry struct {
	Polygon *geometry.Polygon
	Type    Type
}

// Equal is structural: same polygon value and same type.
func (g StaticGeometry) Equal(o StaticGeometry) bool {
	return g.Type == o.Type && g.Polygon.Equal(o.Polygon)
}

// StaticRef is the read-only wrapper passed as Event.Other when an object
// hits static geometry.
type StaticRef struct {
	polygon *geometry.Polygon
	typ     Type
}

var _ Collider = StaticRef{}

func (r StaticRef) Type() Type    { return r.typ }
func (r StaticRef) UserData() any { return nil }
func (r StaticRef) Static() bool  { return true }

// Polygon returns a copy of the geometry polygon.
func (r StaticRef) Polygon() *geometry.Polygon { return r.polygon.Clone() }
