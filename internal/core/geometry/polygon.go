package geometry

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/chewxy/math32"
)

// Polygon is an ordered vertex list relative to a center position.
// Vertex order defines the implicit edge list i -> i+1 mod n. The cached
// radius bounds the magnitude of every vertex and only grows until Clear.
//
// A Polygon is owned by the entity it represents; the collision subsystem
// only borrows it.
type Polygon struct {
	position Vector2d
	vertices []Vector2d
	radius   float32
}

// NewPolygon returns an empty polygon centered at position.
func NewPolygon(position Vector2d) *Polygon {
	return &Polygon{position: position}
}

// NewPolygonFromVertices returns a polygon centered at position with the
// given relative vertices.
func NewPolygonFromVertices(position Vector2d, vertices ...Vector2d) *Polygon {
	p := &Polygon{position: position, vertices: make([]Vector2d, 0, len(vertices))}
	for _, v := range vertices {
		p.AddVertex(v)
	}
	return p
}

// NewRectangle returns an axis-aligned rectangle of the given size centered
// at position, with counter-clockwise vertices.
func NewRectangle(position Vector2d, width, height float32) *Polygon {
	hw, hh := width/2, height/2
	return NewPolygonFromVertices(position,
		Vector2d{-hw, -hh},
		Vector2d{hw, -hh},
		Vector2d{hw, hh},
		Vector2d{-hw, hh},
	)
}

// AddVertex appends v, already relative to the polygon position.
func (p *Polygon) AddVertex(v Vector2d) {
	p.vertices = append(p.vertices, v)
	p.grow(v)
}

// AddPoint appends an absolute point, converting it to a relative vertex.
func (p *Polygon) AddPoint(point Vector2d) {
	p.AddVertex(point.Sub(p.position))
}

func (p *Polygon) grow(v Vector2d) {
	if m := v.Magnitude(); m > p.radius {
		p.radius = m
	}
}

func (p *Polygon) Position() Vector2d { return p.position }

func (p *Polygon) SetPosition(position Vector2d) { p.position = position }

// Translate moves the polygon by delta.
func (p *Polygon) Translate(delta Vector2d) { p.position = p.position.Add(delta) }

// Rotate rotates every vertex by angle radians about the polygon center.
func (p *Polygon) Rotate(angle float32) {
	p.RotateBy(RotationFromAngle(angle))
}

// RotateBy applies m to every vertex in place. The position is untouched.
func (p *Polygon) RotateBy(m RotationMatrix) {
	for i, v := range p.vertices {
		p.vertices[i] = m.Apply(v)
		p.grow(p.vertices[i])
	}
}

func (p *Polygon) VertexCount() int { return len(p.vertices) }

// Vertex returns the i-th relative vertex.
func (p *Polygon) Vertex(i int) (Vector2d, error) {
	if i < 0 || i >= len(p.vertices) {
		return Vector2d{}, fmt.Errorf("%w: %d of %d", ErrVertexOutOfRange, i, len(p.vertices))
	}
	return p.vertices[i], nil
}

// WorldVertex returns the i-th vertex in absolute coordinates.
func (p *Polygon) WorldVertex(i int) (Vector2d, error) {
	v, err := p.Vertex(i)
	if err != nil {
		return Vector2d{}, err
	}
	return v.Add(p.position), nil
}

// Vertices returns a copy of the relative vertex list.
func (p *Polygon) Vertices() []Vector2d {
	out := make([]Vector2d, len(p.vertices))
	copy(out, p.vertices)
	return out
}

// WorldVertices returns the vertices in absolute coordinates.
func (p *Polygon) WorldVertices() []Vector2d {
	out := make([]Vector2d, len(p.vertices))
	for i, v := range p.vertices {
		out[i] = v.Add(p.position)
	}
	return out
}

func (p *Polygon) Radius() float32 { return p.radius }

// Clear removes every vertex and resets the radius.
func (p *Polygon) Clear() {
	p.vertices = p.vertices[:0]
	p.radius = 0
}

// IsDegenerate reports whether the polygon has fewer than 3 vertices.
func (p *Polygon) IsDegenerate() bool { return len(p.vertices) < 3 }

// Project returns the interval of dot(v, axis) over the local vertices.
func (p *Polygon) Project(axis Vector2d) (lo, hi float32) {
	if len(p.vertices) == 0 {
		return 0, 0
	}
	lo = p.vertices[0].Dot(axis)
	hi = lo
	for _, v := range p.vertices[1:] {
		d := v.Dot(axis)
		lo = math32.Min(lo, d)
		hi = math32.Max(hi, d)
	}
	return lo, hi
}

// Equal compares position, radius and the vertex sequence.
func (p *Polygon) Equal(o *Polygon) bool {
	if p == nil || o == nil {
		return p == o
	}
	if !p.position.Equal(o.position) || p.radius != o.radius || len(p.vertices) != len(o.vertices) {
		return false
	}
	for i := range p.vertices {
		if !p.vertices[i].Equal(o.vertices[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (p *Polygon) Clone() *Polygon {
	return &Polygon{position: p.position, vertices: p.Vertices(), radius: p.radius}
}

// Fingerprint hashes the structural fields. Equal polygons always share a
// fingerprint; the converse needs Equal.
func (p *Polygon) Fingerprint() uint64 {
	h := xxhash.New()
	buf := make([]byte, 4)
	put := func(f float32) {
		if f == 0 {
			f = 0 // fold -0
		}
		binary.LittleEndian.PutUint32(buf, math.Float32bits(f))
		_, _ = h.Write(buf)
	}
	put(p.position.X)
	put(p.position.Y)
	put(p.radius)
	for _, v := range p.vertices {
		put(v.X)
		put(v.Y)
	}
	return h.Sum64()
}

func (p *Polygon) String() string {
	return fmt.Sprintf("Polygon{pos=%s n=%d r=%g}", p.position, len(p.vertices), p.radius)
}
