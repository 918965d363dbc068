package collision

import (
	"github.com/chewxy/math32"
	"github.com/zeusync/collision/internal/core/geometry"
	"github.com/zeusync/collision/pkg/generic"
)

// candidate is one surviving separating axis: the raw (unnormalized) axis
// and the least-negative of its two one-sided overlaps in projection units.
type candidate struct {
	axis        geometry.Vector2d
	penetration float32
}

var candidatePool = generic.NewResetPool(
	func() *[]candidate {
		buf := make([]candidate, 0, 16)
		return &buf
	},
	func(buf *[]candidate) *[]candidate {
		*buf = (*buf)[:0]
		return buf
	},
)

// Overlaps is the broad-phase circle exclusion: it reports false when the
// bounding circles of a and b cannot intersect.
func Overlaps(a, b *geometry.Polygon) bool {
	d := a.Position().Sub(b.Position()).Magnitude()
	return d < a.Radius()+b.Radius()
}

// TestPolygons runs the separating axis test between two convex polygons
// and returns the minimum translation that pushes a out of b.
//
// Degenerate input (nil or fewer than 3 vertices) never collides. Edges
// of zero length contribute no axis. Touching polygons report a contact
// with zero depth.
func TestPolygons(a, b *geometry.Polygon) (Contact, bool) {
	c, ok, _ := testPolygons(a, b)
	return c, ok
}

// testPolygons additionally reports whether the broad phase rejected the
// pair, for sweep metrics.
func testPolygons(a, b *geometry.Polygon) (Contact, bool, bool) {
	if a == nil || b == nil || a.IsDegenerate() || b.IsDegenerate() {
		return Contact{}, false, false
	}
	if !Overlaps(a, b) {
		return Contact{}, false, true
	}

	offset := a.Position().Sub(b.Position())

	buf := candidatePool.Get()
	defer candidatePool.Put(buf)

	for _, p := range [2]*geometry.Polygon{a, b} {
		n := p.VertexCount()
		for i := 0; i < n; i++ {
			v0, _ := p.Vertex(i)
			v1, _ := p.Vertex((i + 1) % n)
			axis := v1.Sub(v0).Perpendicular()
			if axis.MagnitudeSquared() == 0 || !axis.IsFinite() {
				continue
			}

			minA, maxA := a.Project(axis)
			minB, maxB := b.Project(axis)
			shift := offset.Dot(axis)
			minB -= shift
			maxB -= shift

			d0 := minA - maxB
			d1 := minB - maxA
			if d0 > 0 || d1 > 0 {
				return Contact{}, false, false
			}
			*buf = append(*buf, candidate{axis: axis, penetration: math32.Max(d0, d1)})
		}
	}

	best, found := selectMinimumTranslation(*buf)
	if !found {
		return Contact{}, false, false
	}

	normal, _ := best.axis.Normalize()
	depth := -best.penetration / best.axis.Magnitude()
	if normal.Dot(offset) < 0 {
		normal = normal.Neg()
	}
	return Contact{Normal: normal, Depth: depth}, true, false
}

// selectMinimumTranslation picks the axis whose normalized penetration is
// the largest (least negative). Earlier axes win ties; NaN never wins.
func selectMinimumTranslation(candidates []candidate) (candidate, bool) {
	var (
		best      candidate
		bestDepth float32
		found     bool
	)
	for _, c := range candidates {
		m := c.axis.Magnitude()
		if m == 0 {
			continue
		}
		d := c.penetration / m
		if math32.IsNaN(d) {
			continue
		}
		if !found || d > bestDepth {
			best, bestDepth, found = c, d, true
		}
	}
	return best, found
}
