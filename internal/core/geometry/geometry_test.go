package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

const eps = 1e-5

func TestVector2d(t *testing.T) {
	t.Run("Arithmetic", func(t *testing.T) {
		a, b := Vec(3, 4), Vec(-1, 2)
		require.Equal(t, Vec(2, 6), a.Add(b))
		require.Equal(t, Vec(4, 2), a.Sub(b))
		require.Equal(t, Vec(6, 8), a.Scale(2))
		require.Equal(t, Vec(-3, -4), a.Neg())
		require.Equal(t, float32(5), a.Dot(b))
		require.Equal(t, float32(10), a.Cross(b))
		require.Equal(t, Vec(-4, 3), a.Perpendicular())
		require.InDelta(t, 5, a.Magnitude(), eps)
		require.Equal(t, float32(25), a.MagnitudeSquared())
	})

	t.Run("Normalize", func(t *testing.T) {
		n, err := Vec(3, 4).Normalize()
		require.NoError(t, err)
		require.True(t, n.ApproxEqual(Vec(0.6, 0.8), eps))

		n, err = Vec(0, 0).Normalize()
		require.ErrorIs(t, err, ErrZeroLength)
		require.Equal(t, Vector2d{}, n)

		_, err = Vec(float32(math.NaN()), 1).Normalize()
		require.ErrorIs(t, err, ErrZeroLength)
	})

	t.Run("Rotate", func(t *testing.T) {
		r := Vec(1, 0).Rotate(math.Pi / 2)
		require.True(t, r.ApproxEqual(Vec(0, 1), eps), r.String())
	})

	t.Run("IsFinite", func(t *testing.T) {
		require.True(t, Vec(1, 2).IsFinite())
		require.False(t, Vec(float32(math.Inf(1)), 2).IsFinite())
	})
}

func TestRotationMatrix(t *testing.T) {
	t.Run("FromAngle", func(t *testing.T) {
		m := RotationFromAngle(math.Pi / 2)
		a, b, c, d := m.Elements()
		require.InDelta(t, 0, a, eps)
		require.InDelta(t, -1, b, eps)
		require.InDelta(t, 1, c, eps)
		require.InDelta(t, 0, d, eps)
		require.InDelta(t, 1, m.Determinant(), eps)
		require.True(t, m.Apply(Vec(1, 0)).ApproxEqual(Vec(0, 1), eps))
	})

	t.Run("RawElements", func(t *testing.T) {
		m := NewRotationMatrix(1, 2, 3, 4)
		require.Equal(t, Vec(5, 11), m.Apply(Vec(1, 2)))
		require.Equal(t, float32(-2), m.Determinant())
	})

	t.Run("Inverse", func(t *testing.T) {
		m := RotationFromAngle(0.7)
		inv, err := m.Inverse()
		require.NoError(t, err)
		v := inv.Apply(m.Apply(Vec(2, -3)))
		require.True(t, v.ApproxEqual(Vec(2, -3), 1e-4))

		_, err = NewRotationMatrix(1, 2, 2, 4).Inverse()
		require.ErrorIs(t, err, ErrSingularMatrix)
	})

	t.Run("Multiply", func(t *testing.T) {
		m := RotationFromAngle(0.3).Multiply(RotationFromAngle(0.4))
		require.True(t, m.Apply(Vec(1, 0)).ApproxEqual(Vec(1, 0).Rotate(0.7), eps))
		require.True(t, IdentityRotation().Multiply(m).Equal(m))
	})
}

func TestPolygon(t *testing.T) {
	t.Run("RadiusOnlyGrows", func(t *testing.T) {
		p := NewPolygon(Vec(10, 10))
		p.AddVertex(Vec(3, 4))
		require.InDelta(t, 5, p.Radius(), eps)
		p.AddVertex(Vec(1, 0))
		require.InDelta(t, 5, p.Radius(), eps)
		p.AddPoint(Vec(10, 20))
		require.InDelta(t, 10, p.Radius(), eps)

		v, err := p.Vertex(2)
		require.NoError(t, err)
		require.Equal(t, Vec(0, 10), v)

		p.Clear()
		require.Equal(t, 0, p.VertexCount())
		require.Equal(t, float32(0), p.Radius())
		require.True(t, p.IsDegenerate())
	})

	t.Run("VertexBounds", func(t *testing.T) {
		p := NewRectangle(Vec(0, 0), 2, 2)
		_, err := p.Vertex(4)
		require.ErrorIs(t, err, ErrVertexOutOfRange)
		_, err = p.Vertex(-1)
		require.ErrorIs(t, err, ErrVertexOutOfRange)
		_, err = p.WorldVertex(9)
		require.ErrorIs(t, err, ErrVertexOutOfRange)
	})

	t.Run("RotateKeepsPosition", func(t *testing.T) {
		p := NewRectangle(Vec(5, 5), 4, 2)
		r := p.Radius()
		p.Rotate(math.Pi / 2)
		require.Equal(t, Vec(5, 5), p.Position())
		v, _ := p.Vertex(0)
		require.True(t, v.ApproxEqual(Vec(1, -2), eps), v.String())
		require.GreaterOrEqual(t, p.Radius(), r)
		for _, v := range p.Vertices() {
			require.LessOrEqual(t, v.Magnitude(), p.Radius())
		}
	})

	t.Run("WorldVertices", func(t *testing.T) {
		p := NewRectangle(Vec(1, 1), 2, 2)
		p.Translate(Vec(1, 0))
		require.Equal(t, Vec(1, 0), p.WorldVertices()[0])
	})

	t.Run("Project", func(t *testing.T) {
		p := NewRectangle(Vec(100, 0), 10, 4)
		lo, hi := p.Project(Vec(1, 0))
		require.Equal(t, float32(-5), lo)
		require.Equal(t, float32(5), hi)
		lo, hi = p.Project(Vec(0, 2))
		require.Equal(t, float32(-4), lo)
		require.Equal(t, float32(4), hi)
	})

	t.Run("EqualityAndFingerprint", func(t *testing.T) {
		a := NewRectangle(Vec(1, 2), 3, 4)
		b := a.Clone()
		require.True(t, a.Equal(b))
		require.Equal(t, a.Fingerprint(), b.Fingerprint())

		b.AddVertex(Vec(0, 0))
		require.False(t, a.Equal(b))
		require.NotEqual(t, a.Fingerprint(), b.Fingerprint())

		c := a.Clone()
		c.SetPosition(Vec(1, 3))
		require.False(t, a.Equal(c))

		var nilPoly *Polygon
		require.False(t, a.Equal(nilPoly))
	})

	t.Run("NegativeZeroFingerprint", func(t *testing.T) {
		negZero := float32(math.Copysign(0, -1))
		a := NewPolygonFromVertices(Vec(0, 0), Vec(1, 0), Vec(0, 1), Vec(-1, 0))
		b := NewPolygonFromVertices(Vec(negZero, 0), Vec(1, 0), Vec(0, 1), Vec(-1, 0))
		require.True(t, a.Equal(b))
		require.Equal(t, a.Fingerprint(), b.Fingerprint())
	})
}
