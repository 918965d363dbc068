package geometry

// 2D vector algebra used by the collision geometry. Everything is float32:
// polygons come from render-side data and never need double precision.

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Vector2d is a 2D float vector. It is a value type and is freely copied.
type Vector2d struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
}

// Vec is shorthand for Vector2d{x, y}.
func Vec(x, y float32) Vector2d { return Vector2d{X: x, Y: y} }

func (v Vector2d) Add(o Vector2d) Vector2d { return Vector2d{v.X + o.X, v.Y + o.Y} }
func (v Vector2d) Sub(o Vector2d) Vector2d { return Vector2d{v.X - o.X, v.Y - o.Y} }
func (v Vector2d) Scale(s float32) Vector2d { return Vector2d{v.X * s, v.Y * s} }
func (v Vector2d) Neg() Vector2d            { return Vector2d{-v.X, -v.Y} }

// Dot returns ax*bx + ay*by.
func (v Vector2d) Dot(o Vector2d) float32 { return v.X*o.X + v.Y*o.Y }

// Cross returns the scalar 2D cross product ax*by - ay*bx.
func (v Vector2d) Cross(o Vector2d) float32 { return v.X*o.Y - v.Y*o.X }

// Perpendicular returns (-y, x), the edge normal used as a separating axis.
func (v Vector2d) Perpendicular() Vector2d { return Vector2d{-v.Y, v.X} }

func (v Vector2d) MagnitudeSquared() float32 { return v.X*v.X + v.Y*v.Y }

func (v Vector2d) Magnitude() float32 { return math32.Hypot(v.X, v.Y) }

// Normalize returns the unit vector pointing along v. A zero-length or
// non-finite vector yields the zero vector and ErrZeroLength.
func (v Vector2d) Normalize() (Vector2d, error) {
	m := v.Magnitude()
	if m == 0 || math32.IsNaN(m) || math32.IsInf(m, 0) {
		return Vector2d{}, ErrZeroLength
	}
	return Vector2d{v.X / m, v.Y / m}, nil
}

// Rotate rotates v counter-clockwise by angle radians.
func (v Vector2d) Rotate(angle float32) Vector2d {
	sin, cos := math32.Sincos(angle)
	return Vector2d{cos*v.X - sin*v.Y, sin*v.X + cos*v.Y}
}

// Transform applies m to v.
func (v Vector2d) Transform(m RotationMatrix) Vector2d { return m.Apply(v) }

func (v Vector2d) Equal(o Vector2d) bool { return v.X == o.X && v.Y == o.Y }

// ApproxEqual reports whether both components differ by at most eps.
func (v Vector2d) ApproxEqual(o Vector2d, eps float32) bool {
	return math32.Abs(v.X-o.X) <= eps && math32.Abs(v.Y-o.Y) <= eps
}

// IsFinite reports whether neither component is NaN or infinite.
func (v Vector2d) IsFinite() bool {
	return !math32.IsNaN(v.X) && !math32.IsNaN(v.Y) && !math32.IsInf(v.X, 0) && !math32.IsInf(v.Y, 0)
}

func (v Vector2d) String() string { return fmt.Sprintf("(%g, %g)", v.X, v.Y) }
