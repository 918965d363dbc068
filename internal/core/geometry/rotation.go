package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// RotationMatrix is the 2x2 matrix [[a, b], [c, d]]. The backing mgl32.Mat2
// is column-major, so its storage order is a, c, b, d.
type RotationMatrix struct {
	m mgl32.Mat2
}

// IdentityRotation returns the identity matrix.
func IdentityRotation() RotationMatrix {
	return RotationMatrix{m: mgl32.Ident2()}
}

// NewRotationMatrix builds [[a, b], [c, d]] from raw elements.
func NewRotationMatrix(a, b, c, d float32) RotationMatrix {
	return RotationMatrix{m: mgl32.Mat2{a, c, b, d}}
}

// RotationFromAngle builds (cos θ, -sin θ, sin θ, cos θ).
func RotationFromAngle(angle float32) RotationMatrix {
	return RotationMatrix{m: mgl32.Rotate2D(angle)}
}

// Elements returns a, b, c, d in row-major order.
func (r RotationMatrix) Elements() (a, b, c, d float32) {
	return r.m.At(0, 0), r.m.At(0, 1), r.m.At(1, 0), r.m.At(1, 1)
}

// Apply returns (a*vx + b*vy, c*vx + d*vy).
func (r RotationMatrix) Apply(v Vector2d) Vector2d {
	out := r.m.Mul2x1(mgl32.Vec2{v.X, v.Y})
	return Vector2d{out[0], out[1]}
}

func (r RotationMatrix) Determinant() float32 { return r.m.Det() }

// Inverse returns the inverse matrix, or ErrSingularMatrix when the
// determinant is zero.
func (r RotationMatrix) Inverse() (RotationMatrix, error) {
	det := r.m.Det()
	if det == 0 || math32.IsNaN(det) {
		return RotationMatrix{}, ErrSingularMatrix
	}
	return RotationMatrix{m: r.m.Inv()}, nil
}

// Multiply returns r*o: applying the result equals applying o, then r.
func (r RotationMatrix) Multiply(o RotationMatrix) RotationMatrix {
	return RotationMatrix{m: r.m.Mul2(o.m)}
}

func (r RotationMatrix) Equal(o RotationMatrix) bool { return r.m == o.m }
