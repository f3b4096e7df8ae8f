package svgpath

import "math"

// Point is a 2D coordinate in document units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Matrix2D is an affine transform, mapping a local coordinate
// space to an ancestor space:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult returns a*b, the transform applying b first, then a.
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Apply transforms the point p.
// The identity matrix is an exact passthrough, so untransformed
// geometry is never perturbed by the float operations below.
func (a Matrix2D) Apply(p Point) Point {
	if a == Identity {
		return p
	}
	return Point{
		X: a.A*p.X + a.C*p.Y + a.E,
		Y: a.B*p.X + a.D*p.Y + a.F,
	}
}

// Translate a matrix by dx, dy.
func (a Matrix2D) Translate(dx, dy float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, 0, 1, dx, dy})
}

// Scale a matrix by x and y scaling factors.
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Rotate a matrix by theta radians.
func (a Matrix2D) Rotate(theta float64) Matrix2D {
	sin, cos := math.Sincos(theta)
	return a.Mult(Matrix2D{cos, sin, -sin, cos, 0, 0})
}

// SkewX skews the matrix in the x dimension by theta radians.
func (a Matrix2D) SkewX(theta float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, math.Tan(theta), 1, 0, 0})
}

// SkewY skews the matrix in the y dimension by theta radians.
func (a Matrix2D) SkewY(theta float64) Matrix2D {
	return a.Mult(Matrix2D{1, math.Tan(theta), 0, 1, 0, 0})
}
