package svgpath

import "math"

// Matrix2D represents an affine transformation, as
// the SVG matrix(a, b, c, d, e, f):
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity matrix
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult returns a * b, that is the transformation
// applying first b, then a.
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

// Transform applies the matrix on the point (x1, y1).
func (a Matrix2D) Transform(x1, y1 float64) (x2, y2 float64) {
	x2 = x1*a.A + y1*a.C + a.E
	y2 = x1*a.B + y1*a.D + a.F
	return
}

func (a Matrix2D) TransformPoint(p Point) Point {
	x, y := a.Transform(p.X, p.Y)
	return Point{x, y}
}

// TransformVector applies the matrix on the vector (x1, y1),
// ignoring the translation part.
func (a Matrix2D) TransformVector(x1, y1 float64) (x2, y2 float64) {
	x2 = x1*a.A + y1*a.C
	y2 = x1*a.B + y1*a.D
	return
}

func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Rotate rotates by theta, in radians.
func (a Matrix2D) Rotate(theta float64) Matrix2D {
	sin, cos := math.Sincos(theta)
	return a.Mult(Matrix2D{cos, sin, -sin, cos, 0, 0})
}

// RotateAbout rotates by theta (in radians) around the point (x, y).
func (a Matrix2D) RotateAbout(theta, x, y float64) Matrix2D {
	return a.Translate(x, y).Rotate(theta).Translate(-x, -y)
}

// SkewX skews along the x axis, theta in radians.
func (a Matrix2D) SkewX(theta float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, math.Tan(theta), 1, 0, 0})
}

// SkewY skews along the y axis, theta in radians.
func (a Matrix2D) SkewY(theta float64) Matrix2D {
	return a.Mult(Matrix2D{1, math.Tan(theta), 0, 1, 0, 0})
}

// Det returns the determinant of the linear part.
func (a Matrix2D) Det() float64 { return a.A*a.D - a.B*a.C }

// Invert returns the inverse matrix, or Identity
// if the matrix is not invertible.
func (a Matrix2D) Invert() Matrix2D {
	det := a.Det()
	if det == 0 {
		return Identity
	}
	return Matrix2D{
		A: a.D / det,
		B: -a.B / det,
		C: -a.C / det,
		D: a.A / det,
		E: (a.C*a.F - a.D*a.E) / det,
		F: (a.B*a.E - a.A*a.F) / det,
	}
}

// IsTranslateUniformScale returns true if the matrix
// is a composition of a translation and a (positive) uniform scale.
func (a Matrix2D) IsTranslateUniformScale() bool {
	return a.B == 0 && a.C == 0 && a.A == a.D && a.A > 0
}

// transformArc maps the arc through the matrix. The result is exact
// for similarities; for other transformations the radii are
// scaled along the image of the axes.
func (a Matrix2D) transformArc(s ArcTo) ArcTo {
	s.P = a.TransformPoint(s.P)
	sx, sy := math.Hypot(a.A, a.B), math.Hypot(a.C, a.D)
	s.Rx *= sx
	s.Ry *= sy
	s.Rotation += math.Atan2(a.B, a.A) * 180 / math.Pi
	if a.Det() < 0 {
		s.Sweep = !s.Sweep
	}
	return s
}
