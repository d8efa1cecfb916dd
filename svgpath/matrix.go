package svgpath

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Matrix2D represents an SVG style matrix:
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity matrix
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Transform multiplies the input vector by matrix m and outputs the result.
func (m Matrix2D) Transform(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: p.X*m.A + p.Y*m.C + m.E,
		Y: p.X*m.B + p.Y*m.D + m.F,
	}
}

// TransformVector applies the linear part of m, ignoring the translation.
func (m Matrix2D) TransformVector(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: p.X*m.A + p.Y*m.C,
		Y: p.X*m.B + p.Y*m.D,
	}
}

// Mult returns m * b, that is b applied first, then m.
func (m Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: m.A*b.A + m.C*b.B,
		B: m.B*b.A + m.D*b.B,
		C: m.A*b.C + m.C*b.D,
		D: m.B*b.C + m.D*b.D,
		E: m.A*b.E + m.C*b.F + m.E,
		F: m.B*b.E + m.D*b.F + m.F,
	}
}

// Translate appends a translation.
func (m Matrix2D) Translate(x, y float64) Matrix2D {
	return m.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

// Scale appends a scaling.
func (m Matrix2D) Scale(x, y float64) Matrix2D {
	return m.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Rotate appends a rotation of theta radians.
func (m Matrix2D) Rotate(theta float64) Matrix2D {
	s, c := math.Sincos(theta)
	return m.Mult(Matrix2D{c, s, -s, c, 0, 0})
}

// SkewX appends a skew along the x axis, theta in radians.
func (m Matrix2D) SkewX(theta float64) Matrix2D {
	return m.Mult(Matrix2D{1, 0, math.Tan(theta), 1, 0, 0})
}

// SkewY appends a skew along the y axis, theta in radians.
func (m Matrix2D) SkewY(theta float64) Matrix2D {
	return m.Mult(Matrix2D{1, math.Tan(theta), 0, 1, 0, 0})
}

// ScaleTranslate returns the scale and translation terms of m,
// ignoring rotation and skew.
func (m Matrix2D) ScaleTranslate() (sx, sy, tx, ty float64) {
	return m.A, m.D, m.E, m.F
}
