package svgpath

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Bounds defines a bounding box, such as a viewport
// or a path extent. (X, Y) is the top-left corner
// in the y-down SVG coordinate system.
type Bounds struct{ X, Y, W, H float64 }

func (b Bounds) Left() float64   { return b.X }
func (b Bounds) Top() float64    { return b.Y }
func (b Bounds) Right() float64  { return b.X + b.W }
func (b Bounds) Bottom() float64 { return b.Y + b.H }

// IsEmpty returns true for degenerate boxes (null width or height).
func (b Bounds) IsEmpty() bool { return b.W <= 0 || b.H <= 0 }

// Union returns the smallest box containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	minX, minY := math.Min(b.X, o.X), math.Min(b.Y, o.Y)
	maxX, maxY := math.Max(b.Right(), o.Right()), math.Max(b.Bottom(), o.Bottom())
	return Bounds{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// extent accumulates points
type extent struct {
	minX, minY, maxX, maxY float64
	seen                   bool
}

func (e *extent) add(p vec.Vec2) {
	if !e.seen {
		e.minX, e.maxX, e.minY, e.maxY = p.X, p.X, p.Y, p.Y
		e.seen = true
		return
	}
	e.minX = math.Min(e.minX, p.X)
	e.minY = math.Min(e.minY, p.Y)
	e.maxX = math.Max(e.maxX, p.X)
	e.maxY = math.Max(e.maxY, p.Y)
}

func (e extent) bounds() Bounds {
	return Bounds{X: e.minX, Y: e.minY, W: e.maxX - e.minX, H: e.maxY - e.minY}
}

// BoundingBox returns the exact extent of the path, after
// applying the transform m.
// Curves are bounded using their critical points, not their control points.
// It returns false if the path has no point.
func (p Path) BoundingBox(m Matrix2D) (Bounds, bool) {
	var e extent
	current := m.Transform(vec.Vec2{}) // curves before any MoveTo start at the origin
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			current = m.Transform(vec.Vec2(op))
			e.add(current)
		case LineTo:
			current = m.Transform(vec.Vec2(op))
			e.add(current)
		case QuadTo:
			curve := quadBezier{current, m.Transform(op[0]), m.Transform(op[1])}
			addCurve(&e, curve)
			current = curve[2]
		case CubicTo:
			curve := cubicBezier{current, m.Transform(op[0]), m.Transform(op[1]), m.Transform(op[2])}
			addCurve(&e, curve)
			current = curve[3]
		case Close:
		}
	}
	if !e.seen {
		return Bounds{}, false
	}
	return e.bounds(), true
}

type bezier interface {
	// compute the t zeroing the derivative
	criticalPoints() (tX, tY []float64)
	// compute the point a time t
	evaluateCurve(t float64) vec.Vec2
}

func addCurve(e *extent, curve bezier) {
	resX, resY := curve.criticalPoints()
	// begin and end points are always included
	for _, t := range append(append(resX, 0, 1), resY...) {
		if !(0 <= t && t <= 1) {
			continue
		}
		e.add(curve.evaluateCurve(t))
	}
}

type quadBezier [3]vec.Vec2

// quadratic polinomial
// x = At^2 + Bt + C
// where
// A = p0 + p2 - 2p1
// B = 2(p1 - p0)
// C = p0
func bezierQuad(p0, p1, p2, t float64) float64 {
	return (p0+p2-2*p1)*t*t + 2*(p1-p0)*t + p0
}

// derivative as at + b
func quadraticDerivative(p0, p1, p2 float64) (a, b float64) {
	return 2 * (p2 - p1 - (p1 - p0)), 2 * (p1 - p0)
}

// handle the case where a = 0
func linearRoots(a, b float64) []float64 {
	if a == 0 {
		return nil
	}
	return []float64{-b / a}
}

func (cu quadBezier) criticalPoints() (tX, tY []float64) {
	aX, bX := quadraticDerivative(cu[0].X, cu[1].X, cu[2].X)
	aY, bY := quadraticDerivative(cu[0].Y, cu[1].Y, cu[2].Y)
	return linearRoots(aX, bX), linearRoots(aY, bY)
}

func (cu quadBezier) evaluateCurve(t float64) vec.Vec2 {
	return vec.Vec2{
		X: bezierQuad(cu[0].X, cu[1].X, cu[2].X, t),
		Y: bezierQuad(cu[0].Y, cu[1].Y, cu[2].Y, t),
	}
}

type cubicBezier [4]vec.Vec2

// cubic polinomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		p0
}

// X' = (3*p3-9*p2+9*p1-3*p0)t^2 + (6*p2-12*p1+6*p0)t + (3*p1-3*p0)
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

// roots of aX^2 + bX + c
func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		return linearRoots(b, c)
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	if d == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

func (cu cubicBezier) criticalPoints() (tX, tY []float64) {
	aX, bX, cX := cubicDerivative(cu[0].X, cu[1].X, cu[2].X, cu[3].X)
	aY, bY, cY := cubicDerivative(cu[0].Y, cu[1].Y, cu[2].Y, cu[3].Y)
	return quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)
}

func (cu cubicBezier) evaluateCurve(t float64) vec.Vec2 {
	return vec.Vec2{
		X: bezierSpline(cu[0].X, cu[1].X, cu[2].X, cu[3].X, t),
		Y: bezierSpline(cu[0].Y, cu[1].Y, cu[2].Y, cu[3].Y, t),
	}
}
