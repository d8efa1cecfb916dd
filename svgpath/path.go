// Implements an abstract representation of
// svg paths, which can then be consumed
// by the flattener or a painting driver.
package svgpath

import (
	"fmt"
	"strings"

	"seehuhn.de/go/geom/vec"
)

// Operation groups the different SVG commands.
// The set of implementations is closed: MoveTo, LineTo,
// QuadTo, CubicTo and Close.
type Operation interface {
	isOperation()
}

// MoveTo starts a new sub-path at the given point.
type MoveTo vec.Vec2

// LineTo adds a straight line to the given point.
type LineTo vec.Vec2

// QuadTo is a quadratic Bézier curve: control point, end point.
type QuadTo [2]vec.Vec2

// CubicTo is a cubic Bézier curve: two control points, end point.
type CubicTo [3]vec.Vec2

// Close closes the current sub-path.
type Close struct{}

func (MoveTo) isOperation()  {}
func (LineTo) isOperation()  {}
func (QuadTo) isOperation()  {}
func (CubicTo) isOperation() {}
func (Close) isOperation()   {}

// Path describes a sequence of basic SVG operations.
// Higher-level shapes may be reduced to a path.
type Path []Operation

// ToSVGPath returns a string representation of the path
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", op.X, op.Y)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", op.X, op.Y)
		case QuadTo:
			chunks[i] = fmt.Sprintf("Q%4.3f,%4.3f,%4.3f,%4.3f", op[0].X, op[0].Y, op[1].X, op[1].Y)
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f",
				op[0].X, op[0].Y, op[1].X, op[1].Y, op[2].X, op[2].Y)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a vec.Vec2) {
	*p = append(*p, MoveTo(a))
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b vec.Vec2) {
	*p = append(*p, LineTo(b))
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c vec.Vec2) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d vec.Vec2) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// Transform returns a copy of the path with every point mapped by m.
// Affine maps send Bézier curves to Bézier curves, so the
// control points are simply transformed.
func (p Path) Transform(m Matrix2D) Path {
	out := make(Path, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			out[i] = MoveTo(m.Transform(vec.Vec2(op)))
		case LineTo:
			out[i] = LineTo(m.Transform(vec.Vec2(op)))
		case QuadTo:
			out[i] = QuadTo{m.Transform(op[0]), m.Transform(op[1])}
		case CubicTo:
			out[i] = CubicTo{m.Transform(op[0]), m.Transform(op[1]), m.Transform(op[2])}
		case Close:
			out[i] = op
		}
	}
	return out
}
