package flatten

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"github.com/benoitkugler/svgmesh/svgpath"
)

// Tolerance is the default maximal distance between a curve
// and its approximation, in document units.
const Tolerance = 0.25

// maxSegments bounds the subdivision of a single curve,
// for degenerate (huge or infinite) coordinates.
const maxSegments = 1 << 16

// Options tunes the flattening.
type Options struct {
	// Tolerance is the maximal deviation between a curve and
	// the emitted polyline. Zero or negative means [Tolerance].
	Tolerance float64
}

func (o Options) tolerance() float64 {
	if o.Tolerance > 0 {
		return o.Tolerance
	}
	return Tolerance
}

// Flatten converts p into a polyline, using the default tolerance.
// See FlattenWith.
func Flatten(p svgpath.Path, m svgpath.Matrix2D, bbox svgpath.Bounds) []vec.Vec2 {
	return FlattenWith(p, m, bbox, Options{})
}

// FlattenWith converts p into a polyline.
//
// Only the scale and translation terms of m are used: a raw point
// (x, y) is emitted as
//
//	(x*sx + (tx - bbox.Left), -(y*sy + (ty - bbox.Top)))
//
// MoveTo and LineTo emit their point. Curves are flattened in raw
// coordinates, starting at the current point, and every point of the
// approximation but the first is emitted. Close emits nothing.
// The current point starts at (0, 0), so that a curve before any MoveTo
// starts at the origin.
func FlattenWith(p svgpath.Path, m svgpath.Matrix2D, bbox svgpath.Bounds, opts Options) []vec.Vec2 {
	sx, sy, tx, ty := m.ScaleTranslate()
	e := emitter{
		sx: sx, sy: sy,
		dx: tx - bbox.Left(), dy: ty - bbox.Top(),
		tolerance: opts.tolerance(),
		out:       make([]vec.Vec2, 0, len(p)),
	}
	var cur cursor
	for _, op := range p {
		cur = e.step(cur, op)
	}
	return e.out
}

// cursor is the last raw end point.
type cursor struct {
	pos vec.Vec2
}

type emitter struct {
	sx, sy, dx, dy float64
	tolerance      float64
	out            []vec.Vec2
}

func (e *emitter) emit(p vec.Vec2) {
	e.out = append(e.out, vec.Vec2{
		X: p.X*e.sx + e.dx,
		Y: -(p.Y*e.sy + e.dy),
	})
}

// step processes one operation and returns the new cursor.
func (e *emitter) step(cur cursor, op svgpath.Operation) cursor {
	switch op := op.(type) {
	case svgpath.MoveTo:
		p := vec.Vec2(op)
		e.emit(p)
		return cursor{p}
	case svgpath.LineTo:
		p := vec.Vec2(op)
		e.emit(p)
		return cursor{p}
	case svgpath.QuadTo:
		flattenQuadratic(cur.pos, op[0], op[1], e.tolerance, e.emit)
		return cursor{op[1]}
	case svgpath.CubicTo:
		flattenCubic(cur.pos, op[0], op[1], op[2], e.tolerance, e.emit)
		return cursor{op[2]}
	case svgpath.Close:
		return cur
	default:
		panic("flatten: unexpected operation")
	}
}

// segmentCount clamps the subdivision count n to [1, maxSegments].
func segmentCount(n float64) int {
	if !(n > 1) { // also catches NaN
		return 1
	}
	if n > maxSegments {
		return maxSegments
	}
	return int(math.Ceil(n))
}

// flattenQuadratic calls emit for n points of the curve, at t = i/n
// for i = 1..n. The curve deviates from the chords by at most
// |p0 - 2p1 + p2| / (4n²), which gives n.
func flattenQuadratic(p0, p1, p2 vec.Vec2, tolerance float64, emit func(vec.Vec2)) {
	dd := p0.Sub(p1.Mul(2)).Add(p2).Length()
	n := segmentCount(math.Sqrt(dd / (4 * tolerance)))
	for i := 1; i <= n; i++ {
		if i == n {
			emit(p2)
			break
		}
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
		emit(pt)
	}
}

// flattenCubic calls emit for n points of the curve, at t = i/n
// for i = 1..n, with n given by Wang's formula.
func flattenCubic(p0, p1, p2, p3 vec.Vec2, tolerance float64, emit func(vec.Vec2)) {
	d1 := p0.Sub(p1.Mul(2)).Add(p2)
	d2 := p1.Sub(p2.Mul(2)).Add(p3)
	m := max(d1.Length(), d2.Length())
	// n = ceil(sqrt(3 * m / (4 * ε)))
	n := segmentCount(math.Sqrt(3 * m / (4 * tolerance)))
	for i := 1; i <= n; i++ {
		if i == n {
			emit(p3)
			break
		}
		t := float64(i) / float64(n)
		// B(t) = (1-t)³P0 + 3(1-t)²tP1 + 3(1-t)t²P2 + t³P3
		omt := 1 - t
		omt2 := omt * omt
		t2 := t * t
		pt := p0.Mul(omt2 * omt).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t2 * t))
		emit(pt)
	}
}
