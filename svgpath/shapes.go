package svgpath

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// maxArcSpan is the largest parametric angle covered by
// one cubic of an elliptical arc.
const maxArcSpan = math.Pi / 8

// kappa is the control point distance approximating
// a quarter of a unit circle with a cubic Bézier.
const kappa = 0.5522847498307936

func pt(x, y float64) vec.Vec2 { return vec.Vec2{X: x, Y: y} }

// AddRect adds a closed rectangle.
func (p *Path) AddRect(minX, minY, maxX, maxY float64) {
	p.Start(pt(minX, minY))
	p.Line(pt(maxX, minY))
	p.Line(pt(maxX, maxY))
	p.Line(pt(minX, maxY))
	p.Stop(true)
}

// AddRoundRect adds a rectangle with rounded corners of radius
// rx in the x axis and ry in the y axis.
// Radii are clamped to half the size, as required by SVG.
func (p *Path) AddRoundRect(minX, minY, maxX, maxY, rx, ry float64) {
	if rx <= 0 && ry <= 0 {
		p.AddRect(minX, minY, maxX, maxY)
		return
	}
	// a missing radius defaults to the other one
	if rx <= 0 {
		rx = ry
	} else if ry <= 0 {
		ry = rx
	}
	if w := maxX - minX; rx > w/2 {
		rx = w / 2
	}
	if h := maxY - minY; ry > h/2 {
		ry = h / 2
	}
	kx, ky := rx*kappa, ry*kappa

	p.Start(pt(minX+rx, minY))
	p.Line(pt(maxX-rx, minY))
	p.CubeBezier(pt(maxX-rx+kx, minY), pt(maxX, minY+ry-ky), pt(maxX, minY+ry))
	p.Line(pt(maxX, maxY-ry))
	p.CubeBezier(pt(maxX, maxY-ry+ky), pt(maxX-rx+kx, maxY), pt(maxX-rx, maxY))
	p.Line(pt(minX+rx, maxY))
	p.CubeBezier(pt(minX+rx-kx, maxY), pt(minX, maxY-ry+ky), pt(minX, maxY-ry))
	p.Line(pt(minX, minY+ry))
	p.CubeBezier(pt(minX, minY+ry-ky), pt(minX+rx-kx, minY), pt(minX+rx, minY))
	p.Stop(true)
}

// AddEllipse adds a closed ellipse centered at (cx, cy),
// made of four cubic Bézier curves.
func (p *Path) AddEllipse(cx, cy, rx, ry float64) {
	kx, ky := rx*kappa, ry*kappa
	p.Start(pt(cx+rx, cy))
	p.CubeBezier(pt(cx+rx, cy+ky), pt(cx+kx, cy+ry), pt(cx, cy+ry))
	p.CubeBezier(pt(cx-kx, cy+ry), pt(cx-rx, cy+ky), pt(cx-rx, cy))
	p.CubeBezier(pt(cx-rx, cy-ky), pt(cx-kx, cy-ry), pt(cx, cy-ry))
	p.CubeBezier(pt(cx+kx, cy-ry), pt(cx+rx, cy-ky), pt(cx+rx, cy))
	p.Stop(true)
}

// ArcTo adds an SVG elliptical arc from the current point (px, py),
// using the 'A' command arguments: points = rx, ry, x-axis-rotation,
// large-arc-flag, sweep-flag, x, y.
// The arc is approximated by cubic Bézier curves.
func (p *Path) ArcTo(points [7]float64, px, py float64) {
	rx, ry := math.Abs(points[0]), math.Abs(points[1])
	start, end := pt(px, py), pt(points[5], points[6])
	if rx == 0 || ry == 0 { // degenerate arc: straight line
		p.Line(end)
		return
	}
	if start == end {
		return // zero length arc is omitted
	}
	rot := points[2] * math.Pi / 180
	largeArc, sweep := points[3] != 0, points[4] != 0
	e := arcEllipse(start, end, rx, ry, rot, largeArc, sweep)
	p.addArc(e, start, end, largeArc, sweep)
}

// ellipse is a rotated ellipse, parametrized by eta:
// center + R(rot) * (rx cos(eta), ry sin(eta)).
type ellipse struct {
	center   vec.Vec2
	rx, ry   float64
	rot      float64
	sin, cos float64 // of rot
}

func (e ellipse) at(eta float64) vec.Vec2 {
	a, b := e.rx*math.Cos(eta), e.ry*math.Sin(eta)
	return vec.Vec2{X: e.center.X + a*e.cos - b*e.sin, Y: e.center.Y + a*e.sin + b*e.cos}
}

// derivative of at with respect to eta
func (e ellipse) derivative(eta float64) vec.Vec2 {
	a, b := e.rx*math.Sin(eta), e.ry*math.Cos(eta)
	return vec.Vec2{X: -a*e.cos - b*e.sin, Y: -a*e.sin + b*e.cos}
}

// eta returns the parameter of the point p of the ellipse.
func (e ellipse) eta(p vec.Vec2) float64 {
	angle := math.Atan2(p.Y-e.center.Y, p.X-e.center.X) - e.rot
	return math.Atan2(math.Sin(angle)/e.ry, math.Cos(angle)/e.rx)
}

// addArc adds the arc of e going from start to end.
func (p *Path) addArc(e ellipse, start, end vec.Vec2, largeArc, sweep bool) {
	angleStart := math.Atan2(start.Y-e.center.Y, start.X-e.center.X)
	angleEnd := math.Atan2(end.Y-e.center.Y, end.X-e.center.X)
	isLarge := math.Abs(angleEnd-angleStart) > math.Pi

	etaStart := e.eta(start)
	span := e.eta(end) - etaStart
	if isLarge != largeArc {
		if span < 0 {
			span += 2 * math.Pi
		} else {
			span -= 2 * math.Pi
		}
	}
	// the sign of span follows the sweep flag
	if span < 0 && sweep {
		span += 2 * math.Pi
	} else if span >= 0 && !sweep {
		span -= 2 * math.Pi
	}

	n := int(math.Abs(span)/maxArcSpan) + 1
	step := span / float64(n)
	// tangent length from L. Maisonobe, "Drawing an elliptical arc using
	// polylines, quadratic or cubic Bézier curves" (2003)
	t := math.Tan(step / 2)
	alpha := math.Sin(step) * (math.Sqrt(4+3*t*t) - 1) / 3

	from, fromD := start, e.derivative(etaStart)
	for i := 1; i <= n; i++ {
		eta := etaStart + step*float64(i)
		to := end // exact end point
		if i < n {
			to = e.at(eta)
		}
		toD := e.derivative(eta)
		p.CubeBezier(from.Add(fromD.Mul(alpha)), to.Sub(toD.Mul(alpha)), to)
		from, fromD = to, toD
	}
}

// arcEllipse returns the ellipse with radii (rx, ry) and rotation rot
// going through start and end, picking one of the two candidates
// with the arc flags.
// When no such ellipse exists, the radii are enlarged with the same
// ratio until the end points are on a diameter.
func arcEllipse(start, end vec.Vec2, rx, ry, rot float64, largeArc, sweep bool) ellipse {
	sin, cos := math.Sincos(rot)

	// end point in the ellipse frame (origin at start), with the X axis
	// shrunk so that the ellipse is a circle of radius ry
	d := end.Sub(start)
	u := vec.Vec2{X: (d.X*cos + d.Y*sin) * ry / rx, Y: -d.X*sin + d.Y*cos}
	mid := u.Mul(0.5)
	midLenSq := mid.Dot(mid)

	var h float64 // distance from mid to the center, relative to |mid|
	if ry*ry < midLenSq {
		r := math.Sqrt(midLenSq)
		if rx == ry {
			rx = r
		} else {
			rx = rx * r / ry
		}
		ry = r
	} else {
		h = math.Sqrt(ry*ry-midLenSq) / math.Sqrt(midLenSq)
	}
	var c vec.Vec2
	if sweep != largeArc {
		c = vec.Vec2{X: mid.X + mid.Y*h, Y: mid.Y - mid.X*h}
	} else {
		c = vec.Vec2{X: mid.X - mid.Y*h, Y: mid.Y + mid.X*h}
	}
	c.X *= rx / ry

	return ellipse{
		center: vec.Vec2{X: c.X*cos - c.Y*sin + start.X, Y: c.X*sin + c.Y*cos + start.Y},
		rx:     rx,
		ry:     ry,
		rot:    rot,
		sin:    sin,
		cos:    cos,
	}
}
