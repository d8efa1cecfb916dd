package flatten

import (
	"math"
	"reflect"
	"testing"

	"seehuhn.de/go/geom/vec"

	"github.com/benoitkugler/svgmesh/svgpath"
)

func v(x, y float64) vec.Vec2 { return vec.Vec2{X: x, Y: y} }

func near(a, b vec.Vec2) bool { return a.Sub(b).Length() < 1e-9 }

func TestFlattenLines(t *testing.T) {
	var p svgpath.Path
	p.Start(v(0, 0))
	p.Line(v(10, 0))

	got := Flatten(p, svgpath.Identity, svgpath.Bounds{X: 0, Y: 0, W: 10, H: 0})
	want := []vec.Vec2{v(0, 0), v(10, 0)}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if !near(got[i], want[i]) {
			t.Errorf("point %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFlattenTranslation(t *testing.T) {
	var p svgpath.Path
	p.Start(v(0, 0))
	p.Line(v(10, 0))
	m := svgpath.Identity.Translate(0, 5)

	got := Flatten(p, m, svgpath.Bounds{X: 0, Y: 0, W: 10, H: 5})
	want := []vec.Vec2{v(0, -5), v(10, -5)}
	for i := range want {
		if !near(got[i], want[i]) {
			t.Errorf("point %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFlattenFormula(t *testing.T) {
	var p svgpath.Path
	p.Start(v(1, 2))
	p.Line(v(3, 4))
	m := svgpath.Matrix2D{A: 2, D: 3, E: 7, F: 11}
	bbox := svgpath.Bounds{X: 5, Y: 13, W: 100, H: 100}

	got := Flatten(p, m, bbox)
	for i, raw := range []vec.Vec2{v(1, 2), v(3, 4)} {
		want := v(raw.X*2+(7-5), -((raw.Y * 3) + (11 - 13)))
		if !near(got[i], want) {
			t.Errorf("point %d: got %v, want %v", i, got[i], want)
		}
	}
}

func TestFlattenIgnoresRotation(t *testing.T) {
	var p svgpath.Path
	p.Start(v(1, 1))
	m := svgpath.Matrix2D{A: 1, B: 5, C: 7, D: 1}
	got := Flatten(p, m, svgpath.Bounds{})
	if !near(got[0], v(1, -1)) {
		t.Errorf("expected only scale and translation to apply, got %v", got[0])
	}
}

func TestFlattenClose(t *testing.T) {
	var p svgpath.Path
	p.Start(v(0, 0))
	p.Line(v(10, 0))
	p.Line(v(10, 10))
	p.Stop(true)

	got := Flatten(p, svgpath.Identity, svgpath.Bounds{W: 10, H: 10})
	if len(got) != 3 {
		t.Fatalf("expected 3 points, got %v", got)
	}

	// the cursor is not moved back to the sub-path start
	p.QuadBezier(v(10, 10), v(10, 10))
	got = Flatten(p, svgpath.Identity, svgpath.Bounds{W: 10, H: 10})
	if last := got[len(got)-1]; !near(last, v(10, -10)) {
		t.Errorf("unexpected last point %v", last)
	}
	for _, pt := range got[3:] {
		if !near(pt, v(10, -10)) {
			t.Errorf("degenerate curve should stay at (10, -10), got %v", pt)
		}
	}
}

func TestFlattenLineAfterClose(t *testing.T) {
	p := svgpath.Path{
		svgpath.MoveTo(v(0, 0)),
		svgpath.LineTo(v(1, 0)),
		svgpath.Close{},
		svgpath.LineTo(v(2, 0)),
	}
	got := Flatten(p, svgpath.Identity, svgpath.Bounds{W: 2})
	want := []vec.Vec2{v(0, 0), v(1, 0), v(2, 0)}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if !near(got[i], want[i]) {
			t.Errorf("point %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestFlattenCurveBeforeMoveTo(t *testing.T) {
	p := svgpath.Path{svgpath.QuadTo{v(5, 10), v(10, 0)}}
	got := Flatten(p, svgpath.Identity, svgpath.Bounds{})
	if len(got) == 0 {
		t.Fatal("expected points")
	}
	if last := got[len(got)-1]; !near(last, v(10, 0)) {
		t.Errorf("unexpected end point %v", last)
	}
	// the curve starts at the origin
	for _, pt := range got {
		if pt.X < 0 || pt.X > 10 {
			t.Errorf("point %v out of the curve hull", pt)
		}
	}
}

func quadAt(p0, p1, p2 vec.Vec2, t float64) vec.Vec2 {
	omt := 1 - t
	return p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
}

func cubicAt(p0, p1, p2, p3 vec.Vec2, t float64) vec.Vec2 {
	omt := 1 - t
	return p0.Mul(omt * omt * omt).Add(p1.Mul(3 * omt * omt * t)).Add(p2.Mul(3 * omt * t * t)).Add(p3.Mul(t * t * t))
}

// distToPolyline returns the distance from pt to the polyline.
func distToPolyline(pt vec.Vec2, poly []vec.Vec2) float64 {
	best := math.Inf(1)
	for i := 0; i+1 < len(poly); i++ {
		a, b := poly[i], poly[i+1]
		ab := b.Sub(a)
		t := 0.
		if l := ab.Dot(ab); l > 0 {
			t = math.Max(0, math.Min(1, pt.Sub(a).Dot(ab)/l))
		}
		best = math.Min(best, pt.Sub(a.Add(ab.Mul(t))).Length())
	}
	return best
}

func TestFlattenCurveTolerance(t *testing.T) {
	p0, q1, q2 := v(0, 0), v(50, 100), v(100, 0)
	c1, c2, c3 := v(150, -80), v(200, 120), v(250, 0)

	var p svgpath.Path
	p.Start(p0)
	p.QuadBezier(q1, q2)
	p.CubeBezier(c1, c2, c3)

	// identity frame: emitted points are (x, -y)
	got := Flatten(p, svgpath.Identity, svgpath.Bounds{})
	poly := make([]vec.Vec2, len(got))
	for i, pt := range got {
		poly[i] = v(pt.X, -pt.Y)
	}
	if !near(poly[0], p0) || !near(poly[len(poly)-1], c3) {
		t.Fatalf("unexpected end points %v %v", poly[0], poly[len(poly)-1])
	}
	if len(poly) < 10 {
		t.Errorf("curves are not subdivided: %d points", len(poly))
	}
	for i := 0; i <= 1000; i++ {
		s := float64(i) / 1000
		if d := distToPolyline(quadAt(p0, q1, q2, s), poly); d > Tolerance+1e-9 {
			t.Errorf("quadratic point at %g is %g away", s, d)
		}
		if d := distToPolyline(cubicAt(q2, c1, c2, c3, s), poly); d > Tolerance+1e-9 {
			t.Errorf("cubic point at %g is %g away", s, d)
		}
	}
}

func TestFlattenTolerance(t *testing.T) {
	var p svgpath.Path
	p.Start(v(0, 0))
	p.CubeBezier(v(0, 100), v(100, 100), v(100, 0))

	fine := Flatten(p, svgpath.Identity, svgpath.Bounds{})
	coarse := FlattenWith(p, svgpath.Identity, svgpath.Bounds{}, Options{Tolerance: 10})
	if len(coarse) >= len(fine) {
		t.Errorf("expected fewer points with a larger tolerance: %d >= %d", len(coarse), len(fine))
	}
	if def := FlattenWith(p, svgpath.Identity, svgpath.Bounds{}, Options{Tolerance: -1}); !reflect.DeepEqual(def, fine) {
		t.Error("negative tolerance should use the default")
	}
}

func TestFlattenDeterministic(t *testing.T) {
	p, err := svgpath.ParsePath("M10 10 C 20 40 60 -10 80 20 Q 90 50 40 60 A 10 20 30 1 0 10 10 Z")
	if err != nil {
		t.Fatal(err)
	}
	m := svgpath.Identity.Translate(3, 4).Scale(2, 0.5)
	bbox, _ := p.BoundingBox(m)
	a := Flatten(p, m, bbox)
	b := Flatten(p, m, bbox)
	if !reflect.DeepEqual(a, b) {
		t.Error("flattening is not deterministic")
	}
}

func TestFlattenDegenerate(t *testing.T) {
	inf := math.Inf(1)
	p := svgpath.Path{svgpath.MoveTo(v(0, 0)), svgpath.CubicTo{v(inf, 0), v(0, inf), v(1, 1)}}
	got := Flatten(p, svgpath.Identity, svgpath.Bounds{})
	if len(got) < 2 || len(got) > maxSegments+1 {
		t.Errorf("unexpected point count %d", len(got))
	}
	if got := Flatten(nil, svgpath.Identity, svgpath.Bounds{}); len(got) != 0 {
		t.Errorf("expected no point, got %v", got)
	}
}

func TestSegmentCount(t *testing.T) {
	for _, test := range []struct {
		in   float64
		want int
	}{
		{0, 1},
		{0.5, 1},
		{1, 1},
		{1.2, 2},
		{math.NaN(), 1},
		{math.Inf(1), maxSegments},
	} {
		if got := segmentCount(test.in); got != test.want {
			t.Errorf("segmentCount(%g) = %d, want %d", test.in, got, test.want)
		}
	}
}
