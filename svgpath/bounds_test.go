package svgpath

import (
	"math"
	"math/rand"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestBoundingBoxLines(t *testing.T) {
	var p Path
	p.AddRect(1, 2, 11, 7)
	bbox, ok := p.BoundingBox(Identity)
	if !ok {
		t.Fatal("expected a bounding box")
	}
	if bbox != (Bounds{X: 1, Y: 2, W: 10, H: 5}) {
		t.Errorf("unexpected bounding box %v", bbox)
	}

	bbox, _ = p.BoundingBox(Identity.Translate(10, 20).Scale(2, 3))
	if bbox != (Bounds{X: 12, Y: 26, W: 20, H: 15}) {
		t.Errorf("unexpected transformed bounding box %v", bbox)
	}

	if _, ok := (Path{Close{}}).BoundingBox(Identity); ok {
		t.Error("a path without points has no bounding box")
	}
}

func TestBoundingBoxCurves(t *testing.T) {
	// quadratic apex at t = 0.5: y = 5
	p := Path{MoveTo(v(0, 0)), QuadTo{v(5, 10), v(10, 0)}}
	bbox, _ := p.BoundingBox(Identity)
	if !approx(bbox.H, 5) || !approx(bbox.W, 10) {
		t.Errorf("unexpected quadratic bounding box %v", bbox)
	}

	// symmetric cubic: apex at y = 0.75 * 10
	p = Path{MoveTo(v(0, 0)), CubicTo{v(0, 10), v(10, 10), v(10, 0)}}
	bbox, _ = p.BoundingBox(Identity)
	if !approx(bbox.H, 7.5) || !approx(bbox.W, 10) {
		t.Errorf("unexpected cubic bounding box %v", bbox)
	}
}

// the bounding box must contain every evaluated point, and be
// no larger than the control box
func TestBoundingBoxRandomCubics(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for range 200 {
		cu := cubicBezier{}
		for i := range cu {
			cu[i] = v(rng.Float64()*100, rng.Float64()*100)
		}
		p := Path{MoveTo(cu[0]), CubicTo{cu[1], cu[2], cu[3]}}
		bbox, _ := p.BoundingBox(Identity)
		for i := 0; i <= 100; i++ {
			q := cu.evaluateCurve(float64(i) / 100)
			if q.X < bbox.Left()-1e-9 || q.X > bbox.Right()+1e-9 || q.Y < bbox.Top()-1e-9 || q.Y > bbox.Bottom()+1e-9 {
				t.Fatalf("point %v outside of %v", q, bbox)
			}
		}
		var control extent
		for _, c := range cu {
			control.add(c)
		}
		cb := control.bounds()
		if bbox.Left() < cb.Left()-1e-9 || bbox.Right() > cb.Right()+1e-9 || bbox.Top() < cb.Top()-1e-9 || bbox.Bottom() > cb.Bottom()+1e-9 {
			t.Fatalf("bounding box %v larger than control box %v", bbox, cb)
		}
	}
}

func TestBoundsUnion(t *testing.T) {
	a := Bounds{X: 0, Y: 0, W: 1, H: 1}
	b := Bounds{X: 2, Y: -1, W: 1, H: 1}
	if got := a.Union(b); got != (Bounds{X: 0, Y: -1, W: 3, H: 2}) {
		t.Errorf("unexpected union %v", got)
	}
	if !(Bounds{W: 0, H: 3}).IsEmpty() {
		t.Error("zero width box should be empty")
	}
}
