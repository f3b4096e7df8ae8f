package svgflatten

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/plotkit/svg2polylines/svgpath"
)

func compile(t *testing.T, data string) svgpath.Path {
	t.Helper()
	p, err := svgpath.CompilePath(data)
	if err != nil {
		t.Fatalf("CompilePath(%q): %s", data, err)
	}
	return p
}

func TestLinesPassThroughExactly(t *testing.T) {
	got := Flatten(compile(t, "M0,0 L10,0 L10,10 Z"), svgpath.Identity, Options{})
	want := []Polyline{{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 0}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCloseWithoutDuplicate(t *testing.T) {
	// the last explicit point already coincides with the start,
	// so closing must not insert it a second time
	got := Flatten(compile(t, "M0,0 L10,0 L0,0 Z"), svgpath.Identity, Options{})
	want := []Polyline{{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 0}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestClosedPolylineEndsAtStart(t *testing.T) {
	for _, data := range []string{
		"M0,0 L10,0 L10,10 Z",
		"M1,1 C1,5 5,5 5,1 Z",
		"M0,0 Q10,10 20,0 Z",
	} {
		lines := Flatten(compile(t, data), svgpath.Identity, Options{})
		if len(lines) != 1 {
			t.Fatalf("%q: got %d polylines, want 1", data, len(lines))
		}
		line := lines[0]
		first, last := line[0], line[len(line)-1]
		if math.Hypot(first.X-last.X, first.Y-last.Y) > 1e-9 {
			t.Errorf("%q: polyline ends at %v, start is %v", data, last, first)
		}
	}
}

func TestCollinearCubicIsOneSegment(t *testing.T) {
	p := svgpath.Path{
		svgpath.MoveTo{X: 0, Y: 0},
		svgpath.CubicTo{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}},
	}
	got := Flatten(p, svgpath.Identity, Options{Tolerance: 1e-12})
	want := []Polyline{{{X: 0, Y: 0}, {X: 3, Y: 0}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// cubicAt evaluates the bezier with the given control polygon.
func cubicAt(p0, c1, c2, p1 svgpath.Point, t float64) svgpath.Point {
	u := 1 - t
	return svgpath.Point{
		X: u*u*u*p0.X + 3*u*u*t*c1.X + 3*u*t*t*c2.X + t*t*t*p1.X,
		Y: u*u*u*p0.Y + 3*u*u*t*c1.Y + 3*u*t*t*c2.Y + t*t*t*p1.Y,
	}
}

// distToPolyline returns the distance from p to the nearest segment.
func distToPolyline(line Polyline, p svgpath.Point) float64 {
	best := math.Inf(1)
	for i := 0; i+1 < len(line); i++ {
		a, b := line[i], line[i+1]
		dx, dy := b.X-a.X, b.Y-a.Y
		lenSq := dx*dx + dy*dy
		t := 0.0
		if lenSq > 0 {
			t = ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
			t = math.Max(0, math.Min(1, t))
		}
		d := math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
		best = math.Min(best, d)
	}
	return best
}

func TestCubicDeviationWithinTolerance(t *testing.T) {
	p0 := svgpath.Point{X: 0, Y: 0}
	c1 := svgpath.Point{X: 0, Y: 10}
	c2 := svgpath.Point{X: 10, Y: 10}
	p1 := svgpath.Point{X: 10, Y: 0}
	const eps = 0.01

	lines := Flatten(compile(t, "M0,0 C0,10 10,10 10,0"),
		svgpath.Identity, Options{Tolerance: eps})
	if len(lines) != 1 {
		t.Fatalf("got %d polylines, want 1", len(lines))
	}
	line := lines[0]
	if line[0] != p0 || line[len(line)-1] != p1 {
		t.Fatalf("polyline spans %v..%v, want %v..%v",
			line[0], line[len(line)-1], p0, p1)
	}
	for i := 0; i <= 1000; i++ {
		pt := cubicAt(p0, c1, c2, p1, float64(i)/1000)
		if d := distToPolyline(line, pt); d > eps*1.001 {
			t.Fatalf("curve point %v deviates by %g, tolerance %g", pt, d, eps)
		}
	}
}

func TestQuadDeviationWithinTolerance(t *testing.T) {
	const eps = 0.01
	lines := Flatten(compile(t, "M0,0 Q5,5 10,0"),
		svgpath.Identity, Options{Tolerance: eps})
	if len(lines) != 1 {
		t.Fatalf("got %d polylines, want 1", len(lines))
	}
	line := lines[0]
	for i := 0; i <= 1000; i++ {
		u := float64(i) / 1000
		// quadratic point by direct evaluation
		pt := svgpath.Point{
			X: (1-u)*(1-u)*0 + 2*(1-u)*u*5 + u*u*10,
			Y: 2 * (1 - u) * u * 5,
		}
		if d := distToPolyline(line, pt); d > eps*1.001 {
			t.Fatalf("curve point %v deviates by %g, tolerance %g", pt, d, eps)
		}
	}
}

func TestDegenerateSubpathsDropped(t *testing.T) {
	for _, data := range []string{"M5,5", "M5,5 Z", "M1,1 M2,2 M3,3"} {
		if got := Flatten(compile(t, data), svgpath.Identity, Options{}); len(got) != 0 {
			t.Errorf("%q: got %d polylines, want none", data, len(got))
		}
	}
	// a degenerate subpath between two real ones is dropped alone
	got := Flatten(compile(t, "M0,0 L1,1 M5,5 M2,2 L3,3"), svgpath.Identity, Options{})
	if len(got) != 2 {
		t.Fatalf("got %d polylines, want 2", len(got))
	}
}

func TestDepthCapBoundsOutput(t *testing.T) {
	lines := Flatten(compile(t, "M0,0 C0,100 100,100 100,0"),
		svgpath.Identity, Options{Tolerance: 1e-12, MaxDepth: 4})
	if len(lines) != 1 {
		t.Fatalf("got %d polylines, want 1", len(lines))
	}
	// a cap of 4 allows at most 2^4 chords
	if got := len(lines[0]); got > 17 {
		t.Errorf("polyline has %d points, depth cap allows at most 17", got)
	}
}

func TestTransformAppliedToOutput(t *testing.T) {
	m := svgpath.Identity.Translate(5, 5)
	got := Flatten(compile(t, "M0,0 L10,0"), m, Options{})
	want := []Polyline{{{X: 5, Y: 5}, {X: 15, Y: 5}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestTransformedCurveStaysSmooth(t *testing.T) {
	// flattening happens in local space but the tolerance still
	// holds after an isometric transform of the emitted points
	m := svgpath.Identity.Translate(3, -2).Rotate(math.Pi / 3)
	const eps = 0.01
	p0 := m.Apply(svgpath.Point{X: 0, Y: 0})
	p1 := m.Apply(svgpath.Point{X: 10, Y: 0})
	c1 := m.Apply(svgpath.Point{X: 0, Y: 10})
	c2 := m.Apply(svgpath.Point{X: 10, Y: 10})

	lines := Flatten(compile(t, "M0,0 C0,10 10,10 10,0"), m, Options{Tolerance: eps})
	line := lines[0]
	for i := 0; i <= 1000; i++ {
		pt := cubicAt(p0, c1, c2, p1, float64(i)/1000)
		if d := distToPolyline(line, pt); d > eps*1.01 {
			t.Fatalf("curve point %v deviates by %g, tolerance %g", pt, d, eps)
		}
	}
}
