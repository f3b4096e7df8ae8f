package svgpath

import (
	"math"
	"testing"
)

func nearPoint(t *testing.T, got, want Point, tol float64) {
	t.Helper()
	if math.Abs(got.X-want.X) > tol || math.Abs(got.Y-want.Y) > tol {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestIdentityIsExactPassthrough(t *testing.T) {
	// values chosen so that any multiply-add would perturb them
	pts := []Point{
		{0.1 + 0.2, 1e-17},
		{math.Nextafter(1, 2), -math.Nextafter(1, 2)},
		{1e300, -1e-300},
	}
	for _, p := range pts {
		if got := Identity.Apply(p); got != p {
			t.Errorf("Identity.Apply(%v) = %v, not bit identical", p, got)
		}
	}
}

func TestMultOrder(t *testing.T) {
	// a.Mult(b) applies b first, then a
	m := Identity.Translate(10, 0).Scale(2, 2)
	nearPoint(t, m.Apply(Point{1, 1}), Point{12, 2}, 1e-12)
}

func TestMultAssociative(t *testing.T) {
	a := Identity.Rotate(0.3)
	b := Identity.Translate(4, -2)
	c := Identity.Scale(1.5, 0.5)
	left := a.Mult(b).Mult(c)
	right := a.Mult(b.Mult(c))
	p := Point{3, 7}
	nearPoint(t, left.Apply(p), right.Apply(p), 1e-12)
}

func TestRotate(t *testing.T) {
	m := Identity.Rotate(math.Pi / 2)
	nearPoint(t, m.Apply(Point{1, 0}), Point{0, 1}, 1e-12)
	nearPoint(t, m.Apply(Point{0, 1}), Point{-1, 0}, 1e-12)
}

func TestSkew(t *testing.T) {
	nearPoint(t, Identity.SkewX(math.Pi/4).Apply(Point{0, 1}), Point{1, 1}, 1e-12)
	nearPoint(t, Identity.SkewY(math.Pi/4).Apply(Point{1, 0}), Point{1, 1}, 1e-12)
}
