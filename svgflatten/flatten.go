// Converts parsed SVG paths into polylines, by
// flattening bezier segments within a geometric tolerance.
// The output is suitable for consumers without native curve
// support, such as plotters or toolpath generators.
package svgflatten

import (
	"github.com/plotkit/svg2polylines/svgpath"
)

// Options configures the curve flattening pass.
// The zero value selects the defaults.
type Options struct {
	// Tolerance is the maximum perpendicular deviation, in document
	// units, between a curve and its polyline approximation.
	Tolerance float64
	// MaxDepth caps the subdivision recursion. Hitting the cap emits
	// the current approximation instead of failing, which guarantees
	// termination on degenerate control configurations.
	MaxDepth int
}

const (
	// DefaultTolerance is the flattening tolerance used when
	// Options.Tolerance is unset.
	DefaultTolerance = 0.1
	// DefaultMaxDepth is the subdivision cap used when
	// Options.MaxDepth is unset.
	DefaultMaxDepth = 20

	// closeEpsilon is the coincidence threshold under which a closing
	// point is considered already present and not duplicated.
	closeEpsilon = 1e-9
)

func (o Options) withDefaults() Options {
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	return o
}

// Flatten converts a path to polylines, one per subpath, applying the
// transform m to every emitted point. Flattening happens in the local
// path space, so each output point is transformed exactly once and
// control points are never transformed at all.
//
// Closed subpaths repeat their first point as the last one, making
// closure explicit in the output. Subpaths with no visible geometry
// (a bare moveto, or a moveto immediately closed) are dropped.
func Flatten(p svgpath.Path, m svgpath.Matrix2D, opt Options) []Polyline {
	opt = opt.withDefaults()
	f := flattener{m: m, opt: opt}
	var cur, start svgpath.Point // current point and subpath start, local space
	for _, op := range p {
		switch op := op.(type) {
		case svgpath.MoveTo:
			f.start(svgpath.Point(op))
			cur = svgpath.Point(op)
			start = cur
		case svgpath.LineTo:
			f.lineTo(svgpath.Point(op))
			cur = svgpath.Point(op)
		case svgpath.QuadTo:
			// promote to cubic form so a single subdivision
			// routine handles both curve kinds
			c1, c2 := raiseQuad(cur, op[0], op[1])
			f.cubic(cur, c1, c2, op[1], 0)
			cur = op[1]
		case svgpath.CubicTo:
			f.cubic(cur, op[0], op[1], op[2], 0)
			cur = op[2]
		case svgpath.Close:
			f.close()
			cur = start
		}
	}
	f.flush()
	return f.out
}

type flattener struct {
	m   svgpath.Matrix2D
	opt Options

	out   []Polyline
	line  Polyline      // polyline being assembled (transformed points)
	first svgpath.Point // transformed start of the open subpath
}

func (f *flattener) start(p svgpath.Point) {
	f.flush()
	tp := f.m.Apply(p)
	f.line = Polyline{tp}
	f.first = tp
}

func (f *flattener) lineTo(p svgpath.Point) {
	if f.line == nil {
		return
	}
	f.line = append(f.line, f.m.Apply(p))
}

// close makes the closure explicit by repeating the subpath start,
// unless the last point already coincides with it.
func (f *flattener) close() {
	if f.line == nil {
		return
	}
	last := f.line[len(f.line)-1]
	dx, dy := last.X-f.first.X, last.Y-f.first.Y
	if len(f.line) > 1 && dx*dx+dy*dy > closeEpsilon*closeEpsilon {
		f.line = append(f.line, f.first)
	}
	f.flush()
}

// flush appends the pending polyline to the output, dropping
// degenerate subpaths which would force every consumer to
// special-case zero or one point lines.
func (f *flattener) flush() {
	if len(f.line) >= 2 {
		f.out = append(f.out, f.line)
	}
	f.line = nil
}

// cubic recursively subdivides a cubic bezier until it is flat within
// the tolerance, emitting chord end points. Subdivision order is left
// half before right half, so the output point order is deterministic.
func (f *flattener) cubic(p0, c1, c2, p1 svgpath.Point, depth int) {
	if depth >= f.opt.MaxDepth || cubicFlat(p0, c1, c2, p1, f.opt.Tolerance) {
		f.lineTo(p1)
		return
	}
	l1, l2, mid, r1, r2 := subdivideCubic(p0, c1, c2, p1)
	f.cubic(p0, l1, l2, mid, depth+1)
	f.cubic(mid, r1, r2, p1, depth+1)
}

// cubicFlat is the flatness test: the maximum perpendicular distance
// of the two control points from the chord must stay within tol.
// When the chord degenerates to a point, the plain distance from the
// control points to it is used instead.
func cubicFlat(p0, c1, c2, p1 svgpath.Point, tol float64) bool {
	dx, dy := p1.X-p0.X, p1.Y-p0.Y
	chordSq := dx*dx + dy*dy
	if chordSq == 0 {
		d1 := distSq(c1, p0)
		d2 := distSq(c2, p0)
		return max(d1, d2) <= tol*tol
	}
	// perpendicular distance of c from the chord is |cross| / |chord|
	cr1 := (c1.X-p0.X)*dy - (c1.Y-p0.Y)*dx
	cr2 := (c2.X-p0.X)*dy - (c2.Y-p0.Y)*dx
	return max(cr1*cr1, cr2*cr2) <= tol*tol*chordSq
}

func distSq(a, b svgpath.Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

func midpoint(a, b svgpath.Point) svgpath.Point {
	return svgpath.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// subdivideCubic splits the cubic at t=0.5 by de Casteljau's
// algorithm, returning the inner control points of both halves
// and the split point.
func subdivideCubic(p0, c1, c2, p1 svgpath.Point) (l1, l2, mid, r1, r2 svgpath.Point) {
	l1 = midpoint(p0, c1)
	m := midpoint(c1, c2)
	r2 = midpoint(c2, p1)
	l2 = midpoint(l1, m)
	r1 = midpoint(m, r2)
	mid = midpoint(l2, r1)
	return
}

// raiseQuad returns the control points of the cubic bezier exactly
// equivalent to the quadratic with control point q.
func raiseQuad(p0, q, p1 svgpath.Point) (c1, c2 svgpath.Point) {
	c1 = svgpath.Point{X: p0.X + 2.0/3.0*(q.X-p0.X), Y: p0.Y + 2.0/3.0*(q.Y-p0.Y)}
	c2 = svgpath.Point{X: p1.X + 2.0/3.0*(q.X-p1.X), Y: p1.Y + 2.0/3.0*(q.Y-p1.Y)}
	return
}
