package svgflatten

import "github.com/plotkit/svg2polylines/svgpath"

// Polyline is an ordered sequence of points approximating one subpath
// with straight segments. Coordinates are in the document root space.
type Polyline []svgpath.Point

// Bounds is an axis-aligned bounding box of a polyline set.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns the horizontal spread of the bounds.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical spread of the bounds.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// BoundsOf computes the bounding box of the given polylines.
// ok is false when the set contains no points at all.
func BoundsOf(lines []Polyline) (b Bounds, ok bool) {
	for _, line := range lines {
		for _, p := range line {
			if !ok {
				b = Bounds{p.X, p.Y, p.X, p.Y}
				ok = true
				continue
			}
			if p.X < b.MinX {
				b.MinX = p.X
			}
			if p.X > b.MaxX {
				b.MaxX = p.X
			}
			if p.Y < b.MinY {
				b.MinY = p.Y
			}
			if p.Y > b.MaxY {
				b.MaxY = p.Y
			}
		}
	}
	return b, ok
}

// Scale transforms every point in place: x' = scaleX*x + offsetX,
// y' = scaleY*y + offsetY.
func Scale(lines []Polyline, offsetX, offsetY, scaleX, scaleY float64) {
	for _, line := range lines {
		for i, p := range line {
			line[i] = svgpath.Point{X: scaleX*p.X + offsetX, Y: scaleY*p.Y + offsetY}
		}
	}
}

// Fit scales and translates the polylines in place so that they fill
// the width x height frame, preserving aspect ratio and keeping
// padding units of margin on every side. Empty inputs and degenerate
// frames are left untouched.
func Fit(lines []Polyline, width, height, padding float64) {
	b, ok := BoundsOf(lines)
	if !ok {
		return
	}
	innerW, innerH := width-2*padding, height-2*padding
	if innerW <= 0 || innerH <= 0 {
		return
	}
	scale := 1.0
	if b.Width() > 0 && b.Height() > 0 {
		scale = min(innerW/b.Width(), innerH/b.Height())
	} else if b.Width() > 0 {
		scale = innerW / b.Width()
	} else if b.Height() > 0 {
		scale = innerH / b.Height()
	}
	// center the scaled drawing inside the frame
	offsetX := padding + (innerW-b.Width()*scale)/2 - b.MinX*scale
	offsetY := padding + (innerH-b.Height()*scale)/2 - b.MinY*scale
	Scale(lines, offsetX, offsetY, scale, scale)
}
