package svgpath

import "math"

// This file implements the reduction of high level
// geometry (elliptical arcs, shape elements) to bezier segments.

// maxDx is the maximum radians a cubic spline is allowed to span
// in ellipse parametric space when approximating an arc.
const maxDx float64 = math.Pi / 8

// addArc appends cubic segments approximating the elliptical arc from
// (px, py) to (ex, ey) around the center (cx, cy), as computed by
// findEllipseCenter. It returns the last point added.
func (p *Path) addArc(rx, ry, rotX, cx, cy, px, py, ex, ey float64, largeArc, sweep bool) (lx, ly float64) {
	startAngle := math.Atan2(py-cy, px-cx) - rotX
	endAngle := math.Atan2(ey-cy, ex-cx) - rotX
	deltaTheta := endAngle - startAngle
	arcBig := math.Abs(deltaTheta) > math.Pi

	// angles in the parametric space of the ellipse
	etaStart := math.Atan2(math.Sin(startAngle)/ry, math.Cos(startAngle)/rx)
	etaEnd := math.Atan2(math.Sin(endAngle)/ry, math.Cos(endAngle)/rx)
	deltaEta := etaEnd - etaStart
	if (arcBig && !largeArc) || (!arcBig && largeArc) { // Go has no boolean XOR
		if deltaEta < 0 {
			deltaEta += math.Pi * 2
		} else {
			deltaEta -= math.Pi * 2
		}
	}
	// This check might be needed if the center point of the ellipse is
	// at the midpoint of the start and end lines.
	if deltaEta < 0 && sweep {
		deltaEta += math.Pi * 2
	} else if deltaEta >= 0 && !sweep {
		deltaEta -= math.Pi * 2
	}

	return p.arcSegments(rx, ry, rotX, cx, cy, etaStart, deltaEta, px, py, ex, ey)
}

// arcSegments approximates the arc eta in [etaStart, etaStart+deltaEta]
// of the given ellipse using a set of cubic bezier curves, by the method of
// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic
// or cubic Bezier curves", 2003
// https://www.spaceroots.org/documents/elllipse/elliptical-arc.pdf
// The caller provides the exact start (px, py) and end (ex, ey) points,
// which are used verbatim to avoid roundoff drift at the joints.
func (p *Path) arcSegments(rx, ry, rotX, cx, cy, etaStart, deltaEta, px, py, ex, ey float64) (lx, ly float64) {
	// Round up to determine the number of cubic splines
	segs := int(math.Abs(deltaEta)/maxDx) + 1
	dEta := deltaEta / float64(segs) // span of each segment
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3 // Math is fun!
	lx, ly = px, py
	sinTheta, cosTheta := math.Sincos(rotX)
	ldx, ldy := ellipsePrime(rx, ry, sinTheta, cosTheta, etaStart)
	for i := 1; i <= segs; i++ {
		eta := etaStart + dEta*float64(i)
		var qx, qy float64
		if i == segs {
			qx, qy = ex, ey // just makes the end point exact; no roundoff error
		} else {
			qx, qy = ellipsePointAt(rx, ry, sinTheta, cosTheta, eta, cx, cy)
		}
		dx, dy := ellipsePrime(rx, ry, sinTheta, cosTheta, eta)
		p.CubeBezier(Point{lx + alpha*ldx, ly + alpha*ldy},
			Point{qx - alpha*dx, qy - alpha*dy}, Point{qx, qy})
		lx, ly, ldx, ldy = qx, qy, dx, dy
	}
	return lx, ly
}

// ellipsePrime gives tangent vectors for the parameterized ellipse; rx, ry radii, eta parameter
func ellipsePrime(rx, ry, sinTheta, cosTheta, eta float64) (px, py float64) {
	bCosEta := ry * math.Cos(eta)
	aSinEta := rx * math.Sin(eta)
	px = -aSinEta*cosTheta - bCosEta*sinTheta
	py = -aSinEta*sinTheta + bCosEta*cosTheta
	return
}

// ellipsePointAt gives points for the parameterized ellipse; rx, ry radii, eta parameter, center cx, cy
func ellipsePointAt(rx, ry, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	aCosEta := rx * math.Cos(eta)
	bSinEta := ry * math.Sin(eta)
	px = cx + aCosEta*cosTheta - bSinEta*sinTheta
	py = cy + aCosEta*sinTheta + bSinEta*cosTheta
	return
}

// findEllipseCenter locates the center of the ellipse if it exists. If it does not exist,
// the radius values will be increased minimally for a solution to be possible
// while preserving the rx to ry ratio. rx and ry arguments are pointers that can be
// checked after the call to see if the values changed. This method uses coordinate transformations
// to reduce the problem to finding the center of a circle that includes the origin
// and an arbitrary point. The center of the circle is then transformed
// back to the original coordinates and returned.
func findEllipseCenter(rx, ry *float64, rotX, startX, startY, endX, endY float64, largeArc, sweep bool) (cx, cy float64) {
	cos, sin := math.Cos(rotX), math.Sin(rotX)

	// Move origin to start point
	nx, ny := endX-startX, endY-startY

	// Rotate ellipse x-axis to coordinate x-axis
	nx, ny = nx*cos+ny*sin, -nx*sin+ny*cos
	// Scale X dimension so that rx = ry
	nx *= *ry / *rx // Now the ellipse is a circle radius ry; therefore foci and center coincide

	midX, midY := nx/2, ny/2
	midlenSq := midX*midX + midY*midY

	var hr float64
	if *ry**ry < midlenSq {
		// Requested ellipse does not exist; scale rx, ry to fit. Length of
		// span is greater than max width of ellipse, must scale *rx, *ry
		nry := math.Sqrt(midlenSq)
		if *rx == *ry {
			*rx = nry // prevents roundoff
		} else {
			*rx = *rx * nry / *ry
		}
		*ry = nry
	} else {
		hr = math.Sqrt(*ry**ry-midlenSq) / math.Sqrt(midlenSq)
	}
	// Notice that if hr is zero, both answers are the same.
	if largeArc != sweep {
		cx = midX - midY*hr
		cy = midY + midX*hr
	} else {
		cx = midX + midY*hr
		cy = midY - midX*hr
	}

	// reverse scale
	cx *= *rx / *ry
	// reverse rotate and translate back to original coordinates
	return cx*cos - cy*sin + startX, cx*sin + cy*cos + startY
}

// AddEllipse adds a closed ellipse of radii rx, ry centered at (cx, cy).
func (p *Path) AddEllipse(cx, cy, rx, ry float64) {
	p.Start(Point{cx + rx, cy})
	p.arcSegments(rx, ry, 0, cx, cy, 0, 2*math.Pi, cx+rx, cy, cx+rx, cy)
	p.Stop(true)
}

// AddRect adds a closed axis-aligned rectangle.
func (p *Path) AddRect(minX, minY, maxX, maxY float64) {
	p.Start(Point{minX, minY})
	p.Line(Point{maxX, minY})
	p.Line(Point{maxX, maxY})
	p.Line(Point{minX, maxY})
	p.Stop(true)
}

// AddRoundRect adds a closed rectangle with elliptical corners of radii
// rx, ry. A zero radius pair falls back to a sharp rectangle; a single
// zero radius defaults to the other one, following the SVG rules.
func (p *Path) AddRoundRect(minX, minY, maxX, maxY, rx, ry float64) {
	if rx == 0 {
		rx = ry
	}
	if ry == 0 {
		ry = rx
	}
	if rx <= 0 || ry <= 0 {
		p.AddRect(minX, minY, maxX, maxY)
		return
	}
	if w := maxX - minX; rx > w/2 {
		rx = w / 2
	}
	if h := maxY - minY; ry > h/2 {
		ry = h / 2
	}

	const quarter = math.Pi / 2
	p.Start(Point{minX + rx, minY})
	p.Line(Point{maxX - rx, minY})
	p.arcSegments(rx, ry, 0, maxX-rx, minY+ry, -quarter, quarter, maxX-rx, minY, maxX, minY+ry)
	p.Line(Point{maxX, maxY - ry})
	p.arcSegments(rx, ry, 0, maxX-rx, maxY-ry, 0, quarter, maxX, maxY-ry, maxX-rx, maxY)
	p.Line(Point{minX + rx, maxY})
	p.arcSegments(rx, ry, 0, minX+rx, maxY-ry, quarter, quarter, minX+rx, maxY, minX, maxY-ry)
	p.Line(Point{minX, minY + ry})
	p.arcSegments(rx, ry, 0, minX+rx, minY+ry, math.Pi, quarter, minX, minY+ry, minX+rx, minY)
	p.Stop(true)
}
