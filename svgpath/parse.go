package svgpath

import (
	"math"
	"strconv"
)

// This file implements the path-data mini language
// (the 'd' attribute of SVG path elements).

// pathCursor is the parser state threaded through one CompilePath call:
// the current point, the active subpath start, and the control points
// needed by the smooth shorthands.
type pathCursor struct {
	path           Path
	x, y           float64 // current point
	startX, startY float64 // start of the active subpath
	cntlX, cntlY   float64 // second control point of the last cubic
	quadX, quadY   float64 // control point of the last quadratic
	lastCmd        byte    // previous command, normalized to upper case
	justClosed     bool    // last operation was a closepath
}

// arities of the command letters, by upper case letter
var cmdArities = map[byte]int{
	'M': 2, 'Z': 0, 'L': 2, 'H': 1, 'V': 1,
	'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'A': 7,
}

func upperLetter(b byte) byte {
	if 'a' <= b && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func isCommand(b byte) bool {
	_, ok := cmdArities[upperLetter(b)]
	return ok
}

// startsNumber reports whether b may begin a numeric token.
func startsNumber(b byte) bool {
	return b == '+' || b == '-' || b == '.' || ('0' <= b && b <= '9')
}

func isSeparator(b byte) bool {
	return b == ' ' || b == ',' || b == '\t' || b == '\n' || b == '\r'
}

func skipSeparators(data string, i int) int {
	for i < len(data) && isSeparator(data[i]) {
		i++
	}
	return i
}

// repeated returns the command implied by a bare argument group
// following cmd, or 0 when cmd cannot repeat.
// A moveto repeats as the matching lineto, per the SVG grammar.
func repeated(cmd byte) byte {
	switch cmd {
	case 'M':
		return 'L'
	case 'm':
		return 'l'
	case 'Z', 'z':
		return 0
	}
	return cmd
}

// scanNumber reads one SVG numeric token at i: an optional sign, an
// integer part and/or a fraction, and an optional exponent. Two numbers
// may follow each other without separator only when the second starts
// with a sign or a decimal point; a maximal scan handles both cases.
func scanNumber(data string, i int) (float64, int, error) {
	start := i
	if i < len(data) && (data[i] == '+' || data[i] == '-') {
		i++
	}
	hasDigits := false
	for i < len(data) && '0' <= data[i] && data[i] <= '9' {
		i++
		hasDigits = true
	}
	if i < len(data) && data[i] == '.' {
		i++
		for i < len(data) && '0' <= data[i] && data[i] <= '9' {
			i++
			hasDigits = true
		}
	}
	if !hasDigits {
		return 0, start, &ParseError{Kind: MalformedNumber, Offset: start}
	}
	if i < len(data) && (data[i] == 'e' || data[i] == 'E') {
		j := i + 1
		if j < len(data) && (data[j] == '+' || data[j] == '-') {
			j++
		}
		if j >= len(data) || data[j] < '0' || data[j] > '9' {
			return 0, start, &ParseError{Kind: MalformedNumber, Offset: start}
		}
		for j < len(data) && '0' <= data[j] && data[j] <= '9' {
			j++
		}
		i = j
	}
	v, err := strconv.ParseFloat(data[start:i], 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		// non finite values must not reach the geometry
		return 0, start, &ParseError{Kind: MalformedNumber, Offset: start}
	}
	return v, i, nil
}

// CompilePath parses SVG path data into a Path whose commands are all
// absolute. Relative commands are resolved against the current point,
// horizontal/vertical linetos and the smooth curve shorthands are
// expanded, and elliptical arcs are reduced to cubic bezier segments.
// On malformed input it returns a *ParseError carrying the byte offset
// of the offending token, and no partial path.
func CompilePath(data string) (Path, error) {
	var c pathCursor
	i := 0
	for i < len(data) {
		i = skipSeparators(data, i)
		if i >= len(data) {
			break
		}
		b := data[i]
		cmdOff := i
		cmd := b
		switch {
		case isCommand(b):
			i++
		case startsNumber(b):
			cmd = repeated(c.lastCmd)
			if cmd == 0 {
				return nil, &ParseError{Kind: UnexpectedToken, Offset: i}
			}
		default:
			return nil, &ParseError{Kind: UnexpectedToken, Offset: i}
		}
		if len(c.path) == 0 && upperLetter(cmd) != 'M' {
			return nil, &ParseError{Kind: MissingInitialMoveTo, Offset: cmdOff}
		}
		var err error
		i, err = c.command(data, i, cmd)
		if err != nil {
			return nil, err
		}
	}
	return c.path, nil
}

// command parses one argument group for cmd and appends the resulting
// operation. It returns the new scan position.
func (c *pathCursor) command(data string, i int, cmd byte) (int, error) {
	upper := upperLetter(cmd)
	relative := cmd != upper

	if upper == 'Z' {
		c.path.Stop(true)
		c.x, c.y = c.startX, c.startY
		c.justClosed = true
		c.lastCmd = cmd
		return i, nil
	}

	arity := cmdArities[upper]
	var args [7]float64
	for k := 0; k < arity; k++ {
		i = skipSeparators(data, i)
		if i >= len(data) || isCommand(data[i]) {
			return i, &ParseError{Kind: ArityMismatch, Offset: i}
		}
		v, ni, err := scanNumber(data, i)
		if err != nil {
			return i, err
		}
		args[k] = v
		i = ni
	}

	switch upper {
	case 'M':
		if relative {
			args[0] += c.x
			args[1] += c.y
		}
		c.path.Start(Point{args[0], args[1]})
		c.x, c.y = args[0], args[1]
		c.startX, c.startY = c.x, c.y
		c.justClosed = false
	case 'L':
		if relative {
			args[0] += c.x
			args[1] += c.y
		}
		c.lineTo(args[0], args[1])
	case 'H':
		if relative {
			args[0] += c.x
		}
		c.lineTo(args[0], c.y)
	case 'V':
		if relative {
			args[0] += c.y
		}
		c.lineTo(c.x, args[0])
	case 'C':
		if relative {
			for k := 0; k < 6; k += 2 {
				args[k] += c.x
				args[k+1] += c.y
			}
		}
		c.cubicTo(args[0], args[1], args[2], args[3], args[4], args[5])
	case 'S':
		if relative {
			for k := 0; k < 4; k += 2 {
				args[k] += c.x
				args[k+1] += c.y
			}
		}
		// The implicit first control point is the reflection of the
		// previous cubic's second control point about the current
		// point, or the current point itself after any other command.
		c1x, c1y := c.x, c.y
		if prev := upperLetter(c.lastCmd); prev == 'C' || prev == 'S' {
			c1x, c1y = 2*c.x-c.cntlX, 2*c.y-c.cntlY
		}
		c.cubicTo(c1x, c1y, args[0], args[1], args[2], args[3])
	case 'Q':
		if relative {
			for k := 0; k < 4; k += 2 {
				args[k] += c.x
				args[k+1] += c.y
			}
		}
		c.quadTo(args[0], args[1], args[2], args[3])
	case 'T':
		if relative {
			args[0] += c.x
			args[1] += c.y
		}
		qx, qy := c.x, c.y
		if prev := upperLetter(c.lastCmd); prev == 'Q' || prev == 'T' {
			qx, qy = 2*c.x-c.quadX, 2*c.y-c.quadY
		}
		c.quadTo(qx, qy, args[0], args[1])
	case 'A':
		if relative {
			args[5] += c.x
			args[6] += c.y
		}
		c.arcTo(args)
	}
	c.lastCmd = cmd
	return i, nil
}

// ensureStart opens a new subpath at the close point when a drawing
// command follows a closepath without an explicit moveto.
func (c *pathCursor) ensureStart() {
	if c.justClosed {
		c.path.Start(Point{c.x, c.y})
		c.startX, c.startY = c.x, c.y
		c.justClosed = false
	}
}

func (c *pathCursor) lineTo(x, y float64) {
	c.ensureStart()
	c.path.Line(Point{x, y})
	c.x, c.y = x, y
}

func (c *pathCursor) quadTo(bx, by, x, y float64) {
	c.ensureStart()
	c.path.QuadBezier(Point{bx, by}, Point{x, y})
	c.quadX, c.quadY = bx, by
	c.x, c.y = x, y
}

func (c *pathCursor) cubicTo(b1x, b1y, b2x, b2y, x, y float64) {
	c.ensureStart()
	c.path.CubeBezier(Point{b1x, b1y}, Point{b2x, b2y}, Point{x, y})
	c.cntlX, c.cntlY = b2x, b2y
	c.x, c.y = x, y
}

// arcTo reduces an endpoint-parameterized elliptical arc to cubic
// bezier segments. args holds rx, ry, x axis rotation in degrees,
// the large arc and sweep flags and the (already absolute) end point.
func (c *pathCursor) arcTo(args [7]float64) {
	rx, ry := math.Abs(args[0]), math.Abs(args[1])
	ex, ey := args[5], args[6]
	if ex == c.x && ey == c.y {
		return // zero length arcs draw nothing
	}
	if rx == 0 || ry == 0 {
		// degenerate radii reduce the arc to a straight segment
		c.lineTo(ex, ey)
		return
	}
	c.ensureStart()
	rotX := args[2] * math.Pi / 180 // convert degrees to radians
	largeArc := args[3] != 0
	sweep := args[4] != 0
	cx, cy := findEllipseCenter(&rx, &ry, rotX, c.x, c.y, ex, ey, largeArc, sweep)
	lx, ly := c.path.addArc(rx, ry, rotX, cx, cy, c.x, c.y, ex, ey, largeArc, sweep)
	c.x, c.y = lx, ly
}
