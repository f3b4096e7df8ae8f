package svgdoc

import (
	"encoding/xml"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/plotkit/svg2polylines/svgpath"
)

var errParamMismatch = errors.New("param mismatch")

// parseFloat reads an attribute value, tolerating surrounding
// whitespace and a px unit suffix.
func parseFloat(v string) (float64, error) {
	v = strings.TrimSpace(v)
	v = strings.TrimSuffix(v, "px")
	return strconv.ParseFloat(v, 64)
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' '
		})
}

// getPoints parses a list of numbers separated by commas or spaces
// into the cursor's scratch buffer.
func (c *docCursor) getPoints(s string) error {
	c.points = c.points[:0]
	for _, v := range splitOnCommaOrSpace(s) {
		f, err := parseFloat(v)
		if err != nil {
			return err
		}
		c.points = append(c.points, f)
	}
	return nil
}

func (c *docCursor) readTransformAttr(m1 svgpath.Matrix2D, k string) (svgpath.Matrix2D, error) {
	ln := len(c.points)
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(c.points[0] * math.Pi / 180)
		} else if ln == 3 {
			m1 = m1.Translate(c.points[1], c.points[2]).
				Rotate(c.points[0]*math.Pi/180).
				Translate(-c.points[1], -c.points[2])
		} else {
			return m1, errParamMismatch
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(c.points[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(c.points[0], c.points[1])
		} else {
			return m1, errParamMismatch
		}
	case "skewx":
		if ln == 1 {
			m1 = m1.SkewX(c.points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "skewy":
		if ln == 1 {
			m1 = m1.SkewY(c.points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(c.points[0], c.points[0])
		} else if ln == 2 {
			m1 = m1.Scale(c.points[0], c.points[1])
		} else {
			return m1, errParamMismatch
		}
	case "matrix":
		if ln == 6 {
			m1 = m1.Mult(svgpath.Matrix2D{
				A: c.points[0],
				B: c.points[1],
				C: c.points[2],
				D: c.points[3],
				E: c.points[4],
				F: c.points[5]})
		} else {
			return m1, errParamMismatch
		}
	default:
		return m1, errParamMismatch
	}
	return m1, nil
}

func (c *docCursor) parseTransform(v string) (svgpath.Matrix2D, error) {
	ts := strings.Split(v, ")")
	m1 := c.styleStack[len(c.styleStack)-1]
	for _, t := range ts {
		t = strings.TrimSpace(t)
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return m1, errParamMismatch // badly formed transformation
		}
		err := c.getPoints(d[1])
		if err != nil {
			return m1, err
		}
		m1, err = c.readTransformAttr(m1, strings.ToLower(strings.TrimSpace(d[0])))
		if err != nil {
			return m1, err
		}
	}
	return m1, nil
}

// pushTransform copies the enclosing transform, composes the element's
// transform attribute over it if present, and pushes the result on the
// stack. Every start element pushes exactly one entry.
func (c *docCursor) pushTransform(attrs []xml.Attr) error {
	cur := c.styleStack[len(c.styleStack)-1]
	for _, attr := range attrs {
		if strings.ToLower(attr.Name.Local) != "transform" {
			continue
		}
		m, err := c.parseTransform(attr.Value)
		if err != nil {
			return err
		}
		cur = m
	}
	c.styleStack = append(c.styleStack, cur)
	return nil
}
