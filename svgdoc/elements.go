package svgdoc

import (
	"encoding/xml"
	"errors"

	"github.com/plotkit/svg2polylines/svgpath"
)

type svgFunc func(c *docCursor, attrs []xml.Attr) error

var drawFuncs = map[string]svgFunc{
	"svg":      svgF,
	"g":        gF,
	"line":     lineF,
	"rect":     rectF,
	"circle":   circleF,
	"ellipse":  circleF, //circleF handles ellipse also
	"polyline": polylineF,
	"polygon":  polygonF,
	"path":     pathF,
	"desc":     descF,
	"title":    titleF,
}

func svgF(c *docCursor, attrs []xml.Attr) error {
	c.doc.ViewBox = ViewBox{}
	var width, height float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "viewBox":
			err = c.getPoints(attr.Value)
			if err == nil && len(c.points) != 4 {
				return errParamMismatch
			}
			if err == nil {
				c.doc.ViewBox = ViewBox{c.points[0], c.points[1], c.points[2], c.points[3]}
			}
		case "width":
			// percentage or unit sizes are kept verbatim only;
			// they cannot serve as a viewBox fallback
			c.doc.Width = attr.Value
			width, _ = parseFloat(attr.Value)
		case "height":
			c.doc.Height = attr.Value
			height, _ = parseFloat(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	if c.doc.ViewBox.W == 0 {
		c.doc.ViewBox.W = width
	}
	if c.doc.ViewBox.H == 0 {
		c.doc.ViewBox.H = height
	}
	return nil
}

func gF(*docCursor, []xml.Attr) error { return nil } // g does nothing but push the transform

func rectF(c *docCursor, attrs []xml.Attr) error {
	var x, y, w, h, rx, ry float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x":
			x, err = parseFloat(attr.Value)
		case "y":
			y, err = parseFloat(attr.Value)
		case "width":
			w, err = parseFloat(attr.Value)
		case "height":
			h, err = parseFloat(attr.Value)
		case "rx":
			rx, err = parseFloat(attr.Value)
		case "ry":
			ry, err = parseFloat(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	if w == 0 || h == 0 { // not drawn, but not an error
		return nil
	}
	if rx == 0 && ry == 0 {
		c.path.AddRect(x, y, x+w, y+h)
	} else {
		c.path.AddRoundRect(x, y, x+w, y+h, rx, ry)
	}
	return nil
}

func circleF(c *docCursor, attrs []xml.Attr) error {
	var cx, cy, rx, ry float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "cx":
			cx, err = parseFloat(attr.Value)
		case "cy":
			cy, err = parseFloat(attr.Value)
		case "r":
			rx, err = parseFloat(attr.Value)
			ry = rx
		case "rx":
			rx, err = parseFloat(attr.Value)
		case "ry":
			ry, err = parseFloat(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	if rx == 0 || ry == 0 { // not drawn, but not an error
		return nil
	}
	c.path.AddEllipse(cx, cy, rx, ry)
	return nil
}

func lineF(c *docCursor, attrs []xml.Attr) error {
	var x1, x2, y1, y2 float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x1":
			x1, err = parseFloat(attr.Value)
		case "x2":
			x2, err = parseFloat(attr.Value)
		case "y1":
			y1, err = parseFloat(attr.Value)
		case "y2":
			y2, err = parseFloat(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	c.path.Start(svgpath.Point{X: x1, Y: y1})
	c.path.Line(svgpath.Point{X: x2, Y: y2})
	return nil
}

func polylineF(c *docCursor, attrs []xml.Attr) error {
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "points":
			err = c.getPoints(attr.Value)
			if err == nil && len(c.points)%2 != 0 {
				return errors.New("polygon has odd number of points")
			}
		}
		if err != nil {
			return err
		}
	}
	if len(c.points) >= 4 {
		c.path.Start(svgpath.Point{X: c.points[0], Y: c.points[1]})
		for i := 2; i < len(c.points)-1; i += 2 {
			c.path.Line(svgpath.Point{X: c.points[i], Y: c.points[i+1]})
		}
	}
	return nil
}

func polygonF(c *docCursor, attrs []xml.Attr) error {
	err := polylineF(c, attrs)
	if len(c.points) >= 4 {
		c.path.Stop(true)
	}
	return err
}

func pathF(c *docCursor, attrs []xml.Attr) error {
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "d":
			compiled, err := svgpath.CompilePath(attr.Value)
			if err != nil {
				return err
			}
			c.path = append(c.path, compiled...)
		}
	}
	return nil
}

func descF(c *docCursor, attrs []xml.Attr) error {
	c.inDescText = true
	c.doc.Descriptions = append(c.doc.Descriptions, "")
	return nil
}

func titleF(c *docCursor, attrs []xml.Attr) error {
	c.inTitleText = true
	c.doc.Titles = append(c.doc.Titles, "")
	return nil
}
