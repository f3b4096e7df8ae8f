// Converts SVG vector outlines into polylines, sequences of straight
// line segments usable by plotters, cutters and other consumers that
// cannot render curves directly.
//
// The heavy lifting is done by the svgpath, svgflatten and svgdoc
// packages; this package ties them together into a one-call driver.
// Either the complete polyline set is returned, or exactly one error:
// a malformed path anywhere in the document yields no partial output.
package svg2polylines

import (
	"io"
	"strings"

	"github.com/plotkit/svg2polylines/svgdoc"
	"github.com/plotkit/svg2polylines/svgflatten"
	"github.com/plotkit/svg2polylines/svgpath"
)

// Options configures a conversion. The zero value uses the default
// flattening tolerance and depth and silently skips unsupported SVG
// elements.
type Options struct {
	// Tolerance is the maximum deviation between a curve and its
	// polyline approximation, in document units. Zero means
	// svgflatten.DefaultTolerance.
	Tolerance float64
	// MaxDepth caps the curve subdivision recursion. Zero means
	// svgflatten.DefaultMaxDepth.
	MaxDepth int
	// ErrorMode controls how unsupported SVG elements are handled.
	ErrorMode svgdoc.ErrorMode
}

func (o Options) flatten() svgflatten.Options {
	return svgflatten.Options{Tolerance: o.Tolerance, MaxDepth: o.MaxDepth}
}

// ParseReader converts the SVG document from the given reader.
// Polylines are returned in document order, with each element's
// accumulated transform applied.
func ParseReader(r io.Reader, opt Options) ([]svgflatten.Polyline, error) {
	doc, err := svgdoc.ReadDocumentStream(r, opt.ErrorMode)
	if err != nil {
		return nil, err
	}
	var out []svgflatten.Polyline
	for _, el := range doc.Paths {
		out = append(out, svgflatten.Flatten(el.Path, el.Transform, opt.flatten())...)
	}
	return out, nil
}

// ParseString converts an SVG document given as a string.
func ParseString(svg string, opt Options) ([]svgflatten.Polyline, error) {
	return ParseReader(strings.NewReader(svg), opt)
}

// Parse converts the SVG document in the named file.
func Parse(svgFile string, opt Options) ([]svgflatten.Polyline, error) {
	doc, err := svgdoc.ReadDocument(svgFile, opt.ErrorMode)
	if err != nil {
		return nil, err
	}
	var out []svgflatten.Polyline
	for _, el := range doc.Paths {
		out = append(out, svgflatten.Flatten(el.Path, el.Transform, opt.flatten())...)
	}
	return out, nil
}

// ConvertPath converts a single path-data string under the given
// transform, bypassing the XML layer. This is the raw form of the
// pipeline: parse, flatten, assemble.
func ConvertPath(data string, m svgpath.Matrix2D, opt Options) ([]svgflatten.Polyline, error) {
	p, err := svgpath.CompilePath(data)
	if err != nil {
		return nil, err
	}
	return svgflatten.Flatten(p, m, opt.flatten()), nil
}
