// Extracts vector outlines from SVG documents.
// Documents are parsed into a flat list of paths, each carrying the
// transform accumulated from its ancestor elements. Basic shapes are
// decomposed into the equivalent path commands, so that consumers such
// as svgflatten only ever see path geometry.
package svgdoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html/charset"

	"github.com/plotkit/svg2polylines/svgpath"
)

// ErrorMode controls the behavior of the parser when an unsupported
// element is found.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unsupported elements silently.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode skips unsupported elements with a log message.
	WarnErrorMode
	// StrictErrorMode aborts parsing at the first unsupported element.
	StrictErrorMode
)

// ViewBox is the viewport declared by the root svg element.
type ViewBox struct{ X, Y, W, H float64 }

// PathElement binds a path to the transform accumulated from the
// element's ancestors.
type PathElement struct {
	Path      svgpath.Path
	Transform svgpath.Matrix2D
}

// Document holds the outline data of a parsed SVG file.
type Document struct {
	ViewBox      ViewBox
	Titles       []string // Title elements collect here
	Descriptions []string // Description elements collect here
	Paths        []PathElement

	Width, Height string // top level width and height attributes
}

// docCursor is used while parsing SVG files
type docCursor struct {
	path       svgpath.Path
	points     []float64 // scratch buffer for attribute lists
	doc        *Document
	styleStack []svgpath.Matrix2D
	errorMode  ErrorMode

	inTitleText, inDescText bool
}

func (c *docCursor) handleError(format string, args ...interface{}) error {
	switch c.errorMode {
	case StrictErrorMode:
		return fmt.Errorf(format, args...)
	case WarnErrorMode:
		log.Warn(fmt.Sprintf(format, args...))
	}
	return nil
}

// ReadDocumentStream parses the SVG content from the given io.Reader.
// This only supports a sub-set of SVG, but is enough to extract the
// outlines of many drawings. errMode determines if the parser ignores,
// errors out, or logs a warning when it does not handle an element
// found in the file.
func ReadDocumentStream(stream io.Reader, errMode ErrorMode) (*Document, error) {
	doc := &Document{}
	cursor := &docCursor{doc: doc, styleStack: []svgpath.Matrix2D{svgpath.Identity}}
	cursor.errorMode = errMode
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	seenTag := false
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenTag {
					return nil, errors.New("invalid svg xml document")
				}
				break
			}
			return doc, err
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			seenTag = true
			// Composes the transform attribute, if any, over the
			// enclosing transform and pushes it on the stack
			err = cursor.pushTransform(se.Attr)
			if err != nil {
				return doc, err
			}
			err = cursor.readStartElement(se)
			if err != nil {
				return doc, err
			}
		case xml.EndElement:
			// pop transform
			cursor.styleStack = cursor.styleStack[:len(cursor.styleStack)-1]
			switch se.Name.Local {
			case "title":
				cursor.inTitleText = false
			case "desc":
				cursor.inDescText = false
			}
		case xml.CharData:
			if cursor.inTitleText {
				doc.Titles[len(doc.Titles)-1] += string(se)
			}
			if cursor.inDescText {
				doc.Descriptions[len(doc.Descriptions)-1] += string(se)
			}
		}
	}
	return doc, nil
}

// ReadDocument parses the SVG content of the named file.
// See ReadDocumentStream for the semantics of errMode.
func ReadDocument(svgFile string, errMode ErrorMode) (*Document, error) {
	fin, errf := os.Open(svgFile)
	if errf != nil {
		return nil, errf
	}
	defer fin.Close()
	return ReadDocumentStream(fin, errMode)
}

func (c *docCursor) readStartElement(se xml.StartElement) (err error) {
	df, ok := drawFuncs[se.Name.Local]
	if !ok {
		return c.handleError("cannot process svg element %s", se.Name.Local)
	}
	err = df(c, se.Attr)

	if len(c.path) > 0 {
		// The cursor parsed a path from the xml element
		pathCopy := append(svgpath.Path{}, c.path...)
		c.doc.Paths = append(c.doc.Paths, PathElement{
			Path:      pathCopy,
			Transform: c.styleStack[len(c.styleStack)-1],
		})
		c.path = c.path[:0]
	}
	return err
}
