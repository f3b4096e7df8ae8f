package svgdoc

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/plotkit/svg2polylines/svgpath"
)

func readString(t *testing.T, svg string, mode ErrorMode) *Document {
	t.Helper()
	doc, err := ReadDocumentStream(strings.NewReader(svg), mode)
	if err != nil {
		t.Fatalf("ReadDocumentStream: %s", err)
	}
	return doc
}

func TestReadDocument(t *testing.T) {
	doc := readString(t, `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50" width="200" height="100">
  <title>sample</title>
  <g transform="translate(10,0)">
    <path d="M0,0 L10,10"/>
  </g>
  <rect x="1" y="2" width="3" height="4"/>
</svg>`, StrictErrorMode)

	if doc.ViewBox != (ViewBox{0, 0, 100, 50}) {
		t.Errorf("viewBox = %+v", doc.ViewBox)
	}
	if doc.Width != "200" || doc.Height != "100" {
		t.Errorf("size attributes = %q x %q", doc.Width, doc.Height)
	}
	if len(doc.Titles) != 1 || doc.Titles[0] != "sample" {
		t.Errorf("titles = %q", doc.Titles)
	}
	if len(doc.Paths) != 2 {
		t.Fatalf("got %d paths, want 2", len(doc.Paths))
	}

	if got, want := doc.Paths[0].Transform, svgpath.Identity.Translate(10, 0); got != want {
		t.Errorf("path transform = %+v, want %+v", got, want)
	}
	wantPath := svgpath.Path{svgpath.MoveTo{X: 0, Y: 0}, svgpath.LineTo{X: 10, Y: 10}}
	if diff := cmp.Diff(wantPath, doc.Paths[0].Path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}

	if got := doc.Paths[1].Transform; got != svgpath.Identity {
		t.Errorf("rect transform = %+v, want identity", got)
	}
	wantRect := svgpath.Path{
		svgpath.MoveTo{X: 1, Y: 2}, svgpath.LineTo{X: 4, Y: 2},
		svgpath.LineTo{X: 4, Y: 6}, svgpath.LineTo{X: 1, Y: 6}, svgpath.Close{},
	}
	if diff := cmp.Diff(wantRect, doc.Paths[1].Path); diff != "" {
		t.Errorf("rect mismatch (-want +got):\n%s", diff)
	}
}

func TestNestedTransformsCompose(t *testing.T) {
	doc := readString(t, `<svg>
  <g transform="translate(10,20)">
    <g transform="scale(2)">
      <path d="M1,1 L2,2"/>
    </g>
  </g>
</svg>`, StrictErrorMode)

	if len(doc.Paths) != 1 {
		t.Fatalf("got %d paths, want 1", len(doc.Paths))
	}
	want := svgpath.Identity.Translate(10, 20).Scale(2, 2)
	if got := doc.Paths[0].Transform; got != want {
		t.Errorf("transform = %+v, want %+v", got, want)
	}
	// the transform places the local point (1,1) at (12,22)
	p := doc.Paths[0].Transform.Apply(svgpath.Point{X: 1, Y: 1})
	if p != (svgpath.Point{X: 12, Y: 22}) {
		t.Errorf("transformed point = %+v", p)
	}
}

func TestShapeElements(t *testing.T) {
	doc := readString(t, `<svg>
  <line x1="0" y1="0" x2="5" y2="5"/>
  <polyline points="0,0 1,0 1,1"/>
  <polygon points="0,0 2,0 2,2"/>
  <circle cx="5" cy="5" r="2"/>
  <ellipse cx="1" cy="1" rx="3" ry="2"/>
</svg>`, StrictErrorMode)

	if len(doc.Paths) != 5 {
		t.Fatalf("got %d paths, want 5", len(doc.Paths))
	}
	wantLine := svgpath.Path{svgpath.MoveTo{X: 0, Y: 0}, svgpath.LineTo{X: 5, Y: 5}}
	if diff := cmp.Diff(wantLine, doc.Paths[0].Path); diff != "" {
		t.Errorf("line mismatch (-want +got):\n%s", diff)
	}
	wantPolyline := svgpath.Path{
		svgpath.MoveTo{X: 0, Y: 0}, svgpath.LineTo{X: 1, Y: 0}, svgpath.LineTo{X: 1, Y: 1},
	}
	if diff := cmp.Diff(wantPolyline, doc.Paths[1].Path); diff != "" {
		t.Errorf("polyline mismatch (-want +got):\n%s", diff)
	}
	// a polygon is a closed polyline
	poly := doc.Paths[2].Path
	if _, ok := poly[len(poly)-1].(svgpath.Close); !ok {
		t.Errorf("polygon does not close: %s", poly)
	}
	// circles and ellipses reduce to cubic segments
	for _, i := range []int{3, 4} {
		ops := doc.Paths[i].Path
		if _, ok := ops[1].(svgpath.CubicTo); !ok {
			t.Errorf("path %d: second op is %T, want CubicTo", i, ops[1])
		}
	}
}

func TestErrorModes(t *testing.T) {
	const svg = `<svg><video src="x"/><path d="M0,0 L1,1"/></svg>`

	if _, err := ReadDocumentStream(strings.NewReader(svg), StrictErrorMode); err == nil {
		t.Error("strict mode accepted an unsupported element")
	}

	doc, err := ReadDocumentStream(strings.NewReader(svg), IgnoreErrorMode)
	if err != nil {
		t.Fatalf("ignore mode: %s", err)
	}
	if len(doc.Paths) != 1 {
		t.Errorf("got %d paths, want 1", len(doc.Paths))
	}
}

func TestMalformedPathAborts(t *testing.T) {
	const svg = `<svg><path d="M0,0 L1,1"/><path d="M0,0 X5,5"/></svg>`
	_, err := ReadDocumentStream(strings.NewReader(svg), IgnoreErrorMode)
	var perr *svgpath.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a ParseError, got %v", err)
	}
	if perr.Kind != svgpath.UnexpectedToken || perr.Offset != 5 {
		t.Errorf("got %s/%d, want unexpected token at 5", perr.Kind, perr.Offset)
	}
}

func TestInvalidDocument(t *testing.T) {
	if _, err := ReadDocumentStream(strings.NewReader(""), IgnoreErrorMode); err == nil {
		t.Error("empty input accepted")
	}
	if _, err := ReadDocumentStream(strings.NewReader("plain text"), IgnoreErrorMode); err == nil {
		t.Error("non xml input accepted")
	}
}

func TestParseTransformErrors(t *testing.T) {
	for _, svg := range []string{
		`<svg><g transform="rotate(1,2)"><path d="M0,0 L1,1"/></g></svg>`,
		`<svg><g transform="frobnicate(1)"><path d="M0,0 L1,1"/></g></svg>`,
		`<svg><g transform="translate 1,2"><path d="M0,0 L1,1"/></g></svg>`,
	} {
		if _, err := ReadDocumentStream(strings.NewReader(svg), IgnoreErrorMode); err == nil {
			t.Errorf("accepted malformed transform in %s", svg)
		}
	}
}
