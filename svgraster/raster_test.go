package svgraster

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"

	svg2polylines "github.com/plotkit/svg2polylines"
	"github.com/plotkit/svg2polylines/svgflatten"
	"github.com/plotkit/svg2polylines/svgpath"
)

func TestRender(t *testing.T) {
	lines := []svgflatten.Polyline{
		{{X: 0, Y: 0}, {X: 10, Y: 10}},
	}
	opt := Options{Width: 100, Height: 80, Padding: 10, StrokeWidth: 2}
	img := Render(lines, opt)

	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 80 {
		t.Fatalf("image size %dx%d, want 100x80", b.Dx(), b.Dy())
	}
	// corners stay background white
	r, g, b, _ := img.At(0, 0).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("corner pixel = %v, want white", img.At(0, 0))
	}
	// the stroked diagonal leaves non background pixels
	inked := 0
	for y := 0; y < 80; y++ {
		for x := 0; x < 100; x++ {
			if r, g, b, _ := img.At(x, y).RGBA(); r != 0xffff || g != 0xffff || b != 0xffff {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Error("no pixels drawn")
	}
}

func TestRenderDoesNotModifyInput(t *testing.T) {
	lines := []svgflatten.Polyline{
		{{X: 0, Y: 0}, {X: 10, Y: 10}},
	}
	Render(lines, Options{Width: 50, Height: 50})
	if lines[0][0] != (svgpath.Point{X: 0, Y: 0}) || lines[0][1] != (svgpath.Point{X: 10, Y: 10}) {
		t.Errorf("input modified: %v", lines[0])
	}
}

func TestRenderPNG(t *testing.T) {
	lines := []svgflatten.Polyline{
		{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 5}, {X: 0, Y: 0}},
	}
	var buf bytes.Buffer
	opt := Options{Width: 40, Height: 40, Background: color.Black, Stroke: color.White}
	if err := RenderPNG(&buf, lines, opt); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 40 {
		t.Errorf("decoded size %dx%d, want 40x40", b.Dx(), b.Dy())
	}
}

func TestRenderSVG(t *testing.T) {
	const svg = `<svg><path d="M0,0 L10,0 L10,10 Z"/></svg>`
	img, err := RenderSVG(strings.NewReader(svg), svg2polylines.Options{}, Options{Width: 60, Height: 60})
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 60 || b.Dy() != 60 {
		t.Errorf("image size %dx%d, want 60x60", b.Dx(), b.Dy())
	}

	if _, err := RenderSVG(strings.NewReader(`<svg><path d="M0,0 X"/></svg>`),
		svg2polylines.Options{}, Options{}); err == nil {
		t.Error("malformed document accepted")
	}
}
