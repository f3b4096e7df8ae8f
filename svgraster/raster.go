// Implements a raster preview of a polyline set,
// by wrapping rasterx.
package svgraster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	svg2polylines "github.com/plotkit/svg2polylines"
	"github.com/plotkit/svg2polylines/svgflatten"
	"github.com/plotkit/svg2polylines/svgpath"
)

// Options configures the preview image.
type Options struct {
	Width, Height int         // image size in pixels
	Padding       float64     // margin kept around the drawing, pixels
	StrokeWidth   float64     // pen width, pixels
	Background    color.Color // nil means white
	Stroke        color.Color // nil means black
}

// DefaultOptions mirrors a typical plotter preview: a white board
// with a thin black pen.
var DefaultOptions = Options{
	Width:       800,
	Height:      600,
	Padding:     20,
	StrokeWidth: 2,
	Background:  color.White,
	Stroke:      color.Black,
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultOptions.Width
	}
	if o.Height <= 0 {
		o.Height = DefaultOptions.Height
	}
	if o.StrokeWidth <= 0 {
		o.StrokeWidth = DefaultOptions.StrokeWidth
	}
	if o.Background == nil {
		o.Background = DefaultOptions.Background
	}
	if o.Stroke == nil {
		o.Stroke = DefaultOptions.Stroke
	}
	return o
}

func fToFixed(f float64) fixed.Int26_6 {
	return fixed.Int26_6(f * 64)
}

func toFixedPoint(p svgpath.Point) fixed.Point26_6 {
	return fixed.Point26_6{X: fToFixed(p.X), Y: fToFixed(p.Y)}
}

// Render draws the polylines into a new image, scaled and centered to
// fit the frame. The input is not modified.
func Render(lines []svgflatten.Polyline, opt Options) *image.RGBA {
	opt = opt.withDefaults()
	img := image.NewRGBA(image.Rect(0, 0, opt.Width, opt.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opt.Background), image.Point{}, draw.Src)

	// fit works in place, so stroke a copy
	fitted := make([]svgflatten.Polyline, len(lines))
	for i, line := range lines {
		fitted[i] = append(svgflatten.Polyline{}, line...)
	}
	svgflatten.Fit(fitted, float64(opt.Width), float64(opt.Height), opt.Padding)

	scanner := rasterx.NewScannerGV(opt.Width, opt.Height, img, img.Bounds())
	dasher := rasterx.NewDasher(opt.Width, opt.Height, scanner)
	scanner.SetColor(opt.Stroke)
	dasher.SetStroke(fToFixed(opt.StrokeWidth), fToFixed(4), rasterx.RoundCap,
		rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
	for _, line := range fitted {
		if len(line) < 2 {
			continue
		}
		dasher.Start(toFixedPoint(line[0]))
		for _, p := range line[1:] {
			dasher.Line(toFixedPoint(p))
		}
		dasher.Stop(false)
	}
	dasher.Draw()
	return img
}

// RenderPNG draws the polylines and writes the image as PNG.
func RenderPNG(w io.Writer, lines []svgflatten.Polyline, opt Options) error {
	return png.Encode(w, Render(lines, opt))
}

// RenderSVG converts an SVG document from the given reader and draws
// its outlines into a preview image.
func RenderSVG(svg io.Reader, conv svg2polylines.Options, opt Options) (*image.RGBA, error) {
	lines, err := svg2polylines.ParseReader(svg, conv)
	if err != nil {
		return nil, err
	}
	return Render(lines, opt), nil
}
