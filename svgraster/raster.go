// Implements a raster preview of flattened assets,
// by wrapping rasterx.
package svgraster

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/vec"

	"github.com/benoitkugler/svgmesh/vecasset"
)

// Options sets the preview paint. The zero value fills
// in black without outline.
type Options struct {
	Fill   color.Color // nil for black
	Stroke color.Color // nil for no outline
	// StrokeWidth is in pixels, defaulting to 1
	StrokeWidth float64
	Dashes      []float64
}

// Renderer fills and outlines polylines.
type Renderer struct {
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
	stroke bool
}

// NewRenderer returns a renderer drawing into img.
// The filler and the dasher use their own scanner.
func NewRenderer(img *image.RGBA) *Renderer {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	return &Renderer{
		dasher: rasterx.NewDasher(w, h, rasterx.NewScannerGV(w, h, img, img.Bounds())),
		filler: rasterx.NewFiller(w, h, rasterx.NewScannerGV(w, h, img, img.Bounds())),
	}
}

func toFixed(p vec.Vec2) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(p.X * 64), Y: fixed.Int26_6(p.Y * 64)}
}

// SetOptions configures the paint used by the next calls to Draw.
func (rd *Renderer) SetOptions(opts Options) {
	fill := opts.Fill
	if fill == nil {
		fill = color.Black
	}
	rd.filler.SetColor(fill)
	rd.filler.SetWinding(true)
	if opts.Stroke != nil {
		width := opts.StrokeWidth
		if width <= 0 {
			width = 1
		}
		rd.dasher.SetColor(opts.Stroke)
		rd.dasher.SetStroke(fixed.Int26_6(width*64), 4*64, rasterx.ButtCap, rasterx.ButtCap,
			rasterx.FlatGap, rasterx.Miter, opts.Dashes, 0)
	}
	rd.stroke = opts.Stroke != nil
}

// Draw fills the closed polyline, then outlines it.
// Polylines with less than two points are ignored.
func (rd *Renderer) Draw(points []fixed.Point26_6) {
	if len(points) < 2 {
		return
	}
	rd.filler.Clear()
	rd.filler.Start(points[0])
	for _, p := range points[1:] {
		rd.filler.Line(p)
	}
	rd.filler.Stop(true)
	rd.filler.Draw()

	if !rd.stroke {
		return
	}
	rd.dasher.Clear()
	rd.dasher.Start(points[0])
	for _, p := range points[1:] {
		rd.dasher.Line(p)
	}
	rd.dasher.Stop(true)
	rd.dasher.Draw()
}

// RasterAsset draws every path of asset into a new width x height
// image. The content is scaled to fit the image, keeping its
// aspect ratio, and the Y axis is flipped back to point down.
func RasterAsset(asset *vecasset.Asset, width, height int, opts Options) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	minP, maxP, ok := asset.Bounds()
	if !ok || width <= 0 || height <= 0 {
		return img
	}
	scale := fitScale(maxP.X-minP.X, maxP.Y-minP.Y, width, height)

	rd := NewRenderer(img)
	rd.SetOptions(opts)
	for _, path := range asset.Paths {
		placed := path.Placed()
		points := make([]fixed.Point26_6, len(placed))
		for i, p := range placed {
			points[i] = toFixed(vec.Vec2{X: (p.X - minP.X) * scale, Y: (maxP.Y - p.Y) * scale})
		}
		rd.Draw(points)
	}
	return img
}

// fitScale returns the largest scale fitting a w x h extent in the image.
// Flat content is scaled along its other direction, a single point by 1.
func fitScale(w, h float64, width, height int) float64 {
	scale := math.Min(float64(width)/w, float64(height)/h)
	if math.IsInf(scale, 0) || math.IsNaN(scale) {
		return 1
	}
	return scale
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
