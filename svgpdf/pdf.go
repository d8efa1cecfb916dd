// Implements a PDF preview of flattened assets,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"io"

	"github.com/jung-kurt/gofpdf"
	"seehuhn.de/go/geom/vec"

	"github.com/benoitkugler/svgmesh/vecasset"
)

// Options tunes the PDF output.
type Options struct {
	Margin float64 // in points
	Title  string
	// Fill paints the inside of the polylines in gray,
	// in addition to the outline.
	Fill bool
	// Compress the content streams
	Compress bool
}

// Renderer writes polylines to a PDF page.
type Renderer struct {
	pdf *gofpdf.Fpdf
	// origin maps the asset frame (Y up) to the page
	minX, maxY, margin float64
}

// NewRenderer return a renderer which will
// write to the given `pdf`, placing the point (minX, maxY)
// of the asset frame at (margin, margin).
func NewRenderer(pdf *gofpdf.Fpdf, minX, maxY, margin float64) Renderer {
	return Renderer{pdf: pdf, minX: minX, maxY: maxY, margin: margin}
}

// page returns the page coordinates of p, with Y pointing down
func (rd Renderer) page(p vec.Vec2) (float64, float64) {
	return p.X - rd.minX + rd.margin, rd.maxY - p.Y + rd.margin
}

// Draw adds the closed polyline to the page.
// Polylines with less than two points are ignored.
func (rd Renderer) Draw(points []vec.Vec2, fill bool) {
	if len(points) < 2 {
		return
	}
	rd.pdf.MoveTo(rd.page(points[0]))
	for _, p := range points[1:] {
		rd.pdf.LineTo(rd.page(p))
	}
	rd.pdf.ClosePath()
	styleStr := "D"
	if fill {
		styleStr = "FD"
	}
	rd.pdf.DrawPath(styleStr)
}

// WriteAsset writes a one page PDF with the outlines of asset,
// using default options.
func WriteAsset(w io.Writer, asset *vecasset.Asset) error {
	return WriteAssetWith(w, asset, Options{Margin: 10})
}

// WriteAssetWith writes a one page PDF with the outlines of asset.
// The page is sized to the content, plus the margin.
func WriteAssetWith(w io.Writer, asset *vecasset.Asset, opts Options) error {
	minP, maxP, ok := asset.Bounds()
	if !ok {
		minP, maxP = vec.Vec2{}, vec.Vec2{X: asset.Width, Y: asset.Height}
	}
	size := gofpdf.SizeType{
		Wd: max(maxP.X-minP.X+2*opts.Margin, 1),
		Ht: max(maxP.Y-minP.Y+2*opts.Margin, 1),
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: size})
	pdf.SetCompression(opts.Compress)
	pdf.SetAutoPageBreak(false, 0)
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	pdf.SetCreator("svgmesh", false)
	pdf.AddPage()
	pdf.SetLineWidth(0.5)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetFillColor(200, 200, 200)

	rd := NewRenderer(pdf, minP.X, maxP.Y, opts.Margin)
	for _, path := range asset.Paths {
		rd.Draw(path.Placed(), opts.Fill)
	}
	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
