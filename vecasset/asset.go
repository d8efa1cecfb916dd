// Package vecasset builds flattened vector assets from SVG documents.
//
// An Asset holds one polyline per drawable path of the document, in
// document order, together with the document size. It is the value
// handed to a mesh or rendering pipeline.
package vecasset

import (
	"io"
	"os"
	"runtime"
	"sync"

	"seehuhn.de/go/geom/vec"

	"github.com/benoitkugler/svgmesh"
	"github.com/benoitkugler/svgmesh/flatten"
	"github.com/benoitkugler/svgmesh/svgpath"
	"github.com/benoitkugler/svgmesh/svgtree"
)

// FlattenedPath is the polyline of one path, with the
// offset that positions it in the document.
type FlattenedPath struct {
	Points      []vec.Vec2
	Translation vec.Vec2
}

// Asset is the flattened content of a document.
type Asset struct {
	Paths         []FlattenedPath
	Width, Height float64
}

// PointCount returns the total number of points.
func (a *Asset) PointCount() int {
	n := 0
	for _, p := range a.Paths {
		n += len(p.Points)
	}
	return n
}

// Placed returns the points moved by the translation,
// in the asset frame (Y up).
func (p FlattenedPath) Placed() []vec.Vec2 {
	out := make([]vec.Vec2, len(p.Points))
	for i, pt := range p.Points {
		out[i] = vec.Vec2{X: pt.X + p.Translation.X, Y: pt.Y - p.Translation.Y}
	}
	return out
}

// Bounds returns the extent of the placed points.
// It returns false for an asset without points.
func (a *Asset) Bounds() (minP, maxP vec.Vec2, ok bool) {
	for _, p := range a.Paths {
		for _, pt := range p.Placed() {
			if !ok {
				minP, maxP, ok = pt, pt, true
				continue
			}
			minP.X, minP.Y = min(minP.X, pt.X), min(minP.Y, pt.Y)
			maxP.X, maxP.Y = max(maxP.X, pt.X), max(maxP.Y, pt.Y)
		}
	}
	return minP, maxP, ok
}

// FromTree flattens every path of tree.
func FromTree(tree *svgtree.Tree, opts Options) *Asset {
	paths := flatten.Collect(tree.Root)
	width, height := tree.Size()
	svgmesh.Logger().Debug("vecasset: flattening document",
		"paths", len(paths), "width", width, "height", height,
		"titles", tree.Titles)

	out := make([]FlattenedPath, len(paths))
	forEach(len(paths), opts.workers(), func(i int) {
		out[i] = opts.flattenPath(paths[i], height)
	})

	asset := &Asset{Paths: out, Width: width, Height: height}
	if opts.Normalization == PageRelative {
		asset.Width, asset.Height = width/PixelsPerPoint, height/PixelsPerPoint
	}
	svgmesh.Logger().Debug("vecasset: document flattened", "points", asset.PointCount())
	return asset
}

func (opts Options) flattenPath(p *svgtree.Path, docHeight float64) FlattenedPath {
	fo := flatten.Options{Tolerance: opts.Tolerance}
	if opts.Normalization == PageRelative {
		// no re-centering: the page origin is kept and the Y axis
		// is flipped around the page height, in points
		sx, sy, tx, ty := p.AbsTransform.ScaleTranslate()
		m := svgpath.Matrix2D{A: sx, D: sy, E: tx, F: ty - docHeight/PixelsPerPoint}
		return FlattenedPath{Points: flatten.FlattenWith(p.Data, m, svgpath.Bounds{}, fo)}
	}
	bbox := p.AbsBoundingBox
	return FlattenedPath{
		Points:      flatten.FlattenWith(p.Data, p.AbsTransform, bbox, fo),
		Translation: vec.Vec2{X: bbox.Left(), Y: bbox.Top()},
	}
}

// forEach calls fn(i) for i in [0, n), on at most workers goroutines.
// Each goroutine handles a contiguous range.
func forEach(n, workers int, fn func(i int)) {
	if workers <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	perWorker := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += perWorker {
		end := min(start+perWorker, n)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// New parses data as an SVG document and flattens it.
// On failure, the error is a *ParseError.
func New(data []byte, opts Options) (*Asset, error) {
	tree, err := svgtree.Parse(data, opts.ErrorMode)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return FromTree(tree, opts), nil
}

// Load reads and flattens the named SVG file.
// The error is either an *IOError or a *ParseError.
func Load(filename string, opts Options) (*Asset, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, &IOError{Err: err}
	}
	return New(data, opts)
}

// Loader adapts the package to an asset server, which
// selects a loader by file extension and provides a byte stream.
type Loader struct {
	Options Options
}

// Extensions returns the file extensions handled by the loader.
func (Loader) Extensions() []string { return []string{"svg"} }

// Load reads the whole stream and flattens the document.
func (l Loader) Load(r io.Reader) (*Asset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Err: err}
	}
	return New(data, l.Options)
}

func defaultWorkers() int { return runtime.GOMAXPROCS(0) }
