package vecasset

import "github.com/benoitkugler/svgmesh/svgtree"

// PixelsPerPoint converts SVG pixels to points, in page
// relative normalization.
const PixelsPerPoint = 1.3333313

// Normalization selects the frame of the emitted points.
type Normalization uint8

const (
	// BBoxRelative emits the points of each path relative to the
	// top left corner of its bounding box, Y up. The corner is
	// stored as the path translation. This is the default.
	BBoxRelative Normalization = iota

	// PageRelative emits the points relative to the bottom left
	// corner of the page, in points, Y up. Translations are zero
	// and the asset size is expressed in points.
	PageRelative
)

func (n Normalization) String() string {
	switch n {
	case BBoxRelative:
		return "bbox"
	case PageRelative:
		return "page"
	default:
		return "unknown"
	}
}

// ParseNormalization is the inverse of Normalization.String.
func ParseNormalization(s string) (Normalization, bool) {
	switch s {
	case "bbox", "":
		return BBoxRelative, true
	case "page":
		return PageRelative, true
	default:
		return 0, false
	}
}

// Options configures the flattening of a document.
// The zero value is ready to use.
type Options struct {
	Normalization Normalization

	// Tolerance is the curve flattening tolerance, in document units.
	// Zero means flatten.Tolerance.
	Tolerance float64

	// Workers bounds the number of paths flattened concurrently.
	// Zero means runtime.GOMAXPROCS(0).
	Workers int

	// ErrorMode is passed to the SVG parser.
	ErrorMode svgtree.ErrorMode
}

func (opts Options) workers() int {
	if opts.Workers > 0 {
		return opts.Workers
	}
	return defaultWorkers()
}
