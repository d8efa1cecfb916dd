// Package svgtree parses SVG documents into a tree of
// groups, paths, images and texts.
//
// Shapes (rect, circle, ellipse, line, polyline, polygon) are
// reduced to paths. Every node carries its absolute transform,
// that is the composition of all its ancestors' transforms,
// and paths carry their absolute bounding box.
// Paint and style information is not retained.
package svgtree

import "github.com/benoitkugler/svgmesh/svgpath"

// Node is one of *Group, *Path, *Image or *Text.
type Node interface {
	isNode()
}

// Group owns an ordered list of children.
type Group struct {
	ID        string
	Transform svgpath.Matrix2D // absolute transform
	Children  []Node
}

// Path is a drawable outline.
type Path struct {
	ID string
	// Data is expressed in the path local coordinates,
	// AbsTransform maps it to document space.
	Data           svgpath.Path
	AbsTransform   svgpath.Matrix2D
	AbsBoundingBox svgpath.Bounds // in document space
}

// Image is a raster or nested image reference.
type Image struct {
	ID, Href            string
	X, Y, Width, Height float64
	AbsTransform        svgpath.Matrix2D
}

// Text is a text element. The glyphs are not converted to paths.
type Text struct {
	ID, Content  string
	X, Y         float64
	AbsTransform svgpath.Matrix2D
}

func (*Group) isNode() {}
func (*Path) isNode()  {}
func (*Image) isNode() {}
func (*Text) isNode()  {}

// Append adds children at the end of the group.
func (g *Group) Append(children ...Node) *Group {
	g.Children = append(g.Children, children...)
	return g
}

// Tree is a parsed SVG document.
type Tree struct {
	Root *Group

	// Width and Height are the document size, in pixels.
	Width, Height float64
	ViewBox       svgpath.Bounds

	Titles       []string // Title elements collect here
	Descriptions []string // Description elements collect here
}

// Size returns the document size, in pixels.
func (t *Tree) Size() (width, height float64) {
	return t.Width, t.Height
}
