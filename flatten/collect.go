// Package flatten turns document paths into polylines.
//
// Collect gathers the drawable paths of a document tree, in
// document order. Flatten converts one path into a list of points,
// approximating Bézier curves with line segments and mapping the
// points into a frame relative to the path bounding box, with the
// Y axis pointing up.
package flatten

import (
	"fmt"

	"github.com/benoitkugler/svgmesh/svgtree"
)

// Collect returns every path reachable from root, depth first,
// in document order. Images, texts and nil nodes are skipped.
// The result is never nil.
func Collect(root *svgtree.Group) []*svgtree.Path {
	out := []*svgtree.Path{}
	walk(root, func(p *svgtree.Path) { out = append(out, p) })
	return out
}

// CountPaths returns the number of paths Collect would return.
func CountPaths(root *svgtree.Group) int {
	n := 0
	walk(root, func(*svgtree.Path) { n++ })
	return n
}

// walk calls fn for each path under g, in document order.
func walk(g *svgtree.Group, fn func(*svgtree.Path)) {
	if g == nil {
		return
	}
	for _, child := range g.Children {
		switch child := child.(type) {
		case nil:
		case *svgtree.Group:
			walk(child, fn)
		case *svgtree.Path:
			if child != nil {
				fn(child)
			}
		case *svgtree.Image, *svgtree.Text:
			// not drawable
		default:
			panic(fmt.Sprintf("flatten: unexpected node type %T", child))
		}
	}
}
