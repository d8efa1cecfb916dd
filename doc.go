// Package svgmesh turns SVG documents into flattened polylines, ready to
// be consumed by a mesh or rendering pipeline.
//
// The work is split between sub-packages:
//   - svgpath describes path segments, affine matrices and bounding boxes
//   - svgtree parses SVG bytes into a document tree of groups, paths,
//     images and texts
//   - flatten collects the paths of a tree and approximates their curves
//     by line segments
//   - vecasset assembles the flattened paths into an immutable asset
//   - svgraster and svgpdf render an asset, for previews and debugging
//
// This package only holds the logger shared by the sub-packages.
package svgmesh
