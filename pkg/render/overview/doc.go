// Package overview renders a whole topic tree as one Graphviz diagram.
//
// The per-topic map only shows a focus, its parent and its children. The
// overview lays out every indexed topic at once, each node linking to its
// topic page, so a reader can jump anywhere in the hierarchy.
//
// # Usage
//
//	dot := overview.ToDOT(idx, overview.Options{Direction: "LR"})
//	svg, err := overview.RenderSVG(ctx, dot)
//
// The DOT source can also be saved and processed with external Graphviz
// tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no system Graphviz install is needed.
package overview
