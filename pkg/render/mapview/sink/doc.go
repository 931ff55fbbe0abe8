// Package sink turns a [mapview.Layout] into output formats.
//
// [SVG] implements [mapview.Canvas] on top of github.com/ajstarks/svgo and
// produces a self-contained SVG document: boxes and labels are wrapped in
// links to the topic page, each element carries data attributes (id,
// label, definition, owner) that the page script uses for tooltips, and
// preview boxes are emitted hidden and toggled on hover of their owner.
// Showing and hiding never creates elements, so repeated hovers cannot
// accumulate stale nodes.
//
// [mapview.Layout]: github.com/matzehuels/topicmap/pkg/render/mapview.Layout
// [mapview.Canvas]: github.com/matzehuels/topicmap/pkg/render/mapview.Canvas
package sink
