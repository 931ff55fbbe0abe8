// Package mapview lays out and draws the focused view of a topic map.
//
// # Layout
//
// [Compute] places three groups around a fixed anchor: the focused topic,
// its parent one level gap to the left, and its children one level gap to
// the right. Child i of N sits at anchor.Y + (i - (N-1)/2) * gap, so the
// children are evenly spaced, symmetric about the focus and kept in input
// order. Each child's own children are laid out as smaller preview boxes
// that the page reveals on hover.
//
// Box widths depend on the label alone (see [BoxWidth]): a fixed per-rune
// estimate plus padding, clamped to a minimum and maximum. No glyph metrics
// are involved, so the same label always gets the same box.
//
// Curves ([Curve]) run from the facing edge of one box to the facing edge of
// the other, not between centres.
//
// # Drawing
//
// A [Renderer] replays a [Layout] onto a [Canvas]: curves first, then
// boxes, then labels. It clears the canvas before drawing, so rendering the
// same layout twice leaves exactly one copy of every element. The SVG
// backend lives in the [sink] subpackage; tests use a recording canvas.
//
// [sink]: github.com/matzehuels/topicmap/pkg/render/mapview/sink
package mapview
