// Package render groups the topicmap renderers.
//
//   - [mapview]: layout of one focused topic and drawing onto a Canvas,
//     with an SVG canvas in mapview/sink
//   - [page]: the HTML document around the map (breadcrumb, context
//     panel, interaction script, terminal states)
//   - [overview]: the whole tree as a Graphviz node-link diagram
package render
