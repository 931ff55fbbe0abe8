// Package pkg provides the core libraries for topicmap, a mind-map browser
// for topic hierarchies.
//
// # Overview
//
// A topic tree is loaded once, indexed by id, and rendered as one focused
// view at a time: the topic, its parent on the left, its children on the
// right, a breadcrumb and a context panel. The pkg directory is organized
// as:
//
//  1. [topic] - Tree model and JSON/YAML/flat codecs
//  2. [index] - Immutable id index with paths and statistics
//  3. [render] - Map layout, page, and Graphviz overview rendering
//  4. [pipeline] - Load, index and render with caching
//  5. [server] - HTTP front end
//
// # Architecture
//
//	File / HTTP / MongoDB
//	         ↓
//	    [source] package (load the tree)
//	         ↓
//	    [index] package (id → entry, parent, children)
//	         ↓
//	    [render/mapview] package (layout onto a Canvas)
//	         ↓
//	    [render/page] HTML page, or bare SVG map
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/topicmap/pkg/index"
//	    "github.com/matzehuels/topicmap/pkg/render/page"
//	    "github.com/matzehuels/topicmap/pkg/topic"
//	)
//
//	root, _ := topic.ReadJSON(f)
//	idx := index.Build(topic.AssignIDs(root))
//	p, _ := page.ForTopic(idx, "weaving", page.DefaultOptions())
//	p.Render(w)
//
// # Supporting Packages
//
// [viewport] holds the pan/zoom state and its math. [cache] stores rendered
// output in files or Redis. [config] reads the TOML config file.
// [errors] defines coded errors; [observability] exposes hooks for logging
// and metrics; [buildinfo] carries version information.
package pkg
