package overview

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/topicmap/pkg/index"
	"github.com/matzehuels/topicmap/pkg/render/mapview/sink"
)

// Layout directions accepted by Options.Direction.
const (
	DirectionLR = "LR"
	DirectionTB = "TB"
)

// Options configures the overview diagram.
type Options struct {
	// Direction is the Graphviz rankdir; LR by default.
	Direction string
	// LinkBase is the page every node links to.
	LinkBase string
	// MaxDepth stops descending below this depth; 0 means unlimited.
	MaxDepth int
	// Highlight marks one topic, usually the current focus.
	Highlight string
}

func (o *Options) setDefaults() {
	if o.Direction != DirectionTB {
		o.Direction = DirectionLR
	}
	if o.LinkBase == "" {
		o.LinkBase = sink.DefaultLinkBase
	}
}

// ToDOT converts the index to Graphviz DOT, walking from the root in
// index order. Each node carries a URL to its topic page and a tooltip
// with the first line of its definition.
func ToDOT(idx *index.Index, opts Options) string {
	opts.setDefaults()

	var buf bytes.Buffer
	buf.WriteString("digraph topics {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", opts.Direction)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=\"#eef2ff\", color=\"#1e3a8a\", fontname=\"Helvetica\", fontsize=12, margin=\"0.2,0.08\"];\n")
	buf.WriteString("  edge [color=\"#64748b\", arrowhead=none];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	root, ok := idx.Root()
	if !ok {
		buf.WriteString("}\n")
		return buf.String()
	}

	var edges []string
	type item struct {
		id    string
		depth int
	}
	stack := []item{{root.ID, 0}}
	seen := map[string]bool{}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[it.id] {
			continue
		}
		seen[it.id] = true

		e, _ := idx.Get(it.id)
		fmt.Fprintf(&buf, "  %s [%s];\n", quote(e.ID), strings.Join(nodeAttrs(e, opts), ", "))

		if opts.MaxDepth > 0 && it.depth >= opts.MaxDepth {
			continue
		}
		for i := len(e.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{e.Children[i], it.depth + 1})
		}
		for _, c := range e.Children {
			edges = append(edges, fmt.Sprintf("  %s -> %s;\n", quote(e.ID), quote(c)))
		}
	}

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(e index.Entry, opts Options) []string {
	attrs := []string{
		"label=" + quote(e.Label),
		"URL=" + quote(sink.TopicURL(opts.LinkBase, e.ID)),
		"target=\"_top\"",
	}
	if tip := tooltip(e); tip != "" {
		attrs = append(attrs, "tooltip="+quote(tip))
	}
	switch {
	case e.ID == opts.Highlight:
		attrs = append(attrs, "fillcolor=\"#1e3a8a\"", "fontcolor=white", "penwidth=2")
	case e.IsRoot():
		attrs = append(attrs, "fillcolor=\"#c7d2fe\"")
	}
	return attrs
}

func tooltip(e index.Entry) string {
	ctx := e.Context()
	if ctx == nil {
		return e.Label
	}
	def, _, _ := strings.Cut(strings.TrimSpace(ctx.Definition), "\n")
	if def == "" {
		return e.Label
	}
	return def
}

// quote returns s as a DOT double-quoted string.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", "")
	return `"` + r.Replace(s) + `"`
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element with an origin-anchored
// viewBox and keeps the xlink namespace the node links depend on.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" class="topicmap-overview" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
