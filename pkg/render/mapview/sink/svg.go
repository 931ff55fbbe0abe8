package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"net/url"

	svg "github.com/ajstarks/svgo/float"

	"github.com/matzehuels/topicmap/pkg/render/mapview"
	"github.com/matzehuels/topicmap/pkg/viewport"
)

// DefaultLinkBase is the page that box links point at.
const DefaultLinkBase = "/topic"

const (
	fontSize     = 13.0
	textBaseline = 5.0
)

const mapCSS = `
    .edge { fill: none; stroke: #c7d2fe; stroke-width: 1.4; }
    .box { fill: #ffffff; stroke: #64748b; stroke-width: 1.5; transition: stroke 0.15s ease; }
    .box.focus { stroke: #0f172a; stroke-width: 2.5; }
    .box.hover { stroke: #1e40af; }
    .label { fill: #111827; font-family: system-ui, sans-serif; pointer-events: none; }
    .preview { display: none; }
    .preview.show { display: inline; }
    a { cursor: pointer; }`

// previewJS reveals a child's preview boxes while the pointer is over it.
// Previews are pre-rendered and only toggled, never created.
const previewJS = `
    (function () {
      const root = document.currentScript ? document.currentScript.closest('svg') : document.querySelector('svg.topicmap');
      if (!root) return;
      function toggle(id, on) {
        root.querySelectorAll('.preview[data-owner="' + CSS.escape(id) + '"]').forEach(el => el.classList.toggle('show', on));
        root.querySelectorAll('.box[data-id="' + CSS.escape(id) + '"]:not(.focus)').forEach(el => el.classList.toggle('hover', on));
      }
      root.querySelectorAll('.box.child').forEach(el => {
        el.addEventListener('mouseenter', () => toggle(el.dataset.id, true));
        el.addEventListener('mouseleave', () => toggle(el.dataset.id, false));
      });
      root.querySelectorAll('.box.parent, .box.preview').forEach(el => {
        el.addEventListener('mouseenter', () => el.classList.add('hover'));
        el.addEventListener('mouseleave', () => el.classList.remove('hover'));
      });
    })();`

// SVGOption configures an [SVG] canvas.
type SVGOption func(*SVG)

// WithViewport sets the initial viewBox. The default shows the layout frame.
func WithViewport(v viewport.State) SVGOption {
	return func(s *SVG) { s.view = v; s.hasView = true }
}

// WithLinkBase sets the page that box links navigate to.
func WithLinkBase(page string) SVGOption {
	return func(s *SVG) { s.linkBase = page }
}

// WithLeftAlignedText anchors labels at the left padding of their box
// instead of centring them.
func WithLeftAlignedText() SVGOption {
	return func(s *SVG) { s.leftAlign = true }
}

// WithoutScript omits the preview script, for contexts that do not run
// scripts (image viewers, <img> embedding).
func WithoutScript() SVGOption {
	return func(s *SVG) { s.script = false }
}

// SVG is a [mapview.Canvas] that writes SVG elements.
type SVG struct {
	body      bytes.Buffer
	canvas    *svg.SVG
	view      viewport.State
	hasView   bool
	linkBase  string
	leftAlign bool
	script    bool
}

// NewSVG returns an empty SVG canvas.
func NewSVG(opts ...SVGOption) *SVG {
	s := &SVG{linkBase: DefaultLinkBase, script: true}
	for _, opt := range opts {
		opt(s)
	}
	s.canvas = svg.New(&s.body)
	return s
}

// Clear discards everything drawn so far.
func (s *SVG) Clear() { s.body.Reset() }

// DrawCurve writes a quadratic connector.
func (s *SVG) DrawCurve(c mapview.Curve) {
	attrs := []string{attr("class", classes("edge", c.Owner)), attr("data-from", c.From), attr("data-to", c.To)}
	if c.Owner != "" {
		attrs = append(attrs, attr("data-owner", c.Owner))
	}
	s.canvas.Qbez(c.SX, c.SY, c.CX, c.CY, c.EX, c.EY, attrs...)
}

// DrawBox writes the rounded rectangle of b, linked to its topic page
// unless b is the focused topic.
func (s *SVG) DrawBox(b mapview.Box) {
	scale := b.H / mapview.BoxHeight
	attrs := []string{
		attr("class", "box "+b.Role.String()),
		attr("data-id", b.ID),
		attr("data-label", b.Label),
	}
	if b.Definition != "" {
		attrs = append(attrs, attr("data-def", b.Definition))
	}
	if b.Owner != "" {
		attrs = append(attrs, attr("data-owner", b.Owner))
	}
	s.link(b, func() {
		s.canvas.Roundrect(b.Left(), b.Top(), b.W, b.H, mapview.BoxRadius*scale, mapview.BoxRadius*scale, attrs...)
	})
}

// DrawLabel writes the text of b.
func (s *SVG) DrawLabel(b mapview.Box) {
	scale := b.H / mapview.BoxHeight
	x, anchor := b.CX, "middle"
	if s.leftAlign {
		x, anchor = b.Left()+mapview.PaddingX*scale, "start"
	}
	attrs := []string{
		attr("class", "label"+ownerClass(b)),
		attr("data-id", b.ID),
		attr("text-anchor", anchor),
		attr("font-size", fmt.Sprintf("%.1f", fontSize*scale)),
	}
	if b.Owner != "" {
		attrs = append(attrs, attr("data-owner", b.Owner))
	}
	s.link(b, func() {
		s.canvas.Text(x, b.CY+textBaseline*scale, b.Label, attrs...)
	})
}

func (s *SVG) link(b mapview.Box, fn func()) {
	if !b.Clickable() {
		fn()
		return
	}
	s.canvas.Link(EscapeXML(TopicURL(s.linkBase, b.ID)), b.Label)
	fn()
	s.canvas.LinkEnd()
}

// Bytes returns the complete SVG document for the current drawing.
func (s *SVG) Bytes(frame viewport.Rect) []byte {
	view := s.view
	if !s.hasView {
		view = viewport.New(frame.Width(), frame.Height())
		view.X, view.Y = frame.MinX, frame.MinY
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" class="topicmap" viewBox="%s" width="%.0f" height="%.0f" preserveAspectRatio="xMidYMid meet">`+"\n",
		view.ViewBox(), frame.Width(), frame.Height())
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", mapCSS)
	buf.WriteString(`  <g class="viewport">` + "\n")
	buf.Write(s.body.Bytes())
	buf.WriteString("  </g>\n")
	if s.script {
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", previewJS)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// RenderSVG draws l onto a fresh canvas and returns the document.
func RenderSVG(l mapview.Layout, opts ...SVGOption) []byte {
	s := NewSVG(opts...)
	mapview.Draw(s, l)
	return s.Bytes(l.Frame)
}

// TopicURL returns the navigation target for id on page.
func TopicURL(page, id string) string {
	return page + "?id=" + url.QueryEscape(id)
}

// EscapeXML escapes s for use in XML text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func attr(name, value string) string {
	return fmt.Sprintf(`%s="%s"`, name, EscapeXML(value))
}

func classes(base, owner string) string {
	if owner != "" {
		return base + " preview"
	}
	return base
}

func ownerClass(b mapview.Box) string {
	if b.Role == mapview.RolePreview {
		return " preview"
	}
	return ""
}
