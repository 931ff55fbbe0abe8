package mapview

import (
	"github.com/matzehuels/topicmap/pkg/errors"
	"github.com/matzehuels/topicmap/pkg/index"
	"github.com/matzehuels/topicmap/pkg/viewport"
)

// Default geometry, in drawing units.
const (
	DefaultFrameWidth  = 1200.0
	DefaultFrameHeight = 800.0
	DefaultLevelGapX   = 260.0
	DefaultLevelGapY   = 100.0

	DefaultPreviewScale = 0.7
	DefaultPreviewGapX  = 180.0
	DefaultPreviewGapY  = 40.0
)

// Options controls the geometry of a layout.
type Options struct {
	// FrameWidth and FrameHeight size the drawing surface.
	FrameWidth, FrameHeight float64
	// AnchorX and AnchorY position the focused topic.
	AnchorX, AnchorY float64
	// LevelGapX separates the parent, focus and child columns.
	LevelGapX float64
	// LevelGapY separates siblings vertically.
	LevelGapY float64

	// Previews lays out each child's children for hover expansion.
	Previews                 bool
	PreviewScale             float64
	PreviewGapX, PreviewGapY float64
}

// DefaultOptions returns the standard 1200x800 frame anchored at its centre.
func DefaultOptions() Options {
	return Options{
		FrameWidth:   DefaultFrameWidth,
		FrameHeight:  DefaultFrameHeight,
		AnchorX:      DefaultFrameWidth / 2,
		AnchorY:      DefaultFrameHeight / 2,
		LevelGapX:    DefaultLevelGapX,
		LevelGapY:    DefaultLevelGapY,
		Previews:     true,
		PreviewScale: DefaultPreviewScale,
		PreviewGapX:  DefaultPreviewGapX,
		PreviewGapY:  DefaultPreviewGapY,
	}
}

func (o *Options) setDefaults() {
	d := DefaultOptions()
	if o.FrameWidth <= 0 {
		o.FrameWidth = d.FrameWidth
	}
	if o.FrameHeight <= 0 {
		o.FrameHeight = d.FrameHeight
	}
	if o.AnchorX == 0 && o.AnchorY == 0 {
		o.AnchorX, o.AnchorY = o.FrameWidth/2, o.FrameHeight/2
	}
	if o.LevelGapX <= 0 {
		o.LevelGapX = d.LevelGapX
	}
	if o.LevelGapY <= 0 {
		o.LevelGapY = d.LevelGapY
	}
	if o.PreviewScale <= 0 {
		o.PreviewScale = d.PreviewScale
	}
	if o.PreviewGapX <= 0 {
		o.PreviewGapX = d.PreviewGapX
	}
	if o.PreviewGapY <= 0 {
		o.PreviewGapY = d.PreviewGapY
	}
}

// Layout is the computed position of everything drawn for one focus.
type Layout struct {
	Focus    Box
	Parent   *Box
	Children []Box
	Previews []Box
	Curves   []Curve
	Frame    viewport.Rect
}

// Boxes returns every box in drawing order: parent, focus, children,
// previews.
func (l Layout) Boxes() []Box {
	out := make([]Box, 0, 2+len(l.Children)+len(l.Previews))
	if l.Parent != nil {
		out = append(out, *l.Parent)
	}
	out = append(out, l.Focus)
	out = append(out, l.Children...)
	return append(out, l.Previews...)
}

// Bounds returns the rectangle covering all boxes.
func (l Layout) Bounds() viewport.Rect {
	r := l.Focus.Bounds()
	for _, b := range l.Boxes() {
		r = r.Union(b.Bounds())
	}
	return r
}

// Compute lays out the focused topic, its parent and its children.
// It fails with TOPIC_NOT_FOUND when focusID is not in idx.
func Compute(idx *index.Index, focusID string, opts Options) (Layout, error) {
	opts.setDefaults()

	focus, ok := idx.Get(focusID)
	if !ok {
		return Layout{}, errors.New(errors.ErrCodeTopicNotFound, "topic %q not found", focusID)
	}

	l := Layout{
		Frame: viewport.Rect{MaxX: opts.FrameWidth, MaxY: opts.FrameHeight},
	}
	l.Focus = newBox(focus, RoleFocus, opts.AnchorX, opts.AnchorY, 1)

	if parent, ok := idx.Parent(focusID); ok {
		p := newBox(parent, RoleParent, opts.AnchorX-opts.LevelGapX, opts.AnchorY, 1)
		l.Parent = &p
		l.Curves = append(l.Curves, Connect(p, l.Focus))
	}

	children := idx.Children(focusID)
	l.Children = make([]Box, 0, len(children))
	for i, c := range children {
		y := opts.AnchorY + ChildOffset(i, len(children), opts.LevelGapY)
		cb := newBox(c, RoleChild, opts.AnchorX+opts.LevelGapX, y, 1)
		l.Children = append(l.Children, cb)
		l.Curves = append(l.Curves, Connect(l.Focus, cb))

		if opts.Previews {
			l.addPreviews(idx, cb, opts)
		}
	}

	return l, nil
}

func (l *Layout) addPreviews(idx *index.Index, owner Box, opts Options) {
	grandchildren := idx.Children(owner.ID)
	for j, g := range grandchildren {
		y := owner.CY + ChildOffset(j, len(grandchildren), opts.PreviewGapY)
		pb := newBox(g, RolePreview, 0, y, opts.PreviewScale)
		pb.CX = owner.Right() + opts.PreviewGapX*opts.PreviewScale + pb.W/2
		pb.Owner = owner.ID
		l.Previews = append(l.Previews, pb)

		c := Connect(owner, pb)
		c.Owner = owner.ID
		l.Curves = append(l.Curves, c)
	}
}

func newBox(e index.Entry, role Role, cx, cy, scale float64) Box {
	b := Box{
		ID:    e.ID,
		Label: e.Label,
		Role:  role,
		CX:    cx, CY: cy,
		W: BoxWidth(e.Label) * scale,
		H: BoxHeight * scale,
	}
	if ctx := e.Context(); ctx != nil {
		b.Definition = ctx.Definition
	}
	return b
}
