// Package viewport holds the pan/zoom transform applied to a rendered map.
//
// A [State] is a rectangle in drawing coordinates (the SVG viewBox). Wheel
// steps scale it around its centre, drags translate it by the pointer delta
// converted from screen pixels to drawing units, so panning speed does not
// depend on the rendered size. One State belongs to one rendered page; it is
// never shared.
package viewport

import (
	"fmt"
	"math"
)

// Defaults for the scale bounds and the wheel step.
const (
	DefaultMinScale = 0.4
	DefaultMaxScale = 3.0
	ZoomStep        = 1.1
)

// Rect is an axis-aligned rectangle in drawing coordinates.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, o.MinX),
		MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX),
		MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// State is the viewport: the visible rectangle plus the scale bounds.
// Scale 1 means the visible rectangle equals the base size.
type State struct {
	X, Y          float64
	Width, Height float64

	BaseWidth, BaseHeight float64
	MinScale, MaxScale    float64

	// Clamp enables the scale bounds. Without it zooming is unbounded.
	Clamp bool
}

// New returns a clamped viewport showing (0, 0, w, h) at scale 1.
func New(w, h float64) State {
	return State{
		Width: w, Height: h,
		BaseWidth: w, BaseHeight: h,
		MinScale: DefaultMinScale,
		MaxScale: DefaultMaxScale,
		Clamp:    true,
	}
}

// Scale returns the current magnification relative to the base size.
func (s State) Scale() float64 {
	if s.Width == 0 {
		return 1
	}
	return s.BaseWidth / s.Width
}

// Zoom applies one wheel event. A negative deltaY zooms in by [ZoomStep],
// a positive one zooms out, zero does nothing. The centre of the visible
// rectangle stays fixed.
func (s *State) Zoom(deltaY float64) {
	switch {
	case deltaY < 0:
		s.SetScale(s.Scale() * ZoomStep)
	case deltaY > 0:
		s.SetScale(s.Scale() / ZoomStep)
	}
}

// ZoomSteps applies n wheel steps; positive n zooms in.
func (s *State) ZoomSteps(n int) {
	for ; n > 0; n-- {
		s.Zoom(-1)
	}
	for ; n < 0; n++ {
		s.Zoom(1)
	}
}

// SetScale sets the magnification, honouring the bounds when clamping,
// and keeps the centre fixed.
func (s *State) SetScale(scale float64) {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return
	}
	if s.Clamp {
		scale = math.Min(math.Max(scale, s.MinScale), s.MaxScale)
	}
	cx, cy := s.X+s.Width/2, s.Y+s.Height/2
	s.Width = s.BaseWidth / scale
	s.Height = s.BaseHeight / scale
	s.X = cx - s.Width/2
	s.Y = cy - s.Height/2
}

// Pan applies a pointer drag of (dx, dy) screen pixels on a surface
// rendered at pixelW x pixelH. Dragging right moves the content right,
// so the visible rectangle moves left.
func (s *State) Pan(dx, dy, pixelW, pixelH float64) {
	if pixelW <= 0 || pixelH <= 0 {
		return
	}
	s.X -= dx * s.Width / pixelW
	s.Y -= dy * s.Height / pixelH
}

// Fit returns a viewport of the given base size that shows bounds with a
// relative margin, preserving the base aspect ratio.
func Fit(bounds Rect, w, h, margin float64) State {
	s := New(w, h)
	bw, bh := bounds.Width(), bounds.Height()
	if bw <= 0 || bh <= 0 {
		return s
	}
	scale := math.Min(w/bw, h/bh) * (1 - margin)
	if scale <= 0 {
		return s
	}
	s.Width, s.Height = w/scale, h/scale
	s.X = bounds.MinX + bw/2 - s.Width/2
	s.Y = bounds.MinY + bh/2 - s.Height/2
	return s
}

// ViewBox formats the visible rectangle as an SVG viewBox attribute value.
func (s State) ViewBox() string {
	return fmt.Sprintf("%.2f %.2f %.2f %.2f", s.X, s.Y, s.Width, s.Height)
}
