package mapview

import (
	"unicode/utf8"

	"github.com/matzehuels/topicmap/pkg/viewport"
)

// Box sizing constants.
const (
	CharWidth   = 7.2
	PaddingX    = 20.0
	MinBoxWidth = 140.0
	MaxBoxWidth = 300.0
	BoxHeight   = 44.0
	BoxRadius   = 6.0
)

// Role tells a backend how a box relates to the focused topic.
type Role int

const (
	RoleFocus Role = iota
	RoleParent
	RoleChild
	RolePreview
)

// String returns the lowercase role name used as a CSS class.
func (r Role) String() string {
	switch r {
	case RoleFocus:
		return "focus"
	case RoleParent:
		return "parent"
	case RoleChild:
		return "child"
	case RolePreview:
		return "preview"
	default:
		return "unknown"
	}
}

// Box is one topic drawn as a rounded rectangle centred on (CX, CY).
type Box struct {
	ID         string
	Label      string
	Definition string
	Role       Role
	CX, CY     float64
	W, H       float64

	// Owner is the child whose hover reveals this box. Empty unless Role
	// is RolePreview.
	Owner string
}

// Left returns the x coordinate of the left edge.
func (b Box) Left() float64 { return b.CX - b.W/2 }

// Right returns the x coordinate of the right edge.
func (b Box) Right() float64 { return b.CX + b.W/2 }

// Top returns the y coordinate of the top edge.
func (b Box) Top() float64 { return b.CY - b.H/2 }

// Bounds returns the rectangle covered by the box.
func (b Box) Bounds() viewport.Rect {
	return viewport.Rect{MinX: b.Left(), MinY: b.Top(), MaxX: b.Right(), MaxY: b.CY + b.H/2}
}

// Clickable reports whether the box navigates when clicked.
// The focused topic is the current location and does not.
func (b Box) Clickable() bool { return b.Role != RoleFocus }

// BoxWidth returns the width of the box for label: 7.2 units per rune plus
// 20 units of padding on each side, clamped to [140, 300].
func BoxWidth(label string) float64 {
	w := float64(utf8.RuneCountInString(label))*CharWidth + 2*PaddingX
	return min(max(w, MinBoxWidth), MaxBoxWidth)
}

// ChildOffset returns the vertical offset of child i among n siblings,
// relative to their parent's centre.
func ChildOffset(i, n int, gap float64) float64 {
	return (float64(i) - float64(n-1)/2) * gap
}
