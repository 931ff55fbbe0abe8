package mapview

import "fmt"

// Curve is a quadratic Bézier connecting two boxes edge to edge.
type Curve struct {
	From, To string

	SX, SY float64 // start, on the right edge of the left box
	CX, CY float64 // control point
	EX, EY float64 // end, on the left edge of the right box

	// Owner is set for curves that belong to a hover preview.
	Owner string
}

// Connect returns the curve from the right edge of left to the left edge of
// right. The control point sits halfway between the edges at the start's
// height, so the curve leaves left horizontally.
func Connect(left, right Box) Curve {
	sx := left.Right()
	ex := right.Left()
	return Curve{
		From: left.ID, To: right.ID,
		SX: sx, SY: left.CY,
		CX: (sx + ex) / 2, CY: left.CY,
		EX: ex, EY: right.CY,
	}
}

// Path returns the curve as SVG path data.
func (c Curve) Path() string {
	return fmt.Sprintf("M %.2f %.2f Q %.2f %.2f, %.2f %.2f", c.SX, c.SY, c.CX, c.CY, c.EX, c.EY)
}
