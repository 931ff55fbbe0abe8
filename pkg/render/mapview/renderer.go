package mapview

import (
	"github.com/matzehuels/topicmap/pkg/index"
)

// Canvas is the drawing surface a [Renderer] writes to.
type Canvas interface {
	// Clear removes everything drawn so far.
	Clear()
	// DrawCurve draws a connector.
	DrawCurve(c Curve)
	// DrawBox draws the rectangle of a topic.
	DrawBox(b Box)
	// DrawLabel draws the text of a topic inside its box.
	DrawLabel(b Box)
}

// Renderer draws focused views of one index. It holds no per-render state,
// so one Renderer can serve many requests.
type Renderer struct {
	Index   *index.Index
	Options Options
}

// NewRenderer returns a renderer over idx with the default geometry.
func NewRenderer(idx *index.Index) *Renderer {
	return &Renderer{Index: idx, Options: DefaultOptions()}
}

// Render lays out focusID and draws it onto c. The canvas is cleared first
// in every case; when the topic is missing nothing else is drawn and the
// TOPIC_NOT_FOUND error from [Compute] is returned.
func (r *Renderer) Render(focusID string, c Canvas) (Layout, error) {
	c.Clear()
	l, err := Compute(r.Index, focusID, r.Options)
	if err != nil {
		return Layout{}, err
	}
	Draw(c, l)
	return l, nil
}

// Draw clears c and replays l onto it: curves, then boxes, then labels,
// so connectors never cover text.
func Draw(c Canvas, l Layout) {
	c.Clear()
	for _, cv := range l.Curves {
		c.DrawCurve(cv)
	}
	boxes := l.Boxes()
	for _, b := range boxes {
		c.DrawBox(b)
	}
	for _, b := range boxes {
		c.DrawLabel(b)
	}
}
