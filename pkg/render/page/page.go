package page

import (
	"bytes"
	"html/template"
	"io"
	"math"
	"time"

	"github.com/goccy/go-json"

	"github.com/matzehuels/topicmap/pkg/errors"
	"github.com/matzehuels/topicmap/pkg/index"
	"github.com/matzehuels/topicmap/pkg/render/mapview"
	"github.com/matzehuels/topicmap/pkg/render/mapview/sink"
	"github.com/matzehuels/topicmap/pkg/viewport"
)

// FitMargin is the share of the frame left empty around a fitted map.
const FitMargin = 0.1

// Defaults for the interaction script.
const (
	DefaultTitle         = "Topic map"
	DefaultTooltipDelay  = 200 * time.Millisecond
	DefaultTooltipOffset = 12
)

// Options configures page rendering.
type Options struct {
	// Title prefixes the document title.
	Title string
	// LinkBase is the page that topic links navigate to.
	LinkBase string
	// Layout is the map geometry.
	Layout mapview.Options
	// Viewport is the initial pan/zoom state. When nil the whole frame is
	// shown, or the fitted map when it overflows the frame, then ZoomSteps
	// and PanX/PanY are applied.
	Viewport *viewport.State
	// Fit always starts from the fitted map, even when it fits the frame.
	Fit bool
	// ZoomSteps is a number of wheel steps; positive zooms in.
	ZoomSteps int
	// PanX and PanY are a drag distance in frame pixels.
	PanX, PanY float64
	// NoClamp lifts the zoom bounds.
	NoClamp bool
	// LeftAlignText anchors labels at the left of their boxes.
	LeftAlignText bool

	TooltipDelay  time.Duration
	TooltipOffset int
}

// DefaultOptions returns the standard page settings.
func DefaultOptions() Options {
	return Options{
		Title:         DefaultTitle,
		LinkBase:      sink.DefaultLinkBase,
		Layout:        mapview.DefaultOptions(),
		TooltipDelay:  DefaultTooltipDelay,
		TooltipOffset: DefaultTooltipOffset,
	}
}

func (o *Options) setDefaults() {
	d := DefaultOptions()
	if o.Title == "" {
		o.Title = d.Title
	}
	if o.LinkBase == "" {
		o.LinkBase = d.LinkBase
	}
	if o.TooltipDelay <= 0 {
		o.TooltipDelay = d.TooltipDelay
	}
	if o.TooltipOffset <= 0 {
		o.TooltipOffset = d.TooltipOffset
	}
}

// Page is everything needed to write one HTML document.
type Page struct {
	State      State
	Title      string
	Message    string
	Breadcrumb []Crumb
	Panel      *Panel
	Map        template.HTML
	Config     Config
}

// Config is handed to the page script as JSON.
type Config struct {
	TooltipDelayMS int     `json:"tooltipDelayMs"`
	TooltipOffset  int     `json:"tooltipOffset"`
	MinScale       float64 `json:"minScale"`
	MaxScale       float64 `json:"maxScale"`
	Clamp          bool    `json:"clamp"`
	ZoomStep       float64 `json:"zoomStep"`
	BaseWidth      float64 `json:"baseWidth"`
	BaseHeight     float64 `json:"baseHeight"`
}

// NoSelection returns the page shown when no topic id was given.
func NoSelection(opts Options) Page {
	return terminal(StateNoSelection, opts)
}

// LoadError returns the page shown when the tree could not be loaded.
func LoadError(opts Options) Page {
	return terminal(StateLoadError, opts)
}

// NotFound returns the page shown for an id that is not in the tree.
func NotFound(opts Options) Page {
	return terminal(StateNotFound, opts)
}

func terminal(s State, opts Options) Page {
	opts.setDefaults()
	return Page{State: s, Title: opts.Title, Message: s.Message()}
}

// ForTopic resolves id in idx and builds the interactive page. An id that
// is not indexed yields the NotFound page, not an error; errors are
// reserved for invalid ids.
func ForTopic(idx *index.Index, id string, opts Options) (Page, error) {
	opts.setDefaults()
	if err := errors.ValidateTopicID(id); err != nil {
		return Page{}, err
	}

	l, err := mapview.Compute(idx, id, opts.Layout)
	if errors.Is(err, errors.ErrCodeTopicNotFound) {
		return NotFound(opts), nil
	}
	if err != nil {
		return Page{}, err
	}

	entry, _ := idx.Get(id)
	panel := NewPanel(entry)
	vp := opts.viewportFor(l)

	return Page{
		State:      StateFound,
		Title:      opts.Title + " · " + entry.Label,
		Breadcrumb: Breadcrumb(idx, id, opts.LinkBase),
		Panel:      &panel,
		Map:        template.HTML(sink.RenderSVG(l, svgOptions(opts, vp)...)),
		Config: Config{
			TooltipDelayMS: int(opts.TooltipDelay / time.Millisecond),
			TooltipOffset:  opts.TooltipOffset,
			MinScale:       vp.MinScale,
			MaxScale:       vp.MaxScale,
			Clamp:          vp.Clamp,
			ZoomStep:       viewport.ZoomStep,
			BaseWidth:      vp.BaseWidth,
			BaseHeight:     vp.BaseHeight,
		},
	}, nil
}

// MapSVG renders the bare map of id as a standalone SVG document. It
// fails with TOPIC_NOT_FOUND when id is not indexed.
func MapSVG(idx *index.Index, id string, opts Options) ([]byte, error) {
	opts.setDefaults()
	if err := errors.ValidateTopicID(id); err != nil {
		return nil, err
	}
	l, err := mapview.Compute(idx, id, opts.Layout)
	if err != nil {
		return nil, err
	}
	return sink.RenderSVG(l, append(svgOptions(opts, opts.viewportFor(l)), sink.WithoutScript())...), nil
}

// viewportFor returns the initial viewport of l. A map that overflows its
// frame starts fitted, so no box begins outside the view.
func (o Options) viewportFor(l mapview.Layout) viewport.State {
	frame := l.Frame
	w, h := frame.Width(), frame.Height()
	if o.Viewport != nil {
		vp := *o.Viewport
		if vp.BaseWidth <= 0 || vp.BaseHeight <= 0 {
			vp.BaseWidth, vp.BaseHeight = w, h
		}
		if vp.Width <= 0 || vp.Height <= 0 {
			vp.Width, vp.Height = vp.BaseWidth, vp.BaseHeight
		}
		return vp
	}

	vp := viewport.New(w, h)
	vp.X, vp.Y = frame.MinX, frame.MinY
	if bounds := l.Bounds(); o.Fit || !contains(frame, bounds) {
		vp = viewport.Fit(bounds, w, h, FitMargin)
		vp.MinScale = math.Min(vp.MinScale, vp.Scale())
		vp.MaxScale = math.Max(vp.MaxScale, vp.Scale())
	}
	vp.Clamp = !o.NoClamp
	vp.ZoomSteps(o.ZoomSteps)
	vp.Pan(o.PanX, o.PanY, w, h)
	return vp
}

func contains(outer, inner viewport.Rect) bool {
	return inner.MinX >= outer.MinX && inner.MinY >= outer.MinY &&
		inner.MaxX <= outer.MaxX && inner.MaxY <= outer.MaxY
}

func svgOptions(opts Options, vp viewport.State) []sink.SVGOption {
	out := []sink.SVGOption{sink.WithLinkBase(opts.LinkBase), sink.WithViewport(vp)}
	if opts.LeftAlignText {
		out = append(out, sink.WithLeftAlignedText())
	}
	return out
}

// Render writes the page as an HTML document.
func (p Page) Render(w io.Writer) error {
	cfg, err := json.Marshal(p.Config)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode page config")
	}
	data := struct {
		Page
		ConfigJSON template.JS
		Script     template.JS
		Found      bool
	}{p, template.JS(cfg), template.JS(pageJS), p.State == StateFound}

	return pageTemplate.Execute(w, data)
}

// Bytes renders the page into memory.
func (p Page) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
