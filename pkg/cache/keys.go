package cache

// Keyer derives cache keys for rendered artifacts.
type Keyer interface {
	// PageKey is the key of a full HTML topic page.
	PageKey(treeHash, id string, opts RenderKeyOpts) string

	// MapKey is the key of a bare map SVG.
	MapKey(treeHash, id string, opts RenderKeyOpts) string

	// OverviewKey is the key of the whole-tree overview SVG.
	OverviewKey(treeHash string, opts OverviewKeyOpts) string
}

// RenderKeyOpts holds the render options that change page and map output.
type RenderKeyOpts struct {
	Title     string  `json:"title,omitempty"`
	LinkBase  string  `json:"link_base,omitempty"`
	ZoomSteps int     `json:"zoom,omitempty"`
	PanX      float64 `json:"pan_x,omitempty"`
	PanY      float64 `json:"pan_y,omitempty"`
	NoClamp   bool    `json:"no_clamp,omitempty"`
	LeftAlign bool    `json:"left_align,omitempty"`
	Fit       bool    `json:"fit,omitempty"`
}

// OverviewKeyOpts holds the options that change the overview output.
type OverviewKeyOpts struct {
	Direction string `json:"direction,omitempty"`
	LinkBase  string `json:"link_base,omitempty"`
	MaxDepth  int    `json:"max_depth,omitempty"`
	Highlight string `json:"highlight,omitempty"`
}

// DefaultKeyer produces "<kind>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PageKey implements Keyer.
func (DefaultKeyer) PageKey(treeHash, id string, opts RenderKeyOpts) string {
	return hashKey("page", treeHash, id, opts)
}

// MapKey implements Keyer.
func (DefaultKeyer) MapKey(treeHash, id string, opts RenderKeyOpts) string {
	return hashKey("map", treeHash, id, opts)
}

// OverviewKey implements Keyer.
func (DefaultKeyer) OverviewKey(treeHash string, opts OverviewKeyOpts) string {
	return hashKey("overview", treeHash, opts)
}

