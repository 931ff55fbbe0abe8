// Package pipeline loads a topic tree once and renders pages, maps and
// overviews from it with caching.
//
// The CLI and the server share this package so both see the same cache
// keys, the same load-error handling and the same observability events.
//
// # Stages
//
//  1. Load: fetch the tree from a [source.Loader], assign missing ids and
//     build the immutable [index.Index]. Concurrent callers share one
//     load; the result is kept until [Runner.Invalidate].
//  2. Render: resolve the requested topic and write HTML or SVG. Outputs
//     are cached under keys derived from the tree hash and the options.
//
// # Usage
//
//	runner := pipeline.NewRunner(source.NewFile("topics.json"), cache, nil, logger)
//	res, err := runner.RenderPage(ctx, "intro", pipeline.Options{Page: page.DefaultOptions()})
//	if err != nil {
//	    return err // invalid id
//	}
//	w.WriteHeader(res.State.HTTPStatus())
//	w.Write(res.Body)
package pipeline

import (
	"time"

	"github.com/matzehuels/topicmap/pkg/cache"
	"github.com/matzehuels/topicmap/pkg/index"
	"github.com/matzehuels/topicmap/pkg/render/overview"
	"github.com/matzehuels/topicmap/pkg/render/page"
)

// Artifact kinds, used as cache hook labels and render hook kinds.
const (
	KindPage     = "page"
	KindMap      = "map"
	KindOverview = "overview"
)

// Snapshot is one loaded tree.
type Snapshot struct {
	Index    *index.Index
	Hash     string
	Source   string
	LoadedAt time.Time
	LoadTime time.Duration
}

// Options configures page and map rendering.
type Options struct {
	Page page.Options
	// Refresh bypasses the cache lookup; the result is still stored.
	Refresh bool
}

// OverviewOptions configures overview rendering.
type OverviewOptions struct {
	Overview overview.Options
	Refresh  bool
}

// Result is one rendered artifact.
type Result struct {
	// State is the page state; maps and overviews are always StateFound
	// when no error is returned.
	State    page.State
	Body     []byte
	CacheHit bool
	Duration time.Duration
}

func (o Options) keyOpts() cache.RenderKeyOpts {
	p := o.Page
	return cache.RenderKeyOpts{
		Title:     p.Title,
		LinkBase:  p.LinkBase,
		ZoomSteps: p.ZoomSteps,
		PanX:      p.PanX,
		PanY:      p.PanY,
		NoClamp:   p.NoClamp,
		LeftAlign: p.LeftAlignText,
		Fit:       p.Fit,
	}
}

func (o OverviewOptions) keyOpts() cache.OverviewKeyOpts {
	return cache.OverviewKeyOpts{
		Direction: o.Overview.Direction,
		LinkBase:  o.Overview.LinkBase,
		MaxDepth:  o.Overview.MaxDepth,
		Highlight: o.Overview.Highlight,
	}
}
