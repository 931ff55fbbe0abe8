package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/topicmap/pkg/errors"
	"github.com/matzehuels/topicmap/pkg/observability"
	"github.com/matzehuels/topicmap/pkg/render/overview"
	"github.com/matzehuels/topicmap/pkg/render/page"
)

// RenderPage renders the HTML page for id.
//
// The terminal states are pages, not errors: an empty id yields the
// no-selection page, an unknown id the not-found page and a failed load
// the load-error page. Only an invalid id is returned as an error.
// Only found pages are cached.
func (r *Runner) RenderPage(ctx context.Context, id string, opts Options) (Result, error) {
	start := time.Now()
	if id == "" {
		return r.terminal(page.NoSelection(opts.Page), start)
	}
	if err := errors.ValidateTopicID(id); err != nil {
		return Result{}, err
	}

	snap, err := r.Load(ctx)
	if err != nil {
		return r.terminal(page.LoadError(opts.Page), start)
	}
	if !snap.Index.Has(id) {
		return r.terminal(page.NotFound(opts.Page), start)
	}

	key := r.Keyer.PageKey(snap.Hash, id, opts.keyOpts())
	body, hit, err := r.cached(ctx, KindPage, id, key, opts.Refresh, func() ([]byte, error) {
		p, err := page.ForTopic(snap.Index, id, opts.Page)
		if err != nil {
			return nil, err
		}
		return p.Bytes()
	})
	if err != nil {
		return Result{}, err
	}
	return Result{State: page.StateFound, Body: body, CacheHit: hit, Duration: time.Since(start)}, nil
}

// RenderMap renders the bare SVG map of id. Load failures are returned
// as errors (see errors.IsLoadFailure); an unknown id fails with
// TOPIC_NOT_FOUND.
func (r *Runner) RenderMap(ctx context.Context, id string, opts Options) (Result, error) {
	start := time.Now()
	if err := errors.ValidateTopicID(id); err != nil {
		return Result{}, err
	}
	snap, err := r.Load(ctx)
	if err != nil {
		return Result{}, err
	}
	if !snap.Index.Has(id) {
		return Result{}, errors.New(errors.ErrCodeTopicNotFound, "topic %q not found", id)
	}

	key := r.Keyer.MapKey(snap.Hash, id, opts.keyOpts())
	body, hit, err := r.cached(ctx, KindMap, id, key, opts.Refresh, func() ([]byte, error) {
		return page.MapSVG(snap.Index, id, opts.Page)
	})
	if err != nil {
		return Result{}, err
	}
	return Result{State: page.StateFound, Body: body, CacheHit: hit, Duration: time.Since(start)}, nil
}

// RenderOverview renders the whole tree through Graphviz.
func (r *Runner) RenderOverview(ctx context.Context, opts OverviewOptions) (Result, error) {
	start := time.Now()
	snap, err := r.Load(ctx)
	if err != nil {
		return Result{}, err
	}
	if snap.Index.Len() == 0 {
		return Result{}, errors.New(errors.ErrCodeInvalidInput, "tree is empty")
	}

	key := r.Keyer.OverviewKey(snap.Hash, opts.keyOpts())
	body, hit, err := r.cached(ctx, KindOverview, "", key, opts.Refresh, func() ([]byte, error) {
		return overview.RenderSVG(ctx, overview.ToDOT(snap.Index, opts.Overview))
	})
	if err != nil {
		return Result{}, err
	}
	return Result{State: page.StateFound, Body: body, CacheHit: hit, Duration: time.Since(start)}, nil
}

// cached returns the entry under key or produces, stores and returns it.
// Cache errors are logged and treated as misses.
func (r *Runner) cached(ctx context.Context, kind, id, key string, refresh bool, produce func() ([]byte, error)) ([]byte, bool, error) {
	if !refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			r.Logger.Warn("cache get", "kind", kind, "err", err)
		case hit:
			observability.Cache().OnCacheHit(ctx, kind)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, kind)
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, kind, id)
	start := time.Now()
	data, err := produce()
	hooks.OnRenderComplete(ctx, kind, id, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, r.ttl(kind)); err != nil {
		r.Logger.Warn("cache set", "kind", kind, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, kind, len(data))
	}
	r.Logger.Debug("rendered", "kind", kind, "id", id, "bytes", len(data), "duration", time.Since(start))
	return data, false, nil
}

func (r *Runner) terminal(p page.Page, start time.Time) (Result, error) {
	body, err := p.Bytes()
	if err != nil {
		return Result{}, err
	}
	return Result{State: p.State, Body: body, Duration: time.Since(start)}, nil
}
