package pipeline

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/topicmap/pkg/cache"
	"github.com/matzehuels/topicmap/pkg/errors"
	"github.com/matzehuels/topicmap/pkg/index"
	"github.com/matzehuels/topicmap/pkg/observability"
	"github.com/matzehuels/topicmap/pkg/source"
	"github.com/matzehuels/topicmap/pkg/topic"
)

// Runner loads one tree source and renders from it.
//
// The loaded snapshot is immutable and shared by all goroutines; only the
// pointer to the current snapshot is guarded. Concurrent Load calls while
// no snapshot exists share a single fetch.
type Runner struct {
	Source source.Loader
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-kind cache lifetimes when positive.
	TTL time.Duration

	group singleflight.Group
	mu    sync.RWMutex
	snap  *Snapshot
	gen   uint64
}

// NewRunner creates a runner over src.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(src source.Loader, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Source: src, Cache: c, Keyer: keyer, Logger: logger}
}

// Load returns the current snapshot, loading the tree if none is held.
func (r *Runner) Load(ctx context.Context) (*Snapshot, error) {
	if s := r.Current(); s != nil {
		return s, nil
	}
	v, err, shared := r.group.Do("load", func() (any, error) {
		return r.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		r.Logger.Debug("shared tree load", "source", r.sourceName())
	}
	return v.(*Snapshot), nil
}

// Current returns the loaded snapshot or nil.
func (r *Runner) Current() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap
}

// Invalidate drops the current snapshot; the next Load fetches again.
// A load already in flight finishes but is not installed.
func (r *Runner) Invalidate() {
	r.mu.Lock()
	r.snap = nil
	r.gen++
	r.mu.Unlock()
	r.group.Forget("load")
}

// Reload invalidates and loads again.
func (r *Runner) Reload(ctx context.Context) (*Snapshot, error) {
	r.Invalidate()
	return r.Load(ctx)
}

func (r *Runner) load(ctx context.Context) (*Snapshot, error) {
	if r.Source == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no tree source configured")
	}

	r.mu.RLock()
	gen, cur := r.gen, r.snap
	r.mu.RUnlock()
	if cur != nil {
		return cur, nil
	}

	name := r.Source.Name()
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, name)
	start := time.Now()

	snap, err := r.build(ctx, name)
	elapsed := time.Since(start)
	if err != nil {
		hooks.OnLoadComplete(ctx, name, 0, elapsed, err)
		r.Logger.Error("load topic tree", "source", name, "err", err)
		return nil, err
	}
	snap.LoadTime = elapsed
	hooks.OnLoadComplete(ctx, name, snap.Index.Len(), elapsed, nil)

	r.mu.Lock()
	if r.gen == gen {
		r.snap = snap
	}
	r.mu.Unlock()

	r.Logger.Info("loaded topic tree",
		"source", name,
		"topics", snap.Index.Len(),
		"duration", elapsed)
	if dups := snap.Index.Duplicates(); len(dups) > 0 {
		r.Logger.Warn("duplicate topic ids, last one wins", "count", len(dups), "first", dups[0])
	}
	return snap, nil
}

func (r *Runner) build(ctx context.Context, name string) (*Snapshot, error) {
	root, err := r.Source.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := index.Build(topic.AssignIDs(root))

	hash, err := hashIndex(idx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash tree")
	}
	return &Snapshot{
		Index:    idx,
		Hash:     hash,
		Source:   name,
		LoadedAt: time.Now(),
	}, nil
}

type hashEntry struct {
	ID       string         `json:"id"`
	Label    string         `json:"label"`
	Parent   string         `json:"parent,omitempty"`
	Children []string       `json:"children,omitempty"`
	Context  *topic.Context `json:"context,omitempty"`
}

// hashIndex digests the indexed entries in visiting order. The index has
// already broken any cycle in the source tree, so this never recurses.
func hashIndex(idx *index.Index) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, id := range idx.IDs() {
		e, _ := idx.Get(id)
		err := enc.Encode(hashEntry{ID: e.ID, Label: e.Label, Parent: e.Parent, Children: e.Children, Context: e.Context()})
		if err != nil {
			return "", err
		}
	}
	return cache.Hash(buf.Bytes()), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) sourceName() string {
	if r.Source == nil {
		return ""
	}
	return r.Source.Name()
}

func (r *Runner) ttl(kind string) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	switch kind {
	case KindOverview:
		return cache.TTLOverview
	case KindMap:
		return cache.TTLMap
	default:
		return cache.TTLPage
	}
}
