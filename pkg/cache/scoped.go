package cache

// ScopedKeyer prefixes every key of an inner Keyer. The server uses it to
// keep several trees in one Redis database:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "tree:handbook:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with prefix. A nil inner uses DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// PageKey implements Keyer.
func (k *ScopedKeyer) PageKey(treeHash, id string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.PageKey(treeHash, id, opts)
}

// MapKey implements Keyer.
func (k *ScopedKeyer) MapKey(treeHash, id string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.MapKey(treeHash, id, opts)
}

// OverviewKey implements Keyer.
func (k *ScopedKeyer) OverviewKey(treeHash string, opts OverviewKeyOpts) string {
	return k.prefix + k.inner.OverviewKey(treeHash, opts)
}
