// Package index flattens a topic tree into an id-keyed lookup table.
//
// [Build] walks the tree once, depth first, and produces an immutable
// [Index]: one [Entry] per id with the display label, the parent id, the
// ordered child ids and a pointer back to the source node. Parent and child
// links are mutually consistent, and the root is the only entry without a
// parent.
//
// # Quirks
//
// Duplicate ids are not rejected: the entry seen last during the walk wins
// and the overwritten ids are reported by [Index.Duplicates]. A node that
// is reachable twice (a shared pointer or a cycle in a hand-built tree) is
// indexed on its first visit only, so the walk always terminates.
//
// # Breadcrumbs
//
// [Index.Path] follows parent links from a topic up to the root and returns
// the chain root first; its length is the depth of the topic (root = 1).
package index
