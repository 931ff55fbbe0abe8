package index

import (
	"github.com/matzehuels/topicmap/pkg/topic"
)

// Entry is the indexed view of one topic node.
type Entry struct {
	ID       string
	Label    string
	Parent   string // empty for the root
	Children []string
	Node     *topic.Node
}

// IsRoot reports whether the entry has no parent.
func (e Entry) IsRoot() bool { return e.Parent == "" }

// Context returns the node's context record, or nil.
func (e Entry) Context() *topic.Context {
	if e.Node == nil {
		return nil
	}
	return e.Node.Context
}

// Index maps topic ids to entries. It is read-only after [Build] and safe
// for concurrent use.
type Index struct {
	entries    map[string]Entry
	order      []string
	root       string
	duplicates []string
}

type frame struct {
	node   *topic.Node
	parent string
}

// Build indexes the tree rooted at root with a single depth-first walk.
// A nil root yields an empty index. The tree is not modified.
func Build(root *topic.Node) *Index {
	idx := &Index{entries: make(map[string]Entry)}
	if root == nil {
		return idx
	}
	idx.root = root.ID

	visited := make(map[*topic.Node]bool)
	stack := []frame{{node: root}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := f.node
		if n == nil || visited[n] {
			continue
		}
		visited[n] = true

		children := make([]string, 0, len(n.Children))
		for _, c := range n.Children {
			if c != nil {
				children = append(children, c.ID)
			}
		}

		if _, exists := idx.entries[n.ID]; exists {
			idx.duplicates = append(idx.duplicates, n.ID)
		} else {
			idx.order = append(idx.order, n.ID)
		}
		idx.entries[n.ID] = Entry{
			ID:       n.ID,
			Label:    n.DisplayTitle(),
			Parent:   f.parent,
			Children: children,
			Node:     n,
		}

		// Push in reverse so children are visited in input order.
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: n.Children[i], parent: n.ID})
		}
	}

	return idx
}

// Get returns the entry for id.
func (x *Index) Get(id string) (Entry, bool) {
	e, ok := x.entries[id]
	return e, ok
}

// Has reports whether id is indexed.
func (x *Index) Has(id string) bool {
	_, ok := x.entries[id]
	return ok
}

// Root returns the root entry. ok is false for an empty index.
func (x *Index) Root() (Entry, bool) {
	return x.Get(x.root)
}

// Len returns the number of distinct ids.
func (x *Index) Len() int { return len(x.entries) }

// IDs returns all ids in depth-first visiting order.
func (x *Index) IDs() []string {
	return append([]string(nil), x.order...)
}

// Duplicates returns the ids that occurred more than once, once per extra
// occurrence, in visiting order.
func (x *Index) Duplicates() []string {
	return append([]string(nil), x.duplicates...)
}

// Parent returns the parent entry of id, if id is indexed and not the root.
func (x *Index) Parent(id string) (Entry, bool) {
	e, ok := x.entries[id]
	if !ok || e.Parent == "" {
		return Entry{}, false
	}
	return x.Get(e.Parent)
}

// Children returns the indexed child entries of id in input order.
// Child ids that did not make it into the index are skipped.
func (x *Index) Children(id string) []Entry {
	e, ok := x.entries[id]
	if !ok {
		return nil
	}
	out := make([]Entry, 0, len(e.Children))
	for _, cid := range e.Children {
		if c, ok := x.entries[cid]; ok {
			out = append(out, c)
		}
	}
	return out
}
