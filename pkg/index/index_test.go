package index

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"github.com/matzehuels/topicmap/pkg/topic"
)

func sampleTree() *topic.Node {
	return &topic.Node{
		ID:    "root",
		Title: "Root",
		Children: []*topic.Node{
			{ID: "a", Title: "A", Children: []*topic.Node{
				{ID: "a1", Title: "A1"},
				{ID: "a2", Title: "A2"},
			}},
			{ID: "b", Title: "B"},
		},
	}
}

func TestBuild(t *testing.T) {
	idx := Build(sampleTree())

	if idx.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", idx.Len())
	}

	root, ok := idx.Root()
	if !ok || root.ID != "root" || !root.IsRoot() {
		t.Fatalf("Root() = %+v, %v", root, ok)
	}
	if diff := cmp.Diff([]string{"a", "b"}, root.Children); diff != "" {
		t.Errorf("root children (-want +got):\n%s", diff)
	}

	a2, ok := idx.Get("a2")
	if !ok {
		t.Fatal("a2 not indexed")
	}
	if a2.Parent != "a" || a2.Label != "A2" {
		t.Errorf("a2 = %+v", a2)
	}

	if diff := cmp.Diff([]string{"root", "a", "a1", "a2", "b"}, idx.IDs()); diff != "" {
		t.Errorf("IDs() order (-want +got):\n%s", diff)
	}
}

func TestBuildNil(t *testing.T) {
	idx := Build(nil)
	if idx.Len() != 0 {
		t.Errorf("Len() = %d, want 0", idx.Len())
	}
	if _, ok := idx.Root(); ok {
		t.Error("Root() on empty index should report !ok")
	}
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	tree := sampleTree()
	before := fmt.Sprintf("%+v", *tree.Children[0])
	Build(tree)
	if after := fmt.Sprintf("%+v", *tree.Children[0]); before != after {
		t.Error("Build modified its input")
	}
}

func TestBuildLabelFallback(t *testing.T) {
	idx := Build(&topic.Node{ID: "untitled"})
	e, _ := idx.Get("untitled")
	if e.Label != "untitled" {
		t.Errorf("Label = %q, want the id as fallback", e.Label)
	}
}

func TestBuildDuplicatesLastWriteWins(t *testing.T) {
	tree := &topic.Node{
		ID: "root",
		Children: []*topic.Node{
			{ID: "x", Title: "First"},
			{ID: "y", Children: []*topic.Node{{ID: "x", Title: "Second"}}},
		},
	}
	idx := Build(tree)

	x, _ := idx.Get("x")
	if x.Label != "Second" || x.Parent != "y" {
		t.Errorf("x = %+v, want the later occurrence", x)
	}
	if diff := cmp.Diff([]string{"x"}, idx.Duplicates()); diff != "" {
		t.Errorf("Duplicates() (-want +got):\n%s", diff)
	}
	if idx.Len() != 3 {
		t.Errorf("Len() = %d, want 3", idx.Len())
	}
}

func TestBuildCycleTerminates(t *testing.T) {
	a := &topic.Node{ID: "a"}
	b := &topic.Node{ID: "b", Children: []*topic.Node{a}}
	a.Children = []*topic.Node{b}

	idx := Build(a)
	if idx.Len() != 2 {
		t.Errorf("Len() = %d, want 2", idx.Len())
	}
	if got := idx.Depth("b"); got != 2 {
		t.Errorf("Depth(b) = %d, want 2", got)
	}
}

func TestBuildSkipsNilChildren(t *testing.T) {
	idx := Build(&topic.Node{ID: "root", Children: []*topic.Node{nil, {ID: "a"}}})
	root, _ := idx.Root()
	if diff := cmp.Diff([]string{"a"}, root.Children); diff != "" {
		t.Errorf("children (-want +got):\n%s", diff)
	}
}

func TestParentAndChildren(t *testing.T) {
	idx := Build(sampleTree())

	p, ok := idx.Parent("a1")
	if !ok || p.ID != "a" {
		t.Errorf("Parent(a1) = %+v, %v", p, ok)
	}
	if _, ok := idx.Parent("root"); ok {
		t.Error("root should have no parent")
	}
	if _, ok := idx.Parent("missing"); ok {
		t.Error("missing id should have no parent")
	}

	var ids []string
	for _, c := range idx.Children("a") {
		ids = append(ids, c.ID)
	}
	if diff := cmp.Diff([]string{"a1", "a2"}, ids); diff != "" {
		t.Errorf("Children(a) (-want +got):\n%s", diff)
	}
	if idx.Children("missing") != nil {
		t.Error("Children(missing) should be nil")
	}
}

// genTree draws a random tree with unique ids and returns it together with
// each id's structural parent.
func genTree(t *rapid.T) (*topic.Node, map[string]string) {
	parents := make(map[string]string)
	next := 0
	var build func(parent string, depth int) *topic.Node
	build = func(parent string, depth int) *topic.Node {
		id := fmt.Sprintf("n%d", next)
		next++
		n := &topic.Node{ID: id, Title: rapid.StringN(0, 12, -1).Draw(t, "title")}
		parents[id] = parent
		if depth < 4 {
			kids := rapid.IntRange(0, 4).Draw(t, "kids")
			for range kids {
				n.Children = append(n.Children, build(id, depth+1))
			}
		}
		return n
	}
	return build("", 0), parents
}

func TestIndexMatchesTreeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root, parents := genTree(t)
		idx := Build(root)

		if idx.Len() != len(parents) {
			t.Fatalf("Len() = %d, want %d", idx.Len(), len(parents))
		}

		var walk func(n *topic.Node)
		walk = func(n *topic.Node) {
			e, ok := idx.Get(n.ID)
			if !ok {
				t.Fatalf("%s not indexed", n.ID)
			}
			if e.Label != n.DisplayTitle() {
				t.Fatalf("%s label = %q, want %q", n.ID, e.Label, n.DisplayTitle())
			}
			if e.Parent != parents[n.ID] {
				t.Fatalf("%s parent = %q, want %q", n.ID, e.Parent, parents[n.ID])
			}
			for i, c := range n.Children {
				if e.Children[i] != c.ID {
					t.Fatalf("%s child %d = %q, want %q", n.ID, i, e.Children[i], c.ID)
				}
				walk(c)
			}
		}
		walk(root)
	})
}

func TestPathLengthEqualsDepthProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root, parents := genTree(t)
		idx := Build(root)

		for id := range parents {
			depth := 0
			for cur := id; cur != ""; cur = parents[cur] {
				depth++
			}

			path := idx.Path(id)
			if len(path) != depth {
				t.Fatalf("len(Path(%s)) = %d, want %d", id, len(path), depth)
			}
			if path[0].ID != root.ID || path[len(path)-1].ID != id {
				t.Fatalf("Path(%s) runs %s..%s", id, path[0].ID, path[len(path)-1].ID)
			}
		}
	})
}
