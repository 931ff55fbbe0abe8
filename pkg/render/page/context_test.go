package page

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/topicmap/pkg/index"
	"github.com/matzehuels/topicmap/pkg/topic"
)

func TestNewPanel(t *testing.T) {
	e := index.Entry{ID: "x", Label: "X", Node: &topic.Node{ID: "x", Context: &topic.Context{
		Role: "  Structural  ",
		References: []topic.Reference{
			{Title: "Spec", URL: "https://example.com/spec"},
			{Title: "", URL: "https://example.com/bare"},
			{Title: "No link"},
		},
		Books: []topic.Book{
			{Title: "A", Author: "Au", Publisher: "Pub"},
			{Title: "B", Publisher: "Pub"},
			{Author: "Nobody"},
		},
	}}}

	p := NewPanel(e)
	if p.Role != "Structural" {
		t.Errorf("Role = %q", p.Role)
	}
	wantRefs := []topic.Reference{
		{Title: "Spec", URL: "https://example.com/spec"},
		{Title: "https://example.com/bare", URL: "https://example.com/bare"},
	}
	if diff := cmp.Diff(wantRefs, p.References); diff != "" {
		t.Errorf("References (-want +got):\n%s", diff)
	}
	wantBooks := []Book{{Title: "A", Byline: "Au, Pub"}, {Title: "B", Byline: "Pub"}}
	if diff := cmp.Diff(wantBooks, p.Books); diff != "" {
		t.Errorf("Books (-want +got):\n%s", diff)
	}
}

func TestNewPanelWithoutContext(t *testing.T) {
	p := NewPanel(index.Entry{ID: "x", Label: "X", Node: &topic.Node{ID: "x"}})
	if p.Role != "" || p.References != nil || p.Books != nil {
		t.Errorf("panel without context has sections: %+v", p)
	}
}

func TestBreadcrumb(t *testing.T) {
	idx := index.Build(&topic.Node{ID: "r", Title: "R", Children: []*topic.Node{
		{ID: "a", Title: "A", Children: []*topic.Node{{ID: "b", Title: "B"}}},
	}})

	got := Breadcrumb(idx, "b", "topic.html")
	want := []Crumb{
		{ID: "r", Label: "R", URL: "topic.html?id=r"},
		{ID: "a", Label: "A", URL: "topic.html?id=a"},
		{ID: "b", Label: "B"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Breadcrumb (-want +got):\n%s", diff)
	}
	if !got[2].Current() || got[0].Current() {
		t.Error("only the last crumb should be current")
	}
	if len(Breadcrumb(idx, "missing", "x")) != 0 {
		t.Error("breadcrumb of a missing id should be empty")
	}
}
