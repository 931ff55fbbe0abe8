package overview

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/topicmap/pkg/index"
	"github.com/matzehuels/topicmap/pkg/topic"
)

func sample() *index.Index {
	return index.Build(&topic.Node{
		ID: "root", Title: "Root",
		Children: []*topic.Node{
			{ID: "a", Title: `Say "hi"`, Context: &topic.Context{Definition: "First line.\nSecond line."}},
			{ID: "b", Title: "B", Children: []*topic.Node{{ID: "c", Title: "C"}}},
		},
	})
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	for _, want := range []string{
		"digraph topics {",
		"rankdir=LR;",
		`"root" -> "a";`,
		`"root" -> "b";`,
		`"b" -> "c";`,
		`label="Say \"hi\""`,
		`URL="/topic?id=c"`,
		`tooltip="First line."`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %s", want)
		}
	}
	if strings.Contains(dot, "Second line") {
		t.Error("tooltip should only carry the first definition line")
	}
}

func TestToDOTOptions(t *testing.T) {
	dot := ToDOT(sample(), Options{Direction: DirectionTB, MaxDepth: 1, Highlight: "b", LinkBase: "page.html"})

	if !strings.Contains(dot, "rankdir=TB;") {
		t.Error("direction not applied")
	}
	if strings.Contains(dot, `"c"`) {
		t.Error("MaxDepth 1 should leave out depth-2 topics")
	}
	if !strings.Contains(dot, `URL="page.html?id=a"`) {
		t.Error("link base not applied")
	}
	if !strings.Contains(dot, "penwidth=2") {
		t.Error("highlighted topic not marked")
	}
}

func TestToDOTEmpty(t *testing.T) {
	dot := ToDOT(index.Build(nil), Options{})
	if strings.Contains(dot, "->") {
		t.Errorf("empty index produced edges:\n%s", dot)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", `"plain"`},
		{`a"b`, `"a\"b"`},
		{`back\slash`, `"back\\slash"`},
		{"two\nlines", `"two\nlines"`},
	}
	for _, tt := range tests {
		if got := quote(tt.in); got != tt.want {
			t.Errorf("quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" class="topicmap-overview" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(normalizeViewBox([]byte(tt.svg))); got != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(sample(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	out := string(svg)
	if !strings.Contains(out, "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
	if !strings.Contains(out, "/topic?id=b") {
		t.Error("RenderSVG() output missing node links")
	}
}

func TestRenderSVGInvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), `not valid DOT {{{`); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
