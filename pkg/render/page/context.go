package page

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/matzehuels/topicmap/pkg/index"
	"github.com/matzehuels/topicmap/pkg/topic"
)

// MsgNoDefinition stands in for a missing definition.
const MsgNoDefinition = "No definition available."

// Panel is the context panel of a found topic. Empty sections are nil or
// zero and are left out of the page.
type Panel struct {
	Title      string
	Definition template.HTML
	Role       string
	References []topic.Reference
	Books      []Book
}

// Book is a bibliography line prepared for display.
type Book struct {
	Title  string
	Byline string
}

var markdown = goldmark.New()

// NewPanel builds the panel for e. The definition is rendered as Markdown;
// raw HTML inside it is not passed through.
func NewPanel(e index.Entry) Panel {
	p := Panel{Title: e.Label}
	ctx := e.Context()

	def := ""
	if ctx != nil {
		def = strings.TrimSpace(ctx.Definition)
	}
	if def == "" {
		p.Definition = template.HTML("<p>" + template.HTMLEscapeString(MsgNoDefinition) + "</p>")
	} else {
		p.Definition = renderMarkdown(def)
	}

	if ctx == nil {
		return p
	}
	p.Role = strings.TrimSpace(ctx.Role)
	for _, r := range ctx.References {
		if r.URL == "" {
			continue
		}
		if r.Title == "" {
			r.Title = r.URL
		}
		p.References = append(p.References, r)
	}
	for _, b := range ctx.Books {
		if b.Title == "" {
			continue
		}
		p.Books = append(p.Books, Book{Title: b.Title, Byline: byline(b)})
	}
	return p
}

func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML("<p>" + template.HTMLEscapeString(src) + "</p>")
	}
	return template.HTML(buf.String())
}

func byline(b topic.Book) string {
	switch {
	case b.Author != "" && b.Publisher != "":
		return b.Author + ", " + b.Publisher
	case b.Author != "":
		return b.Author
	default:
		return b.Publisher
	}
}
