package page

import (
	"github.com/matzehuels/topicmap/pkg/index"
	"github.com/matzehuels/topicmap/pkg/render/mapview/sink"
)

// Crumb is one step of the breadcrumb. The last crumb is the current
// location and has no URL.
type Crumb struct {
	ID    string
	Label string
	URL   string
}

// Current reports whether the crumb is the terminal, non-clickable step.
func (c Crumb) Current() bool { return c.URL == "" }

// Breadcrumb returns the root-first ancestor chain of id, linking every
// step except the last to linkBase.
func Breadcrumb(idx *index.Index, id, linkBase string) []Crumb {
	path := idx.Path(id)
	out := make([]Crumb, len(path))
	for i, e := range path {
		out[i] = Crumb{ID: e.ID, Label: e.Label}
		if i < len(path)-1 {
			out[i].URL = sink.TopicURL(linkBase, e.ID)
		}
	}
	return out
}
