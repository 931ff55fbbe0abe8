package topic

import (
	"io"

	"github.com/goccy/go-json"

	"github.com/matzehuels/topicmap/pkg/errors"
)

// flatNode is one entry of the legacy pre-linked array.
type flatNode struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Title    string   `json:"title"`
	Parent   *string  `json:"parent"`
	Children []string `json:"children"`
	Context  *Context `json:"context"`
}

// ReadFlat decodes the legacy flat array and rebuilds the nested tree.
//
// The root is the first entry without a parent. Child references to ids
// that are not in the array are dropped. When an id appears more than once
// the last entry wins.
func ReadFlat(r io.Reader) (*Node, error) {
	var entries []flatNode
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode flat tree")
	}
	return fromFlat(entries)
}

func fromFlat(entries []flatNode) (*Node, error) {
	nodes := make(map[string]*Node, len(entries))
	byID := make(map[string]flatNode, len(entries))
	var rootID string
	haveRoot := false

	for _, e := range entries {
		title := e.Title
		if title == "" {
			title = e.Label
		}
		nodes[e.ID] = &Node{ID: e.ID, Title: title, Context: e.Context}
		byID[e.ID] = e
		if !haveRoot && (e.Parent == nil || *e.Parent == "") {
			rootID, haveRoot = e.ID, true
		}
	}
	if !haveRoot {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "flat tree has no root entry")
	}

	for id, n := range nodes {
		for _, cid := range byID[id].Children {
			if c, ok := nodes[cid]; ok {
				n.Children = append(n.Children, c)
			}
		}
	}
	return nodes[rootID], nil
}
