package topic

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// idNamespace scopes the name-based UUIDs generated for nodes without an id.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/topicmap/topic"))

// AssignIDs returns a copy of root in which every node without an id gets
// one derived from its position: a UUIDv5 of the title path and sibling
// indexes. The same tree always yields the same ids. Nodes that already
// have an id keep it. root is not modified.
func AssignIDs(root *Node) *Node {
	if root == nil {
		return nil
	}
	copies := make(map[*Node]*Node)
	return assign(root, []string{"0:" + root.Title}, copies)
}

func assign(n *Node, path []string, copies map[*Node]*Node) *Node {
	if c, ok := copies[n]; ok {
		return c
	}
	c := &Node{ID: n.ID, Title: n.Title, Context: n.Context}
	copies[n] = c
	if c.ID == "" {
		c.ID = uuid.NewSHA1(idNamespace, []byte(strings.Join(path, "/"))).String()
	}
	if n.HasChildren() {
		c.Children = make([]*Node, 0, len(n.Children))
	}
	for i, child := range n.Children {
		if child == nil {
			continue
		}
		childPath := append(path[:len(path):len(path)], strconv.Itoa(i)+":"+child.Title)
		c.Children = append(c.Children, assign(child, childPath, copies))
	}
	return c
}
