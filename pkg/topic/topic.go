package topic

// Node is one subject in the topic hierarchy.
type Node struct {
	ID       string   `json:"id" yaml:"id" bson:"id"`
	Title    string   `json:"title" yaml:"title" bson:"title"`
	Children []*Node  `json:"children,omitempty" yaml:"children,omitempty" bson:"children,omitempty"`
	Context  *Context `json:"context,omitempty" yaml:"context,omitempty" bson:"context,omitempty"`
}

// DisplayTitle returns the title if set, otherwise the ID.
func (n *Node) DisplayTitle() string {
	if n.Title != "" {
		return n.Title
	}
	return n.ID
}

// HasChildren reports whether the node lists at least one child.
func (n *Node) HasChildren() bool { return len(n.Children) > 0 }

// Context is the descriptive record shown in the context panel.
type Context struct {
	Definition string      `json:"definition,omitempty" yaml:"definition,omitempty" bson:"definition,omitempty"`
	Role       string      `json:"role,omitempty" yaml:"role,omitempty" bson:"role,omitempty"`
	References []Reference `json:"references,omitempty" yaml:"references,omitempty" bson:"references,omitempty"`
	Books      []Book      `json:"books,omitempty" yaml:"books,omitempty" bson:"books,omitempty"`
}

// IsEmpty reports whether the context carries no displayable field.
func (c *Context) IsEmpty() bool {
	return c == nil || (c.Definition == "" && c.Role == "" && len(c.References) == 0 && len(c.Books) == 0)
}

// Reference is an external link attached to a topic.
type Reference struct {
	Title string `json:"title" yaml:"title" bson:"title"`
	URL   string `json:"url" yaml:"url" bson:"url"`
}

// Book is a bibliography entry attached to a topic.
type Book struct {
	Title     string `json:"title" yaml:"title" bson:"title"`
	Author    string `json:"author,omitempty" yaml:"author,omitempty" bson:"author,omitempty"`
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty" bson:"publisher,omitempty"`
}
