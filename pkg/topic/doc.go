// Package topic defines the topic tree consumed by topicmap and the codecs
// that read it.
//
// # Canonical Shape
//
// A tree is a single root object, nested recursively:
//
//	{
//	  "id": "textiles",
//	  "title": "Textiles",
//	  "context": {"definition": "...", "role": "..."},
//	  "children": [{"id": "fibres", "title": "Fibres"}]
//	}
//
// The same shape is accepted as YAML. The historical flat array of
// pre-linked nodes ({id, label, parent, children: [ids]}) is accepted by
// [ReadFlat] and rebuilt into the nested shape; it is an import path, not a
// second supported format.
//
// Trees are immutable input: nothing in this package or its consumers
// modifies a decoded tree in place. [AssignIDs] returns a copy.
package topic
