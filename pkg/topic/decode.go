package topic

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/topicmap/pkg/errors"
)

// Format names accepted by [Decode].
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatFlat = "flat"
)

// FormatFor picks a decoder from a file name: ".yaml"/".yml" select YAML,
// ".flat.json" selects the legacy flat array, anything else is JSON.
func FormatFor(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".flat.json"):
		return FormatFlat
	case filepath.Ext(lower) == ".yaml", filepath.Ext(lower) == ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode reads a tree from r in the given format.
func Decode(format string, r io.Reader) (*Node, error) {
	switch format {
	case FormatJSON, "":
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	case FormatFlat:
		return ReadFlat(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown tree format %q", format)
	}
}

// ReadJSON decodes the canonical nested tree from r.
//
// A top-level array is accepted for compatibility with documents that wrap
// the root in a list; its first element is the root.
func ReadJSON(r io.Reader) (*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoadFailed, err, "read tree")
	}
	return UnmarshalJSON(data)
}

// UnmarshalJSON decodes the canonical nested tree from data.
func UnmarshalJSON(data []byte) (*Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "empty tree document")
	}

	if trimmed[0] == '[' {
		var roots []*Node
		if err := json.Unmarshal(trimmed, &roots); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode tree")
		}
		if len(roots) == 0 || roots[0] == nil {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "tree array is empty")
		}
		return roots[0], nil
	}

	var root Node
	if err := json.Unmarshal(trimmed, &root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode tree")
	}
	return &root, nil
}

// ReadYAML decodes the canonical nested tree written as YAML.
func ReadYAML(r io.Reader) (*Node, error) {
	var root Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "empty tree document")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode tree")
	}
	return &root, nil
}

// WriteJSON encodes root as indented canonical JSON.
func WriteJSON(w io.Writer, root *Node) error {
	data, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode tree")
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteYAML encodes root as YAML with two-space indentation.
func WriteYAML(w io.Writer, root *Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode tree")
	}
	return enc.Close()
}

// Encode writes root in the given format. The flat format is read-only.
func Encode(format string, w io.Writer, root *Node) error {
	switch format {
	case FormatJSON, "":
		return WriteJSON(w, root)
	case FormatYAML:
		return WriteYAML(w, root)
	default:
		return errors.New(errors.ErrCodeUnsupported, "cannot write tree format %q", format)
	}
}
