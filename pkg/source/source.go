// Package source loads topic trees from files, HTTP endpoints and MongoDB.
//
// Every Loader returns a freshly decoded tree on each call. Failures carry
// pkg/errors codes (LOAD_FAILED, NETWORK_ERROR, TIMEOUT, FILE_NOT_FOUND,
// INVALID_FORMAT) so callers can show the load-error page; loaders never
// retry.
package source

import (
	"context"
	"strings"

	"github.com/matzehuels/topicmap/pkg/errors"
	"github.com/matzehuels/topicmap/pkg/topic"
)

// Loader fetches and decodes a topic tree.
type Loader interface {
	// Load returns the root of the tree.
	Load(ctx context.Context) (*topic.Node, error)

	// Name identifies the source in logs and cache keys.
	Name() string
}

// Open returns the loader for spec:
//   - http:// and https:// URLs load over HTTP
//   - mongodb:// and mongodb+srv:// URIs load one tree document
//   - anything else is a local file path
func Open(spec string) (Loader, error) {
	spec = strings.TrimSpace(spec)
	switch {
	case spec == "":
		return nil, errors.New(errors.ErrCodeInvalidInput, "no tree source given")
	case strings.HasPrefix(spec, "http://"), strings.HasPrefix(spec, "https://"):
		if err := errors.ValidateURL(spec); err != nil {
			return nil, err
		}
		return NewHTTP(spec), nil
	case strings.HasPrefix(spec, "mongodb://"), strings.HasPrefix(spec, "mongodb+srv://"):
		return ParseMongo(spec)
	default:
		if err := errors.ValidatePath(spec); err != nil {
			return nil, err
		}
		return NewFile(spec), nil
	}
}

// Static serves a tree that is already in memory.
type Static struct {
	Label string
	Root  *topic.Node
}

// NewStatic returns a loader that always yields root.
func NewStatic(label string, root *topic.Node) *Static {
	return &Static{Label: label, Root: root}
}

// Name implements Loader.
func (s *Static) Name() string { return s.Label }

// Load implements Loader.
func (s *Static) Load(context.Context) (*topic.Node, error) {
	if s.Root == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "%s: empty tree", s.Label)
	}
	return s.Root, nil
}
