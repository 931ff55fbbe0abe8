package source

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/topicmap/pkg/errors"
	"github.com/matzehuels/topicmap/pkg/topic"
)

// Mongo defaults.
const (
	DefaultMongoDatabase   = "topicmap"
	DefaultMongoCollection = "trees"
)

// Mongo loads a tree stored as one document {_id: <tree>, tree: {...}}.
type Mongo struct {
	URI        string
	Database   string
	Collection string
	Tree       string
}

type treeDocument struct {
	Name string      `bson:"_id"`
	Tree *topic.Node `bson:"tree"`
}

// ParseMongo reads mongodb://host[:port]/<database>[?opts]#<tree>. The
// fragment names the document; the database defaults to "topicmap" and a
// "collection" query parameter overrides the default "trees".
func ParseMongo(spec string) (*Mongo, error) {
	u, err := url.Parse(spec)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse mongo uri")
	}
	if u.Fragment == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo source needs a tree name after '#'")
	}

	m := &Mongo{
		Database:   strings.Trim(u.Path, "/"),
		Collection: DefaultMongoCollection,
		Tree:       u.Fragment,
	}
	if m.Database == "" {
		m.Database = DefaultMongoDatabase
	}

	q := u.Query()
	if c := q.Get("collection"); c != "" {
		m.Collection = c
		q.Del("collection")
	}
	u.RawQuery = q.Encode()
	u.Fragment = ""
	m.URI = u.String()
	return m, nil
}

// Name implements Loader.
func (m *Mongo) Name() string {
	return fmt.Sprintf("mongodb:%s/%s#%s", m.Database, m.Collection, m.Tree)
}

// Load implements Loader.
func (m *Mongo) Load(ctx context.Context) (*topic.Node, error) {
	client, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Disconnect(context.WithoutCancel(ctx))

	var doc treeDocument
	err = client.Database(m.Database).Collection(m.Collection).
		FindOne(ctx, bson.M{"_id": m.Tree}).
		Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.New(errors.ErrCodeLoadFailed, "tree %q not found in %s.%s", m.Tree, m.Database, m.Collection)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoadFailed, err, "load tree %q", m.Tree)
	}
	if doc.Tree == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "tree %q has no root", m.Tree)
	}
	return doc.Tree, nil
}

// Save upserts root as the tree document.
func (m *Mongo) Save(ctx context.Context, root *topic.Node) error {
	client, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.WithoutCancel(ctx))

	_, err = client.Database(m.Database).Collection(m.Collection).ReplaceOne(ctx,
		bson.M{"_id": m.Tree},
		treeDocument{Name: m.Tree, Tree: root},
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "save tree %q", m.Tree)
	}
	return nil
}

func (m *Mongo) connect(ctx context.Context) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongodb")
	}
	return client, nil
}
