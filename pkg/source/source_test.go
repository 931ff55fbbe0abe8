package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/topicmap/pkg/errors"
)

const treeJSON = `{"id":"root","title":"Root","children":[{"id":"a","title":"A"}]}`

func TestOpen(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"topics.json", "*source.File"},
		{"http://example.com/t.json", "*source.HTTP"},
		{"https://example.com/t.yaml", "*source.HTTP"},
		{"mongodb://localhost:27017/kb#handbook", "*source.Mongo"},
	}
	for _, tt := range tests {
		l, err := Open(tt.spec)
		if err != nil {
			t.Errorf("Open(%q): %v", tt.spec, err)
			continue
		}
		var got string
		switch l.(type) {
		case *File:
			got = "*source.File"
		case *HTTP:
			got = "*source.HTTP"
		case *Mongo:
			got = "*source.Mongo"
		}
		if got != tt.want {
			t.Errorf("Open(%q) = %s, want %s", tt.spec, got, tt.want)
		}
	}
}

func TestOpenInvalid(t *testing.T) {
	for _, spec := range []string{"", "   ", "bad\x00path", "mongodb://localhost/kb"} {
		if _, err := Open(spec); err == nil {
			t.Errorf("Open(%q) succeeded", spec)
		}
	}
}

func TestParseMongo(t *testing.T) {
	m, err := ParseMongo("mongodb://user:pw@db:27017/kb?collection=maps&authSource=admin#handbook")
	if err != nil {
		t.Fatalf("ParseMongo: %v", err)
	}
	if m.Database != "kb" || m.Collection != "maps" || m.Tree != "handbook" {
		t.Errorf("parsed %+v", m)
	}
	if m.URI != "mongodb://user:pw@db:27017/kb?authSource=admin" {
		t.Errorf("URI = %q", m.URI)
	}

	m, err = ParseMongo("mongodb://db#t")
	if err != nil {
		t.Fatalf("ParseMongo: %v", err)
	}
	if m.Database != DefaultMongoDatabase || m.Collection != DefaultMongoCollection {
		t.Errorf("defaults not applied: %+v", m)
	}
}

func TestFileLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.json")
	if err := os.WriteFile(path, []byte(treeJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	root, err := NewFile(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if root.ID != "root" || len(root.Children) != 1 {
		t.Errorf("root = %+v", root)
	}
}

func TestFileLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.yaml")
	body := "id: root\ntitle: Root\nchildren:\n  - id: a\n    title: A\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	root, err := NewFile(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if root.Children[0].Title != "A" {
		t.Errorf("child = %+v", root.Children[0])
	}
}

func TestFileLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFile(filepath.Join(dir, "missing.json")).Load(context.Background())
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: %v", err)
	}
	_, err = NewFile(bad).Load(context.Background())
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad json: %v", err)
	}
	if !errors.IsLoadFailure(err) {
		t.Error("a decode error should count as a load failure")
	}
}

func TestHTTPLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tree.json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(treeJSON))
		case "/tree":
			w.Header().Set("Content-Type", "application/yaml")
			w.Write([]byte("id: root\ntitle: Root\n"))
		case "/garbage.json":
			w.Write([]byte("<html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	root, err := NewHTTP(srv.URL + "/tree.json").Load(ctx)
	if err != nil || root.ID != "root" {
		t.Fatalf("json: root=%v err=%v", root, err)
	}
	root, err = NewHTTP(srv.URL + "/tree").Load(ctx)
	if err != nil || root.Title != "Root" {
		t.Fatalf("yaml: root=%v err=%v", root, err)
	}

	_, err = NewHTTP(srv.URL + "/missing.json").Load(ctx)
	if !errors.Is(err, errors.ErrCodeLoadFailed) {
		t.Errorf("404: %v, want LOAD_FAILED", err)
	}
	_, err = NewHTTP(srv.URL + "/garbage.json").Load(ctx)
	if !errors.Is(err, errors.ErrCodeLoadFailed) {
		t.Errorf("garbage: %v, want LOAD_FAILED", err)
	}
}

func TestHTTPNoRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := NewHTTP(srv.URL).Load(context.Background()); err == nil {
		t.Fatal("expected an error for 503")
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("server saw %d requests, want 1", n)
	}
}

func TestHTTPNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTP(url + "/t.json").Load(context.Background())
	if !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("error = %v, want NETWORK_ERROR", err)
	}
}

func TestHTTPTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	h := NewHTTP(srv.URL)
	h.Client.Timeout = 50 * time.Millisecond
	_, err := h.Load(context.Background())
	if !errors.Is(err, errors.ErrCodeTimeout) {
		t.Errorf("error = %v, want TIMEOUT", err)
	}
}

func TestFileWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.json")
	if err := os.WriteFile(path, []byte(treeJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	f := NewFile(path)
	f.Debounce = 20 * time.Millisecond

	changed := make(chan struct{}, 8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.Watch(ctx, func() { changed <- struct{}{} }) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte(treeJSON), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch: %v", err)
	}
}
