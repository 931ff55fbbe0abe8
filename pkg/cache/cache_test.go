package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = (%q, %v, %v), want a miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if _, hit, _ := c.Get(ctx, "page:x"); hit {
		t.Fatal("empty cache reported a hit")
	}
	if err := c.Set(ctx, "page:x", []byte("<html>"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "page:x")
	if err != nil || !hit || string(data) != "<html>" {
		t.Fatalf("Get = (%q, %v, %v)", data, hit, err)
	}

	if err := c.Delete(ctx, "page:x"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "page:x"); hit {
		t.Error("deleted entry still present")
	}
	if err := c.Delete(ctx, "page:x"); err != nil {
		t.Errorf("deleting a missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry returned")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry not removed from disk")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())

	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v, want a clean miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("cache dir still has %d entries", len(entries))
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	p1 := k.PageKey("tree1", "a", RenderKeyOpts{})
	if !strings.HasPrefix(p1, "page:") {
		t.Errorf("PageKey = %q", p1)
	}
	if p1 == k.PageKey("tree2", "a", RenderKeyOpts{}) {
		t.Error("tree hash should change the key")
	}
	if p1 == k.PageKey("tree1", "b", RenderKeyOpts{}) {
		t.Error("topic id should change the key")
	}
	if p1 == k.PageKey("tree1", "a", RenderKeyOpts{ZoomSteps: 2}) {
		t.Error("zoom should change the key")
	}
	if p1 == k.MapKey("tree1", "a", RenderKeyOpts{}) {
		t.Error("page and map keys must differ")
	}

	o1 := k.OverviewKey("tree1", OverviewKeyOpts{Direction: "LR"})
	o2 := k.OverviewKey("tree1", OverviewKeyOpts{Direction: "TB"})
	if o1 == o2 || !strings.HasPrefix(o1, "overview:") {
		t.Errorf("OverviewKey = %q, %q", o1, o2)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "tree:handbook:")

	for _, key := range []string{
		scoped.PageKey("h", "a", RenderKeyOpts{}),
		scoped.MapKey("h", "a", RenderKeyOpts{}),
		scoped.OverviewKey("h", OverviewKeyOpts{}),
	} {
		if !strings.HasPrefix(key, "tree:handbook:") {
			t.Errorf("key %q is not scoped", key)
		}
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "p:")
	want := "p:" + NewDefaultKeyer().MapKey("h", "a", RenderKeyOpts{})
	if got := scoped.MapKey("h", "a", RenderKeyOpts{}); got != want {
		t.Errorf("MapKey = %q, want %q", got, want)
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), "not-a-url://"); err == nil {
		t.Error("expected an error for an invalid redis url")
	}
}
