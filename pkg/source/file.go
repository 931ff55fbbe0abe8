package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/topicmap/pkg/errors"
	"github.com/matzehuels/topicmap/pkg/topic"
)

// DefaultDebounce coalesces bursts of file events into one reload.
const DefaultDebounce = 200 * time.Millisecond

// File loads a tree from a local file. The decoder is chosen from the file
// name (see topic.FormatFor).
type File struct {
	Path     string
	Debounce time.Duration
}

// NewFile returns a loader for path.
func NewFile(path string) *File {
	return &File{Path: path, Debounce: DefaultDebounce}
}

// Name implements Loader.
func (f *File) Name() string { return f.Path }

// Load implements Loader.
func (f *File) Load(ctx context.Context) (*topic.Node, error) {
	fh, err := os.Open(f.Path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "tree file %s", f.Path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLoadFailed, err, "open %s", f.Path)
	}
	defer fh.Close()

	root, err := topic.Decode(topic.FormatFor(f.Path), fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return root, nil
}

// Watch calls onChange after the file is written, created or replaced,
// once per burst of events. It watches the parent directory so editors
// that save by rename are seen. Watch blocks until ctx is cancelled.
func (f *File) Watch(ctx context.Context, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(f.Path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", f.Path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	debounce := f.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			mu.Lock()
			if timer == nil {
				timer = time.AfterFunc(debounce, onChange)
			} else {
				timer.Reset(debounce)
			}
			mu.Unlock()

		case _, ok := <-w.Errors:
			// Overflow and similar errors do not stop the watch.
			if !ok {
				return nil
			}
		}
	}
}
