package watcher

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to data files in a single directory.
type Watcher struct {
	dir      string
	fs       *fsnotify.Watcher
	debounce *Debouncer
	changes  chan string

	closeOnce sync.Once
	done      chan struct{}
}

// New starts watching dir. Close must be called to release the handle.
func New(dir string, wait time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &Watcher{
		dir:      dir,
		fs:       fw,
		debounce: NewDebouncer(wait),
		changes:  make(chan string, 1),
		done:     make(chan struct{}),
	}, nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string { return w.dir }

// Changes delivers the name of the last file touched in each debounced burst.
func (w *Watcher) Changes() <-chan string { return w.changes }

// Done is closed once the watcher is closed.
func (w *Watcher) Done() <-chan struct{} { return w.done }

// Run pumps fsnotify events until ctx is done or Close is called.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Close()
			return
		case <-w.done:
			return
		case evt, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !IsDataFile(evt.Name) {
				continue
			}
			name := evt.Name
			w.debounce.Trigger(func() { w.emit(name) })
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("Warning: watcher error on %s: %v", w.dir, err)
		}
	}
}

func (w *Watcher) emit(name string) {
	select {
	case <-w.done:
		return
	default:
	}
	// Keep only the newest notification; a reload reads every file anyway.
	select {
	case w.changes <- name:
	default:
		select {
		case <-w.changes:
		default:
		}
		select {
		case w.changes <- name:
		default:
		}
	}
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.debounce.Cancel()
		err = w.fs.Close()
	})
	return err
}

// IsDataFile reports whether path names a YAML data file rather than an
// editor swap or backup file.
func IsDataFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(base))
	return ext == ".yaml" || ext == ".yml"
}
