package watch

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/zeebo/blake3"
)

// DefaultInterval is the poll interval used when Options.Interval is zero.
const DefaultInterval = 500 * time.Millisecond

// ErrClosed is returned by Watch after the watcher has been closed.
var ErrClosed = errors.New("watch: watcher is closed")

// Options configures a FileWatcher.
type Options struct {
	// Interval between two content checks. Default is DefaultInterval.
	Interval time.Duration

	// DisableNotify turns off the fsnotify event source and leaves
	// polling as the only trigger.
	DisableNotify bool

	// Logger is optional. If nil, uses slog.Default().
	Logger *slog.Logger
}

// FileWatcher watches a single file for content changes.
//
// The background loop starts with the first call to Watch, so a watcher
// nobody subscribes to costs nothing.
type FileWatcher struct {
	path      string
	interval  time.Duration
	notify    bool
	logger    *slog.Logger
	callbacks *CallbackList

	mu      sync.Mutex
	started bool
	closed  bool
	done    chan struct{}
	stopped chan struct{}

	// last is owned by the loop goroutine after start.
	last fileState
}

type fileState struct {
	exists bool
	sum    [32]byte
}

// NewFileWatcher creates a watcher for path.
func NewFileWatcher(path string, opts Options) *FileWatcher {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &FileWatcher{
		path:      filepath.Clean(path),
		interval:  interval,
		notify:    !opts.DisableNotify,
		logger:    logger.With("component", "watch", "path", filepath.Clean(path)),
		callbacks: NewCallbackList(),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
}

// Path returns the watched path.
func (w *FileWatcher) Path() string {
	return w.path
}

// Watch registers cb to run whenever the watched file changes.
func (w *FileWatcher) Watch(cb Callback) (*Handle, error) {
	if cb == nil {
		return nil, errors.New("watch: callback is required")
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, ErrClosed
	}
	handle := w.callbacks.Subscribe(cb)
	if !w.started {
		w.started = true
		w.start()
	}
	return handle, nil
}

// Subscribers returns the number of live subscriptions.
func (w *FileWatcher) Subscribers() int {
	return w.callbacks.Len()
}

// Close stops the background loop and waits for it to exit.
// No new notifications are scheduled afterwards. Callbacks from a
// broadcast that already started may still be running.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	started := w.started
	w.mu.Unlock()

	close(w.done)
	if started {
		<-w.stopped
	}
	return nil
}

// start records the current state of the file and launches the loop.
// Must be called with w.mu held.
func (w *FileWatcher) start() {
	state, err := readState(w.path)
	if err != nil {
		w.logger.Warn("initial read failed", "error", err)
	}
	w.last = state

	var notifier *fsnotify.Watcher
	if w.notify {
		notifier, err = fsnotify.NewWatcher()
		if err != nil {
			w.logger.Warn("fsnotify unavailable, polling only", "error", err)
			notifier = nil
		}
	}
	w.logger.Debug("watcher started", "interval", w.interval, "notify", notifier != nil)
	go w.run(notifier)
}

func (w *FileWatcher) run(notifier *fsnotify.Watcher) {
	defer close(w.stopped)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var (
		events     <-chan fsnotify.Event
		errs       <-chan error
		dirWatched bool
	)
	dir := filepath.Dir(w.path)
	if notifier != nil {
		defer notifier.Close()
		events = notifier.Events
		errs = notifier.Errors
	}

	for {
		if notifier != nil && !dirWatched {
			dirWatched = w.addDir(notifier, dir)
		}

		select {
		case <-w.done:
			return
		case <-ticker.C:
			w.check()
		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			name := filepath.Clean(event.Name)
			if name == dir && event.Has(fsnotify.Remove|fsnotify.Rename) {
				dirWatched = false
			}
			if name == w.path || name == dir {
				w.check()
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			w.logger.Warn("fsnotify error", "error", err)
		}
	}
}

// addDir subscribes to the parent directory. The directory may not exist
// yet; polling covers that window and the add is retried on the next
// wake-up.
func (w *FileWatcher) addDir(notifier *fsnotify.Watcher, dir string) bool {
	if err := notifier.Add(dir); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			w.logger.Debug("watch directory failed", "dir", dir, "error", err)
		}
		return false
	}
	return true
}

func (w *FileWatcher) check() {
	state, err := readState(w.path)
	if err != nil {
		w.logger.Warn("read failed", "error", err)
		return
	}
	if state == w.last {
		return
	}
	w.last = state
	w.logger.Debug("change detected", "exists", state.exists, "subscribers", w.callbacks.Len())
	w.callbacks.Broadcast()
}

func readState(path string) (fileState, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fileState{}, nil
		}
		return fileState{}, err
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return fileState{}, fmt.Errorf("hash %s: %w", path, err)
	}
	state := fileState{exists: true}
	copy(state.sum[:], h.Sum(nil))
	return state, nil
}
