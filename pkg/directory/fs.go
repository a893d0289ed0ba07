package directory

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/theduke/tantivy/pkg/watch"
)

// Watcher is the change-detection collaborator behind FS.Watch.
// *watch.FileWatcher satisfies it.
type Watcher interface {
	Watch(cb watch.Callback) (*watch.Handle, error)
}

// Option configures an FS.
type Option func(*FS)

// WithLogger sets the logger. If unset, uses slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *FS) {
		d.logger = logger
	}
}

// WithWatcher replaces the default metadata watcher. The caller keeps
// ownership: FS.Close does not close it.
func WithWatcher(w Watcher) Option {
	return func(d *FS) {
		d.watcher = w
	}
}

// WithWatchOptions configures the default metadata watcher.
// It has no effect together with WithWatcher.
func WithWatchOptions(opts watch.Options) Option {
	return func(d *FS) {
		d.watchOpts = opts
	}
}

// FS is a Directory backed by a directory on the local filesystem.
//
// It keeps no cache of its own and relies on the OS page cache. The root
// directory is created lazily by the first operation that writes.
type FS struct {
	root      string
	created   atomic.Bool
	logger    *slog.Logger
	watcher   Watcher
	watchOpts watch.Options
	ownWatch  *watch.FileWatcher
}

var _ Directory = (*FS)(nil)

// Open returns an FS rooted at root. It only checks whether root
// already exists; it never creates it.
func Open(root string, opts ...Option) (*FS, error) {
	d := &FS{root: filepath.Clean(root)}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	base := d.logger
	d.logger = base.With("component", "directory", "root", d.root)

	info, err := os.Stat(d.root)
	switch {
	case err == nil:
		if !info.IsDir() {
			return nil, &OpenDirectoryError{Path: root, Err: ErrNotADirectory}
		}
		d.created.Store(true)
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, &OpenDirectoryError{Path: root, Err: err}
	}

	if d.watcher == nil {
		wopts := d.watchOpts
		if wopts.Logger == nil {
			wopts.Logger = base
		}
		d.ownWatch = watch.NewFileWatcher(filepath.Join(d.root, MetaFilepath), wopts)
		d.watcher = d.ownWatch
	}
	return d, nil
}

// Root returns the root directory.
func (d *FS) Root() string {
	return d.root
}

// Close releases the metadata watcher if FS created it.
// Open handles and writers stay usable.
func (d *FS) Close() error {
	if d.ownWatch != nil {
		return d.ownWatch.Close()
	}
	return nil
}

func (d *FS) String() string {
	return fmt.Sprintf("FS(%s)", d.root)
}

// resolve turns a directory path into an absolute filesystem path.
func (d *FS) resolve(path string) (string, error) {
	p := filepath.FromSlash(path)
	if !filepath.IsLocal(p) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	return filepath.Join(d.root, p), nil
}

// ensureResolve is resolve for writes: the root, and any parent
// directories below it, are created first.
func (d *FS) ensureResolve(path string) (string, error) {
	full, err := d.resolve(path)
	if err != nil {
		return "", err
	}
	if !d.created.Load() {
		if err := os.MkdirAll(d.root, 0o755); err != nil {
			return "", err
		}
		d.created.Store(true)
		d.logger.Debug("created root directory")
	}
	if parent := filepath.Dir(full); parent != d.root {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return "", err
		}
	}
	return full, nil
}

// GetFileHandle opens path for random-access reads.
func (d *FS) GetFileHandle(path string) (FileHandle, error) {
	full, err := d.resolve(path)
	if err != nil {
		return nil, &OpenReadError{Path: path, Err: err}
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, readError(path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &OpenReadError{Path: path, Err: err}
	}
	return newFSHandle(path, f, int(info.Size())), nil
}

// Delete removes the file at path. Directories are refused.
// It does not check for open handles on path.
func (d *FS) Delete(path string) error {
	full, err := d.resolve(path)
	if err != nil {
		return &DeleteError{Path: path, Err: err}
	}
	info, err := os.Lstat(full)
	if err != nil {
		return deleteError(path, err)
	}
	if info.IsDir() {
		return &DeleteError{Path: path, Err: ErrIsDirectory}
	}
	if err := os.Remove(full); err != nil {
		return deleteError(path, err)
	}
	d.logger.Debug("deleted file", "path", path)
	return nil
}

// Exists reports whether path names a regular file.
func (d *FS) Exists(path string) (bool, error) {
	full, err := d.resolve(path)
	if err != nil {
		return false, &OpenReadError{Path: path, Err: err}
	}
	info, err := os.Stat(full)
	if err == nil {
		return info.Mode().IsRegular(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, &OpenReadError{Path: path, Err: err}
}

// OpenWrite creates path for writing. It fails if the file exists.
func (d *FS) OpenWrite(path string) (*WritePtr, error) {
	full, err := d.ensureResolve(path)
	if err != nil {
		return nil, &OpenWriteError{Path: path, Err: err}
	}
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, writeError(path, err)
	}
	d.logger.Debug("opened file for writing", "path", path)
	return NewWritePtr(&fileWriter{file: f}), nil
}

// AtomicRead loads the whole file into memory. It is meant for small
// metadata files.
func (d *FS) AtomicRead(path string) ([]byte, error) {
	full, err := d.resolve(path)
	if err != nil {
		return nil, &OpenReadError{Path: path, Err: err}
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, readError(path, err)
	}
	return data, nil
}

// AtomicWrite overwrites path in a single write call. The file is
// truncated in place, so a crash in the middle of the write can leave it
// partially written.
func (d *FS) AtomicWrite(path string, data []byte) error {
	full, err := d.ensureResolve(path)
	if err != nil {
		return &OpenWriteError{Path: path, Err: err}
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return &OpenWriteError{Path: path, Err: err}
	}
	info, err := os.Stat(full)
	if err != nil {
		return &OpenWriteError{Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return &OpenWriteError{Path: path, Err: fmt.Errorf("not a regular file after write: %s", info.Mode())}
	}
	d.logger.Debug("atomic write", "path", path, "bytes", len(data))
	return nil
}

// SyncDirectory is a no-op; durability is left to the OS.
func (d *FS) SyncDirectory() error {
	return nil
}

// Watch registers cb to run after meta.json changes.
func (d *FS) Watch(cb WatchCallback) (*WatchHandle, error) {
	return d.watcher.Watch(cb)
}
