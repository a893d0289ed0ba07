// Package directory defines the storage abstraction an index persists its
// files through, and provides a filesystem-backed implementation.
//
// Files are opaque byte blobs addressed by slash-separated paths relative
// to a directory root. Segment files are written once with [Directory.OpenWrite]
// and read back through shared [FileHandle] values; small metadata files
// are replaced wholesale with [Directory.AtomicWrite]. Interested parties
// subscribe to changes of the metadata file ([MetaFilepath]) with
// [Directory.Watch].
//
// Errors distinguish "not found" ([ErrFileDoesNotExist]) and "already
// exists" ([ErrFileAlreadyExists]) from every other I/O failure. Use
// errors.Is to branch on them and errors.As to get at the path:
//
//	h, err := dir.GetFileHandle("meta.json")
//	if errors.Is(err, directory.ErrFileDoesNotExist) {
//	    // no index yet
//	}
package directory

import (
	"io"

	"github.com/theduke/tantivy/pkg/watch"
)

// MetaFilepath is the index metadata file. It is the only file whose
// changes are reported through Directory.Watch.
const MetaFilepath = "meta.json"

// WatchCallback is invoked after the metadata file has changed.
type WatchCallback = watch.Callback

// WatchHandle keeps a WatchCallback registered until it is closed.
type WatchHandle = watch.Handle

// Directory is the storage contract an index is written to and read from.
//
// Implementations must be safe for concurrent use.
type Directory interface {
	// GetFileHandle opens path for random-access reads.
	// The length of the returned handle is fixed at open time.
	GetFileHandle(path string) (FileHandle, error)

	// Delete removes path. Handles that are already open may keep
	// reading the old content, depending on the platform.
	Delete(path string) error

	// Exists reports whether path names a regular file.
	Exists(path string) (bool, error)

	// OpenWrite creates path for sequential writing. It fails if the
	// file already exists. The caller must call Terminate on the
	// returned writer on every exit path.
	OpenWrite(path string) (*WritePtr, error)

	// AtomicRead reads the whole content of path.
	AtomicRead(path string) ([]byte, error)

	// AtomicWrite replaces the whole content of path with data,
	// creating the file if needed.
	AtomicWrite(path string, data []byte) error

	// SyncDirectory flushes directory metadata to stable storage.
	SyncDirectory() error

	// Watch registers cb to run whenever MetaFilepath changes.
	Watch(cb WatchCallback) (*WatchHandle, error)
}

// FileHandle is a shared, read-only view of one file.
//
// A handle is reference counted: Retain adds an owner, Close removes one,
// and the underlying file is released when the last owner closes it.
type FileHandle interface {
	io.ReaderAt

	// Len returns the file length captured when the handle was opened.
	Len() int

	// ReadBytes returns the bytes in [start, end).
	ReadBytes(start, end int) ([]byte, error)

	// Retain registers an additional owner and returns the same handle.
	Retain() FileHandle

	// Close releases one owner.
	Close() error
}

// ReadAll returns the full content of h as seen when it was opened.
func ReadAll(h FileHandle) ([]byte, error) {
	return h.ReadBytes(0, h.Len())
}
