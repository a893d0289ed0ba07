package directory

import (
	"errors"
	"fmt"
	"io/fs"
)

// Sentinel errors. Use errors.Is to test for them.
var (
	// ErrFileDoesNotExist reports that the requested file is absent.
	// It matches fs.ErrNotExist as well.
	ErrFileDoesNotExist = fmt.Errorf("directory: file does not exist: %w", fs.ErrNotExist)

	// ErrFileAlreadyExists reports that OpenWrite found an existing file.
	// It matches fs.ErrExist as well.
	ErrFileAlreadyExists = fmt.Errorf("directory: file already exists: %w", fs.ErrExist)

	// ErrNotADirectory reports that the root path names something other
	// than a directory.
	ErrNotADirectory = errors.New("directory: not a directory")

	// ErrIsDirectory is returned by Delete when path names a directory.
	ErrIsDirectory = errors.New("directory: is a directory")

	// ErrInvalidPath reports a path that is absolute or leaves the root.
	ErrInvalidPath = errors.New("directory: invalid path")

	// ErrTerminated is returned by writes on a terminated WritePtr.
	ErrTerminated = errors.New("directory: writer already terminated")
)

// OpenDirectoryError is returned by Open when the root cannot be used.
type OpenDirectoryError struct {
	Path string
	Err  error
}

func (e *OpenDirectoryError) Error() string {
	return fmt.Sprintf("directory: open %s: %v", e.Path, e.Err)
}

func (e *OpenDirectoryError) Unwrap() error { return e.Err }

// OpenReadError is returned by GetFileHandle, AtomicRead and Exists.
// Err is ErrFileDoesNotExist or the underlying I/O error.
type OpenReadError struct {
	Path string
	Err  error
}

func (e *OpenReadError) Error() string {
	if e.Err == ErrFileDoesNotExist {
		return fmt.Sprintf("directory: file does not exist: %s", e.Path)
	}
	return fmt.Sprintf("directory: read %s: %v", e.Path, e.Err)
}

func (e *OpenReadError) Unwrap() error { return e.Err }

// OpenWriteError is returned by OpenWrite and AtomicWrite.
// Err is ErrFileAlreadyExists or the underlying I/O error.
type OpenWriteError struct {
	Path string
	Err  error
}

func (e *OpenWriteError) Error() string {
	if e.Err == ErrFileAlreadyExists {
		return fmt.Sprintf("directory: file already exists: %s", e.Path)
	}
	return fmt.Sprintf("directory: write %s: %v", e.Path, e.Err)
}

func (e *OpenWriteError) Unwrap() error { return e.Err }

// DeleteError is returned by Delete.
// Err is ErrFileDoesNotExist, ErrIsDirectory or the underlying I/O error.
type DeleteError struct {
	Path string
	Err  error
}

func (e *DeleteError) Error() string {
	if e.Err == ErrFileDoesNotExist {
		return fmt.Sprintf("directory: cannot delete missing file: %s", e.Path)
	}
	return fmt.Sprintf("directory: delete %s: %v", e.Path, e.Err)
}

func (e *DeleteError) Unwrap() error { return e.Err }

// readError maps an error from opening path for reading.
func readError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &OpenReadError{Path: path, Err: ErrFileDoesNotExist}
	}
	return &OpenReadError{Path: path, Err: err}
}

// writeError maps an error from creating path.
func writeError(path string, err error) error {
	if errors.Is(err, fs.ErrExist) {
		return &OpenWriteError{Path: path, Err: ErrFileAlreadyExists}
	}
	return &OpenWriteError{Path: path, Err: err}
}

func deleteError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &DeleteError{Path: path, Err: ErrFileDoesNotExist}
	}
	return &DeleteError{Path: path, Err: err}
}
