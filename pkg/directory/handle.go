package directory

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// fsHandle shares one open file between any number of readers.
//
// Seek and read are two separate calls on the same file offset, so every
// read holds mu for the whole sequence.
type fsHandle struct {
	path   string
	length int

	mu   sync.Mutex
	file *os.File

	refs atomic.Int64
}

func newFSHandle(path string, file *os.File, length int) *fsHandle {
	h := &fsHandle{path: path, file: file, length: length}
	h.refs.Store(1)
	return h
}

func (h *fsHandle) Len() int {
	return h.length
}

func (h *fsHandle) ReadBytes(start, end int) ([]byte, error) {
	if start < 0 || end < start || end > h.length {
		return nil, fmt.Errorf("directory: read %s: range [%d, %d) outside [0, %d)", h.path, start, end, h.length)
	}
	buf := make([]byte, end-start)
	if err := h.readAt(buf, int64(start)); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadAt implements io.ReaderAt. Reads are bounded by the cached length,
// so a file that grew after open is not visible through this handle.
func (h *fsHandle) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("directory: read %s: negative offset %d", h.path, off)
	}
	if off >= int64(h.length) {
		return 0, io.EOF
	}
	n := len(p)
	var err error
	if remain := int64(h.length) - off; int64(n) > remain {
		n = int(remain)
		err = io.EOF
	}
	if rerr := h.readAt(p[:n], off); rerr != nil {
		return 0, rerr
	}
	return n, err
}

func (h *fsHandle) readAt(buf []byte, off int64) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.file == nil {
		return fmt.Errorf("directory: read %s: %w", h.path, os.ErrClosed)
	}
	if _, err := h.file.Seek(off, io.SeekStart); err != nil {
		return fmt.Errorf("directory: seek %s: %w", h.path, err)
	}
	if _, err := io.ReadFull(h.file, buf); err != nil {
		return fmt.Errorf("directory: read %s: %w", h.path, err)
	}
	return nil
}

func (h *fsHandle) Retain() FileHandle {
	h.refs.Add(1)
	return h
}

func (h *fsHandle) Close() error {
	if h.refs.Add(-1) != 0 {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.file == nil {
		return nil
	}
	err := h.file.Close()
	h.file = nil
	return err
}
