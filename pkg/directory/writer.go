package directory

import (
	"bufio"
	"errors"
	"io"
	"os"
)

// TerminatingWriter is a writer that must be finished explicitly.
// Terminate flushes everything written so far and releases the target.
type TerminatingWriter interface {
	io.Writer
	Terminate() error
}

// fileWriter is the TerminatingWriter over a freshly created file.
type fileWriter struct {
	file *os.File
}

func (w *fileWriter) Write(p []byte) (int, error) {
	return w.file.Write(p)
}

func (w *fileWriter) Terminate() error {
	return w.file.Close()
}

// WritePtr is the buffered write sink returned by OpenWrite.
//
// Writes are appended sequentially. Data only reaches the file once the
// buffer fills up or Terminate is called; a WritePtr dropped without
// Terminate loses whatever is still buffered.
type WritePtr struct {
	buf        *bufio.Writer
	inner      TerminatingWriter
	terminated bool
}

// NewWritePtr wraps w in a buffered WritePtr.
func NewWritePtr(w TerminatingWriter) *WritePtr {
	return &WritePtr{buf: bufio.NewWriter(w), inner: w}
}

func (w *WritePtr) Write(p []byte) (int, error) {
	if w.terminated {
		return 0, ErrTerminated
	}
	return w.buf.Write(p)
}

// Flush pushes buffered bytes to the underlying writer.
func (w *WritePtr) Flush() error {
	if w.terminated {
		return ErrTerminated
	}
	return w.buf.Flush()
}

// Terminate flushes the buffer and finishes the underlying writer.
// Calling it again is a no-op.
func (w *WritePtr) Terminate() error {
	if w.terminated {
		return nil
	}
	w.terminated = true
	if err := w.buf.Flush(); err != nil {
		return errors.Join(err, w.inner.Terminate())
	}
	return w.inner.Terminate()
}

// Close is Terminate, so a WritePtr can be used as an io.WriteCloser.
func (w *WritePtr) Close() error {
	return w.Terminate()
}
