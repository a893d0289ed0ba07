package directory

import (
	"bytes"
	"errors"
	"testing"
)

type recordingWriter struct {
	bytes.Buffer
	terminated int
}

func (w *recordingWriter) Terminate() error {
	w.terminated++
	return nil
}

// failingWriter rejects every write and fails to terminate.
type failingWriter struct {
	writeErr, termErr error
	terminated        int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	return 0, w.writeErr
}

func (w *failingWriter) Terminate() error {
	w.terminated++
	return w.termErr
}

func TestWritePtrTerminateFlushFailure(t *testing.T) {
	inner := &failingWriter{
		writeErr: errors.New("disk full"),
		termErr:  errors.New("close failed"),
	}
	w := NewWritePtr(inner)
	if _, err := w.Write([]byte("buffered")); err != nil {
		t.Fatal(err)
	}

	err := w.Terminate()
	if !errors.Is(err, inner.writeErr) {
		t.Errorf("Terminate() = %v, want flush error", err)
	}
	if !errors.Is(err, inner.termErr) {
		t.Errorf("Terminate() = %v, want close error", err)
	}
	if inner.terminated != 1 {
		t.Fatalf("inner terminated %d times, want 1", inner.terminated)
	}
}

func TestWritePtrBuffersUntilTerminate(t *testing.T) {
	rec := &recordingWriter{}
	w := NewWritePtr(rec)

	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatal(err)
	}
	if rec.Len() != 0 {
		t.Fatalf("expected buffered write, inner has %d bytes", rec.Len())
	}
	if err := w.Terminate(); err != nil {
		t.Fatal(err)
	}
	if rec.String() != "hello" {
		t.Fatalf("inner = %q, want %q", rec.String(), "hello")
	}
	if rec.terminated != 1 {
		t.Fatalf("terminated %d times, want 1", rec.terminated)
	}
}

func TestWritePtrAfterTerminate(t *testing.T) {
	rec := &recordingWriter{}
	w := NewWritePtr(rec)
	if err := w.Terminate(); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("late")); !errors.Is(err, ErrTerminated) {
		t.Fatalf("Write: got %v, want ErrTerminated", err)
	}
	if err := w.Flush(); !errors.Is(err, ErrTerminated) {
		t.Fatalf("Flush: got %v, want ErrTerminated", err)
	}
	if err := w.Terminate(); err != nil {
		t.Fatalf("second Terminate: %v", err)
	}
	if rec.terminated != 1 {
		t.Fatalf("inner terminated %d times, want 1", rec.terminated)
	}
}

func TestWritePtrFlush(t *testing.T) {
	rec := &recordingWriter{}
	w := NewWritePtr(rec)
	w.Write([]byte("abc"))
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if rec.String() != "abc" {
		t.Fatalf("inner = %q after Flush", rec.String())
	}
	w.Terminate()
}

func TestOpenWriteVisibleAfterTerminate(t *testing.T) {
	d, _ := newTestFS(t)
	data := testPattern(10000)
	writeFile(t, d, "seg.idx", data)

	h, err := d.GetFileHandle("seg.idx")
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	got, err := h.ReadBytes(0, len(data))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("content mismatch")
	}
}
