package directory

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sync/errgroup"
)

func testPattern(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i * 7 % 251)
	}
	return data
}

func TestConcurrentReadBytes(t *testing.T) {
	d, _ := newTestFS(t)
	data := testPattern(64 * 1024)
	writeFile(t, d, "seg.idx", data)

	h, err := d.GetFileHandle("seg.idx")
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	const (
		workers = 16
		chunk   = 4096
		rounds  = 50
	)
	var g errgroup.Group
	for w := range workers {
		g.Go(func() error {
			start := w * chunk
			end := start + chunk
			for range rounds {
				got, err := h.ReadBytes(start, end)
				if err != nil {
					return err
				}
				if !bytes.Equal(got, data[start:end]) {
					return fmt.Errorf("worker %d: wrong bytes for [%d, %d)", w, start, end)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

func TestReadBytesRanges(t *testing.T) {
	d, _ := newTestFS(t)
	writeFile(t, d, "seg.idx", []byte("0123456789"))

	h, err := d.GetFileHandle("seg.idx")
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	tests := []struct {
		start, end int
		want       string
		wantErr    bool
	}{
		{0, 10, "0123456789", false},
		{3, 7, "3456", false},
		{5, 5, "", false},
		{9, 10, "9", false},
		{-1, 3, "", true},
		{4, 2, "", true},
		{8, 11, "", true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d-%d", tt.start, tt.end), func(t *testing.T) {
			got, err := h.ReadBytes(tt.start, tt.end)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadBytesShortRead(t *testing.T) {
	d, root := newTestFS(t)
	writeFile(t, d, "seg.idx", []byte("0123456789"))

	h, err := d.GetFileHandle("seg.idx")
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	if err := os.Truncate(filepath.Join(root, "seg.idx"), 4); err != nil {
		t.Fatal(err)
	}
	_, err = h.ReadBytes(0, 10)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("got %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestReadAt(t *testing.T) {
	d, _ := newTestFS(t)
	data := testPattern(1000)
	writeFile(t, d, "seg.idx", data)

	h, err := d.GetFileHandle("seg.idx")
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	got, err := io.ReadAll(io.NewSectionReader(h, 100, 200))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data[100:300]) {
		t.Fatal("section reader returned wrong bytes")
	}

	buf := make([]byte, 10)
	n, err := h.ReadAt(buf, 995)
	if n != 5 || err != io.EOF {
		t.Fatalf("ReadAt tail = %d, %v; want 5, EOF", n, err)
	}
	if !bytes.Equal(buf[:5], data[995:]) {
		t.Fatal("tail bytes mismatch")
	}
	if n, err := h.ReadAt(buf, 1000); n != 0 || err != io.EOF {
		t.Fatalf("ReadAt past end = %d, %v", n, err)
	}
}

func TestHandleRefCount(t *testing.T) {
	d, _ := newTestFS(t)
	writeFile(t, d, "seg.idx", []byte("shared"))

	h, err := d.GetFileHandle("seg.idx")
	if err != nil {
		t.Fatal(err)
	}
	other := h.Retain()

	if err := h.Close(); err != nil {
		t.Fatal(err)
	}
	got, err := ReadAll(other)
	if err != nil {
		t.Fatalf("read after first Close: %v", err)
	}
	if string(got) != "shared" {
		t.Fatalf("got %q", got)
	}

	if err := other.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := other.ReadBytes(0, 1); !errors.Is(err, os.ErrClosed) {
		t.Fatalf("read after last Close: got %v, want os.ErrClosed", err)
	}
}
