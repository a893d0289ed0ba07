package watch

import (
	"sync/atomic"
	"testing"
	"time"
)

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for broadcast")
	}
}

func TestCallbackListBroadcast(t *testing.T) {
	l := NewCallbackList()
	var a, b atomic.Int32
	ha := l.Subscribe(func() { a.Add(1) })
	hb := l.Subscribe(func() { b.Add(1) })
	defer hb.Close()

	if got := l.Len(); got != 2 {
		t.Fatalf("Len = %d, want 2", got)
	}

	waitDone(t, l.Broadcast())
	if a.Load() != 1 || b.Load() != 1 {
		t.Fatalf("calls = (%d, %d), want (1, 1)", a.Load(), b.Load())
	}

	if err := ha.Close(); err != nil {
		t.Fatal(err)
	}
	waitDone(t, l.Broadcast())
	if a.Load() != 1 {
		t.Fatalf("closed callback called again: %d", a.Load())
	}
	if b.Load() != 2 {
		t.Fatalf("remaining callback calls = %d, want 2", b.Load())
	}
}

func TestCallbackListOrder(t *testing.T) {
	var l CallbackList
	var order []int
	for i := range 5 {
		l.Subscribe(func() { order = append(order, i) })
	}
	waitDone(t, l.Broadcast())
	for i, v := range order {
		if v != i {
			t.Fatalf("order = %v", order)
		}
	}
	if len(order) != 5 {
		t.Fatalf("got %d calls, want 5", len(order))
	}
}

func TestHandleCloseIdempotent(t *testing.T) {
	l := NewCallbackList()
	h := l.Subscribe(func() {})
	other := l.Subscribe(func() {})
	defer other.Close()

	for range 3 {
		if err := h.Close(); err != nil {
			t.Fatal(err)
		}
	}
	if got := l.Len(); got != 1 {
		t.Fatalf("Len = %d, want 1", got)
	}

	var nilHandle *Handle
	if err := nilHandle.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestBroadcastEmpty(t *testing.T) {
	waitDone(t, NewCallbackList().Broadcast())
}

func TestBroadcastInFlightAfterHandleClose(t *testing.T) {
	l := NewCallbackList()
	entered := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	h := l.Subscribe(func() {
		if calls.Add(1) == 1 {
			close(entered)
			<-release
		}
	})

	first := l.Broadcast()
	<-entered

	// A second broadcast overlaps the first one.
	waitDone(t, l.Broadcast())
	if got := calls.Load(); got != 2 {
		t.Fatalf("calls = %d, want 2", got)
	}

	h.Close()
	close(release)
	waitDone(t, first)

	waitDone(t, l.Broadcast())
	if got := calls.Load(); got != 2 {
		t.Fatalf("calls after Close = %d, want 2", got)
	}
}
