package watch

import (
	"slices"
	"sync"
)

// Callback is invoked after the watched file has changed.
//
// Each broadcast runs on its own goroutine and broadcasts may overlap,
// so a callback must be safe for concurrent calls. A broadcast already
// in flight still runs after its Handle is closed.
type Callback func()

// Handle keeps one callback registered. Close unregisters it.
type Handle struct {
	list *CallbackList
	id   uint64
	once sync.Once
}

// Close unregisters the callback. It is safe to call more than once.
func (h *Handle) Close() error {
	if h == nil || h.list == nil {
		return nil
	}
	h.once.Do(func() {
		h.list.remove(h.id)
	})
	return nil
}

// CallbackList is a concurrent registry of callbacks.
// The zero value is ready to use.
type CallbackList struct {
	mu        sync.Mutex
	nextID    uint64
	callbacks map[uint64]Callback
}

// NewCallbackList creates an empty CallbackList.
func NewCallbackList() *CallbackList {
	return &CallbackList{callbacks: make(map[uint64]Callback)}
}

// Subscribe registers cb and returns the handle that owns the registration.
func (l *CallbackList) Subscribe(cb Callback) *Handle {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.callbacks == nil {
		l.callbacks = make(map[uint64]Callback)
	}
	l.nextID++
	l.callbacks[l.nextID] = cb
	return &Handle{list: l, id: l.nextID}
}

// Len returns the number of registered callbacks.
func (l *CallbackList) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.callbacks)
}

// Broadcast invokes every registered callback, in registration order, on
// a new goroutine. The returned channel is closed once all of them have
// returned.
func (l *CallbackList) Broadcast() <-chan struct{} {
	l.mu.Lock()
	ids := make([]uint64, 0, len(l.callbacks))
	for id := range l.callbacks {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	cbs := make([]Callback, 0, len(ids))
	for _, id := range ids {
		cbs = append(cbs, l.callbacks[id])
	}
	l.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, cb := range cbs {
			cb()
		}
	}()
	return done
}

func (l *CallbackList) remove(id uint64) {
	l.mu.Lock()
	delete(l.callbacks, id)
	l.mu.Unlock()
}
