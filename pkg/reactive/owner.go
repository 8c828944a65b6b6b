package reactive

import "sync"

// Owner scopes subscriptions to one mounted component tree. Every value
// tracked through the owner notifies the owner's listener until Dispose.
type Owner struct {
	listener Listener

	mu       sync.Mutex
	cleanups []func()
	disposed bool
}

// NewOwner creates an owner whose tracked values notify l.
// A nil listener makes Track a no-op, which is what server-side rendering
// wants: nothing re-renders after the response is written.
func NewOwner(l Listener) *Owner {
	return &Owner{listener: l}
}

// NewChild creates an owner sharing this owner's listener. The child is
// disposed together with its parent.
func (o *Owner) NewChild() *Owner {
	if o == nil {
		return NewOwner(nil)
	}
	child := NewOwner(o.listener)
	o.OnCleanup(child.Dispose)
	return child
}

// Track subscribes the owner's listener to s.
func (o *Owner) Track(s Subscribable) {
	if o == nil || o.listener == nil || s == nil {
		return
	}
	o.OnCleanup(s.Subscribe(o.listener))
}

// OnCleanup registers fn to run on Dispose. If the owner is already
// disposed, fn runs immediately.
func (o *Owner) OnCleanup(fn func()) {
	if o == nil || fn == nil {
		return
	}
	o.mu.Lock()
	if o.disposed {
		o.mu.Unlock()
		fn()
		return
	}
	o.cleanups = append(o.cleanups, fn)
	o.mu.Unlock()
}

// Dispose runs cleanups in reverse registration order. Safe to call twice.
func (o *Owner) Dispose() {
	if o == nil {
		return
	}
	o.mu.Lock()
	if o.disposed {
		o.mu.Unlock()
		return
	}
	o.disposed = true
	cleanups := o.cleanups
	o.cleanups = nil
	o.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

// Disposed reports whether Dispose has run.
func (o *Owner) Disposed() bool {
	if o == nil {
		return true
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.disposed
}
