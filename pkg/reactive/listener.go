package reactive

import "sync/atomic"

// Listener is anything that can be notified when a dependency changes.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies changed.
	MarkDirty()

	// ID returns a unique identifier used for subscription deduplication.
	ID() uint64
}

// Subscribable is a value listeners can subscribe to.
type Subscribable interface {
	Subscribe(l Listener) (unsubscribe func())
}

// globalIDCounter is the source of unique IDs for signals and listeners.
var globalIDCounter uint64

// NextID returns the next unique ID. IDs are never reused.
func NextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc struct {
	id uint64
	fn func()
}

// NewListenerFunc wraps fn in a Listener with a fresh ID.
func NewListenerFunc(fn func()) *ListenerFunc {
	return &ListenerFunc{id: NextID(), fn: fn}
}

// MarkDirty implements Listener.
func (l *ListenerFunc) MarkDirty() { l.fn() }

// ID implements Listener.
func (l *ListenerFunc) ID() uint64 { return l.id }
