package reactive

import (
	"reflect"
	"sync"
)

// signalBase provides type-erased subscriber management.
type signalBase struct {
	id uint64

	subs  []Listener
	subMu sync.RWMutex
}

// subscribe adds a listener, deduplicating by listener ID.
func (s *signalBase) subscribe(l Listener) func() {
	if l == nil {
		return func() {}
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	lid := l.ID()
	for _, existing := range s.subs {
		if existing.ID() == lid {
			return func() { s.unsubscribe(lid) }
		}
	}
	s.subs = append(s.subs, l)
	return func() { s.unsubscribe(lid) }
}

func (s *signalBase) unsubscribe(lid uint64) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for i, existing := range s.subs {
		if existing.ID() == lid {
			s.subs[i] = s.subs[len(s.subs)-1]
			s.subs = s.subs[:len(s.subs)-1]
			return
		}
	}
}

// notifySubscribers marks all subscribers dirty.
// Subscribers are copied first so no lock is held while they run.
func (s *signalBase) notifySubscribers() {
	s.subMu.RLock()
	subs := make([]Listener, len(s.subs))
	copy(subs, s.subs)
	s.subMu.RUnlock()

	for _, sub := range subs {
		sub.MarkDirty()
	}
}

func (s *signalBase) subscriberCount() int {
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	return len(s.subs)
}

// Signal is an observable value container.
type Signal[T any] struct {
	base signalBase

	value T
	mu    sync.RWMutex

	// equal decides whether a write changed the value. Nil uses defaultEquals.
	equal func(T, T) bool
}

// NewSignal creates a new signal with the given initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		base:  signalBase{id: NextID()},
		value: initial,
	}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies subscribers if it changed.
func (s *Signal[T]) Set(value T) {
	s.Update(func(T) T { return value })
}

// Update atomically reads and replaces the value.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	oldValue := s.value
	newValue := fn(oldValue)
	changed := !s.equals(oldValue, newValue)
	if changed {
		s.value = newValue
	}
	s.mu.Unlock()

	if changed {
		s.base.notifySubscribers()
	}
}

// Subscribe registers l to be marked dirty on every change.
// The returned function removes the subscription.
func (s *Signal[T]) Subscribe(l Listener) func() {
	return s.base.subscribe(l)
}

// WithEquals configures a custom equality function.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.base.id
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == for common comparable types and reflect.DeepEqual
// for everything else.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int64:
		return av == any(b).(int64)
	case uint64:
		return av == any(b).(uint64)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		return reflect.DeepEqual(a, b)
	}
}
