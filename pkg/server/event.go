package server

import (
	"fmt"
	"net/http"
)

// EventKind distinguishes DOM events from client-side navigation.
type EventKind uint8

const (
	EventDOM EventKind = iota
	EventNavigate
)

// String returns the string representation of the EventKind.
func (k EventKind) String() string {
	switch k {
	case EventDOM:
		return "dom"
	case EventNavigate:
		return "navigate"
	default:
		return fmt.Sprintf("EventKind(%d)", k)
	}
}

// Event is one unit of work for a session's event loop.
type Event struct {
	Seq  uint64
	Kind EventKind

	// HID and Name identify the target element and DOM event ("click").
	HID  string
	Name string

	// Path is the destination of a navigation.
	Path string

	// Patches is the number of patches sent for the event. It is set once
	// the event has been processed.
	Patches int
}

// EventMiddleware wraps the processing of a live event. Processing covers
// running the handler, re-rendering and sending patches. Implementations
// must call next exactly once unless they reject the event.
type EventMiddleware func(ctx Ctx, ev *Event, next func() error) error

// Middleware is a function that wraps an HTTP handler.
type Middleware func(http.Handler) http.Handler

func chainEvent(mw []EventMiddleware, ctx Ctx, ev *Event, final func() error) error {
	next := final
	for i := len(mw) - 1; i >= 0; i-- {
		m, n := mw[i], next
		next = func() error { return m(ctx, ev, n) }
	}
	return next()
}
