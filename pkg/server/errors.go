package server

import (
	"errors"
	"fmt"
)

// Sentinel errors for common session and server error conditions.
var (
	// ErrSessionClosed is returned when an operation is attempted on a closed session.
	ErrSessionClosed = errors.New("server: session closed")

	// ErrEventQueueFull is returned when the event queue is full and an event is dropped.
	ErrEventQueueFull = errors.New("server: event queue full")

	// ErrHandlerNotFound is returned when no handler is registered for an HID and event.
	ErrHandlerNotFound = errors.New("server: handler not found")

	// ErrStatusAlreadySet is returned when a response status is set a second time.
	ErrStatusAlreadySet = errors.New("server: response status already set")

	// ErrInvalidStatus is returned for status codes outside 100-599.
	ErrInvalidStatus = errors.New("server: invalid response status")

	// ErrNoConnection is returned when attempting to send on a nil connection.
	ErrNoConnection = errors.New("server: no connection")

	// ErrNoRoot is returned when a server is started without a root.
	ErrNoRoot = errors.New("server: no root component")
)

// SessionError wraps an error with session context for debugging.
type SessionError struct {
	SessionID string
	Op        string // Operation that failed
	Err       error  // Underlying error
}

// Error returns the error message with session context.
func (e *SessionError) Error() string {
	if e.SessionID == "" {
		return fmt.Sprintf("server: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("server: session %s: %s: %v", e.SessionID, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *SessionError) Unwrap() error {
	return e.Err
}

// HandlerError records a panic recovered from an event handler.
type HandlerError struct {
	SessionID string
	HID       string
	Event     string
	Panic     any
}

// Error returns the error message.
func (e *HandlerError) Error() string {
	return fmt.Sprintf("server: handler panic in session %s, HID %s, event %s: %v",
		e.SessionID, e.HID, e.Event, e.Panic)
}
