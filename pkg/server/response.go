package server

import (
	"fmt"
	"net/http"
	"sync"
)

// ResponseOptions is the request-scoped handle for changing the HTTP response
// of the initial render. The status can be set once; the first write wins.
type ResponseOptions struct {
	mu     sync.Mutex
	status int
	set    bool
	header http.Header
}

// NewResponseOptions returns a handle with status 200 and no extra headers.
func NewResponseOptions() *ResponseOptions {
	return &ResponseOptions{status: http.StatusOK, header: make(http.Header)}
}

// SetStatus sets the response status. It fails with ErrStatusAlreadySet if a
// status was already set and with ErrInvalidStatus for codes outside 100-599.
func (o *ResponseOptions) SetStatus(code int) error {
	if code < 100 || code > 599 {
		return fmt.Errorf("%w: %d", ErrInvalidStatus, code)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.set {
		return fmt.Errorf("%w: have %d, got %d", ErrStatusAlreadySet, o.status, code)
	}
	o.status = code
	o.set = true
	return nil
}

// Status returns the response status, 200 unless set.
func (o *ResponseOptions) Status() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// StatusSet reports whether SetStatus has succeeded.
func (o *ResponseOptions) StatusSet() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.set
}

// Header returns extra headers to write with the response.
func (o *ResponseOptions) Header() http.Header {
	return o.header
}
