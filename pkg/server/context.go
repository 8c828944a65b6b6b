package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/vango-dev/homepage/pkg/reactive"
	"github.com/vango-dev/homepage/pkg/vdom"
)

// RootFunc builds the root of the render tree. It runs once per HTTP render
// and once per live session mount.
type RootFunc func(ctx Ctx) (*vdom.VNode, error)

// Ctx is passed to everything that renders. It is shared by one render tree;
// WithOwner derives a view of the same tree with a different reactive owner.
type Ctx interface {
	// Request returns the HTTP request that started the render: the page
	// request during HTTP rendering, the upgrade request in a live session.
	Request() *http.Request

	// Path returns the current URL path. In a live session it follows
	// client-side navigation.
	Path() string

	// StdContext returns the standard context for blocking calls.
	StdContext() context.Context

	// Logger returns the request- or session-scoped logger.
	Logger() *slog.Logger

	// Value and SetValue store values scoped to the render tree.
	Value(key any) any
	SetValue(key, value any)

	// Owner returns the reactive owner for values created by the current
	// component. Values tracked through it re-render the session on change
	// and are released when the component unmounts.
	Owner() *reactive.Owner

	// WithOwner returns a Ctx for the same render tree with owner o.
	WithOwner(o *reactive.Owner) Ctx

	// ResponseOptions returns the response handle. It is present only during
	// the initial HTTP render.
	ResponseOptions() (*ResponseOptions, bool)

	// Session returns the live session, or nil during HTTP rendering.
	Session() *Session
}

// values is the key/value store shared by every Ctx of one render tree.
type values struct {
	mu sync.RWMutex
	m  map[any]any
}

func (v *values) get(key any) any {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.m[key]
}

func (v *values) set(key, value any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.m == nil {
		v.m = make(map[any]any)
	}
	v.m[key] = value
}

type renderCtx struct {
	request *http.Request
	path    func() string
	std     context.Context
	logger  *slog.Logger
	values  *values
	owner   *reactive.Owner
	resp    *ResponseOptions
	session *Session
}

// NewSSRContext creates the Ctx for the initial HTTP render of r. Its owner
// has no listener: nothing re-renders after the response is written.
func NewSSRContext(r *http.Request, resp *ResponseOptions, logger *slog.Logger) Ctx {
	if logger == nil {
		logger = slog.Default()
	}
	path := r.URL.Path
	return &renderCtx{
		request: r,
		path:    func() string { return path },
		std:     r.Context(),
		logger:  logger,
		values:  &values{},
		owner:   reactive.NewOwner(nil),
		resp:    resp,
	}
}

func newLiveContext(s *Session) Ctx {
	return &renderCtx{
		request: s.request,
		path:    s.Path,
		std:     s.ctx,
		logger:  s.logger,
		values:  &values{},
		owner:   s.owner,
		session: s,
	}
}

func (c *renderCtx) Request() *http.Request      { return c.request }
func (c *renderCtx) Path() string                { return c.path() }
func (c *renderCtx) StdContext() context.Context { return c.std }
func (c *renderCtx) Logger() *slog.Logger        { return c.logger }
func (c *renderCtx) Value(key any) any           { return c.values.get(key) }
func (c *renderCtx) SetValue(key, value any)     { c.values.set(key, value) }
func (c *renderCtx) Owner() *reactive.Owner      { return c.owner }
func (c *renderCtx) Session() *Session           { return c.session }

func (c *renderCtx) WithOwner(o *reactive.Owner) Ctx {
	clone := *c
	clone.owner = o
	return &clone
}

func (c *renderCtx) ResponseOptions() (*ResponseOptions, bool) {
	if c.resp == nil {
		return nil, false
	}
	return c.resp, true
}
