package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vango-dev/homepage/pkg/protocol"
	"github.com/vango-dev/homepage/pkg/reactive"
	"github.com/vango-dev/homepage/pkg/render"
	"github.com/vango-dev/homepage/pkg/vdom"
)

// Session is the live state of one connected browser tab: the mounted render
// tree, its hydration IDs and handlers, and the WebSocket connection.
//
// Everything the session's components track notifies MarkDirty, so any
// tracked change schedules a re-render on the event loop.
type Session struct {
	// Identity
	ID        string
	CreatedAt time.Time

	lastActive atomic.Int64

	// Connection
	conn   *websocket.Conn
	mu     sync.Mutex // Protects conn writes
	closed atomic.Bool

	// Sequence numbers
	sendSeq atomic.Uint64
	recvSeq atomic.Uint64

	// Request that opened the session and its detached context
	request *http.Request
	ctx     context.Context
	cancel  context.CancelFunc

	pathMu sync.RWMutex
	path   string

	// Rendering. Only the event loop touches these after Mount.
	root     RootFunc
	rootCtx  Ctx
	template *vdom.VNode
	tree     *vdom.VNode
	handlers map[string]map[string]func()
	hidGen   *vdom.HIDGenerator
	renderer *render.Renderer
	owner    *reactive.Owner
	dirty    atomic.Bool

	// running is set once the event loop owns the render tree. From then on
	// only the event loop disposes the owner.
	lifeMu  sync.Mutex
	running bool

	middleware []EventMiddleware

	// Channels
	events   chan *Event
	renderCh chan struct{}
	done     chan struct{}

	config  *SessionConfig
	logger  *slog.Logger
	onClose func(*Session)

	// Metrics
	eventCount atomic.Uint64
	patchCount atomic.Uint64
	bytesSent  atomic.Uint64
	bytesRecv  atomic.Uint64
}

// SessionStats is a snapshot of session counters.
type SessionStats struct {
	ID         string
	Path       string
	CreatedAt  time.Time
	LastActive time.Time
	Events     uint64
	Patches    uint64
	BytesSent  uint64
	BytesRecv  uint64
}

type sessionOptions struct {
	config     *SessionConfig
	renderer   *render.Renderer
	middleware []EventMiddleware
	logger     *slog.Logger
	onClose    func(*Session)
}

func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b)
}

// newSession creates a session for conn. conn may be nil, in which case
// messages are dropped; the render loop still works.
func newSession(conn *websocket.Conn, r *http.Request, path string, root RootFunc, opts sessionOptions) *Session {
	if opts.config == nil {
		opts.config = DefaultSessionConfig()
	}
	if opts.renderer == nil {
		opts.renderer = render.NewRenderer(render.RendererConfig{})
	}
	if opts.logger == nil {
		opts.logger = slog.Default()
	}

	parent := context.Background()
	if r != nil {
		parent = context.WithoutCancel(r.Context())
	}
	ctx, cancel := context.WithCancel(parent)

	id := generateSessionID()
	now := time.Now()
	s := &Session{
		ID:         id,
		CreatedAt:  now,
		conn:       conn,
		request:    r,
		ctx:        ctx,
		cancel:     cancel,
		path:       path,
		root:       root,
		hidGen:     vdom.NewHIDGenerator(),
		renderer:   opts.renderer,
		middleware: opts.middleware,
		events:     make(chan *Event, opts.config.MaxEventQueue),
		renderCh:   make(chan struct{}, 1),
		done:       make(chan struct{}),
		config:     opts.config,
		logger:     opts.logger.With("session_id", id),
		onClose:    opts.onClose,
	}
	s.lastActive.Store(now.UnixNano())
	s.owner = reactive.NewOwner(reactive.NewListenerFunc(s.MarkDirty))
	return s
}

// MarkDirty schedules a re-render on the event loop.
func (s *Session) MarkDirty() {
	s.dirty.Store(true)
	select {
	case s.renderCh <- struct{}{}:
	default:
	}
}

// Mount builds the root and assigns hydration IDs in the same order as the
// HTTP render, so the IDs match the DOM the client already has.
func (s *Session) Mount() error {
	s.rootCtx = newLiveContext(s)
	root, err := s.root(s.rootCtx)
	if err != nil {
		return &SessionError{SessionID: s.ID, Op: "mount", Err: err}
	}
	s.template = root
	tree := vdom.Expand(root)
	vdom.AssignHIDs(tree, s.hidGen)
	s.tree = tree
	s.handlers = vdom.CollectHandlers(tree)
	s.dirty.Store(false)
	return nil
}

// Path returns the session's current path.
func (s *Session) Path() string {
	s.pathMu.RLock()
	defer s.pathMu.RUnlock()
	return s.path
}

func (s *Session) setPath(path string) {
	s.pathMu.Lock()
	s.path = path
	s.pathMu.Unlock()
}

// QueueEvent queues an event for the event loop.
func (s *Session) QueueEvent(event *Event) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	select {
	case s.events <- event:
		return nil
	default:
		s.logger.Warn("event queue full, dropping event", "hid", event.HID, "kind", event.Kind)
		return ErrEventQueueFull
	}
}

// Navigate queues a client-side navigation to path.
func (s *Session) Navigate(path string) error {
	return s.QueueEvent(&Event{Kind: EventNavigate, Path: path})
}

// handleEvent runs one event through the middleware chain, then re-renders.
func (s *Session) handleEvent(event *Event) error {
	s.recvSeq.Store(event.Seq)
	s.eventCount.Add(1)
	s.touch()

	err := chainEvent(s.middleware, s.rootCtx, event, func() error {
		switch event.Kind {
		case EventNavigate:
			if event.Path != s.Path() {
				s.setPath(event.Path)
				s.dirty.Store(true)
			}
		default:
			key := "on" + strings.ToLower(event.Name)
			handler := s.handlers[event.HID][key]
			if handler == nil {
				s.logger.Warn("handler not found", "hid", event.HID, "event", event.Name)
				s.sendError(protocol.ErrHandlerNotFound, "handler not found: "+event.HID+"/"+event.Name)
				return ErrHandlerNotFound
			}
			if err := s.safeExecute(handler, event); err != nil {
				return err
			}
		}
		event.Patches = s.renderDirty()
		return nil
	})
	if err != nil {
		s.logger.Debug("event failed", "error", err)
	}
	return err
}

// safeExecute runs a handler with panic recovery.
func (s *Session) safeExecute(handler func(), event *Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("handler panic",
				"panic", r,
				"hid", event.HID,
				"event", event.Name,
				"stack", string(debug.Stack()))
			s.sendError(protocol.ErrHandlerPanic, "internal error")
			err = &HandlerError{SessionID: s.ID, HID: event.HID, Event: event.Name, Panic: r}
		}
	}()
	handler()
	return nil
}

// renderDirty re-renders if anything changed since the last render and sends
// the patches. It returns the number of patches sent.
func (s *Session) renderDirty() int {
	if !s.dirty.Swap(false) || s.template == nil {
		return 0
	}

	next := vdom.Expand(s.template)
	vpatches := vdom.Diff(s.tree, next, s.hidGen)
	s.tree = next
	s.handlers = vdom.CollectHandlers(next)
	if len(vpatches) == 0 {
		return 0
	}

	patches, err := s.convertPatches(vpatches)
	if err != nil {
		s.logger.Error("patch render error", "error", err)
		s.sendError(protocol.ErrServerError, "render failed")
		return 0
	}
	if err := s.write(protocol.NewPatches(s.recvSeq.Load(), patches)); err != nil && err != ErrNoConnection {
		s.logger.Error("write error", "error", err)
		s.Close()
		return 0
	}
	s.sendSeq.Add(1)
	s.patchCount.Add(uint64(len(patches)))
	return len(patches)
}

// convertPatches turns vdom patches into wire patches. Replacement subtrees
// are rendered to HTML with their new hydration IDs.
func (s *Session) convertPatches(vpatches []vdom.Patch) ([]protocol.Patch, error) {
	out := make([]protocol.Patch, 0, len(vpatches))
	for _, p := range vpatches {
		wp := protocol.Patch{HID: p.HID, Key: p.Key, Value: p.Value}
		switch p.Op {
		case vdom.PatchSetText:
			wp.Op = protocol.OpSetText
		case vdom.PatchSetAttr:
			wp.Op = protocol.OpSetAttr
		case vdom.PatchRemoveAttr:
			wp.Op = protocol.OpRemoveAttr
		case vdom.PatchReplaceNode:
			html, err := s.renderer.RenderToString(p.Node)
			if err != nil {
				return nil, err
			}
			wp.Op = protocol.OpReplaceNode
			wp.HTML = html
		default:
			return nil, fmt.Errorf("server: unsupported patch op %s", p.Op)
		}
		out = append(out, wp)
	}
	return out, nil
}

// Tree returns the last rendered tree. Only safe to call from the event loop
// or before Start.
func (s *Session) Tree() *vdom.VNode {
	return s.tree
}

// Close gracefully closes the session and releases everything its
// components tracked. Once Start has run, the release happens on the event
// loop after it stops, never alongside a render.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}

	close(s.done)
	s.cancel()
	s.lifeMu.Lock()
	running := s.running
	s.lifeMu.Unlock()
	if !running {
		s.owner.Dispose()
	}

	if s.conn != nil {
		s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		s.conn.Close()
	}

	if s.onClose != nil {
		s.onClose(s)
	}

	s.logger.Info("session closed",
		"events", s.eventCount.Load(),
		"patches", s.patchCount.Load(),
		"bytes_sent", s.bytesSent.Load(),
		"bytes_recv", s.bytesRecv.Load())
}

// IsClosed returns whether the session is closed.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Done returns a channel that's closed when the session is done.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Logger returns the session-scoped logger.
func (s *Session) Logger() *slog.Logger {
	return s.logger
}

func (s *Session) touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

// Stats returns a snapshot of the session counters.
func (s *Session) Stats() SessionStats {
	return SessionStats{
		ID:         s.ID,
		Path:       s.Path(),
		CreatedAt:  s.CreatedAt,
		LastActive: time.Unix(0, s.lastActive.Load()),
		Events:     s.eventCount.Load(),
		Patches:    s.patchCount.Load(),
		BytesSent:  s.bytesSent.Load(),
		BytesRecv:  s.bytesRecv.Load(),
	}
}
