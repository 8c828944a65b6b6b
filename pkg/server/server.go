package server

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/vango-dev/homepage/internal/logging"
	"github.com/vango-dev/homepage/pkg/meta"
	"github.com/vango-dev/homepage/pkg/protocol"
	"github.com/vango-dev/homepage/pkg/render"
	"github.com/vango-dev/homepage/pkg/vdom"
)

// Fixed paths served by every Server.
const (
	ClientScriptPath = render.DefaultClientScript
	SocketPath       = "/_app/ws"
	HealthPath       = "/healthz"
)

// Server renders pages over HTTP and hosts live sessions over WebSocket.
type Server struct {
	config   *ServerConfig
	root     RootFunc
	renderer *render.Renderer
	sessions *SessionManager
	upgrader websocket.Upgrader

	middleware      []Middleware
	eventMiddleware []EventMiddleware
	mounts          []mount

	handlerOnce sync.Once
	handler     http.Handler

	httpServer *http.Server
	logger     *slog.Logger
}

type mount struct {
	pattern string
	handler http.Handler
}

// Page is the result of rendering one request.
type Page struct {
	Status int
	Header http.Header
	Body   []byte
}

// New creates a Server that renders root for every page.
func New(config *ServerConfig, root RootFunc) *Server {
	if config == nil {
		config = DefaultServerConfig()
	}
	config.fillDefaults()

	logger := config.Logger.With("component", "server")
	return &Server{
		config:   config,
		root:     root,
		renderer: render.NewRenderer(config.Render),
		sessions: NewSessionManager(config.Logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		logger: logger,
	}
}

// Use adds HTTP middleware. Call before Handler.
func (s *Server) Use(mw ...Middleware) {
	s.middleware = append(s.middleware, mw...)
}

// UseEvent adds live event middleware. It applies to sessions created after
// the call.
func (s *Server) UseEvent(mw ...EventMiddleware) {
	s.eventMiddleware = append(s.eventMiddleware, mw...)
}

// Mount routes pattern to h ahead of page rendering. Patterns follow chi
// syntax ("/metrics", "/pkg/*"). Call before Handler.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.mounts = append(s.mounts, mount{pattern: pattern, handler: h})
}

// Handler returns the HTTP handler for the whole application.
func (s *Server) Handler() http.Handler {
	s.handlerOnce.Do(func() {
		s.handler = s.buildRouter()
	})
	return s.handler
}

func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimw.Recoverer)
	for _, mw := range s.middleware {
		r.Use(mw)
	}

	r.Get(HealthPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Get(SocketPath, s.HandleWebSocket)
	r.Get(ClientScriptPath, s.serveThinClient)
	r.Head(ClientScriptPath, s.serveThinClient)
	for _, m := range s.mounts {
		r.Handle(m.pattern, m.handler)
	}
	r.Get("/*", s.ServePage)
	r.Head("/*", s.ServePage)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Handler().ServeHTTP(w, r)
}

// requestLogger stores a request-scoped logger in the request context and
// logs each completed request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := s.config.Logger.With("request_id", chimw.GetReqID(r.Context()))
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(logging.WithLogger(r.Context(), logger)))

		logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

// Render performs the initial render of r: build the root, expand it,
// assign hydration IDs and write the document with the collected head tags.
// The status comes from the request's ResponseOptions.
func (s *Server) Render(r *http.Request) (*Page, error) {
	if s.root == nil {
		return nil, ErrNoRoot
	}

	resp := NewResponseOptions()
	ctx := NewSSRContext(r, resp, logging.From(r.Context()))
	defer ctx.Owner().Dispose()

	root, err := s.root(ctx)
	if err != nil {
		return nil, err
	}
	tree := vdom.Expand(root)
	vdom.AssignHIDs(tree, vdom.NewHIDGenerator())

	var buf bytes.Buffer
	err = s.renderer.RenderPage(&buf, render.PageData{
		Lang:       s.config.Lang,
		Head:       meta.Use(ctx).Nodes(),
		Body:       tree,
		SocketPath: SocketPath,
	})
	if err != nil {
		return nil, err
	}

	return &Page{Status: resp.Status(), Header: resp.Header(), Body: buf.Bytes()}, nil
}

// ServePage renders the page for r and writes it.
func (s *Server) ServePage(w http.ResponseWriter, r *http.Request) {
	page, err := s.Render(r)
	if err != nil {
		logging.From(r.Context()).Error("render failed", "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	for key, values := range page.Header {
		w.Header()[key] = values
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(page.Status)
	if r.Method != http.MethodHead {
		_, _ = w.Write(page.Body)
	}
}

// HandleWebSocket upgrades the connection and mounts a live session for the
// path in the "path" query parameter.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" || path[0] != '/' {
		path = "/"
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logging.From(r.Context()).Warn("websocket upgrade failed", "error", err)
		return
	}

	sess := newSession(conn, r, path, s.root, sessionOptions{
		config:     s.config.SessionConfig,
		renderer:   s.renderer,
		middleware: s.eventMiddleware,
		logger:     logging.From(r.Context()),
		onClose:    s.sessions.Remove,
	})
	if err := sess.Mount(); err != nil {
		sess.logger.Error("mount failed", "error", err)
		sess.sendError(protocol.ErrServerError, "mount failed")
		sess.Close()
		return
	}

	s.sessions.Add(sess)
	if err := sess.sendHello(); err != nil {
		sess.logger.Warn("hello failed", "error", err)
		sess.Close()
		return
	}
	sess.logger.Info("session started", "path", path)
	sess.Start()
}

// Sessions returns the session manager.
func (s *Server) Sessions() *SessionManager {
	return s.sessions
}

// BroadcastCSSReload asks every live session to re-fetch the stylesheet.
func (s *Server) BroadcastCSSReload(href string) int {
	return s.sessions.BroadcastCSSReload(href)
}

// Config returns the server configuration.
func (s *Server) Config() *ServerConfig {
	return s.config
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// Run listens on the configured address and serves until ctx is done, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.root == nil {
		ln.Close()
		return ErrNoRoot
	}

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes all sessions and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.sessions.Shutdown()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}
