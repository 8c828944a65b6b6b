package assets

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	apperrors "github.com/vango-dev/homepage/internal/errors"
	"github.com/vango-dev/homepage/pkg/render"
)

// Prefix is the URL prefix the asset handler is mounted under.
const Prefix = "/pkg/"

type handler struct {
	store        Store
	logger       *slog.Logger
	prefix       string
	minifyCSS    bool
	cacheControl string
}

// Option configures Handler.
type Option func(*handler)

// WithMinifyCSS minifies stylesheets before serving them.
func WithMinifyCSS() Option {
	return func(h *handler) { h.minifyCSS = true }
}

// WithCacheControl sets the Cache-Control header on every asset response.
func WithCacheControl(value string) Option {
	return func(h *handler) { h.cacheControl = value }
}

// WithPrefix changes the URL prefix stripped from request paths.
func WithPrefix(prefix string) Option {
	return func(h *handler) {
		if !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		h.prefix = prefix
	}
}

// Handler serves GET and HEAD requests under Prefix from store.
func Handler(store Store, logger *slog.Logger, opts ...Option) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &handler{
		store:        store,
		logger:       logger.With("component", "assets"),
		prefix:       Prefix,
		cacheControl: "public, max-age=3600, must-revalidate",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	if !strings.HasPrefix(r.URL.Path, h.prefix) {
		http.NotFound(w, r)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, h.prefix)
	rc, info, err := h.store.Open(r.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidName):
			h.logger.Debug("asset not found", "error", apperrors.New("E004").WithDetail(name).Wrap(err))
			http.NotFound(w, r)
		default:
			h.logger.Error("asset open failed", "name", name, "error", err)
			http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		}
		return
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		h.logger.Error("asset read failed", "name", name, "error", err)
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}

	if h.minifyCSS && strings.HasPrefix(info.ContentType, "text/css") {
		var buf bytes.Buffer
		if err := render.MinifyCSS(&buf, bytes.NewReader(data)); err != nil {
			h.logger.Warn("css minify failed, serving original", "name", name, "error", err)
		} else {
			data = buf.Bytes()
		}
	}

	w.Header().Set("Content-Type", info.ContentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if h.cacheControl != "" {
		w.Header().Set("Cache-Control", h.cacheControl)
	}
	if info.ETag != "" {
		w.Header().Set("ETag", info.ETag)
	}
	http.ServeContent(w, r, info.Name, info.ModTime, bytes.NewReader(data))
}
