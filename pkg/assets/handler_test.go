package assets

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testStore() Store {
	return NewFSStore(fstest.MapFS{
		"homepage.css": &fstest.MapFile{Data: []byte("body {\n  margin: 0px;\n}\n")},
	})
}

func serve(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandlerServesStylesheet(t *testing.T) {
	rec := serve(Handler(testStore(), quietLogger()), http.MethodGet, "/pkg/homepage.css")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/css; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Body.String() != "body {\n  margin: 0px;\n}\n" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestHandlerMinifiesCSS(t *testing.T) {
	rec := serve(Handler(testStore(), quietLogger(), WithMinifyCSS()), http.MethodGet, "/pkg/homepage.css")
	if got := rec.Body.String(); got != "body{margin:0}" {
		t.Errorf("body = %q, want minified", got)
	}
}

func TestHandlerErrors(t *testing.T) {
	h := Handler(testStore(), quietLogger())

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/pkg/missing.css", http.StatusNotFound},
		{http.MethodGet, "/pkg/../go.mod", http.StatusNotFound},
		{http.MethodGet, "/other/homepage.css", http.StatusNotFound},
		{http.MethodPost, "/pkg/homepage.css", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		if rec := serve(h, tt.method, tt.path); rec.Code != tt.want {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.want)
		}
	}
}

func TestHandlerCustomPrefixAndCache(t *testing.T) {
	h := Handler(testStore(), quietLogger(), WithPrefix("/static"), WithCacheControl("no-store"))
	rec := serve(h, http.MethodHead, "/static/homepage.css")
	if rec.Code != http.StatusOK || rec.Header().Get("Cache-Control") != "no-store" {
		t.Errorf("status = %d, Cache-Control = %q", rec.Code, rec.Header().Get("Cache-Control"))
	}
	if rec.Body.Len() != 0 {
		t.Error("HEAD response has a body")
	}
}
