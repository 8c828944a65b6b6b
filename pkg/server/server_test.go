package server

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vango-dev/homepage/pkg/protocol"
	"github.com/vango-dev/homepage/pkg/vdom"
)

func newTestServer(root RootFunc) *Server {
	return New(&ServerConfig{Logger: discardLogger()}, root)
}

func get(t *testing.T, h http.Handler, path string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServePageRendersDocument(t *testing.T) {
	rec := get(t, newTestServer(counterRoot).Handler(), "/", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>test</title>",
		`data-hid="h3"`,
		`data-on-click="true"`,
		"n=0",
		`data-socket="/_app/ws"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestServePageUsesResponseStatus(t *testing.T) {
	var second error
	root := func(ctx Ctx) (*vdom.VNode, error) {
		resp, ok := ctx.ResponseOptions()
		if !ok {
			t.Fatal("initial render has no ResponseOptions")
		}
		resp.SetStatus(http.StatusNotFound)
		second = resp.SetStatus(http.StatusGone)
		return vdom.H1("Not Found"), nil
	}

	rec := get(t, newTestServer(root).Handler(), "/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if !errors.Is(second, ErrStatusAlreadySet) {
		t.Errorf("second SetStatus error = %v", second)
	}
}

func TestServePageRenderError(t *testing.T) {
	root := func(ctx Ctx) (*vdom.VNode, error) { return nil, errors.New("broken") }
	rec := get(t, newTestServer(root).Handler(), "/", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(counterRoot).Handler(), HealthPath, nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("health = %d %q", rec.Code, rec.Body.String())
	}
}

func TestThinClientETag(t *testing.T) {
	h := newTestServer(counterRoot).Handler()

	rec := get(t, h, ClientScriptPath, nil)
	if rec.Code != http.StatusOK || rec.Body.Len() == 0 {
		t.Fatalf("client script = %d, %d bytes", rec.Code, rec.Body.Len())
	}
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	rec = get(t, h, ClientScriptPath, http.Header{"If-None-Match": {"W/" + etag}})
	if rec.Code != http.StatusNotModified {
		t.Errorf("conditional status = %d, want 304", rec.Code)
	}
}

func TestMountedHandlerTakesPrecedence(t *testing.T) {
	srv := newTestServer(counterRoot)
	srv.Mount("/pkg/*", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "asset")
	}))

	rec := get(t, srv.Handler(), "/pkg/homepage.css", nil)
	if rec.Body.String() != "asset" {
		t.Errorf("body = %q, want mounted handler output", rec.Body.String())
	}
}

func dialSession(t *testing.T, srv *Server, path string) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + SocketPath + "?path=" + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if msg := readMessage(t, conn); msg.Type != protocol.TypeHello || msg.Session == "" {
		t.Fatalf("first message = %+v, want hello", msg)
	}
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) *protocol.Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	msg, err := protocol.Decode(data)
	if err != nil {
		t.Fatalf("Decode(%s) error = %v", data, err)
	}
	return msg
}

func send(t *testing.T, conn *websocket.Conn, msg *protocol.Message) {
	t.Helper()
	data, err := protocol.Encode(msg)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		t.Fatalf("WriteMessage() error = %v", err)
	}
}

func TestWebSocketClickPatchesButton(t *testing.T) {
	srv := newTestServer(counterRoot)
	conn := dialSession(t, srv, "/")

	send(t, conn, protocol.NewEvent(1, "h3", "click"))
	msg := readMessage(t, conn)
	if msg.Type != protocol.TypePatches || msg.Seq != 1 {
		t.Fatalf("message = %+v, want patches for seq 1", msg)
	}
	want := protocol.Patch{Op: protocol.OpSetText, HID: "h3", Value: "n=1"}
	if len(msg.Patches) != 1 || msg.Patches[0] != want {
		t.Errorf("patches = %+v, want [%+v]", msg.Patches, want)
	}

	if srv.Sessions().Count() != 1 {
		t.Errorf("active sessions = %d, want 1", srv.Sessions().Count())
	}
}

func TestWebSocketUnknownHandler(t *testing.T) {
	conn := dialSession(t, newTestServer(counterRoot), "/")

	send(t, conn, protocol.NewEvent(1, "h99", "click"))
	msg := readMessage(t, conn)
	if msg.Type != protocol.TypeError || msg.Code != protocol.ErrHandlerNotFound {
		t.Errorf("message = %+v, want handler_not_found", msg)
	}
}

func TestWebSocketNavigate(t *testing.T) {
	conn := dialSession(t, newTestServer(counterRoot), "/")

	send(t, conn, protocol.NewNavigate(1, "/next"))
	msg := readMessage(t, conn)
	want := protocol.Patch{Op: protocol.OpSetText, HID: "h2", Value: "/next"}
	if msg.Type != protocol.TypePatches || len(msg.Patches) != 1 || msg.Patches[0] != want {
		t.Errorf("message = %+v, want [%+v]", msg, want)
	}
}

func TestWebSocketSessionRemovedOnDisconnect(t *testing.T) {
	srv := newTestServer(counterRoot)
	conn := dialSession(t, srv, "/")
	conn.Close()

	deadline := time.Now().Add(5 * time.Second)
	for srv.Sessions().Count() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("session not removed after disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestBroadcastCSSReload(t *testing.T) {
	srv := newTestServer(counterRoot)
	conn := dialSession(t, srv, "/")

	if n := srv.BroadcastCSSReload("/pkg/homepage.css"); n != 1 {
		t.Fatalf("BroadcastCSSReload() = %d, want 1", n)
	}
	msg := readMessage(t, conn)
	if msg.Type != protocol.TypeReloadCSS || msg.Href != "/pkg/homepage.css" {
		t.Errorf("message = %+v, want reload-css", msg)
	}
}
