package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vango-dev/homepage/pkg/vdom"
)

func samplePage() PageData {
	body := vdom.Expand(vdom.Main(vdom.H1(vdom.Text("ようこそ"))))
	vdom.AssignHIDs(body, vdom.NewHIDGenerator())
	return PageData{
		Lang: "ja",
		Head: []*vdom.VNode{
			vdom.Title(vdom.Text("ようこそ")),
			vdom.Link(vdom.ID("leptos"), vdom.Rel("stylesheet"), vdom.Href("/pkg/homepage.css")),
		},
		Body:       body,
		SocketPath: "/_app/ws",
	}
}

func TestRenderPage(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer(RendererConfig{}).RenderPage(&buf, samplePage()); err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>\n",
		`<html lang="ja">`,
		`<meta charset="utf-8">`,
		"<title>ようこそ</title>",
		`<link href="/pkg/homepage.css" id="leptos" rel="stylesheet">`,
		`<main data-hid="h1"><h1 data-hid="h2">ようこそ</h1></main>`,
		`<script src="/_app/client.js" data-socket="/_app/ws" defer></script>`,
		"</body>\n</html>\n",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q\n%s", want, html)
		}
	}

	if strings.Index(html, "<title>") > strings.Index(html, "</head>") {
		t.Error("title should be inside head")
	}
}

func TestRenderPageDefaults(t *testing.T) {
	var buf bytes.Buffer
	page := PageData{Body: vdom.P(vdom.Text("x"))}
	if err := NewRenderer(RendererConfig{}).RenderPage(&buf, page); err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, `<html lang="en">`) {
		t.Error("default lang should be en")
	}
	if !strings.Contains(html, `<script src="/_app/client.js" defer></script>`) {
		t.Errorf("default client script missing:\n%s", html)
	}
}

func TestRenderPageNoClient(t *testing.T) {
	var buf bytes.Buffer
	page := samplePage()
	page.NoClient = true
	if err := NewRenderer(RendererConfig{}).RenderPage(&buf, page); err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	if strings.Contains(buf.String(), "<script") {
		t.Error("NoClient page should not include scripts")
	}
}

func TestRenderPageMinified(t *testing.T) {
	var plain, min bytes.Buffer
	if err := NewRenderer(RendererConfig{}).RenderPage(&plain, samplePage()); err != nil {
		t.Fatalf("RenderPage: %v", err)
	}
	if err := NewRenderer(RendererConfig{Minify: true}).RenderPage(&min, samplePage()); err != nil {
		t.Fatalf("RenderPage minified: %v", err)
	}

	if min.Len() >= plain.Len() {
		t.Errorf("minified output (%d bytes) not smaller than plain (%d bytes)", min.Len(), plain.Len())
	}
	for _, want := range []string{"ようこそ", `data-hid="h2"`, "/pkg/homepage.css"} {
		if !strings.Contains(min.String(), want) {
			t.Errorf("minified output lost %q:\n%s", want, min.String())
		}
	}
}

func TestMinifyCSS(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("body {\n  margin: 0px;\n}\n")
	if err := MinifyCSS(&out, in); err != nil {
		t.Fatalf("MinifyCSS: %v", err)
	}
	if strings.Contains(out.String(), "\n") {
		t.Errorf("expected single-line css, got %q", out.String())
	}
}
