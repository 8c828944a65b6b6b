package render

import (
	"strings"
	"testing"

	"github.com/vango-dev/homepage/pkg/vdom"
)

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a & b", "a &amp; b"},
		{`"q"`, "&quot;q&quot;"},
		{"it's", "it&#39;s"},
		{"ようこそ", "ようこそ"},
	}
	for _, tt := range tests {
		if got := escapeHTML(tt.in); got != tt.want {
			t.Errorf("escapeHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeAttrWhitespace(t *testing.T) {
	if got := escapeAttr("a\nb\tc\r"); got != "a&#10;b&#9;c&#13;" {
		t.Errorf("escapeAttr = %q", got)
	}
}

func TestRenderEscapesHeadLinkHref(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Link(vdom.Href(`/css?family=a&b="c"`)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `href="/css?family=a&amp;b=&quot;c&quot;"`
	if !strings.Contains(html, want) {
		t.Errorf("got %q, want it to contain %q", html, want)
	}
}
