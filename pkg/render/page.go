package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/vango-dev/homepage/pkg/vdom"
)

// DefaultClientScript is where the thin client is served.
const DefaultClientScript = "/_app/client.js"

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string

	// Head holds the declared head elements (title, links) in order.
	Head []*vdom.VNode

	// Body is the root VNode for the page content. It should already be
	// expanded and carry hydration IDs.
	Body *vdom.VNode

	// ClientScript is the path to the thin client JavaScript.
	// Defaults to DefaultClientScript. Set NoClient to omit it.
	ClientScript string

	// NoClient omits the thin client, producing a static document.
	NoClient bool

	// SocketPath is exposed to the thin client as data-socket.
	SocketPath string
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	if r.config.Minify && !r.config.Pretty {
		var buf bytes.Buffer
		if err := r.renderPage(&buf, page); err != nil {
			return err
		}
		return MinifyHTML(w, &buf)
	}
	return r.renderPage(w, page)
}

func (r *Renderer) renderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := io.WriteString(w, "<!DOCTYPE html>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, `<html lang="%s">`+"\n", escapeAttr(lang)); err != nil {
		return err
	}

	if err := r.renderHead(w, page); err != nil {
		return err
	}

	if _, err := io.WriteString(w, "<body>\n"); err != nil {
		return err
	}
	if err := r.RenderToWriter(w, page.Body); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	if err := r.renderClientScript(w, page); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

// renderHead renders the document head section.
func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	if _, err := io.WriteString(w, "<head>\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, `  <meta charset="utf-8">`+"\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, `  <meta name="viewport" content="width=device-width, initial-scale=1">`+"\n"); err != nil {
		return err
	}

	for _, node := range page.Head {
		if node == nil {
			continue
		}
		io.WriteString(w, "  ")
		if err := r.renderNode(w, node, 0); err != nil {
			return err
		}
		if !r.config.Pretty {
			io.WriteString(w, "\n")
		}
	}

	_, err := io.WriteString(w, "</head>\n")
	return err
}

// renderClientScript injects the thin client.
func (r *Renderer) renderClientScript(w io.Writer, page PageData) error {
	if page.NoClient {
		return nil
	}
	src := page.ClientScript
	if src == "" {
		src = DefaultClientScript
	}
	if page.SocketPath != "" {
		_, err := fmt.Fprintf(w, `<script src="%s" data-socket="%s" defer></script>`+"\n",
			escapeAttr(src), escapeAttr(page.SocketPath))
		return err
	}
	_, err := fmt.Fprintf(w, `<script src="%s" defer></script>`+"\n", escapeAttr(src))
	return err
}
