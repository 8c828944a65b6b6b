package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vango-dev/homepage/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output. Only elements whose children are all
	// elements are broken onto lines, so text content is never altered.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// Minify runs the finished document through the HTML minifier.
	// Ignored when Pretty is set.
	Minify bool
}

// Renderer handles server-side rendering of VNode trees to HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer.
// Component nodes are rendered in place.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node, 0)
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := r.renderNode(w, child, depth); err != nil {
				return err
			}
		}
		return nil
	case vdom.KindComponent:
		if node.Comp == nil {
			return nil
		}
		return r.renderNode(w, node.Comp.Render(), depth)
	case vdom.KindRaw:
		_, err := io.WriteString(w, node.Text)
		return err
	default:
		return fmt.Errorf("render: unknown node kind: %d", node.Kind)
	}
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode, depth int) error {
	tag := node.Tag

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := io.WriteString(w, "<"+tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, node); err != nil {
		return err
	}
	if node.HID != "" {
		if _, err := fmt.Fprintf(w, ` data-hid="%s"`, escapeAttr(node.HID)); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	if vdom.IsVoidElement(tag) {
		if r.config.Pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	block := r.config.Pretty && !isInlineElement(tag) && hasOnlyElementChildren(node)
	if block {
		io.WriteString(w, "\n")
	}

	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth+1); err != nil {
			return err
		}
	}

	if block {
		r.writeIndent(w, depth)
	}
	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if r.config.Pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

// renderAttributes renders all attributes for an element in sorted order.
func (r *Renderer) renderAttributes(w io.Writer, node *vdom.VNode) error {
	if len(node.Props) == 0 {
		return nil
	}

	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var events []string
	for _, key := range keys {
		value := node.Props[key]

		// Internal props
		if strings.HasPrefix(key, "_") {
			continue
		}
		if vdom.IsEventKey(key) {
			events = append(events, strings.ToLower(key[2:]))
			continue
		}

		if isBooleanAttr(key) {
			if b, ok := value.(bool); ok {
				if b {
					if _, err := fmt.Fprintf(w, " %s", key); err != nil {
						return err
					}
				}
				continue
			}
		}

		if s := attrToString(value); s != "" {
			if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(s)); err != nil {
				return err
			}
		}
	}

	// Event markers for client-side binding
	for _, name := range events {
		if _, err := fmt.Fprintf(w, ` data-on-%s="true"`, name); err != nil {
			return err
		}
	}
	return nil
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.config.Indent)
	}
}
