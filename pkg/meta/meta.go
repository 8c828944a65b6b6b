// Package meta collects document head declarations made while building a
// render tree: the title, stylesheets and link tags. One Context is installed
// per render tree with Provide and read back by the page renderer.
package meta

import (
	"errors"
	"sync"

	"github.com/vango-dev/homepage/pkg/vdom"
)

// ErrContextProvided is returned when Provide runs twice for one render tree.
var ErrContextProvided = errors.New("meta: context already provided for this render tree")

// Scope is the per-render-tree value store the registry is installed into.
// server.Ctx satisfies it.
type Scope interface {
	Value(key any) any
	SetValue(key, value any)
}

type contextKey struct{}

// LinkTag represents a link element in the document head.
type LinkTag struct {
	ID          string
	Rel         string
	Href        string
	CrossOrigin string
}

// Context is the head metadata registry for one render tree.
// Declarations are additive and kept in declaration order.
type Context struct {
	mu    sync.Mutex
	title string
	links []LinkTag
}

// Provide installs a fresh registry into scope. A second call for the same
// scope returns ErrContextProvided along with the registry already installed.
func Provide(scope Scope) (*Context, error) {
	if existing, ok := scope.Value(contextKey{}).(*Context); ok {
		return existing, ErrContextProvided
	}
	c := &Context{}
	scope.SetValue(contextKey{}, c)
	return c, nil
}

// Use returns the registry installed in scope, or nil.
func Use(scope Scope) *Context {
	if scope == nil {
		return nil
	}
	c, _ := scope.Value(contextKey{}).(*Context)
	return c
}

// Title sets the document title. The last declaration wins.
func (c *Context) Title(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.title = text
}

// Stylesheet declares <link rel="stylesheet" id=id href=href>.
func (c *Context) Stylesheet(id, href string) {
	c.Link(LinkTag{ID: id, Rel: "stylesheet", Href: href})
}

// Link declares an arbitrary link tag.
func (c *Context) Link(tag LinkTag) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.links = append(c.links, tag)
}

// TitleText returns the declared title.
func (c *Context) TitleText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.title
}

// Links returns a copy of the declared links.
func (c *Context) Links() []LinkTag {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]LinkTag, len(c.links))
	copy(out, c.links)
	return out
}

// Nodes returns the head elements for the declarations: the title first, then
// links in declaration order.
func (c *Context) Nodes() []*vdom.VNode {
	if c == nil {
		return nil
	}
	var nodes []*vdom.VNode
	if title := c.TitleText(); title != "" {
		nodes = append(nodes, vdom.Title(vdom.Text(title)))
	}
	for _, l := range c.Links() {
		var attrs []vdom.Attr
		if l.ID != "" {
			attrs = append(attrs, vdom.ID(l.ID))
		}
		attrs = append(attrs, vdom.Rel(l.Rel), vdom.Href(l.Href))
		if l.CrossOrigin != "" {
			attrs = append(attrs, vdom.CrossOrigin(l.CrossOrigin))
		}
		nodes = append(nodes, vdom.Link(attrs))
	}
	return nodes
}
