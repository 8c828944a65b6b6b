package router

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vango-dev/homepage/pkg/server"
	"github.com/vango-dev/homepage/pkg/vdom"
)

// ErrShadowedRoute is returned by Validate when an earlier route matches
// every path a later route would match.
var ErrShadowedRoute = errors.New("router: route is shadowed by an earlier route")

// FallbackText is rendered when no route matches and the table has no
// fallback of its own.
const FallbackText = "見つかりませんでした。"

// PageHandler mounts a page and returns its view. It runs once per mount;
// dynamic parts of the view re-render through components.
type PageHandler func(ctx server.Ctx) *vdom.VNode

// Route pairs a path pattern with the page it mounts.
type Route struct {
	Segments []Segment
	Page     PageHandler
}

// NewRoute builds a route for page.
func NewRoute(page PageHandler, segments ...Segment) Route {
	return Route{Segments: segments, Page: page}
}

// Pattern returns the route in "/a/:b/*c" syntax. The root is "/".
func (r Route) Pattern() string {
	segs := effective(r.Segments)
	parts := make([]string, len(segs))
	for i, s := range segs {
		parts[i] = s.String()
	}
	return "/" + strings.Join(parts, "/")
}

// Routes is an ordered route table with a fallback view.
type Routes struct {
	routes   []Route
	fallback PageHandler
}

// NewRoutes builds a table. Order is precedence. A nil fallback renders
// FallbackText.
func NewRoutes(fallback PageHandler, routes ...Route) *Routes {
	if fallback == nil {
		fallback = defaultFallback
	}
	return &Routes{routes: routes, fallback: fallback}
}

func defaultFallback(server.Ctx) *vdom.VNode {
	return vdom.Text(FallbackText)
}

// All returns the routes in declaration order.
func (t *Routes) All() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Match is the result of resolving a path.
type Match struct {
	Route  *Route
	Index  int
	Path   string
	Params map[string]string
}

// Match resolves path against the table. The first route in declaration
// order that matches wins. A path that cannot be cleaned is matched on its
// raw segments, so a wildcard route still catches it.
func (t *Routes) Match(path string) (*Match, bool) {
	clean, err := CleanPath(path)
	var segs []string
	if err == nil {
		segs, err = splitPath(clean)
	}
	if err != nil {
		clean = path
		segs = rawSegments(path)
	}
	for i := range t.routes {
		if params, ok := matchSegments(effective(t.routes[i].Segments), segs); ok {
			return &Match{Route: &t.routes[i], Index: i, Path: clean, Params: params}, true
		}
	}
	return nil, false
}

func matchSegments(pattern []Segment, path []string) (map[string]string, bool) {
	params := make(map[string]string)
	for i, seg := range pattern {
		switch seg.Kind {
		case SegmentWildcard:
			params[seg.Value] = strings.Join(path[i:], "/")
			return params, true
		case SegmentParam:
			if i >= len(path) {
				return nil, false
			}
			params[seg.Value] = path[i]
		default:
			if i >= len(path) || path[i] != seg.Value {
				return nil, false
			}
		}
	}
	if len(pattern) != len(path) {
		return nil, false
	}
	return params, true
}

// Validate reports every route that can never match because an earlier
// route matches all of its paths.
func (t *Routes) Validate() error {
	var errs []error
	for j := range t.routes {
		for i := 0; i < j; i++ {
			if covers(effective(t.routes[i].Segments), effective(t.routes[j].Segments)) {
				errs = append(errs, fmt.Errorf("%w: %s (route %d) by %s (route %d)",
					ErrShadowedRoute, t.routes[j].Pattern(), j, t.routes[i].Pattern(), i))
				break
			}
		}
	}
	return errors.Join(errs...)
}

// covers reports whether every path matched by b is matched by a.
func covers(a, b []Segment) bool {
	for k := 0; ; k++ {
		switch {
		case k < len(a) && a[k].Kind == SegmentWildcard:
			return true
		case k == len(a):
			return k == len(b)
		case k == len(b):
			return false
		case b[k].Kind == SegmentWildcard:
			return false
		case a[k].Kind == SegmentParam:
			// A param matches any single segment b can produce.
		case b[k].Kind != SegmentStatic || b[k].Value != a[k].Value:
			return false
		}
	}
}
