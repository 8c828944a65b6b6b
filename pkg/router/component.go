package router

import (
	"github.com/vango-dev/homepage/pkg/reactive"
	"github.com/vango-dev/homepage/pkg/server"
	"github.com/vango-dev/homepage/pkg/vdom"
)

type paramsKey struct{}

// Params returns the captures of the route the current page was mounted for.
func Params(ctx server.Ctx) map[string]string {
	params, _ := ctx.Value(paramsKey{}).(map[string]string)
	return params
}

// outlet holds the mounted page for one Router component.
type outlet struct {
	ctx    server.Ctx
	routes *Routes

	mounted bool
	path    string
	owner   *reactive.Owner
	view    *vdom.VNode
}

// Component returns the router view for ctx. Each render resolves
// ctx.Path(); when the path differs from the mounted one the current page is
// unmounted and the matching page, or the fallback, is mounted in its place.
func Component(ctx server.Ctx, routes *Routes) *vdom.VNode {
	o := &outlet{ctx: ctx, routes: routes}
	ctx.Owner().OnCleanup(o.unmount)
	return vdom.ComponentNode(o)
}

// Render implements vdom.Component.
func (o *outlet) Render() *vdom.VNode {
	path := o.ctx.Path()
	if o.mounted && path == o.path {
		return o.view
	}
	o.unmount()

	o.owner = o.ctx.Owner().NewChild()
	pageCtx := o.ctx.WithOwner(o.owner)

	page := o.routes.fallback
	params := map[string]string{}
	if m, ok := o.routes.Match(path); ok {
		page = m.Route.Page
		params = m.Params
	}
	pageCtx.SetValue(paramsKey{}, params)

	o.view = page(pageCtx)
	o.path = path
	o.mounted = true
	o.ctx.Logger().Debug("page mounted", "path", path)
	return o.view
}

func (o *outlet) unmount() {
	if o.owner != nil {
		o.owner.Dispose()
		o.owner = nil
	}
	o.view = nil
	o.mounted = false
}
