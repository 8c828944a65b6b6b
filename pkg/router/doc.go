// Package router resolves URL paths against an ordered route table and
// mounts the matching page.
//
// Routes are tried in declaration order and the first match wins. A route
// built from Static("") matches only the root path. Wildcard segments match
// the rest of the path, including nothing. When no route matches, the
// table's fallback renders instead.
//
//	routes := router.NewRoutes(nil,
//	    router.NewRoute(HomePage, router.Static("")),
//	    router.NewRoute(NotFound, router.Wildcard("any")),
//	)
//	main := vdom.Main(router.Component(ctx, routes))
//
// The Router component keeps one page instance mounted at a time. A page is
// mounted with its own reactive owner; navigating to another path disposes
// that owner, which drops every subscription the page made.
package router
