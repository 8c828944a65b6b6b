// Package app is the homepage application: the root composer with its head
// resources, the route table, and the pages.
package app

import (
	apperrors "github.com/vango-dev/homepage/internal/errors"
	"github.com/vango-dev/homepage/pkg/meta"
	"github.com/vango-dev/homepage/pkg/router"
	"github.com/vango-dev/homepage/pkg/server"
	"github.com/vango-dev/homepage/pkg/vdom"
)

// Head resources.
const (
	Title = "ようこそ"

	// StylesheetID marks the stylesheet the development watcher reloads.
	StylesheetID   = "leptos"
	StylesheetHref = "/pkg/homepage.css"

	FontsOrigin       = "https://fonts.googleapis.com"
	FontsStaticOrigin = "https://fonts.gstatic.com"
	FontsStylesheet   = "https://fonts.googleapis.com/css2?family=Kaisei+Opti:wght@400;700&family=Roboto:wght@100..900&display=swap"
)

// App is the root composer. It installs the head metadata registry for the
// render tree, declares the document head and mounts the router inside
// <main>. A second call for the same render tree fails with E001.
func App(ctx server.Ctx) (*vdom.VNode, error) {
	head, err := meta.Provide(ctx)
	if err != nil {
		return nil, apperrors.New("E001").
			WithSuggestion("Call app.App once per render tree.").
			Wrap(err)
	}

	head.Stylesheet(StylesheetID, StylesheetHref)
	head.Link(meta.LinkTag{Rel: "preconnect", Href: FontsOrigin})
	head.Link(meta.LinkTag{Rel: "preconnect", Href: FontsStaticOrigin, CrossOrigin: "true"})
	head.Link(meta.LinkTag{Rel: "stylesheet", Href: FontsStylesheet})
	head.Title(Title)

	return vdom.Main(router.Component(ctx, Routes())), nil
}

// Routes returns the route table: the home page at the root and the
// not-found page for everything else.
func Routes() *router.Routes {
	return router.NewRoutes(nil,
		router.NewRoute(HomePage, router.Static("")),
		router.NewRoute(NotFound, router.Wildcard("any")),
	)
}
