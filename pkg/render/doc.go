// Package render turns vdom trees into HTML.
//
// Renderer writes a single tree; RenderPage wraps a body tree in a complete
// document with the collected head tags and the thin client script. Elements
// carrying a hydration ID are written with a data-hid attribute, and elements
// with event handlers get a data-on-<event> marker the thin client binds to.
//
//	r := render.NewRenderer(render.RendererConfig{})
//	err := r.RenderPage(w, render.PageData{
//	    Lang: "ja",
//	    Head: metaCtx.Nodes(),
//	    Body: body,
//	})
package render
