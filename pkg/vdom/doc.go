// Package vdom provides the virtual DOM used by the homepage server.
//
// The tree lives on the server. The first render is written out as HTML;
// afterwards, live sessions re-render the same tree, diff it against the
// previous one and ship the resulting patches to the thin client.
//
// # Core Types
//
// VNode is the building block for elements, text, fragments, components and
// raw HTML. Props holds attributes and event handlers. Attr and EventHandler
// are used to build Props.
//
// # Element API
//
// Elements are created with variadic factory functions:
//
//	Main(
//	    H1(Text("ようこそ")),
//	    Button(OnClick(inc), Text("クリックしてみてね"), Textf("%d", n)),
//	)
//
// # Hydration
//
// AssignHIDs walks an expanded tree in pre-order and gives every element a
// hydration ID. SSR and live sessions run the same pass over the same tree,
// so IDs written to HTML line up with the handlers a session looks up.
package vdom
