package vdom

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "click" becomes "onclick").
func event(name string, handler func()) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// OnClick handles click events.
func OnClick(handler func()) EventHandler { return event("click", handler) }

// OnDblClick handles double-click events.
func OnDblClick(handler func()) EventHandler { return event("dblclick", handler) }

// OnSubmit handles form submit events.
func OnSubmit(handler func()) EventHandler { return event("submit", handler) }

// isEventHandler returns true if the key is an event handler (starts with "on").
// Case-insensitive so ONCLICK or OnLoad never end up rendered as attributes.
func isEventHandler(key string) bool {
	return len(key) > 2 && (key[0] == 'o' || key[0] == 'O') && (key[1] == 'n' || key[1] == 'N')
}

// IsEventKey reports whether a props key holds an event handler.
func IsEventKey(key string) bool {
	return isEventHandler(key)
}
