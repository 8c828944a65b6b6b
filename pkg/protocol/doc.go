// Package protocol defines the messages exchanged between the thin client and
// a live session over a WebSocket connection.
//
// Every message is a single JSON object with a "t" field naming its type:
//
//	server → client: hello, patches, reload-css, error
//	client → server: event, navigate
//
// Events carry the hydration ID of the target element and the DOM event name
// without the "on" prefix ("click"). Patches reference elements the same way.
// Replacement subtrees travel as rendered HTML so the client never needs a
// second rendering path.
package protocol
