// Package server runs the application on both sides of the wire: it renders
// full HTML documents for HTTP requests and keeps one live session per
// WebSocket connection that re-renders after client events.
//
// # Rendering Contexts
//
// Every render receives a Ctx. During the initial HTTP render the Ctx carries
// a ResponseOptions handle that components may use to change the response
// status. Live sessions never carry one: there is no HTTP response to change
// after the document has been delivered.
//
// # Session Lifecycle
//
// A live session mounts the root once, assigns hydration IDs in the same
// order as the HTTP render, and then runs three goroutines:
//
//   - ReadLoop: decodes client messages and queues events
//   - EventLoop: runs handlers and navigation one at a time, then re-renders
//   - WriteLoop: sends heartbeat pings
//
// Re-rendering expands the mounted tree again, diffs it against the previous
// one and sends the resulting patches in a single message.
//
// # Example Usage
//
//	srv := server.New(server.DefaultServerConfig(), app.App)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
//   - Session.mu serializes WebSocket writes
//   - The events channel serializes handler execution per session
//   - SessionManager uses an RWMutex for the session map
package server
