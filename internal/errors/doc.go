// Package errors provides coded, actionable error messages.
//
// Each error carries a code (e.g., "E001") that maps to a registered
// template with a category, a short message and a longer explanation.
// Callers add a suggestion or wrap the underlying cause:
//
//	err := errors.New("E003").
//	    WithDetail("server.address is empty").
//	    WithSuggestion("Set server.address in homepage.yaml or HOMEPAGE_ADDR.").
//	    Wrap(cause)
//
// Format renders the error for a terminal. Print picks colored or plain
// output depending on whether the destination is a terminal.
//
// # Error Codes
//
//   - E001: head metadata context provided twice for one render tree
//   - E002: route shadowed by an earlier route
//   - E003: invalid configuration
//   - E004: asset not found
//   - E005: server failed to listen
package errors
