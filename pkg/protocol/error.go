package protocol

// ErrorCode identifies the type of error reported to the client.
type ErrorCode string

const (
	ErrInvalidMessage  ErrorCode = "invalid_message"
	ErrHandlerNotFound ErrorCode = "handler_not_found"
	ErrHandlerPanic    ErrorCode = "handler_panic"
	ErrRateLimited     ErrorCode = "rate_limited"
	ErrServerError     ErrorCode = "server_error"
)

// Fatal reports whether the client should drop the connection and reload.
func (c ErrorCode) Fatal() bool {
	return c == ErrServerError
}
