package server

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/vango-dev/homepage/pkg/render"
)

// SessionConfig holds configuration for individual sessions.
type SessionConfig struct {
	// ReadTimeout is the maximum time to wait for a message from the client.
	// Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a message.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// HeartbeatInterval is the time between heartbeat pings.
	// Must be shorter than ReadTimeout. Default: 30 seconds.
	HeartbeatInterval time.Duration

	// MaxMessageSize is the maximum size of an incoming WebSocket message.
	// Default: 64KB.
	MaxMessageSize int64

	// MaxEventQueue is the size of the event channel buffer.
	// Default: 256.
	MaxEventQueue int
}

// DefaultSessionConfig returns a SessionConfig with sensible defaults.
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		MaxMessageSize:    64 * 1024,
		MaxEventQueue:     256,
	}
}

func (c *SessionConfig) fillDefaults() {
	d := DefaultSessionConfig()
	if c.ReadTimeout == 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.HeartbeatInterval == 0 {
		c.HeartbeatInterval = d.HeartbeatInterval
	}
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = d.MaxMessageSize
	}
	if c.MaxEventQueue == 0 {
		c.MaxEventQueue = d.MaxEventQueue
	}
}

// ServerConfig holds configuration for the HTTP/WebSocket server.
type ServerConfig struct {
	// Address is the address to listen on (e.g., ":8080" or "localhost:3000").
	// Default: ":8080".
	Address string

	// HTTP server timeouts.
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 30 seconds.
	ShutdownTimeout time.Duration

	// WebSocket buffer sizes. Default: 4096.
	ReadBufferSize  int
	WriteBufferSize int

	// CheckOrigin is called to validate the WebSocket request origin.
	// Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool

	// SessionConfig is the configuration for individual sessions.
	// Default: DefaultSessionConfig().
	SessionConfig *SessionConfig

	// Render configures HTML output.
	Render render.RendererConfig

	// Lang is the document language. Default: "en".
	Lang string

	// DevMode disables caching of the thin client.
	DevMode bool

	// Logger is the base logger. Default: slog.Default().
	Logger *slog.Logger
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:           ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ShutdownTimeout:   30 * time.Second,
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		CheckOrigin:       SameOriginCheck,
		SessionConfig:     DefaultSessionConfig(),
		Lang:              "en",
	}
}

// fillDefaults fills in defaults for any unset fields.
func (c *ServerConfig) fillDefaults() {
	d := DefaultServerConfig()
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = d.IdleTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.ReadBufferSize == 0 {
		c.ReadBufferSize = d.ReadBufferSize
	}
	if c.WriteBufferSize == 0 {
		c.WriteBufferSize = d.WriteBufferSize
	}
	if c.CheckOrigin == nil {
		c.CheckOrigin = d.CheckOrigin
	}
	if c.SessionConfig == nil {
		c.SessionConfig = d.SessionConfig
	}
	c.SessionConfig.fillDefaults()
	if c.Lang == "" {
		c.Lang = d.Lang
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// SameOriginCheck validates that the WebSocket request origin matches the host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// No Origin header (same-origin request or a non-browser client)
		return true
	}
	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if r.Host == "" {
		return false
	}
	return originURL.Host == r.Host
}
