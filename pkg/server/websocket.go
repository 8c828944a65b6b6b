package server

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/vango-dev/homepage/pkg/protocol"
)

// ReadLoop continuously reads messages from the WebSocket connection and
// queues events. It blocks until the connection is closed or an error occurs.
func (s *Session) ReadLoop() {
	defer s.Close()

	s.conn.SetReadLimit(s.config.MaxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	s.conn.SetPongHandler(func(string) error {
		s.touch()
		return s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		s.touch()
		s.bytesRecv.Add(uint64(len(data)))
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		msg, err := protocol.Decode(data)
		if err != nil {
			s.logger.Warn("message decode error", "error", err)
			s.sendError(protocol.ErrInvalidMessage, err.Error())
			continue
		}
		s.handleMessage(msg)
	}
}

func (s *Session) handleMessage(msg *protocol.Message) {
	var event *Event
	switch msg.Type {
	case protocol.TypeEvent:
		event = &Event{Seq: msg.Seq, Kind: EventDOM, HID: msg.HID, Name: msg.Event}
	case protocol.TypeNavigate:
		if msg.Path[0] != '/' {
			s.sendError(protocol.ErrInvalidMessage, "navigate path must be absolute")
			return
		}
		event = &Event{Seq: msg.Seq, Kind: EventNavigate, Path: msg.Path}
	default:
		s.sendError(protocol.ErrInvalidMessage, "unexpected message type "+string(msg.Type))
		return
	}

	if err := s.QueueEvent(event); err == ErrEventQueueFull {
		s.sendError(protocol.ErrRateLimited, "event queue full")
	}
}

// EventLoop processes queued events and render signals one at a time.
// It runs until the session is closed, then disposes the session owner.
func (s *Session) EventLoop() {
	defer s.owner.Dispose()
	for {
		select {
		case event := <-s.events:
			s.handleEvent(event)

		case <-s.renderCh:
			s.renderDirty()

		case <-s.done:
			return
		}
	}
}

// WriteLoop sends heartbeat pings until the session is closed.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.sendPing(); err != nil {
				s.logger.Debug("ping failed", "error", err)
				s.Close()
				return
			}

		case <-s.done:
			return
		}
	}
}

// Start starts all session loops. Call it after Mount. It does nothing once
// the session is closed.
func (s *Session) Start() {
	if !s.markRunning() {
		return
	}
	go s.ReadLoop()
	go s.WriteLoop()
	go s.EventLoop()
}

// markRunning hands owner disposal to the event loop. It fails once the
// session is closed.
func (s *Session) markRunning() bool {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()
	if s.closed.Load() {
		return false
	}
	s.running = true
	return true
}

// write encodes and sends one message.
func (s *Session) write(msg *protocol.Message) error {
	data, err := protocol.Encode(msg)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return ErrSessionClosed
	}
	if s.conn == nil {
		return ErrNoConnection
	}

	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}
	s.bytesSent.Add(uint64(len(data)))
	return nil
}

// sendError sends an error message to the client.
func (s *Session) sendError(code protocol.ErrorCode, message string) {
	if err := s.write(protocol.NewError(code, message)); err != nil && err != ErrNoConnection {
		s.logger.Debug("error message not sent", "code", code, "error", err)
	}
}

func (s *Session) sendPing() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return ErrSessionClosed
	}
	if s.conn == nil {
		return ErrNoConnection
	}
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.config.WriteTimeout))
}

// SendReloadCSS asks the client to re-fetch the stylesheet at href.
func (s *Session) SendReloadCSS(href string) error {
	return s.write(protocol.NewReloadCSS(href))
}

// sendHello tells the client the session is mounted.
func (s *Session) sendHello() error {
	return s.write(protocol.NewHello(s.ID))
}
