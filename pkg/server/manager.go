package server

import (
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
)

// SessionManager tracks all live sessions.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	totalCreated atomic.Uint64
	totalClosed  atomic.Uint64

	logger *slog.Logger
}

// NewSessionManager creates an empty manager.
func NewSessionManager(logger *slog.Logger) *SessionManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionManager{
		sessions: make(map[string]*Session),
		logger:   logger.With("component", "sessions"),
	}
}

// Add registers a session.
func (m *SessionManager) Add(s *Session) {
	m.mu.Lock()
	m.sessions[s.ID] = s
	count := len(m.sessions)
	m.mu.Unlock()

	m.totalCreated.Add(1)
	m.logger.Debug("session added", "session_id", s.ID, "active", count)
}

// Remove unregisters a session. It does not close it.
func (m *SessionManager) Remove(s *Session) {
	m.mu.Lock()
	_, ok := m.sessions[s.ID]
	delete(m.sessions, s.ID)
	m.mu.Unlock()

	if ok {
		m.totalClosed.Add(1)
	}
}

// Get returns the session with the given ID, or nil.
func (m *SessionManager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Count returns the number of live sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Snapshot returns the live sessions ordered by creation time.
func (m *SessionManager) Snapshot() []*Session {
	m.mu.RLock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// BroadcastCSSReload asks every live session to re-fetch the stylesheet at
// href. It returns the number of sessions reached.
func (m *SessionManager) BroadcastCSSReload(href string) int {
	sent := 0
	for _, s := range m.Snapshot() {
		if err := s.SendReloadCSS(href); err != nil {
			m.logger.Debug("css reload not sent", "session_id", s.ID, "error", err)
			continue
		}
		sent++
	}
	return sent
}

// Stats returns lifetime counters.
func (m *SessionManager) Stats() (active int, created, closed uint64) {
	return m.Count(), m.totalCreated.Load(), m.totalClosed.Load()
}

// Shutdown closes every live session.
func (m *SessionManager) Shutdown() {
	for _, s := range m.Snapshot() {
		s.Close()
	}
}
