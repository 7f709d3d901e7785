// Package session keeps one dispatcher per connected browser.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"maxim-atlas/backend/internal/constants"
	"maxim-atlas/backend/internal/dispatch"
	"maxim-atlas/backend/internal/graph"
	apperrors "maxim-atlas/backend/pkg/errors"
)

// Session is one client's view state. Dispatch is serialised per session, so
// REST calls and a websocket loop may share it.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	dispatcher *dispatch.Dispatcher
	lastActive time.Time
}

// Dispatch implements dispatch.Handler
func (s *Session) Dispatch(ev dispatch.Event) (dispatch.Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = time.Now()
	u, err := s.dispatcher.Dispatch(ev)
	if err != nil {
		return dispatch.Update{}, err
	}
	u.Session = s.ID
	return u, nil
}

// Snapshot returns the session's current state
func (s *Session) Snapshot() (dispatch.Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.dispatcher.Snapshot()
	if err != nil {
		return dispatch.Update{}, err
	}
	u.Session = s.ID
	return u, nil
}

// Touch marks the session as in use
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}

// LastActive returns when the session last handled an event
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Manager owns every live session and expires idle ones
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	timeout  time.Duration
	logger   *zap.Logger
}

// NewManager creates a manager. Sessions idle longer than timeout are removed
// by Run.
func NewManager(timeout time.Duration, logger *zap.Logger) *Manager {
	if timeout <= 0 {
		timeout = constants.DefaultSessionTimeout
	}
	return &Manager{
		sessions: make(map[string]*Session),
		timeout:  timeout,
		logger:   logger,
	}
}

// Create starts a session over store
func (m *Manager) Create(store *graph.Store) *Session {
	now := time.Now()
	s := &Session{
		ID:         uuid.New().String(),
		CreatedAt:  now,
		dispatcher: dispatch.NewForStore(store, m.logger),
		lastActive: now,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	count := len(m.sessions)
	m.mu.Unlock()

	m.logger.Info("Session created",
		zap.String("session_id", s.ID),
		zap.Int("active_sessions", count),
	)
	return s
}

// Get returns a session by id
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, apperrors.NewSessionNotFound(id)
	}
	return s, nil
}

// Delete removes a session. It reports whether the session existed.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		m.logger.Info("Session deleted", zap.String("session_id", id))
	}
	return ok
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Expire removes sessions idle since before now minus the timeout and
// returns their ids.
func (m *Manager) Expire(now time.Time) []string {
	cutoff := now.Add(-m.timeout)

	m.mu.Lock()
	var expired []string
	for id, s := range m.sessions {
		if s.LastActive().Before(cutoff) {
			expired = append(expired, id)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, id := range expired {
		m.logger.Info("Session expired", zap.String("session_id", id))
	}
	return expired
}

// Run expires idle sessions every interval until ctx is cancelled
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = constants.SessionCleanupInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			m.Expire(now)
		}
	}
}
