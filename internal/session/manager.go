package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rvaidya/meetingmate/internal/instrumentation"
)

// DefaultIdleTimeout is how long a session may sit unused before the
// cleanup pass drops it.
const DefaultIdleTimeout = 24 * time.Hour

// Manager owns the live sessions of the process, creating them lazily and
// expiring idle ones in the background.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	idleTimeout   time.Duration
	cleanupTicker *time.Ticker
	cleanupDone   chan struct{}
	logger        *slog.Logger
	metrics       *instrumentation.Metrics
	now           func() time.Time
}

// NewManager creates a session manager with the default idle timeout.
func NewManager(logger *slog.Logger) *Manager {
	return NewManagerWithTimeout(DefaultIdleTimeout, logger)
}

// NewManagerWithTimeout creates a session manager expiring sessions idle
// for longer than timeout.
func NewManagerWithTimeout(timeout time.Duration, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		sessions:      make(map[string]*Session),
		idleTimeout:   timeout,
		cleanupTicker: time.NewTicker(10 * time.Minute),
		cleanupDone:   make(chan struct{}),
		logger:        logger,
		now:           time.Now,
	}

	go m.cleanupExpiredSessions()

	return m
}

// SetMetrics attaches a metrics recorder tracking the active session gauge.
func (m *Manager) SetMetrics(metrics *instrumentation.Metrics) {
	m.metrics = metrics
}

// Get returns the session with the given ID, creating it when id is new.
// An empty id allocates a fresh session with a generated ID.
func (m *Manager) Get(id string) *Session {
	if id == "" {
		id = uuid.NewString()
	}

	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s = newSession(id, m.now)
	m.sessions[id] = s
	if m.metrics != nil {
		m.metrics.IncrementActiveSessions(context.Background())
	}
	m.logger.Debug("session created", "session", id)
	return s
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the background cleanup goroutine.
func (m *Manager) Close() {
	m.cleanupTicker.Stop()
	close(m.cleanupDone)
}

func (m *Manager) cleanupExpiredSessions() {
	for {
		select {
		case <-m.cleanupTicker.C:
			m.removeIdle()
		case <-m.cleanupDone:
			return
		}
	}
}

func (m *Manager) removeIdle() {
	cutoff := m.now().Add(-m.idleTimeout)

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.idleSince(cutoff) {
			delete(m.sessions, id)
			if m.metrics != nil {
				m.metrics.DecrementActiveSessions(context.Background())
			}
			m.logger.Info("session expired", "session", id)
		}
	}
}
