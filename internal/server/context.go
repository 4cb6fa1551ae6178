package server

import (
	"context"
	"sync"

	"github.com/rvaidya/meetingmate/internal/assistant"
	"github.com/rvaidya/meetingmate/internal/session"
	"github.com/rvaidya/meetingmate/internal/tools"
)

// ServerContext holds the shared state behind the chat server: the
// orchestrator, the conversation store, and the tool registry.
type ServerContext struct {
	ctx          context.Context
	cancel       context.CancelFunc
	orchestrator *assistant.Orchestrator
	sessions     *session.Manager
	registry     *tools.Registry
	mu           sync.RWMutex
	shutdown     bool
}

// NewServerContext creates a new server context.
func NewServerContext(ctx context.Context, orch *assistant.Orchestrator, sessions *session.Manager, registry *tools.Registry) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:          shutdownCtx,
		cancel:       cancel,
		orchestrator: orch,
		sessions:     sessions,
		registry:     registry,
	}
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Orchestrator returns the conversation orchestrator.
func (sc *ServerContext) Orchestrator() *assistant.Orchestrator {
	return sc.orchestrator
}

// Sessions returns the conversation session store.
func (sc *ServerContext) Sessions() *session.Manager {
	return sc.sessions
}

// Registry returns the tool registry.
func (sc *ServerContext) Registry() *tools.Registry {
	return sc.registry
}

// IsShutdown returns whether the server has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context and closes the session store.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	if sc.sessions != nil {
		sc.sessions.Close()
	}
	return nil
}
