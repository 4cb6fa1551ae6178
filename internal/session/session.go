package session

import (
	"sync"
	"time"
)

// Session is one conversation's append-only message log. All methods are
// safe for concurrent use; the write lock serializes concurrent chat
// requests that target the same conversation.
type Session struct {
	id string

	mu         sync.Mutex
	messages   []Message
	lastAccess time.Time
	now        func() time.Time
}

func newSession(id string, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{
		id:         id,
		messages:   make([]Message, 0, 16),
		lastAccess: now(),
		now:        now,
	}
}

// ID returns the stable identifier for the session.
func (s *Session) ID() string {
	return s.id
}

// Append adds a message to the transcript.
func (s *Session) Append(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg.ToolCalls = cloneToolCalls(msg.ToolCalls)
	s.messages = append(s.messages, msg)
	s.lastAccess = s.now()
}

// Messages returns a snapshot of the transcript in chronological order.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = s.now()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	for i := range out {
		out[i].ToolCalls = cloneToolCalls(out[i].ToolCalls)
	}
	return out
}

// Len returns the number of messages in the transcript.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Lock acquires the session's conversation lock, serializing whole chat
// turns rather than individual appends. Unlock releases it.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the conversation lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// AppendLocked adds a message while the caller holds the conversation lock.
func (s *Session) AppendLocked(msg Message) {
	msg.ToolCalls = cloneToolCalls(msg.ToolCalls)
	s.messages = append(s.messages, msg)
	s.lastAccess = s.now()
}

// MessagesLocked snapshots the transcript while the caller holds the
// conversation lock.
func (s *Session) MessagesLocked() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	for i := range out {
		out[i].ToolCalls = cloneToolCalls(out[i].ToolCalls)
	}
	return out
}

func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess.Before(cutoff)
}
