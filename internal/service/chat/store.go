package chat

import (
	"sync"

	chatmodel "github.com/manasmitra/backend/internal/model/chat"
)

// SessionStore keeps per-session conversation history in memory, keyed by
// the caller-supplied session identifier. Sessions live for the lifetime of
// the process and are never evicted; unbounded growth is an accepted MVP
// tradeoff.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string][]chatmodel.Turn
}

// NewSessionStore bootstraps an empty in-memory store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string][]chatmodel.Turn)}
}

// Append records a turn, creating the session on first reference. It never
// fails; consecutive turns from the same role are permitted.
func (s *SessionStore) Append(sessionID string, role chatmodel.Role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], chatmodel.Turn{Role: role, Content: content})
}

// RecentContext returns up to the last n turns in chronological order. An
// unseen session yields an empty slice rather than an error.
func (s *SessionStore) RecentContext(sessionID string, n int) []chatmodel.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.sessions[sessionID]
	if n <= 0 {
		return []chatmodel.Turn{}
	}

	start := 0
	if len(turns) > n {
		start = len(turns) - n
	}

	copied := make([]chatmodel.Turn, len(turns)-start)
	copy(copied, turns[start:])
	return copied
}
