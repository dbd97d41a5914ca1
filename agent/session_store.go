package agent

import (
	"sync"

	"github.com/google/uuid"

	"github.com/tripwise-project/tripwise-agent/types"
)

// SessionStore keeps live sessions in memory, keyed by UUID.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Create starts a fresh session and returns it.
func (st *SessionStore) Create() *Session {
	s := &Session{
		ID:      uuid.NewString(),
		State:   types.NewTripState(),
		Pending: PendingNone{},
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the session for an ID, or nil.
func (st *SessionStore) Get(id string) *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[id]
}

// GetOrCreate returns the session for an ID, creating one when the ID
// is unknown or empty.
func (st *SessionStore) GetOrCreate(id string) *Session {
	if id != "" {
		if s := st.Get(id); s != nil {
			return s
		}
	}
	return st.Create()
}

// Delete removes a session.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len reports the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
