package core

import (
	"sync"

	"github.com/google/uuid"
	"google.golang.org/genai"
)

// Session holds the conversation history and the shared state bag for one
// user conversation.
type Session struct {
	ID      string
	UserID  string
	State   State
	History []*genai.Content
	Usage   Stats
}

// Stats accumulates token usage across the turns of a session.
type Stats struct {
	InputTokenCount  int32 `json:"input_token_count,omitempty"`
	OutputTokenCount int32 `json:"output_token_count,omitempty"`
	TotalTokenCount  int32 `json:"total_token_count,omitempty"`
}

func (s *Stats) Add(other Stats) {
	s.InputTokenCount += other.InputTokenCount
	s.OutputTokenCount += other.OutputTokenCount
	s.TotalTokenCount += other.TotalTokenCount
}

func NewSession(userID string) *Session {
	return &Session{
		ID:     uuid.NewString(),
		UserID: userID,
		State:  NewState(),
	}
}

// SessionStore is an in-memory session registry. The store itself is safe
// for concurrent handlers; individual sessions are driven one turn at a
// time.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	return s, ok
}

// GetOrCreate returns the session with the given id, creating it when the
// id is empty or unknown.
func (st *SessionStore) GetOrCreate(userID, id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	if id != "" {
		if s, ok := st.sessions[id]; ok {
			return s
		}
	}
	s := NewSession(userID)
	if id != "" {
		s.ID = id
	}
	st.sessions[s.ID] = s
	return s
}

func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}
