package document

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store holds all live sessions for the process. It is the single owner of
// Session records; callers re-fetch by id instead of holding references
// across requests.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore builds an empty in-memory session store. Sessions expire ttl
// after creation; expiry is enforced by Sweep and lazily on Get.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create registers a new session for the given placeholders and original
// container bytes, returning the stored record. The file snapshot is copied
// so later caller mutations cannot reach the stored session.
func (s *Store) Create(placeholders []Placeholder, originalFile []byte) *Session {
	now := s.now().UTC()
	session := &Session{
		ID:           fmt.Sprintf("session_%s", uuid.NewString()),
		Placeholders: placeholders,
		Answers:      make(map[string]string, len(placeholders)),
		OriginalFile: append([]byte(nil), originalFile...),
		CreatedAt:    now,
		ExpiresAt:    now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session
}

// Get retrieves a live session by identifier. Expired sessions are treated
// as absent.
func (s *Store) Get(sessionID string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	if s.now().UTC().After(session.ExpiresAt) {
		return nil, false
	}
	return session, true
}

// Delete removes a session. Deleting an unknown id is a no-op.
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}

// Len reports the number of stored sessions, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops every session whose expiry precedes now and reports how many
// were removed. Intended to be driven by a ticker from main.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if now.UTC().After(session.ExpiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
