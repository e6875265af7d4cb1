package session

import (
	"sync"

	"icoffee-admin/internal/rbac"
)

// UserIdentity is the authenticated account attached to a session.
type UserIdentity struct {
	ID      int64        `json:"id"`
	Name    string       `json:"name"`
	Email   string       `json:"email"`
	Role    rbac.Role    `json:"role"`
	SubRole rbac.SubRole `json:"sub_role"`
}

// Session holds the token pair and identity for one signed-in client.
type Session struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserIdentity `json:"user"`
}

// EventType identifies a session store change notification.
type EventType string

const (
	EventSet     EventType = "set"
	EventCleared EventType = "cleared"
)

// Event is published to subscribers whenever session data changes.
// It is the explicit replacement for relying on ambient storage-change
// notifications: the store is the single publisher, guards subscribe.
type Event struct {
	Type  EventType
	Token string
	User  UserIdentity
}

// TokenVerifier checks that an access token is well formed and not expired.
type TokenVerifier interface {
	Verify(token string) error
}

// Store is the single writer for session state. All reads go through
// accessors; no other component mutates sessions directly.
type Store struct {
	mu        sync.RWMutex
	sessions  map[string]Session // keyed by access token
	byRefresh map[string]string  // refresh token -> access token
	subs      map[int]chan Event
	nextSubID int
	verifier  TokenVerifier
}

// NewStore creates an empty session store. The verifier decides token
// validity; a nil verifier treats every stored token as valid.
func NewStore(verifier TokenVerifier) *Store {
	return &Store{
		sessions:  make(map[string]Session),
		byRefresh: make(map[string]string),
		subs:      make(map[int]chan Event),
		verifier:  verifier,
	}
}

// GetCurrentUser returns the identity stored for the token, or nil if
// no session exists. Fails soft, never panics.
func (s *Store) GetCurrentUser(token string) *UserIdentity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil
	}
	user := sess.User
	return &user
}

// IsTokenValid reports whether the token belongs to a stored session
// and passes verification. Missing, malformed, and expired tokens all
// report false.
func (s *Store) IsTokenValid(token string) bool {
	if token == "" {
		return false
	}

	s.mu.RLock()
	_, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return false
	}

	if s.verifier != nil {
		if err := s.verifier.Verify(token); err != nil {
			return false
		}
	}
	return true
}

// SetAuthData stores the token pair and identity as one unit. A failed
// login never reaches this point, so there is no partial-write recovery.
func (s *Store) SetAuthData(token, refreshToken string, user UserIdentity) {
	s.mu.Lock()
	s.sessions[token] = Session{
		Token:        token,
		RefreshToken: refreshToken,
		User:         user,
	}
	if refreshToken != "" {
		s.byRefresh[refreshToken] = token
	}
	s.mu.Unlock()

	s.publish(Event{Type: EventSet, Token: token, User: user})
}

// ClearAuthData removes the session for the token. Idempotent: clearing
// an absent session is a no-op and publishes nothing.
func (s *Store) ClearAuthData(token string) {
	s.mu.Lock()
	sess, ok := s.sessions[token]
	if ok {
		delete(s.sessions, token)
		if sess.RefreshToken != "" {
			delete(s.byRefresh, sess.RefreshToken)
		}
	}
	s.mu.Unlock()

	if ok {
		s.publish(Event{Type: EventCleared, Token: token, User: sess.User})
	}
}

// FindByRefresh looks up the session owning a refresh token.
func (s *Store) FindByRefresh(refreshToken string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok := s.byRefresh[refreshToken]
	if !ok {
		return Session{}, false
	}
	sess, ok := s.sessions[token]
	return sess, ok
}

// Subscribe registers a listener for session change events. The caller
// must Unsubscribe when done; events are dropped if the channel is full
// rather than blocking the writer.
func (s *Store) Subscribe() (int, <-chan Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan Event, 8)
	s.subs[id] = ch
	return id, ch
}

// Unsubscribe removes a listener and closes its channel.
func (s *Store) Unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ch, ok := s.subs[id]; ok {
		delete(s.subs, id)
		close(ch)
	}
}

func (s *Store) publish(event Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ch := range s.subs {
		select {
		case ch <- event:
		default:
			// Slow subscriber; drop rather than block the store.
		}
	}
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
