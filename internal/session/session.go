package session

import (
	"sync"

	"github.com/makaziyangu/makazi-backend/internal/gateway"
	"github.com/makaziyangu/makazi-backend/internal/user"
)

// Session holds the authenticated identity and its profile document for one
// signed-in user.
type Session struct {
	Account gateway.Account
	Profile user.Profile
}

// Store is the session context: the only cross-request mutable shared state.
// It is written by auth operations and by the landlord-registration merge,
// nothing else. It subscribes to the user service's auth-state changes at
// startup (see cmd/app).
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Session // uid -> session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]Session)}
}

// Current returns the active session for uid, if any.
func (s *Store) Current(uid string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[uid]
	return sess, ok
}

// SignedIn implements user.AuthListener.
func (s *Store) SignedIn(acc gateway.Account, p user.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[acc.UID] = Session{Account: acc, Profile: p}
}

// SignedOut implements user.AuthListener.
func (s *Store) SignedOut(uid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, uid)
}

// ProfileMerged implements user.AuthListener. It mirrors the landlord
// registration merge into the active session, when one exists.
func (s *Store) ProfileMerged(uid string, p user.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[uid]
	if !ok {
		return
	}
	sess.Profile = p
	s.sessions[uid] = sess
}
