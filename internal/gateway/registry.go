package gateway

import "sync"

// Registry is the live session set. Membership is the sole source of truth
// for which peers are reachable: a session is present exactly while its
// transport is open and not yet evicted. The set is keyed by session
// identity, not principal, since one user may hold several sessions.
type Registry struct {
	mu       sync.RWMutex
	sessions map[*Session]struct{}
}

// NewRegistry creates an empty session set.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[*Session]struct{})}
}

// Add registers a freshly authenticated session.
func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	r.sessions[s] = struct{}{}
	r.mu.Unlock()
}

// Remove drops a session from the set. Removing an absent session is a
// no-op.
func (r *Registry) Remove(s *Session) {
	r.mu.Lock()
	delete(r.sessions, s)
	r.mu.Unlock()
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Snapshot returns the current members. Iteration happens outside the lock
// so a slow peer cannot block registration.
func (r *Registry) Snapshot() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sessions := make([]*Session, 0, len(r.sessions))
	for s := range r.sessions {
		sessions = append(sessions, s)
	}
	return sessions
}

// CloseAll force-closes every live session and empties the set. Used during
// shutdown; does not wait for close acknowledgments.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.sessions = make(map[*Session]struct{})
	r.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
