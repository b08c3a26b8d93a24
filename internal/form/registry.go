package form

import (
	"sync"
	"time"
)

// Registry tracks open form sessions by id. Sessions are page-scoped:
// created on open, discarded when the page closes, and expired lazily
// after the idle TTL so abandoned pages do not accumulate.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	ttl      time.Duration
}

type entry struct {
	session  *Session
	lastSeen time.Time
}

// NewRegistry creates a session registry with the given idle TTL.
func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Registry{
		sessions: make(map[string]*entry),
		ttl:      ttl,
	}
}

// Put registers a session.
func (r *Registry) Put(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = &entry{session: s, lastSeen: time.Now()}
	r.sweepLocked()
}

// Get returns an open session and refreshes its idle timer.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	if time.Since(e.lastSeen) > r.ttl {
		delete(r.sessions, id)
		return nil, false
	}
	e.lastSeen = time.Now()
	return e.session, true
}

// Delete discards a session.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Clear discards all sessions. The registry is shared by every signed-in
// user, so this is a full wipe rather than a per-user logout hook.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = make(map[string]*entry)
}

// Count returns the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// sweepLocked drops expired sessions. Caller holds the write lock.
func (r *Registry) sweepLocked() {
	now := time.Now()
	for id, e := range r.sessions {
		if now.Sub(e.lastSeen) > r.ttl {
			delete(r.sessions, id)
		}
	}
}
