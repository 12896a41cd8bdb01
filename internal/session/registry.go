package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type registryEntry struct {
	session  *Session
	lastSeen time.Time
}

// Registry tracks live sessions by id. Sessions idle longer than the TTL are
// reclaimed by the janitor; their in-memory history goes with them, which is
// the expected end of a session's lifetime.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*registryEntry
	ttl      time.Duration
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*registryEntry),
		ttl:      ttl,
	}
}

// Add registers a session and returns its generated id.
func (r *Registry) Add(s *Session) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.sessions[id] = &registryEntry{session: s, lastSeen: time.Now()}
	r.mu.Unlock()
	return id
}

// Get returns the session with the given id and refreshes its idle timer.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	entry.lastSeen = time.Now()
	return entry.session, true
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// EvictIdle removes sessions idle longer than the TTL and reports how many
// were reclaimed. A TTL of zero disables eviction.
func (r *Registry) EvictIdle(now time.Time) int {
	if r.ttl <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := now.Add(-r.ttl)
	evicted := 0
	for id, entry := range r.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}
