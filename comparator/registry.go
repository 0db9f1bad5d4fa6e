package comparator

import (
	"sync"
	"time"
)

// DefaultIdleTTL is how long an untouched session survives in a Registry.
const DefaultIdleTTL = 30 * time.Minute

type registryEntry struct {
	session  *Session
	lastSeen time.Time
}

// Registry keeps one Session per user. Sessions not requested within the
// idle TTL are evicted lazily on the next call to For.
type Registry struct {
	catalog Catalog
	now     func() time.Time
	idleTTL time.Duration

	mu       sync.Mutex
	sessions map[string]*registryEntry
}

// NewRegistry builds a registry whose sessions read from catalog.
func NewRegistry(catalog Catalog) *Registry {
	return &Registry{
		catalog:  catalog,
		now:      time.Now,
		idleTTL:  DefaultIdleTTL,
		sessions: make(map[string]*registryEntry),
	}
}

// WithClock sets the clock used for eviction and handed to new sessions.
func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.now = now
	return r
}

// WithIdleTTL overrides DefaultIdleTTL. A non-positive ttl disables eviction.
func (r *Registry) WithIdleTTL(ttl time.Duration) *Registry {
	r.idleTTL = ttl
	return r
}

// For returns the session of userID, creating it on first use.
func (r *Registry) For(userID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.evictIdle(now)

	if e, ok := r.sessions[userID]; ok {
		e.lastSeen = now
		return e.session
	}
	s := NewSession(r.catalog).WithClock(r.now)
	r.sessions[userID] = &registryEntry{session: s, lastSeen: now}
	return s
}

// Drop forgets the session of userID.
func (r *Registry) Drop(userID string) {
	r.mu.Lock()
	delete(r.sessions, userID)
	r.mu.Unlock()
}

// Len reports how many sessions are held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// evictIdle must be called with r.mu held.
func (r *Registry) evictIdle(now time.Time) {
	if r.idleTTL <= 0 {
		return
	}
	for id, e := range r.sessions {
		if now.Sub(e.lastSeen) > r.idleTTL {
			delete(r.sessions, id)
		}
	}
}
