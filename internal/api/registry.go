package api

import (
	"sync"

	"github.com/google/uuid"

	"github.com/fpang/creator-studio/internal/studio"
)

// Registry holds the live sessions of one process. Sessions are lost on
// restart.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*studio.Session
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*studio.Session)}
}

// Add stores a session under a fresh ID.
func (r *Registry) Add(s *studio.Session) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
	return id
}

// Get returns the session for id.
func (r *Registry) Get(id string) (*studio.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Remove closes and forgets a session.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		s.Close()
	}
	return ok
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
