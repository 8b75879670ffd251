package handler

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/abs6187/talentscout/internal/engine"
)

// ErrSessionNotFound is returned for unknown session IDs.
var ErrSessionNotFound = fmt.Errorf("session not found")

// managedSession pairs an engine session with the mutex that serializes
// access to it. The engine itself is single-threaded.
type managedSession struct {
	mu   sync.Mutex
	sess *engine.Session
}

// Registry is the in-memory session store. Sessions live for the process
// lifetime; nothing is persisted.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*managedSession
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*managedSession)}
}

// Add registers a session and returns its generated ID.
func (r *Registry) Add(sess *engine.Session) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.sessions[id] = &managedSession{sess: sess}
	r.mu.Unlock()
	return id
}

// With runs fn with exclusive access to the identified session.
func (r *Registry) With(id string, fn func(*engine.Session) error) error {
	r.mu.RLock()
	ms, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	return fn(ms.sess)
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
