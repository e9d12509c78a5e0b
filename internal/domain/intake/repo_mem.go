package intake

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemorySessionRepository is a thread-safe in-memory SessionRepository.
// Sessions live for one intake and are discarded on submission or abandon,
// so nothing here survives a restart.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[uuid.UUID]*Session)}
}

func (r *MemorySessionRepository) Create(_ context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.ID]; ok {
		return fmt.Errorf("session %s already exists", s.ID)
	}
	r.sessions[s.ID] = s
	return nil
}

// Get returns a deep copy so readers never alias the live session.
func (r *MemorySessionRepository) Get(_ context.Context, id uuid.UUID) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	return cloneSession(s), nil
}

func (r *MemorySessionRepository) Mutate(_ context.Context, id uuid.UUID, fn func(*Session) error) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	return cloneSession(s), nil
}

func (r *MemorySessionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	delete(r.sessions, id)
	return nil
}

func cloneSession(s *Session) *Session {
	b, _ := json.Marshal(s)
	var out Session
	_ = json.Unmarshal(b, &out)
	return &out
}
