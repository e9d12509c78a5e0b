package intake

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned by repository lookups for unknown ids.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository stores live editable sessions. Mutate applies fn to the
// session under the store's lock so a mode transition and its dependent
// cleanup are observed atomically.
type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Mutate(ctx context.Context, id uuid.UUID, fn func(*Session) error) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
