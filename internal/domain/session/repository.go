package session

import (
	"context"
	"time"
)

// Repository defines interface for session storage
type Repository interface {
	// Get retrieves a session by ID
	Get(ctx context.Context, id string) (*Session, error)

	// Save stores a session with TTL
	Save(ctx context.Context, session *Session, ttl time.Duration) error

	// Delete removes a session
	Delete(ctx context.Context, id string) error
}
