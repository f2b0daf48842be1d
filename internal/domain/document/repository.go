package document

import (
	"context"
	"time"
)

// Repository defines interface for the per-session document cache
type Repository interface {
	// Get retrieves the current document for a session
	Get(ctx context.Context, sessionID string) (*Document, error)

	// Save stores a document with TTL
	Save(ctx context.Context, doc *Document, ttl time.Duration) error

	// Delete removes a session's document
	Delete(ctx context.Context, sessionID string) error
}
