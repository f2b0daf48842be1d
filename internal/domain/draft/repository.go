package draft

import (
	"context"
	"time"
)

// Repository defines interface for the draft download cache
type Repository interface {
	// Get retrieves a draft by ID
	Get(ctx context.Context, id string) (*Draft, error)

	// Save stores a draft with TTL
	Save(ctx context.Context, draft *Draft, ttl time.Duration) error

	// Delete removes a draft
	Delete(ctx context.Context, id string) error
}
