package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"themis/internal/domain/document"
	"themis/pkg/errors"
)

// DocumentRepository implements document.Repository using Redis. Documents
// are keyed by session, one active document per session.
type DocumentRepository struct {
	client *redis.Client
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(client *redis.Client) *DocumentRepository {
	return &DocumentRepository{
		client: client,
	}
}

// Get retrieves the session's current document
func (r *DocumentRepository) Get(ctx context.Context, sessionID string) (*document.Document, error) {
	data, err := r.client.Get(ctx, documentKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "document not found: session=%s", sessionID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get document from redis: session=%s", sessionID)
	}

	var doc document.Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal document: session=%s", sessionID)
	}

	return &doc, nil
}

// Save stores the document with TTL, replacing any previous upload for the
// session
func (r *DocumentRepository) Save(ctx context.Context, doc *document.Document, ttl time.Duration) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal document: session=%s", doc.SessionID)
	}

	if err := r.client.Set(ctx, documentKey(doc.SessionID), data, ttl).Err(); err != nil {
		return errors.Wrapf(err, "failed to save document to redis: session=%s", doc.SessionID)
	}

	return nil
}

// Delete removes the session's document
func (r *DocumentRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, documentKey(sessionID)).Err(); err != nil {
		return errors.Wrapf(err, "failed to delete document from redis: session=%s", sessionID)
	}

	return nil
}

func documentKey(sessionID string) string {
	return "doc:" + sessionID
}
