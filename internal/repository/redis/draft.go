package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"themis/internal/domain/draft"
	"themis/pkg/errors"
)

// DraftRepository implements draft.Repository using Redis
type DraftRepository struct {
	client *redis.Client
}

// NewDraftRepository creates a new draft repository
func NewDraftRepository(client *redis.Client) *DraftRepository {
	return &DraftRepository{
		client: client,
	}
}

// Get retrieves a draft by download ID
func (r *DraftRepository) Get(ctx context.Context, id string) (*draft.Draft, error) {
	data, err := r.client.Get(ctx, draftKey(id)).Result()
	if err == redis.Nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "draft not found: id=%s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get draft from redis: id=%s", id)
	}

	var d draft.Draft
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal draft: id=%s", id)
	}

	return &d, nil
}

// Save stores a draft with TTL
func (r *DraftRepository) Save(ctx context.Context, d *draft.Draft, ttl time.Duration) error {
	data, err := json.Marshal(d)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal draft: id=%s", d.ID)
	}

	if err := r.client.Set(ctx, draftKey(d.ID), data, ttl).Err(); err != nil {
		return errors.Wrapf(err, "failed to save draft to redis: id=%s", d.ID)
	}

	return nil
}

// Delete removes a draft
func (r *DraftRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, draftKey(id)).Err(); err != nil {
		return errors.Wrapf(err, "failed to delete draft from redis: id=%s", id)
	}

	return nil
}

func draftKey(id string) string {
	return "draft:" + id
}
